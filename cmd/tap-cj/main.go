package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/saturnines/tap-cj/pkg/config"
	"github.com/saturnines/tap-cj/pkg/core"
	"github.com/saturnines/tap-cj/pkg/schema"
)

func main() {
	var cfgPath, outPath string
	var discover bool
	flag.StringVar(&cfgPath, "config", "", "path to tap settings YAML")
	flag.StringVar(&outPath, "out", "", "output file (default stdout)")
	flag.BoolVar(&discover, "discover", false, "print schemas and exit")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if discover {
		out := map[string]interface{}{
			"settings": schema.SettingsSchema(),
			"streams":  []schema.Schema{schema.CommissionsSchema()},
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			logger.Fatal().Err(err).Msg("encode schemas")
		}
		return
	}

	if cfgPath == "" {
		fmt.Fprintln(os.Stderr, "usage: tap-cj -config path/to/settings.yaml [-out records.json]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg(".env file not loaded")
	}

	// Load the YAML settings
	loader := config.NewSettingsLoader(
		&config.EnvExpander{},
		&config.SettingsDefaults{},
		&config.RequiredFieldValidator{},
		&config.DateValidator{},
	)

	cfg, err := loader.Load(cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load settings")
	}

	// Create connector and extract
	connector, err := core.NewConnector(cfg.(*config.Settings), core.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("create connector")
	}

	records, err := connector.Extract(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("extract")
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("create output file")
		}
		defer f.Close()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		logger.Fatal().Err(err).Msg("encode records")
	}

	logger.Info().Int("records", len(records)).Msg("sync complete")
}
