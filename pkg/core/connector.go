package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/saturnines/tap-cj/pkg/auth"
	"github.com/saturnines/tap-cj/pkg/config"
	"github.com/saturnines/tap-cj/pkg/errors"
	"github.com/saturnines/tap-cj/pkg/pagination"
	"github.com/saturnines/tap-cj/pkg/transform"
	"github.com/saturnines/tap-cj/pkg/transport/graphql"
)

// recordsPath locates the record list inside the response envelope.
const recordsPath = "data.publisherCommissions.records"

// RecordSink receives transformed records one at a time.
type RecordSink func(record map[string]interface{}) error

// Connector orchestrates the sync: one date cursor per publisher partition,
// one request per window, transform and emit each record.
type Connector struct {
	builder     *graphql.Builder
	client      *graphql.Client
	transformer transform.Transformer
	cfg         *config.Settings
	logger      zerolog.Logger

	// end bound for new cursors; zero means "today", captured per partition
	end time.Time
}

// Option configures a Connector.
type Option func(*Connector)

// WithEndDate fixes the cursor end bound instead of capturing today.
func WithEndDate(end time.Time) Option {
	return func(c *Connector) {
		c.end = end
	}
}

// WithLogger swaps the connector logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Connector) {
		c.logger = logger
	}
}

// NewConnector wires the builder, transport and transformer from settings.
func NewConnector(cfg *config.Settings, opts ...Option) (*Connector, error) {
	if cfg.StartDate == "" {
		return nil, errors.WrapError(
			fmt.Errorf("start_date is required to sync"),
			errors.ErrConfiguration,
			"create connector",
		)
	}

	query := cfg.Query
	if query == "" {
		query = graphql.DefaultCommissionsQuery
	}

	builderOpts := []graphql.BuilderOption{
		graphql.WithAuthHandler(auth.NewBearerAuth(cfg.AuthToken)),
	}
	if cfg.UserAgent != "" {
		builderOpts = append(builderOpts, graphql.WithUserAgent(cfg.UserAgent))
	}

	httpClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: graphql.NewRetryTransport(nil, cfg.Retry),
	}

	c := &Connector{
		builder:     graphql.NewBuilder(cfg.Endpoint, query, builderOpts...),
		client:      graphql.NewClient(httpClient),
		transformer: transform.NewCommissionTransformer(),
		cfg:         cfg,
		logger:      zerolog.New(os.Stdout).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Extract runs the full sync and collects every record.
func (c *Connector) Extract(ctx context.Context) ([]map[string]interface{}, error) {
	var all []map[string]interface{}
	err := c.ExtractTo(ctx, func(record map[string]interface{}) error {
		all = append(all, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// ExtractTo runs the loop: window → build → send → parse → transform → emit,
// per publisher partition, until each cursor is exhausted. Partitions are
// independent; each gets its own cursor.
func (c *Connector) ExtractTo(ctx context.Context, sink RecordSink) error {
	logger := c.logger.With().Str("sync_id", uuid.NewString()).Logger()

	for _, pubID := range c.cfg.PublisherIDs {
		cursor, err := c.newCursor()
		if err != nil {
			return err
		}

		partLogger := logger.With().Str("publisher_id", pubID).Logger()
		count := 0

		for cursor.HasMore() {
			w := cursor.Window()
			partLogger.Debug().
				Str("from", w.From.Format(pagination.DateFormat)).
				Str("to", w.To.Format(pagination.DateFormat)).
				Msg("requesting window")

			req, err := c.builder.Build(ctx, pubID, w)
			if err != nil {
				return errors.WrapError(err, errors.ErrHTTPRequest, "build request")
			}

			resp, err := c.client.Execute(req)
			if err != nil {
				return errors.WrapError(err, errors.ErrHTTPResponse, "execute request")
			}

			records, err := c.parsePage(resp, partLogger)
			if err != nil {
				return err
			}

			for _, record := range records {
				out, err := c.transformer.Apply(record)
				if err != nil {
					return err
				}
				if out == nil {
					// Transformer dropped the record
					continue
				}
				if err := sink(out); err != nil {
					return err
				}
				count++
			}

			cursor.Advance()
		}

		partLogger.Info().Int("records", count).Msg("partition complete")
	}

	return nil
}

// newCursor builds a fresh cursor for one partition.
func (c *Connector) newCursor() (pagination.Pager, error) {
	if !c.end.IsZero() {
		return pagination.NewDateCursorAt(c.cfg.StartDate, c.cfg.IncrementDays, c.end)
	}
	return pagination.NewDateCursor(c.cfg.StartDate, c.cfg.IncrementDays)
}

// parsePage decodes one response body and pulls out the record list. A missing
// or null data envelope is logged and treated as an empty page so a single
// malformed page can't abort the sync.
func (c *Connector) parsePage(resp *http.Response, logger zerolog.Logger) ([]map[string]interface{}, error) {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.WrapError(
			fmt.Errorf("API returned status %d", resp.StatusCode),
			errors.ErrHTTPResponse,
			"unexpected status code",
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPResponse, "read response body")
	}

	var envelope map[string]interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPResponse, "decode response JSON")
	}

	if data, ok := envelope["data"]; !ok || data == nil {
		logger.Error().RawJSON("response", body).Msg("data envelope is missing or null")
		return nil, nil
	}

	raw, ok := ExtractField(envelope, recordsPath)
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, errors.WrapError(
			fmt.Errorf("records is not an array: %T", raw),
			errors.ErrExtraction,
			"extract records",
		)
	}

	records := make([]map[string]interface{}, 0, len(list))
	for i, entry := range list {
		record, ok := entry.(map[string]interface{})
		if !ok {
			return nil, errors.WrapError(
				fmt.Errorf("record at index %d is not an object: %T", i, entry),
				errors.ErrExtraction,
				"extract records",
			)
		}
		records = append(records, record)
	}
	return records, nil
}
