package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigLoader defines the interface for loading configs
type ConfigLoader interface {
	Load(path string) (interface{}, error)
	Parse(data []byte) (interface{}, error)
}

type ValidationError struct {
	Field   string
	Message string
}

type Validator interface {
	Validate(config interface{}) []ValidationError
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DefaultValueSetter Handles the interface for setting default values
type DefaultValueSetter interface {
	SetDefaults(config interface{})
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// SettingsLoader uses ConfigLoader for tap Settings
type SettingsLoader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewSettingsLoader creates a new SettingsLoader with the given components
func NewSettingsLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *SettingsLoader {
	return &SettingsLoader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// Load a new settings config from YAML file
func (l *SettingsLoader) Load(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *SettingsLoader) Parse(data []byte) (interface{}, error) {
	// Expand variables if an expander is configured
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	// Unmarshal YAML data into Settings struct
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Set default values if a default setter is configured
	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(&settings)
	}

	// Validate the settings
	var allErrors []ValidationError
	for _, validator := range l.validators {
		errors := validator.Validate(&settings)
		allErrors = append(allErrors, errors...)
	}

	// Return any validation errors if there are any
	if len(allErrors) > 0 {
		return nil, fmt.Errorf("validation errors: %v", allErrors)
	}

	return &settings, nil
}

// SettingsDefaults implements DefaultValueSetter for Settings
type SettingsDefaults struct{}

// SetDefaults sets default values for Settings
func (d *SettingsDefaults) SetDefaults(config interface{}) {
	settings, ok := config.(*Settings)
	if !ok {
		return
	}

	if settings.Endpoint == "" {
		settings.Endpoint = DefaultEndpoint
	}

	if settings.IncrementDays == 0 {
		settings.IncrementDays = DefaultIncrementDays
	}
}

// RequiredFieldValidator validates required fields for the API
type RequiredFieldValidator struct{}

// Validate checks that all required fields are present
func (v *RequiredFieldValidator) Validate(config interface{}) []ValidationError {
	settings, ok := config.(*Settings)
	if !ok {
		return []ValidationError{{Field: "config", Message: "not a Settings"}}
	}

	var errors []ValidationError

	// Check required fields
	if settings.AuthToken == "" {
		errors = append(errors, ValidationError{Field: "auth_token", Message: "is required"})
	}

	if len(settings.PublisherIDs) == 0 {
		errors = append(errors, ValidationError{Field: "publisher_ids", Message: "at least one publisher id is required"})
	}

	return errors
}

// DateValidator validates date-shaped settings
type DateValidator struct{}

// Validate checks that start_date, if present, is a parseable YYYY-MM-DD date
func (v *DateValidator) Validate(config interface{}) []ValidationError {
	settings, ok := config.(*Settings)
	if !ok {
		return []ValidationError{{Field: "config", Message: "not a Settings"}}
	}

	var errors []ValidationError

	if settings.StartDate != "" {
		if _, err := time.Parse("2006-01-02", settings.StartDate); err != nil {
			errors = append(errors, ValidationError{
				Field:   "start_date",
				Message: fmt.Sprintf("must be YYYY-MM-DD: %v", err),
			})
		}
	}

	if settings.IncrementDays < 0 {
		errors = append(errors, ValidationError{Field: "increment_days", Message: "must be positive"})
	}

	return errors
}
