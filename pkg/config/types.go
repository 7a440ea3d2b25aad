package config

// Settings represents the full configuration for one tap run
type Settings struct {
	AuthToken     string       `yaml:"auth_token"`               // Required: API bearer token (secret)
	StartDate     string       `yaml:"start_date,omitempty"`     // Earliest record date to sync (YYYY-MM-DD)
	PublisherIDs  []string     `yaml:"publisher_ids"`            // Publisher ids to sync, one partition each
	UserAgent     string       `yaml:"user_agent,omitempty"`     // Optional User-Agent header
	Endpoint      string       `yaml:"endpoint,omitempty"`       // API URL (default: CJ commissions endpoint)
	Query         string       `yaml:"query,omitempty"`          // GraphQL query template override
	IncrementDays int          `yaml:"increment_days,omitempty"` // Window size in days (default 28)
	Retry         *RetryConfig `yaml:"retry,omitempty"`          // Optional retry policy
}

// DefaultEndpoint is the CJ commissions GraphQL endpoint.
const DefaultEndpoint = "https://commissions.api.cj.com/query"

// DefaultIncrementDays is the date window size used when none is configured.
const DefaultIncrementDays = 28

// RetryConfig controls the HTTP retry transport
type RetryConfig struct {
	MaxAttempts       int     `yaml:"max_attempts,omitempty"`
	InitialBackoff    float64 `yaml:"initial_backoff,omitempty"` // Seconds
	BackoffMultiplier float64 `yaml:"backoff_multiplier,omitempty"`
	RetryableStatuses []int   `yaml:"retryable_statuses,omitempty"`
}
