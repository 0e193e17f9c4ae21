package config

import "time"

// RetryConfig defines the retry policy for outbound mem0 requests.
type RetryConfig struct {
	// Maximum number of retries after the initial attempt.
	MaxRetries int `json:"max_retries,omitempty" yaml:"max_retries,omitempty" validate:"gte=0,lte=20"`
	// Base delay in seconds before the first retry.
	RetryDelaySecs float64 `json:"retry_delay_secs,omitempty" yaml:"retry_delay_secs,omitempty" validate:"gt=0"`
	// Multiplier applied to the delay for each subsequent retry.
	BackoffFactor float64 `json:"backoff_factor,omitempty" yaml:"backoff_factor,omitempty" validate:"gte=1"`
}

// NewDefaultRetryConfig creates default retry configuration
func NewDefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     DefaultMaxRetries,
		RetryDelaySecs: DefaultRetryDelaySecs,
		BackoffFactor:  DefaultBackoffFactor,
	}
}

func (rc RetryConfig) RetryDelay() time.Duration { return secsToDuration(rc.RetryDelaySecs) }
