package config

import "time"

// ConnectionConfig drives the background connection health monitor.
type ConnectionConfig struct {
	// Minimum age of the last successful probe before a new one is performed.
	HealthCheckIntervalSecs float64 `json:"health_check_interval_secs,omitempty" yaml:"health_check_interval_secs,omitempty" validate:"gt=0"`
	// How often the monitor loop wakes up.
	HeartbeatIntervalSecs float64 `json:"heartbeat_interval_secs,omitempty" yaml:"heartbeat_interval_secs,omitempty" validate:"gt=0"`
	// Rebuild the HTTP client automatically when a probe fails.
	AutoRebuild bool `json:"auto_rebuild" yaml:"auto_rebuild"`
	// Timeout for a single health probe.
	ConnectionTimeoutSecs float64 `json:"connection_timeout_secs,omitempty" yaml:"connection_timeout_secs,omitempty" validate:"gt=0"`
}

// NewDefaultConnectionConfig creates default connection management configuration
func NewDefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		HealthCheckIntervalSecs: DefaultHealthCheckIntervalSecs,
		HeartbeatIntervalSecs:   DefaultHeartbeatIntervalSecs,
		AutoRebuild:             DefaultAutoRebuild,
		ConnectionTimeoutSecs:   DefaultConnectionTimeoutSecs,
	}
}

func (cc ConnectionConfig) HealthCheckInterval() time.Duration {
	return secsToDuration(cc.HealthCheckIntervalSecs)
}

func (cc ConnectionConfig) HeartbeatInterval() time.Duration {
	return secsToDuration(cc.HeartbeatIntervalSecs)
}

func (cc ConnectionConfig) ConnectionTimeout() time.Duration {
	return secsToDuration(cc.ConnectionTimeoutSecs)
}
