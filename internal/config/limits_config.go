package config

import "time"

// LimitsConfig sizes the HTTP connection pool shared by all mem0 requests.
type LimitsConfig struct {
	MaxConnections          int     `json:"max_connections,omitempty" yaml:"max_connections,omitempty" validate:"gt=0"`
	MaxKeepaliveConnections int     `json:"max_keepalive_connections,omitempty" yaml:"max_keepalive_connections,omitempty" validate:"gt=0"`
	KeepaliveExpirySecs     float64 `json:"keepalive_expiry_secs,omitempty" yaml:"keepalive_expiry_secs,omitempty" validate:"gte=0"`
}

// NewDefaultLimitsConfig creates default connection pool configuration
func NewDefaultLimitsConfig() LimitsConfig {
	return LimitsConfig{
		MaxConnections:          DefaultMaxConnections,
		MaxKeepaliveConnections: DefaultMaxKeepaliveConnections,
		KeepaliveExpirySecs:     DefaultKeepaliveExpirySecs,
	}
}

func (lc LimitsConfig) KeepaliveExpiry() time.Duration { return secsToDuration(lc.KeepaliveExpirySecs) }
