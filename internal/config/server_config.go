package config

import "time"

// ServerConfig configures the HTTP server hosting the MCP SSE endpoints.
type ServerConfig struct {
	Host                 string `json:"host,omitempty" yaml:"host,omitempty" validate:"required"`
	Port                 int    `json:"port,omitempty" yaml:"port,omitempty" validate:"gt=0,lte=65535"`
	KeepAliveTimeoutSecs int    `json:"keep_alive_timeout_secs,omitempty" yaml:"keep_alive_timeout_secs,omitempty" validate:"gt=0"`
}

// NewDefaultServerConfig creates default server configuration
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:                 DefaultServerHost,
		Port:                 DefaultServerPort,
		KeepAliveTimeoutSecs: DefaultKeepAliveTimeoutSecs,
	}
}

func (sc ServerConfig) KeepAliveTimeout() time.Duration {
	return time.Duration(sc.KeepAliveTimeoutSecs) * time.Second
}
