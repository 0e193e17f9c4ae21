package config

const (
	// Timeout Defaults (seconds)
	DefaultConnectTimeoutSecs = 30.0
	DefaultReadTimeoutSecs    = 600.0
	DefaultWriteTimeoutSecs   = 300.0
	DefaultPoolTimeoutSecs    = 30.0

	// Retry Defaults
	DefaultMaxRetries     = 5
	DefaultRetryDelaySecs = 2.0
	DefaultBackoffFactor  = 2.0

	// Connection Pool Defaults
	DefaultMaxConnections          = 200
	DefaultMaxKeepaliveConnections = 50
	DefaultKeepaliveExpirySecs     = 30.0

	// Chunk Defaults
	DefaultChunkSize      = 1024 * 1024     // 1MB
	DefaultMaxChunkSize   = 2 * 1024 * 1024 // 2MB
	DefaultChunkDelaySecs = 0.1

	// Connection Management Defaults
	DefaultHealthCheckIntervalSecs = 30.0
	DefaultHeartbeatIntervalSecs   = 60.0
	DefaultAutoRebuild             = true
	DefaultConnectionTimeoutSecs   = 10.0

	// Server Defaults
	DefaultServerHost           = "0.0.0.0"
	DefaultServerPort           = 8080
	DefaultKeepAliveTimeoutSecs = 1800

	// mem0 API Defaults
	DefaultAPIHost        = "https://api.mem0.ai"
	DefaultUserID         = "cursor_mcp"
	DefaultSearchPageSize = 50

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)

// Config is the root configuration for the mem0 MCP gateway. It is resolved
// once at process start from defaults, an optional YAML file, and environment
// variable overrides, and is never mutated afterwards.
type Config struct {
	Mem0Config       Mem0Config       `json:"mem0_config,omitempty" yaml:"mem0_config,omitempty"`
	TimeoutConfig    TimeoutConfig    `json:"timeout_config,omitempty" yaml:"timeout_config,omitempty"`
	RetryConfig      RetryConfig      `json:"retry_config,omitempty" yaml:"retry_config,omitempty"`
	LimitsConfig     LimitsConfig     `json:"limits_config,omitempty" yaml:"limits_config,omitempty"`
	ChunkConfig      ChunkConfig      `json:"chunk_config,omitempty" yaml:"chunk_config,omitempty"`
	ConnectionConfig ConnectionConfig `json:"connection_config,omitempty" yaml:"connection_config,omitempty"`
	ServerConfig     ServerConfig     `json:"server_config,omitempty" yaml:"server_config,omitempty"`
	LogConfig        LogConfig        `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultConfig creates a Config populated with the documented defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Mem0Config:       NewDefaultMem0Config(),
		TimeoutConfig:    NewDefaultTimeoutConfig(),
		RetryConfig:      NewDefaultRetryConfig(),
		LimitsConfig:     NewDefaultLimitsConfig(),
		ChunkConfig:      NewDefaultChunkConfig(),
		ConnectionConfig: NewDefaultConnectionConfig(),
		ServerConfig:     NewDefaultServerConfig(),
		LogConfig:        NewDefaultLogConfig(),
	}
}
