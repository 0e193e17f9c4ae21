package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names recognized by the resolver. Durations are
// seconds expressed as real numbers, sizes are byte counts.
const (
	EnvAPIKey    = "MEM0_API_KEY"
	EnvHost      = "MEM0_HOST"
	EnvOrgID     = "MEM0_ORG_ID"
	EnvProjectID = "MEM0_PROJECT_ID"
	EnvUserID    = "MEM0_USER_ID"

	EnvReadTimeout    = "MEM0_TIMEOUT"
	EnvConnectTimeout = "MEM0_CONNECT_TIMEOUT"
	EnvWriteTimeout   = "MEM0_WRITE_TIMEOUT"
	EnvPoolTimeout    = "MEM0_POOL_TIMEOUT"

	EnvMaxRetries    = "MEM0_MAX_RETRIES"
	EnvRetryDelay    = "MEM0_RETRY_DELAY"
	EnvBackoffFactor = "MEM0_BACKOFF_FACTOR"

	EnvMaxConnections          = "MEM0_MAX_CONNECTIONS"
	EnvMaxKeepaliveConnections = "MEM0_MAX_KEEPALIVE_CONNECTIONS"
	EnvKeepaliveExpiry         = "MEM0_KEEPALIVE_EXPIRY"

	EnvChunkSize    = "MEM0_CHUNK_SIZE"
	EnvMaxChunkSize = "MEM0_MAX_CHUNK_SIZE"
	EnvChunkDelay   = "MEM0_CHUNK_DELAY"

	EnvHealthCheckInterval = "MEM0_HEALTH_CHECK_INTERVAL"
	EnvHeartbeatInterval   = "MEM0_HEARTBEAT_INTERVAL"
	EnvAutoRebuild         = "MEM0_AUTO_REBUILD"
	EnvConnectionTimeout   = "MEM0_CONNECTION_TIMEOUT"

	EnvServerHost = "MEM0_SERVER_HOST"
	EnvServerPort = "MEM0_SERVER_PORT"

	EnvLogLevel = "MEM0_LOG_LEVEL"
	EnvLogFile  = "MEM0_LOG_FILE"
)

// ApplyEnvOverrides overlays environment variables onto cfg. An unset
// variable leaves the current value untouched; a set but malformed value is
// a configuration error so that typos never silently fall back to defaults.
func ApplyEnvOverrides(cfg *Config) error {
	for _, s := range []struct {
		env string
		dst *string
	}{
		{EnvAPIKey, &cfg.Mem0Config.APIKey},
		{EnvHost, &cfg.Mem0Config.Host},
		{EnvOrgID, &cfg.Mem0Config.OrgID},
		{EnvProjectID, &cfg.Mem0Config.ProjectID},
		{EnvUserID, &cfg.Mem0Config.UserID},
		{EnvServerHost, &cfg.ServerConfig.Host},
		{EnvLogLevel, &cfg.LogConfig.LogLevel},
		{EnvLogFile, &cfg.LogConfig.LogFile},
	} {
		if v, ok := os.LookupEnv(s.env); ok {
			*s.dst = v
		}
	}

	for _, f := range []struct {
		env string
		dst *float64
	}{
		{EnvReadTimeout, &cfg.TimeoutConfig.ReadSecs},
		{EnvConnectTimeout, &cfg.TimeoutConfig.ConnectSecs},
		{EnvWriteTimeout, &cfg.TimeoutConfig.WriteSecs},
		{EnvPoolTimeout, &cfg.TimeoutConfig.PoolSecs},
		{EnvRetryDelay, &cfg.RetryConfig.RetryDelaySecs},
		{EnvBackoffFactor, &cfg.RetryConfig.BackoffFactor},
		{EnvKeepaliveExpiry, &cfg.LimitsConfig.KeepaliveExpirySecs},
		{EnvChunkDelay, &cfg.ChunkConfig.ChunkDelaySecs},
		{EnvHealthCheckInterval, &cfg.ConnectionConfig.HealthCheckIntervalSecs},
		{EnvHeartbeatInterval, &cfg.ConnectionConfig.HeartbeatIntervalSecs},
		{EnvConnectionTimeout, &cfg.ConnectionConfig.ConnectionTimeoutSecs},
	} {
		if err := overrideFloat(f.env, f.dst); err != nil {
			return err
		}
	}

	for _, i := range []struct {
		env string
		dst *int
	}{
		{EnvMaxRetries, &cfg.RetryConfig.MaxRetries},
		{EnvMaxConnections, &cfg.LimitsConfig.MaxConnections},
		{EnvMaxKeepaliveConnections, &cfg.LimitsConfig.MaxKeepaliveConnections},
		{EnvChunkSize, &cfg.ChunkConfig.ChunkSize},
		{EnvMaxChunkSize, &cfg.ChunkConfig.MaxChunkSize},
		{EnvServerPort, &cfg.ServerConfig.Port},
	} {
		if err := overrideInt(i.env, i.dst); err != nil {
			return err
		}
	}

	if err := overrideBool(EnvAutoRebuild, &cfg.ConnectionConfig.AutoRebuild); err != nil {
		return err
	}

	return nil
}

func overrideFloat(env string, dst *float64) error {
	raw, ok := os.LookupEnv(env)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("environment variable %s: invalid number %q: %w", env, raw, err)
	}
	*dst = v
	return nil
}

func overrideInt(env string, dst *int) error {
	raw, ok := os.LookupEnv(env)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("environment variable %s: invalid integer %q: %w", env, raw, err)
	}
	*dst = v
	return nil
}

func overrideBool(env string, dst *bool) error {
	raw, ok := os.LookupEnv(env)
	if !ok {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		*dst = true
	case "false", "0", "no", "off":
		*dst = false
	default:
		return fmt.Errorf("environment variable %s: invalid boolean %q", env, raw)
	}
	return nil
}
