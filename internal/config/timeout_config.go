package config

import "time"

// TimeoutConfig bounds each individual HTTP attempt against the mem0 API.
// Values are seconds expressed as real numbers, matching the MEM0_* environment
// variables. The read and write timeouts are deliberately generous because
// large memory writes have been observed to take minutes upstream.
type TimeoutConfig struct {
	ConnectSecs float64 `json:"connect_secs,omitempty" yaml:"connect_secs,omitempty" validate:"gte=0"`
	ReadSecs    float64 `json:"read_secs,omitempty" yaml:"read_secs,omitempty" validate:"gte=0"`
	WriteSecs   float64 `json:"write_secs,omitempty" yaml:"write_secs,omitempty" validate:"gte=0"`
	PoolSecs    float64 `json:"pool_secs,omitempty" yaml:"pool_secs,omitempty" validate:"gte=0"`
}

// NewDefaultTimeoutConfig creates default timeout configuration
func NewDefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		ConnectSecs: DefaultConnectTimeoutSecs,
		ReadSecs:    DefaultReadTimeoutSecs,
		WriteSecs:   DefaultWriteTimeoutSecs,
		PoolSecs:    DefaultPoolTimeoutSecs,
	}
}

func (tc TimeoutConfig) Connect() time.Duration { return secsToDuration(tc.ConnectSecs) }
func (tc TimeoutConfig) Read() time.Duration    { return secsToDuration(tc.ReadSecs) }
func (tc TimeoutConfig) Write() time.Duration   { return secsToDuration(tc.WriteSecs) }
func (tc TimeoutConfig) Pool() time.Duration    { return secsToDuration(tc.PoolSecs) }

func secsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
