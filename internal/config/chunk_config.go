package config

import "time"

// ChunkConfig controls how oversized write payloads are split before sending.
// ChunkSize is the threshold above which a payload is chunked and the target
// size of each chunk; MaxChunkSize is the hard upper bound a single chunk may
// reach (a lone line longer than this is force-split at the byte boundary).
type ChunkConfig struct {
	ChunkSize      int     `json:"chunk_size,omitempty" yaml:"chunk_size,omitempty" validate:"gt=0"`
	MaxChunkSize   int     `json:"max_chunk_size,omitempty" yaml:"max_chunk_size,omitempty" validate:"gt=0"`
	ChunkDelaySecs float64 `json:"chunk_delay_secs,omitempty" yaml:"chunk_delay_secs,omitempty" validate:"gte=0"`
}

// NewDefaultChunkConfig creates default chunking configuration
func NewDefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		ChunkSize:      DefaultChunkSize,
		MaxChunkSize:   DefaultMaxChunkSize,
		ChunkDelaySecs: DefaultChunkDelaySecs,
	}
}

func (cc ChunkConfig) ChunkDelay() time.Duration { return secsToDuration(cc.ChunkDelaySecs) }
