package mem0

import (
	"sync"
	"testing"

	"mem0mcp/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransportHolder(t *testing.T) {
	holder, err := NewTransportHolder(config.NewDefaultTimeoutConfig(), config.NewDefaultLimitsConfig(), zerolog.Nop())

	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.NotNil(t, holder.Client())

	holder.Close()
}

func TestNewTransportHolder_NegativeTimeout(t *testing.T) {
	timeout := config.NewDefaultTimeoutConfig()
	timeout.ReadSecs = -1

	holder, err := NewTransportHolder(timeout, config.NewDefaultLimitsConfig(), zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, holder)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestNewTransportHolder_InvalidPoolLimits(t *testing.T) {
	limits := config.NewDefaultLimitsConfig()
	limits.MaxConnections = 0

	holder, err := NewTransportHolder(config.NewDefaultTimeoutConfig(), limits, zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, holder)
}

func TestTransportHolder_RebuildSwapsClient(t *testing.T) {
	holder, err := NewTransportHolder(config.NewDefaultTimeoutConfig(), config.NewDefaultLimitsConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer holder.Close()

	before := holder.Client()
	require.NoError(t, holder.Rebuild())

	after := holder.Client()
	assert.NotSame(t, before, after)
}

func TestTransportHolder_ConcurrentRebuildAndClient(t *testing.T) {
	holder, err := NewTransportHolder(config.NewDefaultTimeoutConfig(), config.NewDefaultLimitsConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer holder.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				assert.NoError(t, holder.Rebuild())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				assert.NotNil(t, holder.Client())
			}
		}()
	}
	wg.Wait()
}

func TestTransportHolder_CloseIdempotent(t *testing.T) {
	holder, err := NewTransportHolder(config.NewDefaultTimeoutConfig(), config.NewDefaultLimitsConfig(), zerolog.Nop())
	require.NoError(t, err)

	holder.Close()
	holder.Close()

	// The holder survives Close and can still rebuild.
	assert.NoError(t, holder.Rebuild())
	assert.NotNil(t, holder.Client())
	holder.Close()
}
