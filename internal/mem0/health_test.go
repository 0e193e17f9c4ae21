package mem0

import (
	"context"
	"errors"
	"testing"
	"time"

	"mem0mcp/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConnectionConfig() config.ConnectionConfig {
	return config.ConnectionConfig{
		HealthCheckIntervalSecs: 30,
		HeartbeatIntervalSecs:   60,
		AutoRebuild:             true,
		ConnectionTimeoutSecs:   10,
	}
}

func TestHealthMonitor_InitiallyHealthy(t *testing.T) {
	monitor := NewHealthMonitor(testConnectionConfig(), testHolder(t), nil, nil, zerolog.Nop())

	assert.True(t, monitor.Healthy())
	assert.True(t, monitor.LastHealthCheck().IsZero())
}

func TestHealthMonitor_ProbeSuccess(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	probes := 0

	monitor := NewHealthMonitor(testConnectionConfig(), testHolder(t), func(context.Context) error {
		probes++
		return nil
	}, nil, zerolog.Nop())
	monitor.now = func() time.Time { return now }

	monitor.checkOnce(context.Background())

	assert.Equal(t, 1, probes)
	assert.True(t, monitor.Healthy())
	assert.Equal(t, now, monitor.LastHealthCheck())
}

func TestHealthMonitor_ProbeFailureRebuildsTransport(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	holder := testHolder(t)
	revalidated := 0

	monitor := NewHealthMonitor(testConnectionConfig(), holder, func(context.Context) error {
		return NewNetworkError("https://api.mem0.ai", "probe failed", errors.New("connection refused"))
	}, func(context.Context) error {
		revalidated++
		return nil
	}, zerolog.Nop())
	monitor.now = func() time.Time { return now }

	before := holder.Client()
	monitor.checkOnce(context.Background())

	assert.False(t, monitor.Healthy())
	assert.True(t, monitor.LastHealthCheck().IsZero())
	assert.NotSame(t, before, holder.Client())
	assert.Equal(t, 1, revalidated)
}

func TestHealthMonitor_ProbeFailureWithoutAutoRebuild(t *testing.T) {
	cfg := testConnectionConfig()
	cfg.AutoRebuild = false
	holder := testHolder(t)

	monitor := NewHealthMonitor(cfg, holder, func(context.Context) error {
		return errors.New("probe failed")
	}, nil, zerolog.Nop())

	before := holder.Client()
	monitor.checkOnce(context.Background())

	assert.False(t, monitor.Healthy())
	assert.Same(t, before, holder.Client())
}

func TestHealthMonitor_SkipsProbeWhenRecentlyChecked(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	probes := 0

	monitor := NewHealthMonitor(testConnectionConfig(), testHolder(t), func(context.Context) error {
		probes++
		return nil
	}, nil, zerolog.Nop())
	monitor.now = func() time.Time { return now }

	monitor.checkOnce(context.Background())
	require.Equal(t, 1, probes)

	// 10 seconds later, well inside the 30 second health-check interval.
	monitor.now = func() time.Time { return now.Add(10 * time.Second) }
	monitor.checkOnce(context.Background())
	assert.Equal(t, 1, probes)

	// Past the interval the probe runs again.
	monitor.now = func() time.Time { return now.Add(31 * time.Second) }
	monitor.checkOnce(context.Background())
	assert.Equal(t, 2, probes)
}

func TestHealthMonitor_RecoversAfterFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	failing := true

	monitor := NewHealthMonitor(testConnectionConfig(), testHolder(t), func(context.Context) error {
		if failing {
			return errors.New("probe failed")
		}
		return nil
	}, nil, zerolog.Nop())
	monitor.now = func() time.Time { return now }

	monitor.checkOnce(context.Background())
	require.False(t, monitor.Healthy())

	// A failed probe leaves lastHealthCheck stale, so the next iteration
	// probes again immediately.
	failing = false
	monitor.checkOnce(context.Background())
	assert.True(t, monitor.Healthy())
	assert.Equal(t, now, monitor.LastHealthCheck())
}

func TestHealthMonitor_ProbePanicDoesNotCrash(t *testing.T) {
	monitor := NewHealthMonitor(testConnectionConfig(), testHolder(t), func(context.Context) error {
		panic("probe blew up")
	}, nil, zerolog.Nop())

	ok := monitor.safeCheck(context.Background())
	assert.False(t, ok)
}

func TestHealthMonitor_StartStop(t *testing.T) {
	cfg := testConnectionConfig()
	cfg.HeartbeatIntervalSecs = 0.01
	cfg.HealthCheckIntervalSecs = 0.01

	probed := make(chan struct{}, 16)
	monitor := NewHealthMonitor(cfg, testHolder(t), func(context.Context) error {
		select {
		case probed <- struct{}{}:
		default:
		}
		return nil
	}, nil, zerolog.Nop())

	monitor.Start()
	monitor.Start() // second Start is a no-op

	select {
	case <-probed:
	case <-time.After(2 * time.Second):
		t.Fatal("probe never ran")
	}

	monitor.Stop()
	monitor.Stop() // second Stop is a no-op
}

func TestHealthMonitor_StopWithoutStart(t *testing.T) {
	monitor := NewHealthMonitor(testConnectionConfig(), testHolder(t), nil, nil, zerolog.Nop())
	monitor.Stop()
}
