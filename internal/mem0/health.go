package mem0

import (
	"context"
	"sync"
	"time"

	"mem0mcp/internal/config"
	"mem0mcp/internal/metrics"

	"github.com/rs/zerolog"
)

// iterationBackoff is the fixed pause after a panic or unexpected failure
// inside one monitor iteration.
const iterationBackoff = 5 * time.Second

// ProbeFunc performs one health probe against the mem0 ping endpoint. The
// context carries the probe timeout.
type ProbeFunc func(ctx context.Context) error

// HealthMonitor periodically probes the upstream connection from a single
// background goroutine and rebuilds the transport when a probe fails. Its
// state is advisory: the executor reads Healthy before attempts but is never
// blocked by it.
type HealthMonitor struct {
	cfg        config.ConnectionConfig
	holder     *TransportHolder
	probe      ProbeFunc
	revalidate func(ctx context.Context) error // optional, run after a rebuild
	logger     zerolog.Logger
	now        func() time.Time // injectable for tests

	mu              sync.Mutex
	healthy         bool
	lastHealthCheck time.Time
	running         bool
	cancel          context.CancelFunc
	done            chan struct{}
}

// NewHealthMonitor creates a monitor in the Stopped state. revalidate may be
// nil; it is invoked best-effort after each automatic rebuild to confirm the
// credentials still work through the new client.
func NewHealthMonitor(
	cfg config.ConnectionConfig,
	holder *TransportHolder,
	probe ProbeFunc,
	revalidate func(ctx context.Context) error,
	logger zerolog.Logger,
) *HealthMonitor {
	return &HealthMonitor{
		cfg:        cfg,
		holder:     holder,
		probe:      probe,
		revalidate: revalidate,
		logger:     logger.With().Str("component", "HealthMonitor").Logger(),
		now:        time.Now,
		healthy:    true,
	}
}

// Healthy returns the last known connection state.
func (m *HealthMonitor) Healthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthy
}

// LastHealthCheck returns the time of the last successful probe.
func (m *HealthMonitor) LastHealthCheck() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastHealthCheck
}

// Start launches the background heartbeat loop. Calling Start on a running
// monitor is a no-op.
func (m *HealthMonitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		m.logger.Warn().Msg("HealthMonitor already running")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.running = true
	m.cancel = cancel
	m.done = make(chan struct{})
	m.mu.Unlock()

	m.logger.Info().
		Dur("heartbeat_interval", m.cfg.HeartbeatInterval()).
		Dur("health_check_interval", m.cfg.HealthCheckInterval()).
		Bool("auto_rebuild", m.cfg.AutoRebuild).
		Msg("Starting connection health monitor")

	go m.loop(ctx)
}

// Stop signals the loop to exit and waits for it to finish. The wait is
// bounded: the loop exits after its current sleep or probe completes.
// Stopping a stopped monitor is a no-op.
func (m *HealthMonitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel := m.cancel
	done := m.done
	m.mu.Unlock()

	cancel()
	<-done
	m.logger.Info().Msg("Connection health monitor stopped")
}

func (m *HealthMonitor) loop(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.cfg.HeartbeatInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !m.safeCheck(ctx) {
				select {
				case <-ctx.Done():
					return
				case <-time.After(iterationBackoff):
				}
			}
		}
	}
}

// safeCheck runs one iteration, converting panics into a logged failure so
// the monitor never takes down the process. It returns false when the
// iteration panicked.
func (m *HealthMonitor) safeCheck(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().Interface("panic", r).Msg("Health check iteration panicked")
			ok = false
		}
	}()
	m.checkOnce(ctx)
	return true
}

// checkOnce performs a probe when the last successful check is older than
// the health-check interval. On failure it marks the connection unhealthy
// and, when auto-rebuild is on, replaces the HTTP client and re-validates
// credentials. Probe failures never stop the monitor.
func (m *HealthMonitor) checkOnce(ctx context.Context) {
	now := m.now()

	m.mu.Lock()
	due := now.Sub(m.lastHealthCheck) >= m.cfg.HealthCheckInterval()
	m.mu.Unlock()
	if !due {
		return
	}

	probeCtx, cancel := context.WithTimeout(ctx, m.cfg.ConnectionTimeout())
	err := m.probe(probeCtx)
	cancel()

	if err == nil {
		m.setHealthy(true, now)
		metrics.ConnectionHealthy.Set(1)
		m.logger.Debug().Msg("Health probe succeeded")
		return
	}

	m.setHealthy(false, time.Time{})
	metrics.ConnectionHealthy.Set(0)
	m.logger.Warn().Err(err).Msg("Health probe failed")

	if !m.cfg.AutoRebuild {
		return
	}

	if rbErr := m.holder.Rebuild(); rbErr != nil {
		m.logger.Error().Err(rbErr).Msg("Automatic transport rebuild failed")
		return
	}
	if m.revalidate != nil {
		revCtx, revCancel := context.WithTimeout(ctx, m.cfg.ConnectionTimeout())
		if vErr := m.revalidate(revCtx); vErr != nil {
			m.logger.Warn().Err(vErr).Msg("Credential re-validation after rebuild failed")
		}
		revCancel()
	}
}

// setHealthy updates the shared state record. A zero checkedAt leaves the
// last successful check time untouched.
func (m *HealthMonitor) setHealthy(healthy bool, checkedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthy = healthy
	if !checkedAt.IsZero() {
		m.lastHealthCheck = checkedAt
	}
}
