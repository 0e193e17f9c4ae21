package mem0

import (
	"context"
	"time"

	"mem0mcp/internal/config"
	"mem0mcp/internal/metrics"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// healthState is the view of the connection health monitor the executor
// consults before attempts. The state is advisory: an unhealthy reading
// triggers a best-effort rebuild but never blocks the attempt.
type healthState interface {
	Healthy() bool
}

// alwaysHealthy is used when no monitor is wired in.
type alwaysHealthy struct{}

func (alwaysHealthy) Healthy() bool { return true }

// Executor wraps a single outbound call in a bounded retry loop with
// exponential backoff. Failures are classified by IsRetryable: transient
// network conditions are retried up to MaxRetries times, well-formed HTTP
// or validation errors propagate immediately. Connect failures and resets
// additionally trigger a transport rebuild before the backoff wait.
type Executor struct {
	cfg    config.RetryConfig
	holder *TransportHolder
	health healthState
	logger zerolog.Logger
	timer  backoff.Timer // nil means real timers
}

// NewExecutor creates a retrying request executor. The monitor may be nil.
func NewExecutor(cfg config.RetryConfig, holder *TransportHolder, health healthState, logger zerolog.Logger) *Executor {
	if health == nil {
		health = alwaysHealthy{}
	}
	return &Executor{
		cfg:    cfg,
		holder: holder,
		health: health,
		logger: logger.With().Str("component", "RetryExecutor").Logger(),
	}
}

// newBackOff builds the backoff policy: waits are exactly
// retry_delay * backoff_factor^attempt, with no jitter, capped only by the
// retry budget.
func newBackOff(cfg config.RetryConfig) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.RetryDelay()
	bo.Multiplier = cfg.BackoffFactor
	bo.RandomizationFactor = 0
	bo.MaxInterval = 24 * time.Hour
	bo.MaxElapsedTime = 0
	bo.Reset()
	return backoff.WithMaxRetries(bo, uint64(cfg.MaxRetries))
}

// Execute runs operation, retrying per the configured policy. The context
// cancels the backoff waits but not an in-flight attempt; attempts bound
// themselves via their own request deadlines.
func (e *Executor) Execute(ctx context.Context, name string, operation func() error) error {
	if !e.health.Healthy() {
		e.logger.Warn().Str("operation", name).Msg("Connection reported unhealthy, rebuilding before attempt")
		if err := e.holder.Rebuild(); err != nil {
			e.logger.Warn().Err(err).Msg("Pre-attempt rebuild failed, attempting anyway")
		}
	}

	attempts := 0
	wrapped := func() error {
		attempts++
		err := operation()
		if err == nil {
			return nil
		}

		if !IsRetryable(err) {
			return backoff.Permanent(err)
		}

		metrics.RetriesTotal.Inc()
		e.logger.Warn().
			Str("operation", name).
			Int("attempt", attempts).
			Int("max_retries", e.cfg.MaxRetries).
			Err(err).
			Msg("Retryable request failure")

		if needsRebuild(err) {
			if rbErr := e.holder.Rebuild(); rbErr != nil {
				e.logger.Warn().Err(rbErr).Msg("Rebuild after connection failure did not succeed")
			}
		}
		return err
	}

	bo := backoff.WithContext(newBackOff(e.cfg), ctx)

	var err error
	if e.timer != nil {
		err = backoff.RetryNotifyWithTimer(wrapped, bo, nil, e.timer)
	} else {
		err = backoff.Retry(wrapped, bo)
	}
	if err == nil {
		return nil
	}

	if IsRetryable(err) {
		e.logger.Error().
			Str("operation", name).
			Int("attempts", attempts).
			Err(err).
			Msg("All retry attempts failed")
		return &RetriesExhaustedError{Attempts: attempts, Err: err}
	}
	return err
}
