package mem0

import (
	"crypto/tls"
	"net"
	"net/http"
	"sync"

	"mem0mcp/internal/config"
	"mem0mcp/internal/metrics"

	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

// TransportHolder owns the single live HTTP client used for all mem0
// requests. Rebuild swaps in a freshly built client; the old handle is only
// closed after the new one exists, so there is never a window without a
// usable client. All access is serialized by one mutex, which also keeps
// racing Rebuild calls from leaking the loser's handle.
type TransportHolder struct {
	mu      sync.Mutex
	client  *http.Client
	timeout config.TimeoutConfig
	limits  config.LimitsConfig
	logger  zerolog.Logger
	closed  bool
}

// NewTransportHolder creates a holder with an initial client built from the
// timeout and connection-pool settings.
func NewTransportHolder(timeout config.TimeoutConfig, limits config.LimitsConfig, logger zerolog.Logger) (*TransportHolder, error) {
	client, err := buildClient(timeout, limits, logger)
	if err != nil {
		return nil, err
	}

	return &TransportHolder{
		client:  client,
		timeout: timeout,
		limits:  limits,
		logger:  logger.With().Str("component", "TransportHolder").Logger(),
	}, nil
}

// Client returns the current HTTP client handle. The handle is shared, not
// owned: callers must not close it.
func (h *TransportHolder) Client() *http.Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.client
}

// Rebuild replaces the current client with a freshly built one. The new
// client is created first; only on success is the old handle swapped out and
// its idle connections released. On failure the old client stays installed
// and the error is returned.
func (h *TransportHolder) Rebuild() error {
	newClient, err := buildClient(h.timeout, h.limits, h.logger)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to rebuild HTTP client, keeping existing one")
		return err
	}

	h.mu.Lock()
	old := h.client
	h.client = newClient
	h.closed = false
	h.mu.Unlock()

	old.CloseIdleConnections()
	metrics.RebuildsTotal.Inc()
	h.logger.Info().Msg("HTTP client rebuilt")
	return nil
}

// Close releases the pooled connections of the current client. It is
// idempotent; the holder can still be rebuilt afterwards.
func (h *TransportHolder) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.client.CloseIdleConnections()
	h.closed = true
	h.logger.Debug().Msg("Transport connections closed")
}

func buildClient(timeout config.TimeoutConfig, limits config.LimitsConfig, logger zerolog.Logger) (*http.Client, error) {
	if timeout.ConnectSecs < 0 || timeout.ReadSecs < 0 || timeout.WriteSecs < 0 || timeout.PoolSecs < 0 {
		return nil, NewTransportError("negative timeout in configuration", nil)
	}
	if limits.MaxConnections <= 0 || limits.MaxKeepaliveConnections <= 0 {
		return nil, NewTransportError("connection pool limits must be positive", nil)
	}

	transport := &http.Transport{
		MaxConnsPerHost:       limits.MaxConnections,
		MaxIdleConns:          limits.MaxKeepaliveConnections,
		MaxIdleConnsPerHost:   limits.MaxKeepaliveConnections,
		IdleConnTimeout:       limits.KeepaliveExpiry(),
		ResponseHeaderTimeout: timeout.Read(),
		TLSHandshakeTimeout:   timeout.Connect(),
		ExpectContinueTimeout: timeout.Pool(),
		DialContext: (&net.Dialer{
			Timeout:   timeout.Connect(),
			KeepAlive: limits.KeepaliveExpiry(),
		}).DialContext,
		TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	}

	if err := http2.ConfigureTransport(transport); err != nil {
		logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
	}

	// No overall client timeout: each attempt is bounded by a per-request
	// context deadline chosen from the read or write timeout.
	return &http.Client{Transport: transport}, nil
}
