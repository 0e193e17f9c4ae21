// Package metrics exposes Prometheus instrumentation for the mem0 gateway.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts mem0 API requests by operation and outcome.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mem0_requests_total",
		Help: "Total mem0 API requests by operation and outcome.",
	}, []string{"operation", "outcome"})

	// RequestDuration observes end-to-end request latency including retries.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mem0_request_duration_seconds",
		Help:    "End-to-end mem0 request duration including retries.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 14),
	}, []string{"operation"})

	// RetriesTotal counts retryable request failures.
	RetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mem0_request_retries_total",
		Help: "Total retryable request failures.",
	})

	// RebuildsTotal counts successful HTTP client rebuilds.
	RebuildsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mem0_transport_rebuilds_total",
		Help: "Total successful HTTP client rebuilds.",
	})

	// ConnectionHealthy reflects the monitor's last probe result (1 or 0).
	ConnectionHealthy = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mem0_connection_healthy",
		Help: "Last health probe result: 1 healthy, 0 unhealthy.",
	})

	// ChunkedWritesTotal counts writes that needed chunking.
	ChunkedWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mem0_chunked_writes_total",
		Help: "Total writes split into chunks.",
	})

	// ChunksSentTotal counts individual chunks successfully sent.
	ChunksSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mem0_chunks_sent_total",
		Help: "Total chunks successfully sent.",
	})
)

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
