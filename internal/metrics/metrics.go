// Package metrics holds the Prometheus collectors of the alignment service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for computations.
const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeInvalidDate  = "invalid_date"
	OutcomeSourceError  = "source_error"
	OutcomeStoreError   = "store_error"
)

var (
	// Registry holds the service-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	computations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "alignment",
			Subsystem: "engine",
			Name:      "computations_total",
			Help:      "Daily metric computations by outcome.",
		},
		[]string{"outcome"},
	)

	computeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "alignment",
			Subsystem: "engine",
			Name:      "computation_duration_seconds",
			Help:      "Duration of a full daily metric computation including the upsert.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
	)

	sourceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "alignment",
			Subsystem: "sources",
			Name:      "query_duration_seconds",
			Help:      "Duration of goal directory and ledger queries.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"source", "success"},
	)

	rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "alignment",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Recompute requests rejected by the per-user limiter.",
		},
	)
)

func init() {
	Registry.MustRegister(
		computations,
		computeDuration,
		sourceDuration,
		rateLimited,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordComputation counts one computation and observes its latency.
func RecordComputation(outcome string, elapsed time.Duration) {
	computations.WithLabelValues(outcome).Inc()
	computeDuration.Observe(elapsed.Seconds())
}

// RecordSourceQuery observes one source query.
func RecordSourceQuery(source string, success bool, elapsed time.Duration) {
	label := "false"
	if success {
		label = "true"
	}
	sourceDuration.WithLabelValues(source, label).Observe(elapsed.Seconds())
}

// RecordRateLimited counts a rejected recompute request.
func RecordRateLimited() {
	rateLimited.Inc()
}
