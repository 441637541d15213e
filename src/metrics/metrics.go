package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request execution counters and histograms, partitioned by operation.

// Attempt outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeRetry     = "retry"
	OutcomeFatal     = "fatal"
	OutcomeTransport = "transport_error"
)

// Registry holds every collector of the SDK. It is separate from the default
// registry so that embedding programs decide whether to expose it.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Engine
	AttemptsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hashgraph_sdk",
		Name:      "attempts_total",
		Help:      "Total request attempts sent to nodes",
	}, []string{"operation", "outcome"})

	AttemptLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hashgraph_sdk",
		Name:      "attempt_duration_seconds",
		Help:      "Round trip duration of a single attempt",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation"})

	BackoffSeconds = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "hashgraph_sdk",
		Name:      "backoff_seconds_total",
		Help:      "Total time spent sleeping between attempts",
	})

	// Queries
	QueryCost = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hashgraph_sdk",
		Name:      "query_cost_tinybars",
		Help:      "Cost quoted by nodes for paid queries",
		Buckets:   prometheus.ExponentialBuckets(1000, 10, 8),
	}, []string{"query"})

	// Mock network
	MocknetRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hashgraph_sdk",
		Subsystem: "mocknet",
		Name:      "requests_total",
		Help:      "Total requests answered by simulated nodes",
	}, []string{"node", "precheck"})
)

// Handler serves the collectors of Registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
