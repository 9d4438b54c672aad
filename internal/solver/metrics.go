package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the client-side solver metrics.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	moves    *prometheus.HistogramVec
}

// NewMetrics registers the solver client metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cubeviz",
			Subsystem: "solver_client",
			Name:      "requests_total",
			Help:      "Solve requests by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cubeviz",
			Subsystem: "solver_client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip time of solve requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"method"}),
		moves: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cubeviz",
			Subsystem: "solver_client",
			Name:      "solution_moves",
			Help:      "Number of move tokens in returned solutions.",
			Buckets:   prometheus.LinearBuckets(0, 10, 10),
		}, []string{"method"}),
	}
}
