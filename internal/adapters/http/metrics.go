package httpadapter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts API calls and times the search-heavy operations.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	nodes    *prometheus.HistogramVec
}

// NewMetrics registers the adapter's collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sodo_api_requests_total",
			Help: "API requests by operation and outcome.",
		}, []string{"op", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sodo_api_duration_seconds",
			Help:    "API request duration by operation.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"op"}),
		nodes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sodo_search_nodes",
			Help:    "Solver nodes spent per solve/generate call.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"op"}),
	}
}

func (m *Metrics) observe(op string, start time.Time, ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.requests.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeNodes(op string, nodes int) {
	if m == nil {
		return
	}
	m.nodes.WithLabelValues(op).Observe(float64(nodes))
}
