package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts outbound Livefyre calls. A nil *Metrics records nothing.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the client metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "livefyre_client_requests_total",
			Help: "Total requests sent to Livefyre APIs",
		}, []string{"method", "host", "status"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "livefyre_client_request_duration_seconds",
			Help:    "Latency of requests sent to Livefyre APIs",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"method", "host"}),
	}
}

func (m *Metrics) observe(method, host, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, host, status).Inc()
	m.Duration.WithLabelValues(method, host).Observe(elapsed.Seconds())
}
