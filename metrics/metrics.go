package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "busrelay_upstream_requests_total",
		Help: "Upstream generateContent calls by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "busrelay_upstream_duration_seconds",
		Help:    "Latency of upstream generateContent calls.",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
	}, []string{"endpoint"})
)

// Register adds the relay collectors to reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(upstreamRequests, upstreamDuration)
}

// ObserveUpstream records one upstream call. outcome is "ok" or the name of
// the failure kind.
func ObserveUpstream(endpoint, outcome string, took time.Duration) {
	upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	upstreamDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}
