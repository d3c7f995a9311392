package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendations HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total recommendation requests by strategy actually executed
	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total recommendation requests by executed strategy",
	}, []string{"strategy"})

	// Requests that returned the degraded (unenhanced) envelope
	RecommendDegraded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_degraded_total",
		Help: "Requests answered without enrichment after an enhancement failure",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		RecommendDegraded,
	)
}
