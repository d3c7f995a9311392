package experience

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	classificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "experience_classifications_total",
			Help: "Count of experience classifications by resulting level (or fallback).",
		},
		[]string{"level"},
	)
)

func init() {
	prometheus.MustRegister(classificationsTotal)
}
