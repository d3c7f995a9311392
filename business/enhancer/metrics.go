package enhancer

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	enhancedItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enhanced_items_total",
			Help: "Count of enhanced candidates by explanation source.",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(enhancedItemsTotal)
}
