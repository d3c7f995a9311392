package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Count of cache reads that returned a fresh entry.",
	}, []string{"cache"})

	cacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Count of cache reads that found nothing or an expired entry.",
	}, []string{"cache"})
)

func init() {
	prometheus.MustRegister(cacheHitsTotal, cacheMissesTotal)
}
