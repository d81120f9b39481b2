package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var cacheLookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "recommendation_cache_lookups_total",
		Help: "Cache lookups by the recommendation orchestrator, by result.",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(cacheLookups)
}
