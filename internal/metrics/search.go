package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and reload Prometheus metrics. Registered explicitly from the
// composition root (no init()) so tests can import this package freely.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flowsearch",
			Name:      "searches_total",
			Help:      "Total number of catalog searches",
		},
		[]string{"outcome"}, // "hit" / "empty"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "flowsearch",
			Name:      "search_duration_seconds",
			Help:      "Search pipeline duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	CatalogFlows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "flowsearch",
			Name:      "catalog_flows",
			Help:      "Number of flows in the active catalog snapshot",
		},
	)

	CatalogReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flowsearch",
			Name:      "catalog_reloads_total",
			Help:      "Catalog reload attempts",
		},
		[]string{"status"}, // "success" / "error"
	)

	QueryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flowsearch",
			Name:      "query_cache_total",
			Help:      "Query response cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ResponderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flowsearch",
			Name:      "responder_requests_total",
			Help:      "LLM response phrasing requests",
		},
		[]string{"status"}, // "success" / "error"
	)
)

// RegisterSearchMetrics registers all search metrics with the default
// registry.
func RegisterSearchMetrics() {
	prometheus.MustRegister(
		SearchesTotal,
		SearchDuration,
		CatalogFlows,
		CatalogReloadsTotal,
		QueryCacheTotal,
		ResponderRequestsTotal,
	)
}
