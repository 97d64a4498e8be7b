package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Latency of the recommendations HTTP handler
	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookrec_recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookrec_recommend_requests_total",
		Help: "Total recommendation requests served",
	})

	// Remote searches issued against a source, by outcome
	SearchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bookrec_search_total",
		Help: "Remote searches issued, by source and outcome",
	}, []string{"source", "outcome"})

	// Books merged into a catalog from remote searches
	BooksMerged = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookrec_books_merged_total",
		Help: "Books merged into a catalog from remote searches",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendDuration,
		RecommendTotal,
		SearchTotal,
		BooksMerged,
	)
}
