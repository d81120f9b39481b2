package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendations HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Recommendations served, by producing strategy
	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total recommendation requests served, by strategy",
	}, []string{"strategy"})

	SimilarProductsRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "similar_products_requests_total",
		Help: "Total similar-products requests served",
	})

	PipelineDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_run_duration_seconds",
		Help:    "Duration of batch pipeline runs",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	}, []string{"pipeline"})

	PipelineRowsWritten = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pipeline_rows_written",
		Help: "Rows written by the most recent pipeline run",
	}, []string{"pipeline", "scope"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		SimilarProductsRequests,
		PipelineDuration,
		PipelineRowsWritten,
	)
}
