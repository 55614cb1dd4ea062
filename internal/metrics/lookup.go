package metrics

import "github.com/prometheus/client_golang/prometheus"

// Lookup and render Prometheus metrics.
var (
	LookupRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leitor",
			Name:      "lookup_requests_total",
			Help:      "Total number of word lookup requests",
		},
		[]string{"model", "status"}, // status: "success" / "fallback" / "error"
	)

	LookupRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "leitor",
			Name:      "lookup_request_duration_seconds",
			Help:      "Word lookup request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	LookupTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leitor",
			Name:      "lookup_tokens_total",
			Help:      "Total lookup tokens consumed",
		},
		[]string{"model", "type"},
	)

	PageRendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leitor",
			Name:      "page_renders_total",
			Help:      "Total number of page renders",
		},
		[]string{"status"},
	)

	PageRenderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "leitor",
			Name:      "page_render_duration_seconds",
			Help:      "Page render duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)
)

var lookupMetricsRegistered bool

// RegisterLookupMetrics registers Prometheus lookup and render metrics.
// Must be called once from main.
func RegisterLookupMetrics() {
	if lookupMetricsRegistered {
		return
	}
	prometheus.MustRegister(LookupRequestsTotal)
	prometheus.MustRegister(LookupRequestDuration)
	prometheus.MustRegister(LookupTokensTotal)
	prometheus.MustRegister(PageRendersTotal)
	prometheus.MustRegister(PageRenderDuration)
	lookupMetricsRegistered = true
}
