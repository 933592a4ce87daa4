package metrics

import "github.com/prometheus/client_golang/prometheus"

// Marketplace API client metrics.
var (
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portage",
			Name:      "api_requests_total",
			Help:      "Total number of marketplace API requests",
		},
		[]string{"endpoint", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portage",
			Name:      "api_request_duration_seconds",
			Help:      "Marketplace API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	SearchFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portage",
			Name:      "search_fetches_total",
			Help:      "Product fetches issued after debounce settling",
		},
		[]string{"status"},
	)
)

var clientMetricsRegistered bool

// RegisterClientMetrics registers Prometheus client metrics. Must be called once from main.
func RegisterClientMetrics() {
	if clientMetricsRegistered {
		return
	}
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(SearchFetchesTotal)
	clientMetricsRegistered = true
}
