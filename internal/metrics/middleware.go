package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	serverRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portage",
			Name:      "http_request_duration_seconds",
			Help:      "Stub server request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route", "status"},
	)

	serverRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portage",
			Name:      "http_requests_total",
			Help:      "Total number of stub server requests",
		},
		[]string{"method", "route", "status"},
	)
)

var serverMetricsRegistered bool

// RegisterServerMetrics registers HTTP server metrics. Must be called once from main.
func RegisterServerMetrics() {
	if serverMetricsRegistered {
		return
	}
	prometheus.MustRegister(serverRequestDuration)
	prometheus.MustRegister(serverRequestsTotal)
	serverMetricsRegistered = true
}

// Middleware records request duration and count per chi route pattern.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			status := strconv.Itoa(ww.status)
			serverRequestDuration.WithLabelValues(r.Method, routeLabel(r), status).Observe(time.Since(start).Seconds())
			serverRequestsTotal.WithLabelValues(r.Method, routeLabel(r), status).Inc()
		})
	}
}

// routeLabel uses the chi route pattern so path parameters do not blow up
// label cardinality.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b) //nolint:wrapcheck // delegating to underlying ResponseWriter
}
