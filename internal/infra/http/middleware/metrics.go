package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	valuationsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "valuations_started_total",
			Help: "Total number of stage-1 valuation intakes",
		},
	)

	valuationsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "valuations_completed_total",
			Help: "Total number of stage-2 valuation completions",
		},
	)

	leadsCaptured = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Total number of contact-form leads captured",
		},
	)

	reportDispatchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_dispatch_errors_total",
			Help: "Total number of report dispatch failures",
		},
		[]string{"stage"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordValuationStarted()   { valuationsStarted.Inc() }
func RecordValuationCompleted() { valuationsCompleted.Inc() }
func RecordLeadCaptured()       { leadsCaptured.Inc() }

func RecordReportDispatchError(stage string) {
	reportDispatchErrors.WithLabelValues(stage).Inc()
}
