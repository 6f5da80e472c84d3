package telemetry

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP metrics
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests received, partitioned by method, route and status class.",
		},
		[]string{"method", "route", "status_class"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, partitioned by method, route and status class.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5},
		},
		[]string{"method", "route", "status_class"},
	)
)

// PIX metrics
var (
	pixGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pix_generated_total",
			Help: "PIX codes handed to customers, partitioned by provider.",
		},
		[]string{"provider"}, // efipay | static_fallback | static
	)

	pixGenerateFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pix_generate_failed_total",
			Help: "PIX requests that returned an error to the caller, partitioned by reason.",
		},
		[]string{"reason"}, // validation | not_found | invalid_amount | db
	)

	pixProviderFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pix_provider_failures_total",
			Help: "Payment provider calls that failed and triggered the static fallback, partitioned by stage.",
		},
		[]string{"stage"}, // auth | charge | qrcode | verify
	)

	pixProviderDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pix_provider_duration_seconds",
			Help:    "Time spent requesting a dynamic charge from the provider.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// Event metrics
var (
	eventsPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_events_published_total",
			Help: "Payment events written to Kafka.",
		},
	)

	eventsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_events_failed_total",
			Help: "Payment events that could not be published, partitioned by reason.",
		},
		[]string{"reason"}, // schema | kafka | queue_full
	)

	workerQueueCurrent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_current",
			Help: "Current number of items in the in-process event queue (approximate).",
		},
	)
)

// Store metrics
var (
	storeStatusChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_status_checks_total",
			Help: "Store status evaluations, partitioned by outcome.",
		},
		[]string{"open"}, // "true" | "false"
	)

	staffLoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staff_logins_total",
			Help: "Staff login attempts, partitioned by result.",
		},
		[]string{"result"}, // ok | invalid | error
	)
)

// InitMetrics called on startup
func InitMetrics() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		pixGeneratedTotal,
		pixGenerateFailedTotal,
		pixProviderFailuresTotal,
		pixProviderDurationSeconds,
		eventsPublishedTotal,
		eventsFailedTotal,
		workerQueueCurrent,
		storeStatusChecksTotal,
		staffLoginsTotal,
	)
}

// PrometheusMiddleware measures one HTTP request: increments counter and observes latency.
// It uses gin.Context.FullPath() to record the *route template* (e.g., /v1/orders/:id/pix).
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := c.Writer.Status()
		statusClass := fmt.Sprintf("%dxx", status/100)

		httpRequestsTotal.WithLabelValues(method, route, statusClass).Inc()
		httpRequestDurationSeconds.WithLabelValues(method, route, statusClass).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler exposes /metrics in Prometheus text exposition format.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
