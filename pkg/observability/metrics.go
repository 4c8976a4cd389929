package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formflow",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "formflow",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	formTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formflow",
		Name:      "form_transitions_total",
		Help:      "Successful form lifecycle operations by action.",
	}, []string{"action"})

	formSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "formflow",
		Name:      "form_submissions_total",
		Help:      "Submission history entries appended.",
	})

	notificationsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formflow",
		Name:      "notifications_dispatched_total",
		Help:      "Notification dispatch attempts by category and outcome.",
	}, []string{"category", "outcome"})
)

// RecordTransition counts one committed lifecycle operation (create, submit, reopen...).
func RecordTransition(action string) {
	formTransitions.WithLabelValues(action).Inc()
}

func RecordSubmission() {
	formSubmissions.Inc()
}

// RecordNotification counts a dispatch; outcome is "ok" or "error".
func RecordNotification(category, outcome string) {
	notificationsDispatched.WithLabelValues(category, outcome).Inc()
}

// GinMiddleware records request counts and latency per matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RegisterMetricsEndpoint exposes Prometheus metrics on /metrics.
func RegisterMetricsEndpoint(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
