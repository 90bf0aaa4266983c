package delivery

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
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

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	reportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total number of reports generated",
		},
		[]string{"report"},
	)

	queriesExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queries_executed_total",
			Help: "Total number of SQL queries executed",
		},
		[]string{"source", "status"},
	)

	stocktakeScans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocktake_scans_total",
			Help: "Total number of stocktake scans and corrections",
		},
		[]string{"action", "status"},
	)
)

// Metrics records request counts, latencies and in-flight connections per
// route. Unmatched requests are labeled by raw path so 404s stay visible.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

func RecordReport(report string) {
	reportsGenerated.WithLabelValues(report).Inc()
}

func RecordQuery(source, status string) {
	queriesExecuted.WithLabelValues(source, status).Inc()
}

func RecordScan(action, status string) {
	stocktakeScans.WithLabelValues(action, status).Inc()
}
