package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	EntitiesCreatedTotal *prometheus.CounterVec
	ReportUploadsTotal   prometheus.Counter
	LoginsTotal          *prometheus.CounterVec
}

func NewCollector(serviceName string) *Collector {
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		EntitiesCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "registry",
			Name:      "entities_created_total",
			Help:      "Entities created by type (patient, doctor, staff, medical_record, bill, test_report).",
		}, []string{"type"}),

		ReportUploadsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "lab",
			Name:      "report_uploads_total",
			Help:      "Accepted PDF test-report uploads.",
		}),

		LoginsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
	}
}

// Default is registered once from main; services and middleware record into it.
var Default *Collector

func Init(serviceName string) {
	if Default == nil {
		Default = NewCollector(serviceName)
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts, latency, and in-flight gauge per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Default == nil {
			c.Next()
			return
		}
		start := time.Now()
		Default.InFlightGauge.Inc()
		c.Next()
		Default.InFlightGauge.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		Default.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		Default.RequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}

// EntityCreated is a nil-safe recording helper for services.
func EntityCreated(entityType string) {
	if Default != nil {
		Default.EntitiesCreatedTotal.WithLabelValues(entityType).Inc()
	}
}

func ReportUploaded() {
	if Default != nil {
		Default.ReportUploadsTotal.Inc()
	}
}

func LoginAttempt(outcome string) {
	if Default != nil {
		Default.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}
