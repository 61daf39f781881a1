package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Auth counters
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orphanage_login_total",
			Help: "Total number of login attempts",
		},
	)

	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orphanage_register_total",
			Help: "Total number of user registrations",
		},
	)

	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orphanage_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // "invalid_credentials", "token_expired", "invalid_token", etc.
	)

	// Domain counters
	OrphanageCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orphanage_profiles_created_total",
			Help: "Total number of orphanage profiles created",
		},
	)

	DonationCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orphanage_donations_total",
			Help: "Total number of donations recorded",
		},
	)

	DonationAmountCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orphanage_donation_amount_total",
			Help: "Total donated amount recorded",
		},
	)

	AccessDeniedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orphanage_access_denied_total",
			Help: "Total number of authorization rejections",
		},
		[]string{"resource"},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orphanage_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orphanage_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orphanage_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orphanage_info",
			Help: "Information about the orphanage service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(OrphanageCreatedCounter)
	prometheus.MustRegister(DonationCounter)
	prometheus.MustRegister(DonationAmountCounter)
	prometheus.MustRegister(AccessDeniedCounter)
	prometheus.MustRegister(HTTPRequestCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// RecordAuthError increments the auth error counter for the given failure type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordAccessDenied increments the authorization rejection counter
func RecordAccessDenied(resource string) {
	AccessDeniedCounter.With(prometheus.Labels{"resource": resource}).Inc()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration and count
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": c.Path(),
				"method":   c.Request().Method,
				"status":   status,
			}).Inc()

			RequestDuration.With(prometheus.Labels{
				"endpoint": c.Path(),
				"method":   c.Request().Method,
				"status":   status,
			}).Observe(duration)

			return err
		}
	}
}
