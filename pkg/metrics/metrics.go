package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviecatalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviecatalog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// Auth
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviecatalog_logins_total",
			Help: "Total number of password logins by outcome",
		},
		[]string{"outcome"},
	)

	AuthzDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviecatalog_authz_denied_total",
			Help: "Total number of requests rejected by the route policy",
		},
		[]string{"role", "route", "method"},
	)

	// Catalog
	MoviesWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviecatalog_movies_written_total",
			Help: "Total number of movie create, update and delete operations",
		},
		[]string{"operation"},
	)
)

// RecordHTTPRequest records one served request. route is the registered
// route pattern so that ids do not explode the label cardinality.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordLogin records a password login attempt. outcome is "success" or
// the error code of the failure.
func RecordLogin(outcome string) {
	LoginsTotal.WithLabelValues(outcome).Inc()
}

func RecordAuthzDenied(role, route, method string) {
	AuthzDeniedTotal.WithLabelValues(role, route, method).Inc()
}

func RecordMovieWrite(operation string) {
	MoviesWrittenTotal.WithLabelValues(operation).Inc()
}
