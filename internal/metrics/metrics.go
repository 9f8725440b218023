// Package metrics provides Prometheus metrics collection for the bundle service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// BundleViewDerivationsTotal counts view derivations by source (computed or cached).
	BundleViewDerivationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundle_view_derivations_total",
			Help: "Total number of bundle view derivations",
		},
		[]string{"source"},
	)

	// BundleViewDerivationDuration tracks how long a full derivation pass takes.
	BundleViewDerivationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bundle_view_derivation_duration_seconds",
			Help:    "Bundle view derivation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	// BundleUnresolvedItems is the number of requirements left unresolved by the last derivation.
	BundleUnresolvedItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bundle_unresolved_items",
			Help: "Requirements no catalog product could satisfy in the last derivation",
		},
	)

	// BundleOperationsTotal counts admin bundle writes by operation and status.
	BundleOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundle_operations_total",
			Help: "Total number of bundle create, update and delete operations",
		},
		[]string{"operation", "status"},
	)

	// CatalogFetchesTotal counts upstream product catalog fetches.
	CatalogFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetches_total",
			Help: "Total number of product catalog fetches",
		},
		[]string{"status"},
	)

	// CatalogFetchDuration tracks upstream catalog latency.
	CatalogFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_fetch_duration_seconds",
			Help:    "Product catalog fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
		[]string{"cache"},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
		[]string{"cache"},
	)

	// CircuitBreakerState tracks breaker state: 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"breaker"},
	)
)

// UnmatchedRoute labels requests that hit no registered route, keeping the
// path label bounded.
const UnmatchedRoute = "unmatched"

// PrometheusMiddleware records latency and a request count per route template.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		labels := prometheus.Labels{
			"method":      c.Request.Method,
			"path":        route,
			"status_code": strconv.Itoa(c.Writer.Status()),
		}
		HTTPRequestDuration.With(labels).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.With(labels).Inc()
	}
}

// RecordViewDerivation records a derivation pass. Cached results skip the histogram.
func RecordViewDerivation(duration time.Duration, source string, unresolved int) {
	BundleViewDerivationsTotal.WithLabelValues(source).Inc()
	if source != "cached" {
		BundleViewDerivationDuration.Observe(duration.Seconds())
	}
	BundleUnresolvedItems.Set(float64(unresolved))
}

// RecordBundleOperation records an admin bundle write.
func RecordBundleOperation(operation, status string) {
	BundleOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordCatalogFetch records an upstream catalog fetch.
func RecordCatalogFetch(duration time.Duration, status string) {
	CatalogFetchDuration.Observe(duration.Seconds())
	CatalogFetchesTotal.WithLabelValues(status).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(cache string, size, capacity int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
	CacheCapacity.WithLabelValues(cache).Set(float64(capacity))
}

// SetCircuitBreakerState records the current state of a named breaker.
func SetCircuitBreakerState(breaker string, state int) {
	CircuitBreakerState.WithLabelValues(breaker).Set(float64(state))
}
