package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the club site backend

var (
	// Standings source fetch metrics
	FetchCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubsite_standings_fetch_total",
			Help: "Total number of standings page fetches",
		},
		[]string{"status"},
	)

	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clubsite_standings_fetch_duration_seconds",
			Help:    "Duration of standings page fetches in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// Refresh pipeline metrics
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubsite_standings_refresh_total",
			Help: "Total number of standings refresh runs",
		},
		[]string{"trigger", "result"},
	)

	RefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clubsite_standings_refresh_duration_seconds",
			Help:    "Duration of standings refresh runs in seconds",
			Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"trigger"},
	)

	RowsParsed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clubsite_standings_rows_parsed",
			Help: "Number of rows accepted by the last parse",
		},
	)

	RowsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubsite_standings_rows_skipped_total",
			Help: "Total number of table rows skipped while parsing",
		},
		[]string{"reason"},
	)

	LastSuccessfulRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clubsite_standings_last_successful_refresh_timestamp",
			Help: "Timestamp of last successful standings refresh",
		},
	)

	// HTTP API metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubsite_http_requests_total",
			Help: "Total number of HTTP API requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clubsite_http_request_duration_seconds",
			Help:    "Duration of HTTP API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Database metrics
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubsite_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "table", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clubsite_db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clubsite_db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clubsite_db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubsite_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubsite_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clubsite_cache_operation_duration_seconds",
			Help:    "Duration of cache operations in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubsite_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clubsite_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)
)

// RecordFetch records a standings page fetch
func RecordFetch(status string, duration time.Duration) {
	FetchCallsTotal.WithLabelValues(status).Inc()
	FetchDuration.Observe(duration.Seconds())
}

// RecordRefresh records a refresh run.
// A "success" result also moves the last successful refresh timestamp.
func RecordRefresh(trigger, result string, duration time.Duration) {
	RefreshTotal.WithLabelValues(trigger, result).Inc()
	RefreshDuration.WithLabelValues(trigger).Observe(duration.Seconds())

	if result == "success" {
		LastSuccessfulRefresh.SetToCurrentTime()
	}
}

// RecordParse records the outcome of a table parse
func RecordParse(accepted int, skippedByReason map[string]int) {
	RowsParsed.Set(float64(accepted))
	for reason, n := range skippedByReason {
		RowsSkippedTotal.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordHTTPRequest records an API request
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table, status string, duration time.Duration) {
	DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordCacheOperation records a cache operation duration
func RecordCacheOperation(operation string, duration time.Duration) {
	CacheOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// UpdateDBConnectionStats updates database connection pool statistics
func UpdateDBConnectionStats(active, idle int32) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// UpdateUptime sets the uptime gauge from the process start time
func UpdateUptime(started time.Time) {
	SystemUptime.Set(time.Since(started).Seconds())
}
