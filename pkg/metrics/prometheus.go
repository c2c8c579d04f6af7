// Package metrics provides Prometheus metrics for the matchscore service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Query latencies are sub-millisecond, so they are observed in microseconds.
var queryLatencyBuckets = []float64{0.25, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 1000} //nolint:gochecknoglobals // fixed bucket layout

// Manager manages all Prometheus metrics for the matchscore service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Generation Metrics
	timelinesGenerated prometheus.Counter
	stampsGenerated    prometheus.Counter
	goalsGenerated     *prometheus.CounterVec
	generationDuration prometheus.Histogram
	generationErrors   prometheus.Counter
	timelineStamps     prometheus.Gauge
	timelineLastOffset prometheus.Gauge

	// Query Metrics
	queriesTotal *prometheus.CounterVec
	queryLatency prometheus.Histogram
	batchQueries prometheus.Counter
	batchSize    prometheus.Histogram
	batchWorkers prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchscore",
		subsystem:        "timeline",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval returns how often periodic gauges should be refreshed.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	// Generation Metrics
	m.timelinesGenerated = auto.NewCounter(m.counterOpts("timelines_generated_total",
		"Total number of timelines generated"))
	m.stampsGenerated = auto.NewCounter(m.counterOpts("stamps_generated_total",
		"Total number of stamps generated across all timelines"))
	m.goalsGenerated = auto.NewCounterVec(m.counterOpts("goals_generated_total",
		"Total number of goals produced by the random walk, by side"), []string{"side"})
	m.generationDuration = auto.NewHistogram(m.histogramOpts("generation_duration_milliseconds",
		"Histogram of timeline generation time in milliseconds", m.histogramBuckets))
	m.generationErrors = auto.NewCounter(m.counterOpts("generation_errors_total",
		"Total number of rejected generation requests"))
	m.timelineStamps = auto.NewGauge(m.gaugeOpts("stamps",
		"Number of stamps in the timeline being served"))
	m.timelineLastOffset = auto.NewGauge(m.gaugeOpts("last_offset",
		"Last recorded offset of the timeline being served"))

	// Query Metrics
	m.queriesTotal = auto.NewCounterVec(m.counterOpts("queries_total",
		"Total number of score queries by resolution"), []string{"resolution"})
	m.queryLatency = auto.NewHistogram(m.histogramOpts("query_latency_microseconds",
		"Histogram of single score query latency in microseconds", queryLatencyBuckets))
	m.batchQueries = auto.NewCounter(m.counterOpts("batch_queries_total",
		"Total number of batch score queries"))
	m.batchSize = auto.NewHistogram(m.histogramOpts("batch_size",
		"Number of offsets per batch query", prometheus.ExponentialBuckets(1, 4, 8)))
	m.batchWorkers = auto.NewGauge(m.gaugeOpts("batch_workers",
		"Configured number of batch query workers"))

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	// Error Metrics
	m.errorRateByComponent = auto.NewCounterVec(m.counterOpts("errors_by_component_total",
		"Total number of errors by component"), []string{"component", "error_type"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total",
		"Total number of errors by type and severity"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Total number of errors by HTTP endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts("error_latency_milliseconds",
		"Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"})

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes",
		"System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count",
		"Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds", []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// Generation Metrics Functions.

// RecordTimelineGenerated records a successfully generated timeline.
func RecordTimelineGenerated(stamps, homeGoals, awayGoals int, durationMs float64) {
	globalManager.timelinesGenerated.Inc()
	globalManager.stampsGenerated.Add(float64(stamps))
	globalManager.goalsGenerated.WithLabelValues("home").Add(float64(homeGoals))
	globalManager.goalsGenerated.WithLabelValues("away").Add(float64(awayGoals))
	globalManager.generationDuration.Observe(durationMs)
}

// RecordGenerationError increments the rejected generation counter.
func RecordGenerationError() {
	globalManager.generationErrors.Inc()
}

// UpdateTimelineShape sets the size gauges of the timeline being served.
func UpdateTimelineShape(stamps, lastOffset int) {
	globalManager.timelineStamps.Set(float64(stamps))
	globalManager.timelineLastOffset.Set(float64(lastOffset))
}

// Query Metrics Functions.

// RecordQuery records one resolved score query.
func RecordQuery(resolution string, latencyMicros float64) {
	globalManager.queriesTotal.WithLabelValues(resolution).Inc()
	globalManager.queryLatency.Observe(latencyMicros)
}

// RecordBatchQuery records one batch query of the given size.
func RecordBatchQuery(size int) {
	globalManager.batchQueries.Inc()
	globalManager.batchSize.Observe(float64(size))
}

// UpdateBatchWorkers sets the configured batch worker count.
func UpdateBatchWorkers(count int) {
	globalManager.batchWorkers.Set(float64(count))
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Global returns the process-wide manager.
func Global() *Manager {
	return globalManager
}
