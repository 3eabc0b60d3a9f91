// Package metrics provides Prometheus metrics for the neighborfit matching service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the neighborfit service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core Business Metrics - rankings and how good they are
	rankingsTotal       prometheus.Counter
	neighborhoodsScored prometheus.Counter
	analysesTotal       prometheus.Counter
	rankingLatency      prometheus.Histogram
	matchCompatibility  prometheus.Histogram
	matchInteractions   *prometheus.CounterVec

	// Business Quality Metrics
	inputErrors     prometheus.Counter
	rankingFailures prometheus.Counter

	// Operational Health Metrics
	workerCount        prometheus.Gauge
	neighborhoodsTotal prometheus.Gauge
	profilesTotal      prometheus.Gauge
	matchSetsTotal     prometheus.Gauge

	// Repository Metrics
	repositoryUpdateLatency prometheus.Histogram
	repositoryQueryLatency  prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// compatibilityBuckets cover the 0..100 percent scale in steps of ten.
var compatibilityBuckets = prometheus.LinearBuckets(10, 10, 10) //nolint:gochecknoglobals // fixed bucket layout

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init replaces the global manager with one built from opts on a fresh
// registry. Call it once at startup, before anything records or serves metrics.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry = registry
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "neighborfit",
		subsystem:        "matching",
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// counterOpts builds options shared by every counter.
func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Business Metrics
	m.rankingsTotal = auto.NewCounter(m.counterOpts(
		"rankings_total",
		"Total number of completed neighborhood rankings",
	))
	m.neighborhoodsScored = auto.NewCounter(m.counterOpts(
		"neighborhoods_scored_total",
		"Total number of neighborhood/profile pairs scored",
	))
	m.analysesTotal = auto.NewCounter(m.counterOpts(
		"analyses_total",
		"Total number of single-neighborhood compatibility analyses",
	))
	m.rankingLatency = auto.NewHistogram(m.histogramOpts(
		"ranking_latency_milliseconds",
		"Histogram of ranking latency in milliseconds (core performance metric)",
		m.histogramBuckets,
	))
	m.matchCompatibility = auto.NewHistogram(m.histogramOpts(
		"match_compatibility_percent",
		"Distribution of compatibility percentages returned to users",
		compatibilityBuckets,
	))
	m.matchInteractions = auto.NewCounterVec(
		m.counterOpts("match_interactions_total", "Total number of user interactions with matches"),
		[]string{"action"},
	)

	// Business Quality Metrics
	m.inputErrors = auto.NewCounter(m.counterOpts(
		"input_errors_total",
		"Total number of scoring calls rejected for missing inputs",
	))
	m.rankingFailures = auto.NewCounter(m.counterOpts(
		"ranking_failures_total",
		"Total number of rankings that failed or were cancelled",
	))

	// Operational Health Metrics
	m.workerCount = auto.NewGauge(m.gaugeOpts(
		"worker_count",
		"Number of goroutines used to score one ranking",
	))
	m.neighborhoodsTotal = auto.NewGauge(m.gaugeOpts(
		"neighborhoods_total",
		"Number of neighborhoods available for matching",
	))
	m.profilesTotal = auto.NewGauge(m.gaugeOpts(
		"profiles_total",
		"Number of stored preference profiles",
	))
	m.matchSetsTotal = auto.NewGauge(m.gaugeOpts(
		"match_sets_total",
		"Number of users with a stored match set",
	))

	// Repository Metrics
	m.repositoryUpdateLatency = auto.NewHistogram(m.histogramOpts(
		"repository_update_latency_milliseconds",
		"Repository update operation latency in milliseconds",
		m.histogramBuckets,
	))
	m.repositoryQueryLatency = auto.NewHistogram(m.histogramOpts(
		"repository_query_latency_milliseconds",
		"Repository query operation latency in milliseconds",
		m.histogramBuckets,
	))

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	// Enhanced Error Metrics
	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes",
		"System memory usage in bytes",
	))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count",
		"Number of goroutines",
	))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordRanking records a completed ranking with its candidate count and latency.
func RecordRanking(candidates int, latencyMs float64) {
	globalManager.rankingsTotal.Inc()
	globalManager.neighborhoodsScored.Add(float64(candidates))
	globalManager.rankingLatency.Observe(latencyMs)
}

// RecordAnalysis increments the analyses counter.
func RecordAnalysis() {
	globalManager.analysesTotal.Inc()
	globalManager.neighborhoodsScored.Inc()
}

// RecordMatchCompatibility observes one returned compatibility percentage.
func RecordMatchCompatibility(percent int) {
	globalManager.matchCompatibility.Observe(float64(percent))
}

// RecordMatchInteraction counts a user interaction such as "saved".
func RecordMatchInteraction(action string) {
	globalManager.matchInteractions.WithLabelValues(action).Inc()
}

// RecordInputError increments the scoring input errors counter.
func RecordInputError() {
	globalManager.inputErrors.Inc()
}

// RecordRankingFailure increments the ranking failures counter.
func RecordRankingFailure() {
	globalManager.rankingFailures.Inc()
}

// UpdateWorkerCount sets the ranking worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateNeighborhoodsTotal sets the number of loaded neighborhoods.
func UpdateNeighborhoodsTotal(count int) {
	globalManager.neighborhoodsTotal.Set(float64(count))
}

// UpdateProfilesTotal sets the number of stored preference profiles.
func UpdateProfilesTotal(count int) {
	globalManager.profilesTotal.Set(float64(count))
}

// UpdateMatchSetsTotal sets the number of users with stored matches.
func UpdateMatchSetsTotal(count int) {
	globalManager.matchSetsTotal.Set(float64(count))
}

// Repository Metrics Functions.

// RecordRepositoryUpdateLatency records repository write latency in milliseconds.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	globalManager.repositoryUpdateLatency.Observe(latencyMs)
}

// RecordRepositoryQueryLatency records repository read latency in milliseconds.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.repositoryQueryLatency.Observe(latencyMs)
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

// Enhanced Error Metrics Functions.

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
