// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Inbound API latency and throughput
// - Outbound provider requests and circuit breakers
// - Cache tiers
// - Aggregation outcomes and fallback usage

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Provider Metrics
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total number of outbound provider requests by outcome",
		},
		[]string{"provider", "outcome"}, // outcome: "ok", "timeout", "http", "shape", "breaker_open", "request"
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Outbound provider request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 15},
		},
		[]string{"provider"},
	)

	ProviderRateLimitWaits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_rate_limit_waits_total",
			Help: "Total number of outbound requests delayed by the provider rate limiter",
		},
		[]string{"provider"},
	)

	FilterWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filter_resolution_warnings_total",
			Help: "Total number of filter values dropped because no provider term matched",
		},
		[]string{"provider"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"tier"}, // "memory", "durable"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"tier"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"tier"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"tier"},
	)

	CacheIOErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_io_errors_total",
			Help: "Total number of swallowed durable cache errors",
		},
		[]string{"tier", "operation"}, // operation: "get", "set", "sweep"
	)

	// Aggregation Metrics
	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aggregation_duration_seconds",
			Help:    "End-to-end listing aggregation duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source"}, // "cache", "live", "partial", "failed"
	)

	AggregationsCoalesced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aggregations_coalesced_total",
			Help: "Total number of aggregation calls that shared an in-flight fan-out",
		},
	)

	FallbackItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_items_total",
			Help: "Total number of synthetic items served in place of provider data",
		},
		[]string{"provider"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordProviderRequest records one outbound provider call. outcome is "ok"
// or the diagnostic error kind of the failure.
func RecordProviderRequest(provider, outcome string, duration time.Duration) {
	ProviderRequestsTotal.WithLabelValues(provider, outcome).Inc()
	ProviderRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordCacheLookup records a hit or miss on a cache tier.
func RecordCacheLookup(tier string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(tier).Inc()
		return
	}
	CacheMisses.WithLabelValues(tier).Inc()
}

// RecordCacheIOError records a swallowed cache failure.
func RecordCacheIOError(tier, operation string) {
	CacheIOErrors.WithLabelValues(tier, operation).Inc()
}

// RecordFallback records synthetic items served for a provider.
func RecordFallback(provider string, items int) {
	FallbackItems.WithLabelValues(provider).Add(float64(items))
}

// RecordAggregation records an aggregation call by result source.
func RecordAggregation(source string, duration time.Duration) {
	AggregationDuration.WithLabelValues(source).Observe(duration.Seconds())
}
