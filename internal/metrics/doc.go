// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto at
package init and exposed on /metrics by the API router.

# Available Metrics

API Metrics:
  - api_requests_total: Inbound requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Inbound latency (histogram)
  - api_active_requests: In-flight requests (gauge)

Provider Metrics:
  - provider_requests_total: Outbound calls by outcome (counter)
    Labels: provider, outcome (ok, timeout, http, shape, breaker_open, request)
  - provider_request_duration_seconds: Outbound latency (histogram)
  - provider_rate_limit_waits_total: Calls delayed by the outbound limiter
  - filter_resolution_warnings_total: Dropped filter values per provider

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total: Labels name, from_state, to_state

Cache Metrics:
  - cache_hits_total / cache_misses_total: Labels tier (memory, durable)
  - cache_entries, cache_evictions_total: Labels tier
  - cache_io_errors_total: Swallowed durable tier failures
    Labels: tier, operation (get, set, sweep)

Aggregation Metrics:
  - aggregation_duration_seconds: Labels source (cache, live, partial, failed)
  - aggregations_coalesced_total: Calls that joined an in-flight fan-out
  - fallback_items_total: Synthetic items served, labels provider

# Usage

	metrics.RecordProviderRequest("livefeed", "ok", time.Since(start))
	metrics.RecordCacheLookup("memory", true)
*/
package metrics
