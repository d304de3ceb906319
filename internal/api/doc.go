// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

/*
Package api exposes the aggregator over HTTP using the chi router.

# Endpoints

	GET  /api/v1/listings             canonical query as URL parameters
	POST /api/v1/listings             canonical query as a JSON body
	GET  /api/v1/providers            registered providers and breaker state
	GET  /api/v1/taxonomy/{provider}  a provider's filter vocabulary
	GET  /api/v1/health/live          liveness probe
	GET  /api/v1/health/ready         readiness probe with cache tier status
	GET  /metrics                     Prometheus exposition

Listing parameters:

	/api/v1/listings?kind=models&provider=livefeed,camstream
	    &category=girls&tags=hd,new&f.ethnicity=asian,latina
	    &limit=24&offset=0&sort=popular

# Response Format

Every response uses one envelope:

	{
	  "success": true,
	  "data": {"items": [...], "pagination": {...}, "diagnostics": {...}},
	  "error": {"code": "...", "message": "..."},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 12}
	}

Invalid queries return 400 VALIDATION_ERROR and unknown providers 400
UNKNOWN_PROVIDER. When every provider failed the status is still 200:
success is false, error is ALL_PROVIDERS_FAILED and data carries the
fallback items.

# Middleware

Request ID, chi RealIP and Recoverer, and go-chi/cors apply globally.
The /api/v1 routes add per-IP go-chi/httprate limits, security headers and
Prometheus request metrics.
*/
package api
