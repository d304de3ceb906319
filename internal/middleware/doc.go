// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

/*
Package middleware provides the HTTP middleware the API router installs
alongside chi's own.

  - RequestID: accepts or generates X-Request-ID and seeds the logging
    context with request and correlation IDs
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests, labelled by chi route pattern

Both have the func(http.Handler) http.Handler shape expected by chi.Router.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
