// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tomtom215/lineup/internal/logging"
)

// RequestIDHeader is read from upstream proxies and echoed on every response.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds an ID accepted from a client.
const maxRequestIDLen = 128

// RequestID assigns each request an ID and stores it, together with a fresh
// correlation ID, in the logging context so every log line and detached
// provider fetch for the request carries it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		ctx = logging.ContextWithNewCorrelationID(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(r *http.Request) string {
	return logging.RequestIDFromContext(r.Context())
}
