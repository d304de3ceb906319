// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	requestIDKey     contextKey = "request_id"
)

// GenerateCorrelationID creates a short correlation ID (first 8 characters
// of a UUID).
func GenerateCorrelationID() string {
	return uuid.New().String()[:8]
}

// GenerateRequestID creates a full UUID request ID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithCorrelationID returns a new context with the given correlation ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// ContextWithNewCorrelationID returns a context with a newly generated correlation ID.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext retrieves the correlation ID from context.
func CorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithRequestID returns a new context with the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext retrieves the request ID from context.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// DetachedContext returns a context that carries the request and
// correlation IDs of ctx but none of its deadline or cancellation. Work
// that must outlive the caller (in-flight provider fetches) uses it so its
// log lines still join the originating request.
func DetachedContext(ctx context.Context) context.Context {
	out := context.Background()
	if id := RequestIDFromContext(ctx); id != "" {
		out = ContextWithRequestID(out, id)
	}
	if id := CorrelationIDFromContext(ctx); id != "" {
		out = ContextWithCorrelationID(out, id)
	}
	return out
}

// Ctx returns a logger with the context's correlation_id and request_id
// fields added.
//
//	logging.Ctx(ctx).Info().Msg("Processing request")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := CtxWith(ctx).Logger()
	return &l
}

// CtxWith returns a logger context builder with the context's IDs
// pre-populated.
//
//	l := logging.CtxWith(ctx).Str("provider", id).Logger()
func CtxWith(ctx context.Context) zerolog.Context {
	logCtx := With()
	if id := CorrelationIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("correlation_id", id)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	return logCtx
}

// WithComponent creates a child logger with a component field.
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
