// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/lineup/internal/config"
)

// ChiMiddlewareConfig holds configuration for Chi middleware factories.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	CORSExposedHeaders []string
	CORSMaxAge         int // seconds

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// DefaultChiMiddlewareConfig returns a restrictive default configuration.
// CORS origins default to empty and must be configured explicitly.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		CORSExposedHeaders: []string{"X-Request-ID"},
		CORSMaxAge:         86400,

		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
}

// ChiMiddlewareConfigFrom builds middleware settings from the security section.
func ChiMiddlewareConfigFrom(sec config.SecurityConfig) *ChiMiddlewareConfig {
	c := DefaultChiMiddlewareConfig()
	c.CORSAllowedOrigins = sec.CORSOrigins
	if sec.RateLimitReqs > 0 {
		c.RateLimitRequests = sec.RateLimitReqs
	}
	if sec.RateLimitWindow > 0 {
		c.RateLimitWindow = sec.RateLimitWindow
	}
	c.RateLimitDisabled = sec.RateLimitDisabled
	return c
}

// ChiMiddleware provides Chi-compatible middleware factories.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates a new Chi middleware factory with the given configuration.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	if config == nil {
		config = DefaultChiMiddlewareConfig()
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: config.CORSAllowedOrigins,
		AllowedMethods: config.CORSAllowedMethods,
		AllowedHeaders: config.CORSAllowedHeaders,
		ExposedHeaders: config.CORSExposedHeaders,
		MaxAge:         config.CORSMaxAge,
	})

	return &ChiMiddleware{
		config: config,
		cors:   corsHandler,
	}
}

// CORS returns the go-chi/cors handler.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimitConfig is a request budget per client IP.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// RateLimitHealth is permissive rate limiting for health endpoints (1000/min).
var RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}

// RateLimit returns the configured per-IP limiter for the listing API.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitConfig{
		Requests: m.config.RateLimitRequests,
		Window:   m.config.RateLimitWindow,
	})
}

// RateLimitHealth returns a rate limiter for health endpoints.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitHealth)
}

// RateLimitCustom returns a per-IP limiter with the given budget. Rejected
// requests get the standard error envelope.
func (m *ChiMiddleware) RateLimitCustom(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		cfg.Requests,
		cfg.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			NewResponseWriter(w, r).Error(http.StatusTooManyRequests, ErrCodeTooManyRequests, "Rate limit exceeded")
		}),
	)
}

// APISecurityHeaders adds headers that keep browsers from sniffing or
// framing API responses. HSTS is added when the request arrived over TLS.
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// X-Forwarded-Proto covers TLS-terminating proxies
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
