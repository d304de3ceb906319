// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/lineup/internal/middleware"
)

// Router owns the HTTP route table.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. mwConfig may be nil for defaults.
func NewRouter(handler *Handler, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// Setup builds the chi handler tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Applied to every route in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/listings", router.handler.Listings)
		r.Post("/listings", router.handler.ListingsPost)
		r.Get("/providers", router.handler.Providers)
		r.Get("/taxonomy/{provider}", router.handler.Taxonomy)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
