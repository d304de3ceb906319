// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/lineup/internal/cache"
)

// HealthLive handles liveness probes. It succeeds whenever the process can
// serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probes. The service is ready when at least
// one provider is registered and every cache tier is healthy; a degraded
// tier returns 503 with the per-tier status.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var tiers []cache.TierStatus
	if h.cache != nil {
		tiers = h.cache.Status()
	}
	providers := h.agg.Registry().Len()

	ready := providers > 0
	for _, t := range tiers {
		ready = ready && t.Healthy
	}

	data := map[string]interface{}{
		"ready_to_serve": ready,
		"providers":      providers,
		"cache":          tiers,
		"uptime":         time.Since(h.startTime).Seconds(),
	}
	if !ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "not ready", data)
		return
	}
	rw.Success(data)
}
