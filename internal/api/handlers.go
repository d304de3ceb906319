// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package api

import (
	"time"

	"github.com/tomtom215/lineup/internal/aggregator"
	"github.com/tomtom215/lineup/internal/cache"
)

// maxBodyBytes bounds a POST /listings body.
const maxBodyBytes = 64 << 10

// CacheStatus reports the health of each result cache tier.
type CacheStatus interface {
	Status() []cache.TierStatus
}

// Handler serves the listing, introspection and health endpoints.
type Handler struct {
	agg       *aggregator.Aggregator
	cache     CacheStatus
	taxonomy  *cache.Cache[TaxonomyView]
	startTime time.Time
}

// NewHandler creates the API handler. status may be nil when no result
// cache is configured. staticTTL is how long taxonomy views are cached.
func NewHandler(agg *aggregator.Aggregator, status CacheStatus, staticTTL time.Duration) *Handler {
	if staticTTL <= 0 {
		staticTTL = cache.DefaultTTLPolicy().Static
	}
	return &Handler{
		agg:       agg,
		cache:     status,
		taxonomy:  cache.New[TaxonomyView](staticTTL),
		startTime: time.Now(),
	}
}
