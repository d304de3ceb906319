// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/lineup/internal/models"
)

// ErrCacheIO wraps every durable tier failure. Tiered never returns it from
// Get or Set; it is logged and counted there. Sweep and Close do return it.
var ErrCacheIO = errors.New("cache io error")

// ResultCache is what the aggregator needs from the listing cache.
type ResultCache interface {
	// Get returns a copy of the stored result.
	Get(ctx context.Context, key string) (models.Result, bool)

	// Set stores value for ttl. A non-positive ttl stores nothing.
	Set(ctx context.Context, key string, value models.Result, ttl time.Duration)
}

// DurableStore is the optional second tier behind the in-memory cache.
//
// Implementations:
//   - BadgerStore: BadgerDB v4 with native key TTLs
//   - NopStore: no durable tier
type DurableStore interface {
	// Name is the tier label used in metrics and health output.
	Name() string

	// Get returns the stored entry. A missing or expired key is
	// (zero, false, nil).
	Get(ctx context.Context, key string) (models.CacheEntry, bool, error)

	// Set replaces the entry stored under entry.Key.
	Set(ctx context.Context, entry models.CacheEntry) error

	// Sweep reclaims space held by expired entries.
	Sweep(ctx context.Context) error

	// Healthy reports whether the store can serve requests.
	Healthy() bool

	Close() error
}

// TierStatus describes one cache tier for readiness checks.
type TierStatus struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Entries int    `json:"entries,omitempty"`

	// Lookup counters; only the memory tier tracks them.
	Hits    int64   `json:"hits,omitempty"`
	Misses  int64   `json:"misses,omitempty"`
	HitRate float64 `json:"hit_rate_percent,omitempty"`
}

// Verify interface implementations at compile time
var (
	_ ResultCache  = (*Tiered)(nil)
	_ DurableStore = (*BadgerStore)(nil)
	_ DurableStore = NopStore{}
)
