// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/lineup/internal/config"
	"github.com/tomtom215/lineup/internal/logging"
	"github.com/tomtom215/lineup/internal/metrics"
	"github.com/tomtom215/lineup/internal/models"
)

const tierMemory = "memory"

// Tiered is the listing cache: an in-memory tier in front of an optional
// durable tier. Durable failures degrade to a miss and never reach callers.
type Tiered struct {
	memory  *Cache[models.Result]
	durable DurableStore
	now     func() time.Time
}

// NewTiered creates the listing cache. A nil durable store means memory only.
func NewTiered(durable DurableStore) *Tiered {
	if durable == nil {
		durable = NopStore{}
	}
	return &Tiered{
		memory:  New[models.Result](time.Minute),
		durable: durable,
		now:     time.Now,
	}
}

// Open builds the listing cache from configuration, opening the BadgerDB
// tier when it is enabled.
func Open(cfg config.CacheConfig) (*Tiered, error) {
	if !cfg.DurableEnabled {
		return NewTiered(nil), nil
	}
	store, err := OpenBadger(BadgerConfig{Path: cfg.DurablePath, InMemory: cfg.DurableInMemory})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheIO, err)
	}
	return NewTiered(store), nil
}

// Get implements ResultCache. A durable hit is promoted into memory for the
// remainder of its TTL.
func (t *Tiered) Get(ctx context.Context, key string) (models.Result, bool) {
	if v, ok := t.memory.Get(key); ok {
		metrics.RecordCacheLookup(tierMemory, true)
		return v.Clone(), true
	}
	metrics.RecordCacheLookup(tierMemory, false)

	if _, nop := t.durable.(NopStore); nop {
		return models.Result{}, false
	}

	tier := t.durable.Name()
	entry, ok, err := t.durable.Get(ctx, key)
	if err != nil {
		t.ioError(ctx, "get", key, err)
		return models.Result{}, false
	}
	if !ok || entry.Expired(t.now()) {
		metrics.RecordCacheLookup(tier, false)
		return models.Result{}, false
	}
	metrics.RecordCacheLookup(tier, true)

	t.memory.SetUntil(key, entry.Value, entry.ExpiresAt)
	metrics.CacheSize.WithLabelValues(tierMemory).Set(float64(t.memory.Len()))
	return entry.Value.Clone(), true
}

// Set implements ResultCache. Both tiers receive the same absolute expiry.
func (t *Tiered) Set(ctx context.Context, key string, value models.Result, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	expiresAt := t.now().Add(ttl)
	stored := value.Clone()

	t.memory.SetUntil(key, stored, expiresAt)
	metrics.CacheSize.WithLabelValues(tierMemory).Set(float64(t.memory.Len()))

	entry := models.CacheEntry{Key: key, Value: stored, ExpiresAt: expiresAt}
	if err := t.durable.Set(ctx, entry); err != nil {
		t.ioError(ctx, "set", key, err)
	}
}

// InvalidateExpired drops expired memory entries and sweeps the durable
// tier. Only durable failures are returned, wrapped in ErrCacheIO.
func (t *Tiered) InvalidateExpired(ctx context.Context) error {
	removed := t.memory.Sweep()
	metrics.CacheEvictions.WithLabelValues(tierMemory).Add(float64(removed))
	metrics.CacheSize.WithLabelValues(tierMemory).Set(float64(t.memory.Len()))

	if err := t.durable.Sweep(ctx); err != nil {
		metrics.RecordCacheIOError(t.durable.Name(), "sweep")
		return fmt.Errorf("%w: %s sweep: %v", ErrCacheIO, t.durable.Name(), err)
	}

	logging.Ctx(ctx).Debug().Int("removed", removed).Int("entries", t.memory.Len()).Msg("Cache sweep complete")
	return nil
}

// Status reports each tier for readiness output, with the memory tier's
// lookup counters.
func (t *Tiered) Status() []TierStatus {
	stats := t.memory.GetStats()
	return []TierStatus{
		{
			Name:    tierMemory,
			Healthy: true,
			Entries: t.memory.Len(),
			Hits:    stats.Hits,
			Misses:  stats.Misses,
			HitRate: t.memory.HitRate(),
		},
		{Name: t.durable.Name(), Healthy: t.durable.Healthy()},
	}
}

// Close releases the durable tier.
func (t *Tiered) Close() error {
	if err := t.durable.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrCacheIO, t.durable.Name(), err)
	}
	return nil
}

func (t *Tiered) ioError(ctx context.Context, op, key string, err error) {
	metrics.RecordCacheIOError(t.durable.Name(), op)
	logging.Ctx(ctx).Warn().Err(err).Str("tier", t.durable.Name()).Str("operation", op).
		Str("key", key).Msg("Durable cache operation failed")
}
