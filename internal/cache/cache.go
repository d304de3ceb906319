// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Entry represents a cached value with expiration
type Entry[V any] struct {
	Data      V
	ExpiresAt time.Time
}

// Cache provides a thread-safe in-memory cache with per-entry TTL.
// Expired entries are dropped lazily on Get and in bulk by Sweep.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[V]
	ttl     time.Duration
	stats   Stats
	now     func() time.Time
}

// Stats tracks cache performance metrics
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a new thread-safe in-memory cache.
//
// ttl is the expiration used by Set; SetWithTTL overrides it per entry.
// The cache starts no goroutines. Call Sweep periodically (the cache
// sweeper service does) to reclaim memory held by entries that are never
// read again.
//
// Example:
//
//	c := cache.New[models.Result](time.Minute)
//	c.Set("listings:abc", result)
//	if r, ok := c.Get("listings:abc"); ok {
//	    // Use cached result
//	}
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]Entry[V]),
		ttl:     ttl,
		stats: Stats{
			LastCleanup: time.Now(),
		},
		now: time.Now,
	}
}

// Get retrieves a value from the cache by key with automatic expiration checking.
//
// Behavior:
//   - Returns (zero, false) if key doesn't exist
//   - Returns (zero, false) if entry has expired (entry is deleted)
//   - Returns (data, true) if entry is valid
//
// Statistics:
//   - Increments Hits counter on successful retrieval
//   - Increments Misses counter on miss or expiration
//   - Increments Evictions counter when removing expired entry
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return zero, false
	}

	if !c.now().Before(entry.ExpiresAt) {
		c.mu.Lock()
		// re-check: a concurrent Set may have replaced the entry
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.ExpiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction()
		return zero, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value in the cache with the default TTL configured at cache creation.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value in the cache with a custom TTL. A non-positive
// TTL stores nothing.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.SetUntil(key, value, c.now().Add(ttl))
}

// SetUntil stores a value that expires at an absolute time.
func (c *Cache[V]) SetUntil(key string, value V, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry[V]{
		Data:      value,
		ExpiresAt: expiresAt,
	}

	c.stats.mu.Lock()
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of current cache performance statistics.
// The returned Stats struct is a copy, safe to read without holding locks.
func (c *Cache[V]) GetStats() Stats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Stats{
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Evictions:   c.stats.Evictions,
		TotalKeys:   c.stats.TotalKeys,
		LastCleanup: c.stats.LastCleanup,
	}
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache[V]) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Sweep removes all expired entries and returns how many were removed.
func (c *Cache[V]) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	evictions := 0
	for key, entry := range c.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}

	c.stats.mu.Lock()
	c.stats.Evictions += int64(evictions)
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.LastCleanup = now
	c.stats.mu.Unlock()
	return evictions
}

// recordHit increments the hit counter
func (c *Cache[V]) recordHit() {
	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
}

// recordMiss increments the miss counter
func (c *Cache[V]) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
}

// recordEviction increments the eviction counter
func (c *Cache[V]) recordEviction() {
	c.stats.mu.Lock()
	c.stats.Evictions++
	c.stats.mu.Unlock()
}

// GenerateKey creates a cache key from a namespace and parameters
func GenerateKey(namespace string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}
