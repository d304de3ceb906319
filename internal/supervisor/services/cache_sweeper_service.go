// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package services

import (
	"context"
	"time"

	"github.com/tomtom215/lineup/internal/logging"
)

// ExpiringCache removes expired entries on demand. *cache.Tiered satisfies it.
type ExpiringCache interface {
	InvalidateExpired(ctx context.Context) error
}

// CacheSweeperService periodically evicts expired result cache entries.
// Lookups already treat expired entries as misses, so a failed sweep is
// logged and retried on the next tick rather than returned.
type CacheSweeperService struct {
	cache    ExpiringCache
	interval time.Duration
	name     string
}

// NewCacheSweeperService creates a sweeper. A non-positive interval means 1m.
func NewCacheSweeperService(c ExpiringCache, interval time.Duration) *CacheSweeperService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheSweeperService{
		cache:    c,
		interval: interval,
		name:     "cache-sweeper",
	}
}

// Serve implements suture.Service.
func (s *CacheSweeperService) Serve(ctx context.Context) error {
	logger := logging.WithComponent(s.name)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.cache.InvalidateExpired(ctx); err != nil {
				logger.Warn().Err(err).Msg("Cache sweep failed")
				continue
			}
			logger.Debug().Msg("Cache sweep complete")
		}
	}
}

// String implements fmt.Stringer.
func (s *CacheSweeperService) String() string {
	return s.name
}
