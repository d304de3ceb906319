// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package cache

import (
	"time"

	"github.com/tomtom215/lineup/internal/config"
	"github.com/tomtom215/lineup/internal/models"
)

// TTLPolicy picks a cache lifetime by data volatility.
type TTLPolicy struct {
	Realtime time.Duration // live model listings
	General  time.Duration // video listings
	Static   time.Duration // taxonomy data
}

// DefaultTTLPolicy returns 60s / 5m / 1h.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Realtime: 60 * time.Second,
		General:  5 * time.Minute,
		Static:   time.Hour,
	}
}

// NewTTLPolicy reads the policy from configuration, keeping defaults for
// unset values.
func NewTTLPolicy(cfg config.CacheConfig) TTLPolicy {
	p := DefaultTTLPolicy()
	if cfg.RealtimeTTL > 0 {
		p.Realtime = cfg.RealtimeTTL
	}
	if cfg.GeneralTTL > 0 {
		p.General = cfg.GeneralTTL
	}
	if cfg.StaticTTL > 0 {
		p.Static = cfg.StaticTTL
	}
	return p
}

// ForKind returns the listing TTL for a content kind.
func (p TTLPolicy) ForKind(kind models.ContentKind) time.Duration {
	if kind == models.KindModels {
		return p.Realtime
	}
	return p.General
}
