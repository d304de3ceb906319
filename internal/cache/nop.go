// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package cache

import (
	"context"

	"github.com/tomtom215/lineup/internal/models"
)

// NopStore is the durable tier used when persistence is disabled.
type NopStore struct{}

func (NopStore) Name() string { return "none" }

func (NopStore) Get(context.Context, string) (models.CacheEntry, bool, error) {
	return models.CacheEntry{}, false, nil
}

func (NopStore) Set(context.Context, models.CacheEntry) error { return nil }
func (NopStore) Sweep(context.Context) error                  { return nil }
func (NopStore) Healthy() bool                                { return true }
func (NopStore) Close() error                                 { return nil }
