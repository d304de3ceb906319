// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/lineup/internal/logging"
	"github.com/tomtom215/lineup/internal/models"
)

// gcDiscardRatio is the value log GC threshold used by Sweep.
const gcDiscardRatio = 0.5

// BadgerConfig configures the durable tier.
type BadgerConfig struct {
	Path     string
	InMemory bool
}

// BadgerStore persists cache entries in BadgerDB. Each key carries a native
// TTL, so expired entries are invisible to reads before Sweep reclaims them.
type BadgerStore struct {
	db       *badger.DB
	inMemory bool
}

// OpenBadger opens (or creates) the durable cache at cfg.Path.
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("durable cache path is required")
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Bool("in_memory", cfg.InMemory).Msg("Durable cache opened")
	return &BadgerStore{db: db, inMemory: cfg.InMemory}, nil
}

// Name implements DurableStore.
func (s *BadgerStore) Name() string { return "durable" }

// Get implements DurableStore.
func (s *BadgerStore) Get(_ context.Context, key string) (models.CacheEntry, bool, error) {
	var entry models.CacheEntry
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return models.CacheEntry{}, false, fmt.Errorf("get %s: %w", key, err)
	}
	if !found || entry.Expired(time.Now()) {
		return models.CacheEntry{}, false, nil
	}
	return entry, true, nil
}

// Set implements DurableStore. An already expired entry is not written.
func (s *BadgerStore) Set(_ context.Context, entry models.CacheEntry) error {
	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", entry.Key, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(entry.Key), data).WithTTL(ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", entry.Key, err)
	}
	return nil
}

// Sweep implements DurableStore by running value log GC until there is
// nothing left to rewrite. Expired keys are dropped by compaction.
func (s *BadgerStore) Sweep(ctx context.Context) error {
	if s.inMemory {
		return nil
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Healthy implements DurableStore.
func (s *BadgerStore) Healthy() bool {
	return !s.db.IsClosed()
}

// Close implements DurableStore.
func (s *BadgerStore) Close() error {
	if s.db.IsClosed() {
		return nil
	}
	return s.db.Close()
}
