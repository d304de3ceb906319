// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package aggregator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/lineup/internal/cache"
	"github.com/tomtom215/lineup/internal/config"
	"github.com/tomtom215/lineup/internal/fallback"
	"github.com/tomtom215/lineup/internal/logging"
	"github.com/tomtom215/lineup/internal/metrics"
	"github.com/tomtom215/lineup/internal/models"
	"github.com/tomtom215/lineup/internal/providers"
	"github.com/tomtom215/lineup/internal/validation"
)

var (
	// ErrInvalidQuery is returned for a query that fails validation. The
	// error also wraps the *validation.QueryError.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrAllProvidersFailed is the Result.Error prefix when every selected
	// provider fell back. It is never returned as an error.
	ErrAllProvidersFailed = errors.New("all providers failed")
)

// Config holds aggregation settings.
type Config struct {
	ProviderTimeout time.Duration
	DefaultLimit    int
	MaxLimit        int
	TTL             cache.TTLPolicy

	// Debug keeps Item.RawDataRef in returned results.
	Debug bool
}

// ConfigFrom derives aggregation settings from application configuration.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		ProviderTimeout: cfg.Aggregator.ProviderTimeout,
		DefaultLimit:    cfg.Aggregator.DefaultLimit,
		MaxLimit:        cfg.Aggregator.MaxLimit,
		TTL:             cache.NewTTLPolicy(cfg.Cache),
		Debug:           cfg.Aggregator.DebugRaw,
	}
}

// Aggregator fans a canonical query out to every selected provider, merges
// the normalized pages and caches fully live results. It depends on
// providers only through the Adapter interface.
type Aggregator struct {
	registry *providers.Registry
	cache    cache.ResultCache
	cfg      Config
	group    singleflight.Group
	shuffle  func(items []models.Item)
}

// New creates an aggregator. store may be nil to disable caching.
func New(registry *providers.Registry, store cache.ResultCache, cfg Config) *Aggregator {
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 10 * time.Second
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 24
	}
	if cfg.TTL == (cache.TTLPolicy{}) {
		cfg.TTL = cache.DefaultTTLPolicy()
	}
	return &Aggregator{
		registry: registry,
		cache:    store,
		cfg:      cfg,
		shuffle:  shuffleItems,
	}
}

// Registry returns the provider registry the aggregator dispatches to.
func (a *Aggregator) Registry() *providers.Registry {
	return a.registry
}

// Aggregate answers q from the cache or from a live fan-out.
//
// Only caller errors are returned: ErrInvalidQuery, unknown or mismatched
// providers (see providers.Registry.Resolve), or the caller's own
// context ending. Provider failures are reported in Result.Diagnostics with
// fallback items in their place.
func (a *Aggregator) Aggregate(ctx context.Context, q models.Query) (models.Result, error) {
	start := time.Now()

	if q.Limit == 0 {
		q.Limit = a.cfg.DefaultLimit
	}
	if verr := validation.ValidateQuery(&q, a.cfg.MaxLimit); verr != nil {
		return models.Result{}, fmt.Errorf("%w: %w", ErrInvalidQuery, verr)
	}

	adapters, err := a.registry.Resolve(q.Providers, q.Kind)
	if err != nil {
		return models.Result{}, err
	}
	key := cache.ListingKey(q, providers.IDs(adapters))

	if a.cache != nil {
		if res, ok := a.cache.Get(ctx, key); ok {
			markCached(&res)
			metrics.RecordAggregation("cache", time.Since(start))
			return a.finish(res), nil
		}
	}

	// The fan-out runs on a detached context: a caller that gives up does
	// not cancel provider calls whose result is about to be cached.
	detached := logging.DetachedContext(ctx)
	ch := a.group.DoChan(key, func() (interface{}, error) {
		return a.fanOut(detached, q, adapters, key), nil
	})

	select {
	case r := <-ch:
		if r.Shared {
			metrics.AggregationsCoalesced.Inc()
		}
		res := r.Val.(models.Result)
		return a.finish(res.Clone()), nil
	case <-ctx.Done():
		return models.Result{}, ctx.Err()
	}
}

// slot is one provider task's output. Each task writes only its own slot.
type slot struct {
	id    string
	items []models.Item
	page  models.Pagination
	diag  models.ProviderDiagnostic
}

func (a *Aggregator) fanOut(ctx context.Context, q models.Query, adapters []providers.Adapter, key string) models.Result {
	start := time.Now()

	perLimit := ceilDiv(q.Limit, len(adapters))
	providerOffset := q.Offset * perLimit / q.Limit

	slots := make([]slot, len(adapters))
	var wg sync.WaitGroup
	for i, ad := range adapters {
		wg.Add(1)
		go func(i int, ad providers.Adapter) {
			defer wg.Done()
			slots[i] = a.runProvider(ctx, ad, q, perLimit, providerOffset)
		}(i, ad)
	}
	wg.Wait()

	res := merge(q, slots, a.shuffle)

	if a.cache != nil && !res.AnyFallback() {
		stored := res.Clone()
		now := time.Now().UTC()
		stored.CachedAt = &now
		a.cache.Set(ctx, key, stored, a.cfg.TTL.ForKind(q.Kind))
	}

	metrics.RecordAggregation("live", time.Since(start))
	logging.Ctx(ctx).Debug().
		Str("kind", string(q.Kind)).
		Strs("providers", providers.IDs(adapters)).
		Int("items", len(res.Items)).
		Bool("success", res.Success).
		Dur("duration", time.Since(start)).
		Msg("Aggregation complete")
	return res
}

// runProvider performs one provider task. A failure of any kind, including
// a panic inside the adapter, becomes a fallback slice.
func (a *Aggregator) runProvider(ctx context.Context, ad providers.Adapter, q models.Query, limit, offset int) (s slot) {
	start := time.Now()
	id := ad.ID()

	pq := q
	pq.Limit = limit
	pq.Offset = offset
	req := models.ProviderRequest{Provider: id, Limit: limit, Offset: offset, Sort: q.SortOrDefault()}

	defer func() {
		if r := recover(); r != nil {
			s = a.fallbackSlot(ctx, id, q, req, fmt.Errorf("adapter panic: %v", r), start)
		}
	}()

	req = ad.MapParams(pq)

	tctx, cancel := context.WithTimeout(ctx, a.cfg.ProviderTimeout)
	defer cancel()

	raw, err := ad.Fetch(tctx, req)
	if err != nil {
		return a.fallbackSlot(ctx, id, q, req, err, start)
	}
	page, err := ad.Normalize(raw, req)
	if err != nil {
		return a.fallbackSlot(ctx, id, q, req, err, start)
	}

	warnings := append(append([]string(nil), req.Warnings...), page.Warnings...)
	if len(page.Items) > limit {
		warnings = append(warnings, fmt.Sprintf("provider returned %d items for limit %d; extra items dropped", len(page.Items), limit))
		page.Items = page.Items[:limit]
	}
	return slot{
		id:    id,
		items: page.Items,
		page:  page.Pagination,
		diag: models.ProviderDiagnostic{
			Status:     models.ProviderLive,
			ItemCount:  len(page.Items),
			Warnings:   warnings,
			DurationMs: time.Since(start).Milliseconds(),
		},
	}
}

func (a *Aggregator) fallbackSlot(ctx context.Context, id string, q models.Query, req models.ProviderRequest, err error, start time.Time) slot {
	kind := providers.Classify(err)
	items := fallback.New(q.Kind).GenerateFor(id, q.Category, q.Subcategory, req.Limit, req.Offset)
	metrics.RecordFallback(id, len(items))

	logging.Ctx(ctx).Warn().Err(err).
		Str("provider", id).
		Str("error_kind", string(kind)).
		Int("fallback_items", len(items)).
		Msg("Provider failed, using fallback items")

	return slot{
		id:    id,
		items: items,
		page:  models.NewPagination(0, false, req.Limit, req.Offset, len(items)),
		diag: models.ProviderDiagnostic{
			Status:     models.ProviderFallback,
			ItemCount:  len(items),
			Error:      err.Error(),
			ErrorKind:  kind,
			Warnings:   req.Warnings,
			DurationMs: time.Since(start).Milliseconds(),
		},
	}
}

// merge concatenates slots in registry order, shuffles a fresh random page,
// truncates to the limit and combines pagination.
func merge(q models.Query, slots []slot, shuffle func([]models.Item)) models.Result {
	res := models.Result{
		Success:     true,
		Items:       []models.Item{},
		Diagnostics: make(map[string]models.ProviderDiagnostic, len(slots)),
	}

	var live, all []models.Pagination
	var failures []string
	for _, s := range slots {
		res.Items = append(res.Items, s.items...)
		res.Diagnostics[s.id] = s.diag
		all = append(all, s.page)
		if s.diag.Failed() {
			failures = append(failures, s.id+": "+s.diag.Error)
		} else {
			live = append(live, s.page)
		}
	}

	if q.SortOrDefault() == models.SortRandom && !q.IsLoadMore() && shuffle != nil {
		shuffle(res.Items)
	}
	if len(res.Items) > q.Limit {
		res.Items = res.Items[:q.Limit]
	}

	parts := live
	if len(parts) == 0 {
		parts = all
	}
	res.Pagination = models.MergePagination(parts, q.Limit, q.Offset)

	if len(slots) > 0 && len(failures) == len(slots) {
		sort.Strings(failures)
		res.Success = false
		res.Error = fmt.Sprintf("%s: %s", ErrAllProvidersFailed, strings.Join(failures, "; "))
	}
	return res
}

// finish applies per-response presentation rules to a result copy.
func (a *Aggregator) finish(res models.Result) models.Result {
	if !a.cfg.Debug {
		for i := range res.Items {
			res.Items[i].RawDataRef = nil
		}
	}
	return res
}

// markCached flags a cache hit: live contributions become cached and the
// original store time is kept.
func markCached(res *models.Result) {
	for id, d := range res.Diagnostics {
		if d.Status == models.ProviderLive {
			d.Status = models.ProviderCached
			res.Diagnostics[id] = d
		}
	}
}

func shuffleItems(items []models.Item) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}
