// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/lineup/internal/metrics"
	"github.com/tomtom215/lineup/internal/models"
	"github.com/tomtom215/lineup/internal/normalize"
	"github.com/tomtom215/lineup/internal/taxonomy"
)

// Adapter is the capability set the aggregator needs from a provider.
// Fetch performs no caching or fallback; those belong to the caller.
type Adapter interface {
	ID() string
	Kind() models.ContentKind
	Taxonomy() *taxonomy.Taxonomy
	BreakerState() string

	// MapParams translates a canonical query into this provider's request.
	MapParams(q models.Query) models.ProviderRequest

	// Fetch performs the network call and returns the decoded body.
	Fetch(ctx context.Context, req models.ProviderRequest) (interface{}, error)

	// Normalize locates the item array in raw and converts every record.
	// A body in no known shape yields an empty page and a warning.
	Normalize(raw interface{}, req models.ProviderRequest) (Page, error)
}

// Page is one provider's normalized contribution.
type Page struct {
	Items      []models.Item
	Pagination models.Pagination
	Shape      string
	Warnings   []string
}

// Options are construction settings shared by every adapter.
type Options struct {
	Breaker BreakerConfig

	// KeepRaw attaches each record's raw JSON as Item.RawDataRef.
	KeepRaw bool
}

// DefaultOptions returns production adapter options.
func DefaultOptions() Options {
	return Options{Breaker: DefaultBreakerConfig()}
}

// paginationFunc builds a page's pagination block from the envelope.
type paginationFunc func(meta normalize.Record, req models.ProviderRequest, returned int) models.Pagination

// base holds the provider-independent half of every adapter.
type base struct {
	id         string
	kind       models.ContentKind
	tax        *taxonomy.Taxonomy
	client     *Client
	matchers   []Matcher
	keepRaw    bool
	item       normalize.ItemFunc
	pagination paginationFunc
}

func (b *base) ID() string                   { return b.id }
func (b *base) Kind() models.ContentKind     { return b.kind }
func (b *base) Taxonomy() *taxonomy.Taxonomy { return b.tax }
func (b *base) BreakerState() string         { return b.client.BreakerState() }

// mapQuery runs the taxonomy mapper and fills the provider-neutral fields.
// Category is translated to the provider's term; an unknown category is
// dropped with a warning.
func (b *base) mapQuery(q models.Query) models.ProviderRequest {
	m := taxonomy.Map(q, b.tax)

	req := models.ProviderRequest{
		Provider:    b.id,
		Subcategory: q.Subcategory,
		Filters:     m.Filters,
		Limit:       q.Limit,
		Offset:      q.Offset,
		Sort:        q.SortOrDefault(),
		Warnings:    m.WarningStrings(),
	}

	if q.Category != "" {
		if term, ok := b.tax.Category(q.Category); ok {
			req.Category = term
		} else {
			req.Warnings = append(req.Warnings, fmt.Sprintf("unresolved category %q", q.Category))
		}
	}

	if n := len(req.Warnings); n > 0 {
		metrics.FilterWarnings.WithLabelValues(b.id).Add(float64(n))
	}
	return req
}

// Normalize implements Adapter.
func (b *base) Normalize(raw interface{}, req models.ProviderRequest) (Page, error) {
	if raw == nil {
		return Page{}, fmt.Errorf("%w: %s: null body", ErrProviderShape, b.id)
	}

	env, ok := MatchShape(raw, b.matchers)
	if !ok {
		return Page{
			Items:      []models.Item{},
			Pagination: models.NewPagination(0, true, req.Limit, req.Offset, 0),
			Warnings:   []string{fmt.Sprintf("%s: no known response shape matched", b.id)},
		}, nil
	}

	items := normalize.Batch(b.id, b.kind, env.Items, req.Offset, b.keepRaw, b.item)
	return Page{
		Items:      items,
		Pagination: b.pagination(env.Meta, req, len(items)),
		Shape:      env.Shape,
	}, nil
}

// totalPagination reads the first total count among paths. Without one the
// full-page heuristic applies.
func totalPagination(paths ...string) paginationFunc {
	return func(meta normalize.Record, req models.ProviderRequest, returned int) models.Pagination {
		if total, ok := meta.Int(paths...); ok && total >= 0 {
			return models.NewPagination(int(total), true, req.Limit, req.Offset, returned)
		}
		return models.NewPagination(0, false, req.Limit, req.Offset, returned)
	}
}

// filterValue joins a resolved filter type's values for a query parameter.
func filterValue(req models.ProviderRequest, typ string) string {
	return strings.Join(req.Filters[typ], ",")
}
