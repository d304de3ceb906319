// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package models

import "sort"

// ContentKind identifies the listing family a query targets.
type ContentKind string

const (
	// KindModels is the live-model listing family (online performers).
	KindModels ContentKind = "models"
	// KindVideos is the recorded video listing family.
	KindVideos ContentKind = "videos"
)

// Valid reports whether k is a known content kind.
func (k ContentKind) Valid() bool {
	return k == KindModels || k == KindVideos
}

// SortOrder is the caller-requested ordering of merged results.
type SortOrder string

const (
	SortDefault SortOrder = "default"
	SortPopular SortOrder = "popular"
	SortNewest  SortOrder = "newest"
	SortRandom  SortOrder = "random"
)

// AllProviders is the provider selector that expands to every registered
// provider serving the query's kind.
const AllProviders = "all"

// Query is the canonical, provider-independent listing request.
//
// Filters maps a canonical filter type (ethnicity, hair_color, ...) to one or
// more values. Map iteration order is irrelevant everywhere a Query is
// consumed; cache keys and mapped requests sort keys and values first.
type Query struct {
	Providers   []string            `json:"providers,omitempty" validate:"max=10,dive,max=32"`
	Kind        ContentKind         `json:"kind" validate:"required,oneof=models videos"`
	Category    string              `json:"category,omitempty" validate:"omitempty,max=64,slug"`
	Subcategory string              `json:"subcategory,omitempty" validate:"omitempty,max=64,slug"`
	Tags        []string            `json:"tags,omitempty" validate:"max=20,dive,max=64,slug"`
	Filters     map[string][]string `json:"filters,omitempty" validate:"max=20,dive,keys,slug,max=32,endkeys,max=10,dive,max=64,slug"`
	Limit       int                 `json:"limit" validate:"min=1"`
	Offset      int                 `json:"offset" validate:"min=0,max=100000"`
	Sort        SortOrder           `json:"sort,omitempty" validate:"omitempty,oneof=default popular newest random"`
}

// IsLoadMore reports whether the query continues a previously returned page.
func (q Query) IsLoadMore() bool {
	return q.Offset > 0
}

// SortOrDefault returns Sort, or SortDefault when unset.
func (q Query) SortOrDefault() SortOrder {
	if q.Sort == "" {
		return SortDefault
	}
	return q.Sort
}

// FilterTypes returns the filter keys in ascending order.
func (q Query) FilterTypes() []string {
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ProviderRequest is the provider-specific parameter bag produced by the
// taxonomy mapper. The aggregator never looks inside it; only the owning
// adapter interprets Filters.
type ProviderRequest struct {
	Provider    string              `json:"provider"`
	Category    string              `json:"category,omitempty"`
	Subcategory string              `json:"subcategory,omitempty"`
	Filters     map[string][]string `json:"filters,omitempty"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
	Sort        SortOrder           `json:"sort,omitempty"`
	Warnings    []string            `json:"warnings,omitempty"`
}
