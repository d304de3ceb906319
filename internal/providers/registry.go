// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package providers

import (
	"fmt"
	"strings"

	"github.com/tomtom215/lineup/internal/models"
)

// Registry is the ID to Adapter lookup table. Registration order is the
// merge order of aggregated results.
type Registry struct {
	order    []string
	adapters map[string]Adapter
}

// NewRegistry creates a registry holding adapters in the given order.
// A later adapter with a duplicate ID replaces the earlier one in place.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds or replaces an adapter.
func (r *Registry) Register(a Adapter) {
	id := a.ID()
	if _, exists := r.adapters[id]; !exists {
		r.order = append(r.order, id)
	}
	r.adapters[id] = a
}

// Get returns the adapter registered under id.
func (r *Registry) Get(id string) (Adapter, bool) {
	a, ok := r.adapters[strings.ToLower(strings.TrimSpace(id))]
	return a, ok
}

// All returns every adapter in registration order.
func (r *Registry) All() []Adapter {
	out := make([]Adapter, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.adapters[id])
	}
	return out
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int {
	return len(r.order)
}

// Resolve expands a provider selector into adapters serving kind, in
// registration order. Empty selectors or "all" select every adapter of the
// kind. Entries may be comma lists. An unknown ID, or an explicitly named
// provider of another kind, is an error.
func (r *Registry) Resolve(selectors []string, kind models.ContentKind) ([]Adapter, error) {
	named := map[string]bool{}
	all := len(selectors) == 0

	for _, sel := range selectors {
		for _, part := range strings.Split(sel, ",") {
			id := strings.ToLower(strings.TrimSpace(part))
			switch {
			case id == "":
				continue
			case id == models.AllProviders:
				all = true
				continue
			}
			a, ok := r.adapters[id]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, id)
			}
			if a.Kind() != kind {
				return nil, fmt.Errorf("%w: %q serves %s, not %s", ErrUnsupportedKind, id, a.Kind(), kind)
			}
			named[id] = true
		}
	}
	if len(named) == 0 {
		all = true
	}

	var out []Adapter
	for _, id := range r.order {
		a := r.adapters[id]
		if a.Kind() != kind {
			continue
		}
		if all || named[id] {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoProviders, kind)
	}
	return out, nil
}

// IDs returns the IDs of adapters in order.
func IDs(adapters []Adapter) []string {
	ids := make([]string, len(adapters))
	for i, a := range adapters {
		ids[i] = a.ID()
	}
	return ids
}
