// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package taxonomy

import (
	"fmt"
	"sort"

	"github.com/tomtom215/lineup/internal/models"
)

// Source names the part of a query a filter value came from.
type Source string

const (
	SourceTags        Source = "tags"
	SourceSubcategory Source = "subcategory"
	SourceFilters     Source = "filters"
)

// Warning is a non-fatal filter resolution failure. The value it names was
// dropped from the provider request.
type Warning struct {
	Source     Source `json:"source"`
	FilterType string `json:"filter_type,omitempty"`
	Value      string `json:"value"`
}

func (w Warning) String() string {
	if w.FilterType != "" {
		return fmt.Sprintf("unresolved %s value %q for filter %q", w.Source, w.Value, w.FilterType)
	}
	return fmt.Sprintf("unresolved %s value %q", w.Source, w.Value)
}

// Mapping is the provider-specific filter fragment produced for one query.
type Mapping struct {
	Filters  map[string][]string
	Source   Source
	Warnings []Warning
}

// WarningStrings renders the warnings for diagnostics.
func (m Mapping) WarningStrings() []string {
	if len(m.Warnings) == 0 {
		return nil
	}
	out := make([]string, len(m.Warnings))
	for i, w := range m.Warnings {
		out[i] = w.String()
	}
	return out
}

// Map translates the filter sources of q into t's vocabulary.
//
// Sources are tried in precedence order: explicit tags, then the
// subcategory (only when q carries no generic filters), then the generic
// filter map. The first source that resolves at least one value wins and
// the rest are not consulted. Values that resolve nowhere are dropped with
// a Warning.
func Map(q models.Query, t *Taxonomy) Mapping {
	var warnings []Warning

	if len(q.Tags) > 0 {
		m := mapValues(SourceTags, TagsType, q.Tags, t)
		warnings = append(warnings, m.Warnings...)
		if len(m.Filters) > 0 {
			m.Warnings = warnings
			return m
		}
	}

	if q.Subcategory != "" && len(q.Filters) == 0 {
		m := mapValues(SourceSubcategory, "", []string{q.Subcategory}, t)
		warnings = append(warnings, m.Warnings...)
		if len(m.Filters) > 0 {
			m.Warnings = warnings
			return m
		}
	}

	m := MapFilters(q.Filters, t)
	m.Warnings = append(warnings, m.Warnings...)
	return m
}

// MapFilters translates a generic filter map. A value under a known filter
// type must be legal for that type. A value under an unknown type is placed
// under whichever known type lists it.
func MapFilters(filters map[string][]string, t *Taxonomy) Mapping {
	out := Mapping{Filters: map[string][]string{}}
	if len(filters) == 0 {
		return out
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, typ := range keys {
		known := t.HasType(typ)
		for _, raw := range sortedCopy(filters[typ]) {
			// values that normalize to nothing are unresolved too
			if v := t.Resolve(raw); v != "" {
				if known {
					if t.Contains(typ, v) {
						out.add(Canonicalize(typ), v)
						continue
					}
				} else if found, ok := t.locate("", v); ok {
					out.add(found, v)
					continue
				}
			}
			out.Warnings = append(out.Warnings, Warning{Source: SourceFilters, FilterType: typ, Value: raw})
		}
	}

	out.finish(SourceFilters)
	return out
}

func mapValues(src Source, hint string, values []string, t *Taxonomy) Mapping {
	out := Mapping{Filters: map[string][]string{}}
	for _, raw := range sortedCopy(values) {
		if v := t.Resolve(raw); v != "" {
			if typ, ok := t.locate(hint, v); ok {
				out.add(typ, v)
				continue
			}
		}
		out.Warnings = append(out.Warnings, Warning{Source: src, Value: raw})
	}
	out.finish(src)
	return out
}

func (m *Mapping) add(typ, value string) {
	for _, existing := range m.Filters[typ] {
		if existing == value {
			return
		}
	}
	m.Filters[typ] = append(m.Filters[typ], value)
}

func (m *Mapping) finish(src Source) {
	for typ := range m.Filters {
		sort.Strings(m.Filters[typ])
	}
	if len(m.Filters) > 0 {
		m.Source = src
	}
}

func sortedCopy(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
