// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package taxonomy

import (
	"sort"
	"strings"
)

// TagsType is the filter type that holds a provider's free tag vocabulary.
const TagsType = "tags"

// Taxonomy is one provider's filter vocabulary.
//
// Filters maps a filter type to the provider's legal values. Synonyms maps
// an alias to the provider's term for it. Categories maps a canonical
// category (girls, guys, couples, trans) to the provider's own value.
// All keys and values are stored in Canonicalize form after Build.
type Taxonomy struct {
	Provider   string              `koanf:"provider" json:"provider"`
	Filters    map[string][]string `koanf:"filters" json:"filters"`
	Synonyms   map[string]string   `koanf:"synonyms" json:"synonyms"`
	Categories map[string]string   `koanf:"categories" json:"categories"`

	types []string
	index map[string]map[string]struct{}
}

// Canonicalize folds a user or provider term into the form used for
// comparisons: trimmed, lower-cased, spaces and hyphens as underscores.
func Canonicalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return '_'
		}
		return r
	}, s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

// Build canonicalizes the vocabulary and builds the lookup index. It must be
// called once after the struct is populated; the registry does this for
// every taxonomy it loads.
func (t *Taxonomy) Build() *Taxonomy {
	filters := make(map[string][]string, len(t.Filters))
	t.index = make(map[string]map[string]struct{}, len(t.Filters))
	t.types = t.types[:0]

	for typ, values := range t.Filters {
		ct := Canonicalize(typ)
		if ct == "" {
			continue
		}
		set := t.index[ct]
		if set == nil {
			set = make(map[string]struct{}, len(values))
			t.index[ct] = set
		}
		for _, v := range values {
			if cv := Canonicalize(v); cv != "" {
				set[cv] = struct{}{}
			}
		}
	}
	for ct, set := range t.index {
		vals := make([]string, 0, len(set))
		for v := range set {
			vals = append(vals, v)
		}
		sort.Strings(vals)
		filters[ct] = vals
		t.types = append(t.types, ct)
	}
	sort.Strings(t.types)
	t.Filters = filters

	syn := make(map[string]string, len(t.Synonyms))
	for alias, term := range t.Synonyms {
		if ca, ct := Canonicalize(alias), Canonicalize(term); ca != "" && ct != "" {
			syn[ca] = ct
		}
	}
	t.Synonyms = syn

	cats := make(map[string]string, len(t.Categories))
	for canon, native := range t.Categories {
		if cc := Canonicalize(canon); cc != "" {
			cats[cc] = strings.TrimSpace(native)
		}
	}
	t.Categories = cats
	return t
}

// Types returns the known filter types in ascending order.
func (t *Taxonomy) Types() []string {
	return append([]string(nil), t.types...)
}

// HasType reports whether typ is a known filter type.
func (t *Taxonomy) HasType(typ string) bool {
	_, ok := t.index[Canonicalize(typ)]
	return ok
}

// Contains reports whether value is a legal value of typ.
func (t *Taxonomy) Contains(typ, value string) bool {
	set, ok := t.index[Canonicalize(typ)]
	if !ok {
		return false
	}
	_, ok = set[Canonicalize(value)]
	return ok
}

// Resolve maps value through the synonym table. The raw (canonicalized)
// value is returned when no synonym exists.
func (t *Taxonomy) Resolve(value string) string {
	cv := Canonicalize(value)
	if term, ok := t.Synonyms[cv]; ok {
		return term
	}
	return cv
}

// Category returns the provider's native value for a canonical category.
func (t *Taxonomy) Category(category string) (string, bool) {
	v, ok := t.Categories[Canonicalize(category)]
	return v, ok && v != ""
}

// locate finds the filter type that owns value. A known hint is checked
// first; otherwise every type is scanned in ascending order so the choice
// is deterministic.
func (t *Taxonomy) locate(hint, value string) (string, bool) {
	if hint != "" && t.Contains(hint, value) {
		return Canonicalize(hint), true
	}
	for _, typ := range t.types {
		if _, ok := t.index[typ][value]; ok {
			return typ, true
		}
	}
	return "", false
}
