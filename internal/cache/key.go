// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/lineup/internal/models"
)

// ListingPrefix namespaces listing cache keys.
const ListingPrefix = "listings:"

// ListingKey derives the cache key for a query against an already resolved
// provider list. Filter keys, filter values, tags and providers are sorted
// first, so two queries that differ only in map or slice order share a key.
func ListingKey(q models.Query, providers []string) string {
	var b strings.Builder

	field := func(name, value string) {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(value)
		b.WriteByte('\n')
	}

	field("kind", string(q.Kind))
	field("category", q.Category)
	field("subcategory", q.Subcategory)
	field("tags", joinSorted(q.Tags))

	for _, k := range q.FilterTypes() {
		field("f."+k, joinSorted(q.Filters[k]))
	}

	field("limit", strconv.Itoa(q.Limit))
	field("offset", strconv.Itoa(q.Offset))
	field("sort", string(q.SortOrDefault()))
	field("providers", joinSorted(providers))

	sum := sha256.Sum256([]byte(b.String()))
	return ListingPrefix + hex.EncodeToString(sum[:])
}

func joinSorted(values []string) string {
	if len(values) == 0 {
		return ""
	}
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
