// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

/*
Package models defines the canonical, provider-independent data structures
shared by every Lineup component.

Key Components:

  - Query: the canonical listing request (provider selector, category,
    subcategory, tags, filters, limit, offset, sort)
  - ProviderRequest: the mapped, provider-specific parameter bag
  - Item: the canonical listing record, always fully defaulted
  - Pagination: page summary with the single hasMore heuristic
  - Result: merged items, pagination and per-provider diagnostics
  - CacheEntry: a stored Result with its expiry

Pagination Semantics:

NewPagination is the only place that decides whether more data exists.
Adapters that see a total in the provider response pass it with known=true;
adapters that only know how many items came back pass known=false and the
full-page rule applies. MergePagination combines the per-provider summaries
for the merged page.

Diagnostics:

Every queried provider has an entry in Result.Diagnostics with status
live, cached or fallback. A result can be Success=true while one provider's
slice is synthetic; callers that need to tell the two apart read the
diagnostics rather than the success flag.

Thread Safety:

All types are plain values. Result.Clone produces a deep copy for callers
that annotate a shared (cached) value.
*/
package models
