// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

/*
Package aggregator answers canonical listing queries by fanning out to every
selected provider adapter and merging their normalized pages.

# Request Flow

 1. Apply the default limit, then validate the query
 2. Resolve the provider selector against the registry
 3. Return a cached result when one exists (diagnostics become "cached")
 4. Otherwise run one task per provider concurrently, each with its own
    deadline, behind a singleflight group keyed by the cache key
 5. Concatenate in registry order, shuffle a random-sorted first page,
    truncate to the limit and merge pagination
 6. Cache the result only when every provider answered live

Each provider receives ceil(limit/n) items at offset*perLimit/limit, so a
page of 24 from two providers asks each for 12.

# Failure Handling

A provider that times out, returns an error status, an unparseable body or
panics is replaced by deterministic fallback items (see package fallback)
and recorded in Result.Diagnostics. Aggregate returns an error only for
invalid queries, unknown providers and a cancelled caller context.
Result.Success is false only when every provider fell back.

Provider calls run on a context detached from the caller, so a client that
disconnects does not abort a fetch other callers are waiting on.
*/
package aggregator
