// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

/*
Package cache provides the listing cache used by the aggregator.

# Overview

Two tiers sit behind the ResultCache interface:

  - memory: a thread-safe generic TTL map (Cache) with hit/miss statistics
  - durable: an optional DurableStore, BadgerDB v4 in production

Tiered reads memory first and falls back to the durable tier on a miss,
promoting durable hits into memory for the rest of their lifetime. Writes go
to both tiers with the same absolute expiry. The durable tier is best
effort: its failures are logged, counted in cache_io_errors_total and
reported as a miss, never as an error to the caller.

# Keys

ListingKey hashes a canonical rendering of the query (sorted filter keys,
sorted values, tags, paging, sort) and the resolved provider list:

	key := cache.ListingKey(query, providers.IDs(adapters))
	// listings:9f86d081884c7d65...

# Lifetimes

TTLPolicy maps data volatility to a TTL: Realtime for live model listings,
General for videos and Static for taxonomy data. Expired entries are never
served. InvalidateExpired reclaims their space and is run by the cache
sweeper service under the supervisor tree.
*/
package cache
