// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

// Package fallback generates the deterministic placeholder items that stand
// in for a provider's slice when its live fetch fails.
//
// Items are seeded by xxhash over the content kind, the failed provider, the
// category, the subcategory and the absolute position, carry the "fallback"
// provider ID and tag, and point at placeholder media under the .invalid TLD.
package fallback
