// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

/*
Package providers contains one adapter per upstream content provider and the
HTTP plumbing they share.

Each adapter implements the same three steps:

  - MapParams turns a canonical models.Query into a models.ProviderRequest
    using the provider's taxonomy (internal/taxonomy).
  - Fetch performs the outbound GET and returns the decoded JSON body.
  - Normalize finds the item array with an ordered list of shape matchers
    and converts every record to a models.Item.

Adapters never cache and never substitute fallback data. A failed Fetch is
returned to the aggregator as an error that Classify maps to a diagnostic
error kind.

# Client

Client wraps net/http with a per-provider golang.org/x/time/rate limiter,
a sony/gobreaker circuit breaker exported to Prometheus, a response size cap
and goccy/go-json decoding. Credentials in request URLs are redacted before
logging.

# Shapes

Providers answer in several envelope shapes, sometimes for the same
endpoint. Matchers are tried in a fixed order: the adapter's known paths,
then a bare array, then ArrayScan over top-level keys in sorted order. A body
in none of these shapes produces an empty page with a warning rather than an
error.

# Registry

Registry keeps adapters in configuration order, which is also the merge
order of aggregated results. Resolve expands a provider selector ("all", an
ID, or a comma list) for a content kind.
*/
package providers
