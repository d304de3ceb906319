// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

/*
Package main is the entry point for the Lineup listing server.

Lineup answers one canonical listing query by fanning out to several
content provider APIs, mapping filters into each provider's vocabulary,
normalizing the responses into one item shape and merging the pages.
Failed providers are replaced by deterministic placeholder items so a
listing is never empty.

# Application Architecture

	RootSupervisor ("lineup")
	├── CacheSupervisor ("cache-layer")
	│   └── Cache sweeper (expired entry eviction, badger value log GC)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment
 2. Logging: zerolog, json or console
 3. Taxonomies: built-in provider vocabularies plus TAXONOMY_OVERRIDE_DIR
 4. Providers: one adapter per enabled provider with circuit breaker and
    rate limiter
 5. Result cache: in-memory tier plus optional BadgerDB durable tier
 6. Aggregator and HTTP router
 7. Supervisor tree

# Configuration

	LIVEFEED_ENABLED=true LIVEFEED_BASE_URL=https://... LIVEFEED_ACCESS_KEY=...
	CAMSTREAM_ENABLED=true CAMSTREAM_CAMPAIGN=...
	VIDEOFEED_ENABLED=true VIDEOFEED_PARTNER_ID=...
	CACHE_DURABLE_ENABLED=true CACHE_DURABLE_PATH=/data/cache
	HTTP_PORT=8080 LOG_LEVEL=info LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree: the HTTP server drains
in-flight requests, the sweeper stops and the durable cache is closed.
*/
package main
