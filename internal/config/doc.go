// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

/*
Package config provides centralized configuration management for Lineup.

Configuration is layered with Koanf v2: struct defaults, then an optional
YAML file (CONFIG_PATH, ./config.yaml, /etc/lineup/config.yaml), then
environment variables. Only environment variables listed in the mapping
table are read.

# Configuration Structure

  - ServerConfig: HTTP listener and timeouts
  - LoggingConfig: zerolog level and format
  - CacheConfig: TTL policy, sweep interval and the BadgerDB durable tier
  - AggregatorConfig: provider timeout, page size bounds, raw debug output
  - SecurityConfig: inbound rate limiting and CORS
  - SupervisorConfig: suture failure parameters
  - ProvidersConfig: one ProviderConfig per content provider
  - TaxonomyConfig: directory of taxonomy overrides

# Environment Variables

Provider settings follow <PROVIDER>_<FIELD>:

	LIVEFEED_ENABLED=true
	LIVEFEED_BASE_URL=https://api.livefeed.example
	LIVEFEED_SITE_ID=...
	LIVEFEED_PARTNER_ID=...
	LIVEFEED_ACCESS_KEY=...
	CAMSTREAM_CAMPAIGN=...
	VIDEOFEED_DEFAULT_ORIENTATION=straight

Other sections use fixed names such as HTTP_PORT, LOG_LEVEL,
CACHE_REALTIME_TTL, AGGREGATOR_MAX_LIMIT, RATE_LIMIT_REQS and CORS_ORIGINS
(comma-separated).

# Validation

Load returns an error when a value is out of range, a log enum is unknown,
or an enabled provider lacks its base URL or credentials.
*/
package config
