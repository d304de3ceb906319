// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

// General API information for swag.
//
// @title Lineup API
// @version 1.0
// @description Aggregated and normalized listings from several content provider APIs.
// @description
// @description ## Partial Results
// @description
// @description A provider that fails contributes deterministic placeholder items and a
// @description diagnostic entry with status "fallback". When every provider fails the
// @description response is still 200 with success false and code ALL_PROVIDERS_FAILED.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/lineup/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Listings
// @tag.description Aggregated listing queries
//
// @tag.name Providers
// @tag.description Registered providers and their vocabularies
package main
