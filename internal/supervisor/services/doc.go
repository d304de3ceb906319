// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

/*
Package services provides suture.Service wrappers for long-running
components.

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancel
  - CacheSweeperService: ticker-driven InvalidateExpired on the result cache

Each wrapper depends on a small interface rather than the concrete type, so
tests use doubles and this package imports neither net/http handlers nor the
cache package. String() names the service in supervisor events.
*/
package services
