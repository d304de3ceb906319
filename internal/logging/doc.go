// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

// Package logging provides the zerolog-based structured logger used across
// Lineup.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("provider", "livefeed").Msg("Adapter registered")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Provider fell back")
//
// Ctx adds the request_id and correlation_id stored on the context by the
// HTTP middleware, so every log line of one listing request can be joined.
//
// # Supervisor Integration
//
// NewSlogLogger returns an *slog.Logger backed by the same zerolog logger,
// which the suture supervisor tree consumes through sutureslog.
//
// # Credentials
//
// Outbound provider URLs carry access keys in their query strings. Always
// pass them through RedactURL before logging.
package logging
