// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

// Package normalize holds the field extraction helpers provider adapters use
// to turn arbitrarily shaped records into models.Item values.
//
// Accessors on Record take ordered chains of dotted paths and return the
// first usable value. Batch applies an adapter's ItemFunc to every record
// and guarantees one output item per input, with defaults filled and the
// provider attribution stamped.
package normalize
