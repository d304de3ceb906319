// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package api

import "errors"

var (
	// ErrInvalidBody is returned for a request body that is not a JSON query.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrInvalidParam is returned for a query parameter that cannot be parsed.
	ErrInvalidParam = errors.New("invalid query parameter")
)
