// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

/*
Package validation checks canonical listing queries with go-playground/validator v10.

The validator is a thread-safe singleton; struct info is cached after the
first use. Failures come back as a *QueryError naming each offending field
by its JSON path, which the API returns as VALIDATION_ERROR details.

# Custom Validators

  - slug: letters, digits, spaces, dots, hyphens and underscores. Applied to
    categories, tags, filter types and filter values of a listing query.

# Usage

	q := models.Query{Kind: models.KindModels, Limit: 24}
	if qerr := validation.ValidateQuery(&q, cfg.Aggregator.MaxLimit); qerr != nil {
	    rw.ValidationError(qerr.Error(), qerr.Details())
	    return
	}

The upper bound on limit comes from configuration, so ValidateQuery checks
it separately from the struct tags.
*/
package validation
