// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

/*
Package taxonomy translates canonical filter sets into each provider's
vocabulary.

Every provider ships a YAML taxonomy (see taxonomies/) listing its legal
values per filter type, a synonym table and its category codes. Map resolves
the tags, subcategory and filters of a models.Query against one taxonomy:

	reg, err := taxonomy.Load(cfg.Taxonomy.Dir)
	t, _ := reg.Get("livefeed")
	m := taxonomy.Map(query, t)
	// m.Filters: {"ethnicity": ["latin"]}
	// m.Warnings: values that resolved nowhere and were dropped

Values that are not legal anywhere are never guessed; they are dropped and
reported as a Warning.
*/
package taxonomy
