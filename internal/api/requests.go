// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/lineup/internal/models"
)

// filterParamPrefix marks a query parameter as a filter: f.ethnicity=asian,latina.
const filterParamPrefix = "f."

// parseListingQuery builds a canonical query from GET parameters.
//
//	provider  repeated or comma list; "all" or absent selects every provider
//	kind      models | videos
//	tags      comma list
//	f.<type>  comma list of filter values
//	limit, offset, sort, category, subcategory
func parseListingQuery(values url.Values) (models.Query, error) {
	q := models.Query{
		Kind:        models.ContentKind(strings.ToLower(strings.TrimSpace(values.Get("kind")))),
		Category:    strings.TrimSpace(values.Get("category")),
		Subcategory: strings.TrimSpace(values.Get("subcategory")),
		Sort:        models.SortOrder(strings.ToLower(strings.TrimSpace(values.Get("sort")))),
	}

	for _, key := range []string{"provider", "providers"} {
		for _, v := range values[key] {
			q.Providers = append(q.Providers, parseCommaSeparated(v)...)
		}
	}
	for _, v := range values["tags"] {
		q.Tags = append(q.Tags, parseCommaSeparated(v)...)
	}

	for key, vals := range values {
		typ, ok := strings.CutPrefix(key, filterParamPrefix)
		if !ok || typ == "" {
			continue
		}
		for _, v := range vals {
			parsed := parseCommaSeparated(v)
			if len(parsed) == 0 {
				continue
			}
			if q.Filters == nil {
				q.Filters = map[string][]string{}
			}
			q.Filters[typ] = append(q.Filters[typ], parsed...)
		}
	}

	var err error
	if q.Limit, err = parseIntParam(values, "limit"); err != nil {
		return q, err
	}
	if q.Offset, err = parseIntParam(values, "offset"); err != nil {
		return q, err
	}
	return q, nil
}

// decodeListingQuery reads a JSON query body.
func decodeListingQuery(w http.ResponseWriter, r *http.Request) (models.Query, error) {
	var q models.Query
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&q); err != nil {
		return q, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	q.Kind = models.ContentKind(strings.ToLower(strings.TrimSpace(string(q.Kind))))
	q.Sort = models.SortOrder(strings.ToLower(strings.TrimSpace(string(q.Sort))))
	return q, nil
}

// parseIntParam returns 0 for an absent parameter.
func parseIntParam(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidParam, key)
	}
	return n, nil
}

// parseCommaSeparated splits a comma list, trimming and dropping empty entries.
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
