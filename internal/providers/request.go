// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package providers

import (
	"net/url"
	"strconv"
)

// apiRequest holds the path and query parameters of one provider call
type apiRequest struct {
	path   string
	params url.Values
}

// newAPIRequest creates a new API request for the given path
func newAPIRequest(path string) *apiRequest {
	return &apiRequest{
		path:   path,
		params: url.Values{},
	}
}

// addParam adds a parameter to the request (only if non-empty)
func (r *apiRequest) addParam(key, value string) *apiRequest {
	if value != "" {
		r.params.Set(key, value)
	}
	return r
}

// addIntParam adds an integer parameter to the request (only if > 0)
func (r *apiRequest) addIntParam(key string, value int) *apiRequest {
	if value > 0 {
		r.params.Set(key, strconv.Itoa(value))
	}
	return r
}

// addIntParamZero adds an integer parameter to the request (even if 0)
func (r *apiRequest) addIntParamZero(key string, value int) *apiRequest {
	if value >= 0 {
		r.params.Set(key, strconv.Itoa(value))
	}
	return r
}

// addRepeated adds one key=value pair per value
func (r *apiRequest) addRepeated(key string, values []string) *apiRequest {
	for _, v := range values {
		if v != "" {
			r.params.Add(key, v)
		}
	}
	return r
}
