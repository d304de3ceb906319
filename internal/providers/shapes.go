// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package providers

import (
	"sort"

	"github.com/tomtom215/lineup/internal/normalize"
)

// Envelope is a located item array together with the response object that
// carries pagination fields. Meta is the zero Record for bare arrays.
type Envelope struct {
	Shape string
	Items []interface{}
	Meta  normalize.Record
}

// Matcher recognizes one response envelope shape.
type Matcher struct {
	Name  string
	Match func(raw interface{}) (Envelope, bool)
}

// MatchShape tries matchers in order and returns the first match.
func MatchShape(raw interface{}, matchers []Matcher) (Envelope, bool) {
	for _, m := range matchers {
		if env, ok := m.Match(raw); ok {
			return env, true
		}
	}
	return Envelope{}, false
}

// ArrayAt matches an object whose dotted path holds an array. An empty
// array is a match: the provider answered in this shape with no items.
func ArrayAt(path string) Matcher {
	return Matcher{
		Name: path + "[]",
		Match: func(raw interface{}) (Envelope, bool) {
			rec, ok := normalize.NewRecord(raw)
			if !ok {
				return Envelope{}, false
			}
			v, ok := rec.Get(path)
			if !ok {
				return Envelope{}, false
			}
			arr, ok := v.([]interface{})
			if !ok {
				return Envelope{}, false
			}
			return Envelope{Shape: path + "[]", Items: arr, Meta: rec}, true
		},
	}
}

// BareArray matches a top-level JSON array.
func BareArray() Matcher {
	return Matcher{
		Name: "[]",
		Match: func(raw interface{}) (Envelope, bool) {
			arr, ok := raw.([]interface{})
			if !ok {
				return Envelope{}, false
			}
			return Envelope{Shape: "[]", Items: arr}, true
		},
	}
}

// ArrayScan is the last-resort matcher: it scans the object's keys in
// sorted order, then the keys of nested objects one level down, for the
// first array holding at least one object.
func ArrayScan() Matcher {
	return Matcher{
		Name: "scan",
		Match: func(raw interface{}) (Envelope, bool) {
			rec, ok := normalize.NewRecord(raw)
			if !ok {
				return Envelope{}, false
			}
			obj := rec.Raw()

			keys := sortedKeys(obj)
			for _, k := range keys {
				if arr, ok := objectArray(obj[k]); ok {
					return Envelope{Shape: "scan:" + k, Items: arr, Meta: rec}, true
				}
			}
			for _, k := range keys {
				nested, ok := obj[k].(map[string]interface{})
				if !ok {
					continue
				}
				for _, nk := range sortedKeys(nested) {
					if arr, ok := objectArray(nested[nk]); ok {
						return Envelope{Shape: "scan:" + k + "." + nk, Items: arr, Meta: rec}, true
					}
				}
			}
			return Envelope{}, false
		},
	}
}

func objectArray(v interface{}) ([]interface{}, bool) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	for _, el := range arr {
		if _, isObj := el.(map[string]interface{}); isObj {
			return arr, true
		}
	}
	return nil, false
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
