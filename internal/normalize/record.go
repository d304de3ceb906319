// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package normalize

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Record is one decoded provider record (the output of decoding JSON into
// an interface{}). Every accessor takes an ordered chain of dotted paths and
// returns the first usable value; a missing or mistyped field simply moves
// on to the next path. No accessor panics on any input.
type Record struct {
	obj map[string]interface{}
}

// NewRecord wraps raw. ok is false when raw is not a JSON object, in which
// case the caller should emit a stub item.
func NewRecord(raw interface{}) (Record, bool) {
	obj, ok := raw.(map[string]interface{})
	return Record{obj: obj}, ok
}

// Raw returns the underlying object.
func (r Record) Raw() map[string]interface{} {
	return r.obj
}

// Get resolves a dotted path. Numeric segments index into arrays, so
// "images.0.url" reads the first image's url.
func (r Record) Get(path string) (interface{}, bool) {
	return Lookup(r.obj, path)
}

// Lookup resolves a dotted path against any decoded JSON value.
func Lookup(v interface{}, path string) (interface{}, bool) {
	if path == "" {
		return v, v != nil
	}
	cur := v
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]interface{}:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []interface{}:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}

// String returns the first non-blank string among paths. Numbers are
// formatted without a fractional part when integral, since providers send
// identifiers as either.
func (r Record) String(paths ...string) string {
	for _, p := range paths {
		v, ok := r.Get(p)
		if !ok {
			continue
		}
		if s, ok := asString(v); ok {
			return s
		}
	}
	return ""
}

// Int returns the first value among paths that reads as an integer.
func (r Record) Int(paths ...string) (int64, bool) {
	for _, p := range paths {
		v, ok := r.Get(p)
		if !ok {
			continue
		}
		if n, ok := asInt(v); ok {
			return n, true
		}
	}
	return 0, false
}

// Bool returns the first value among paths that reads as a boolean.
// Accepts JSON booleans, numbers (non-zero is true) and the strings
// true/false, yes/no, 1/0, online/offline.
func (r Record) Bool(paths ...string) (bool, bool) {
	for _, p := range paths {
		v, ok := r.Get(p)
		if !ok {
			continue
		}
		if b, ok := asBool(v); ok {
			return b, true
		}
	}
	return false, false
}

// Tags returns the first non-empty tag list among paths. A path may hold an
// array of strings, an array of objects with a name or tag field, or one
// comma separated string. The result is lower-cased, de-duplicated, sorted
// and never nil.
func (r Record) Tags(paths ...string) []string {
	for _, p := range paths {
		v, ok := r.Get(p)
		if !ok {
			continue
		}
		if tags := asTags(v); len(tags) > 0 {
			return tags
		}
	}
	return []string{}
}

// FirstImage reads a URL from path, which may be a plain string, an object
// keyed by size ("large", "medium", ...) or an array of either. sizes is
// the preference order for keyed objects.
func (r Record) FirstImage(path string, sizes ...string) string {
	v, ok := r.Get(path)
	if !ok {
		return ""
	}
	return imageURL(v, sizes)
}

func imageURL(v interface{}, sizes []string) string {
	switch node := v.(type) {
	case string:
		return strings.TrimSpace(node)
	case []interface{}:
		for _, el := range node {
			if u := imageURL(el, sizes); u != "" {
				return u
			}
		}
	case map[string]interface{}:
		for _, size := range sizes {
			if el, ok := node[size]; ok {
				if u := imageURL(el, sizes); u != "" {
					return u
				}
			}
		}
		for _, key := range []string{"url", "src", "href"} {
			if s, ok := node[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func asString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case int:
		return strconv.Itoa(t), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	}
	return "", false
}

func asInt(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || math.Abs(t) > math.MaxInt64/2 {
			return 0, false
		}
		return int64(t), true
	case int64:
		return t, true
	case int:
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return 0, false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return asInt(f)
		}
	}
	return 0, false
}

func asBool(v interface{}) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		return t != 0, true
	case int64:
		return t != 0, true
	case int:
		return t != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1", "online", "public":
			return true, true
		case "false", "no", "0", "offline":
			return false, true
		}
	}
	return false, false
}

func asTags(v interface{}) []string {
	var raw []string
	switch t := v.(type) {
	case string:
		raw = strings.FieldsFunc(t, func(r rune) bool { return r == ',' || r == '|' || r == ';' })
	case []interface{}:
		for _, el := range t {
			switch e := el.(type) {
			case string:
				raw = append(raw, e)
			case map[string]interface{}:
				for _, key := range []string{"name", "tag", "slug", "title"} {
					if s, ok := e[key].(string); ok {
						raw = append(raw, s)
						break
					}
				}
			}
		}
	default:
		return nil
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
