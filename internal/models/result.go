// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package models

import "time"

// ProviderStatus tells a caller where a provider's contribution came from.
type ProviderStatus string

const (
	ProviderLive     ProviderStatus = "live"
	ProviderCached   ProviderStatus = "cached"
	ProviderFallback ProviderStatus = "fallback"
)

// ErrorKind classifies a provider failure recorded in a diagnostic.
type ErrorKind string

const (
	ErrorKindTimeout     ErrorKind = "timeout"
	ErrorKindHTTP        ErrorKind = "http"
	ErrorKindShape       ErrorKind = "shape"
	ErrorKindBreakerOpen ErrorKind = "breaker_open"
	ErrorKindRequest     ErrorKind = "request"
)

// ProviderDiagnostic records how one provider contributed to a result.
type ProviderDiagnostic struct {
	Status     ProviderStatus `json:"status"`
	ItemCount  int            `json:"item_count"`
	Error      string         `json:"error,omitempty"`
	ErrorKind  ErrorKind      `json:"error_kind,omitempty"`
	Warnings   []string       `json:"warnings,omitempty"`
	DurationMs int64          `json:"duration_ms"`
}

// Failed reports whether the provider's slice was replaced by fallback data.
func (d ProviderDiagnostic) Failed() bool {
	return d.Status == ProviderFallback
}

// Result is the canonical aggregation result.
//
// Success is false only when every queried provider failed; Items is still
// populated (with fallback data) in that case and Error carries the
// aggregated message.
type Result struct {
	Success     bool                          `json:"success"`
	Items       []Item                        `json:"items"`
	Pagination  Pagination                    `json:"pagination"`
	Diagnostics map[string]ProviderDiagnostic `json:"diagnostics"`
	Error       string                        `json:"error,omitempty"`
	CachedAt    *time.Time                    `json:"cached_at,omitempty"`
}

// Clone returns a copy that shares no slices or maps with r, so a cached
// result can be annotated without touching the stored value.
func (r Result) Clone() Result {
	out := r
	if r.Items != nil {
		out.Items = make([]Item, len(r.Items))
		for i, it := range r.Items {
			it.Tags = append([]string{}, it.Tags...)
			out.Items[i] = it
		}
	}
	if r.Diagnostics != nil {
		out.Diagnostics = make(map[string]ProviderDiagnostic, len(r.Diagnostics))
		for k, d := range r.Diagnostics {
			d.Warnings = append([]string(nil), d.Warnings...)
			out.Diagnostics[k] = d
		}
	}
	if r.CachedAt != nil {
		t := *r.CachedAt
		out.CachedAt = &t
	}
	return out
}

// AnyFallback reports whether at least one provider fell back.
func (r Result) AnyFallback() bool {
	for _, d := range r.Diagnostics {
		if d.Failed() {
			return true
		}
	}
	return false
}

// CacheEntry is a stored Result with its absolute expiry. Entries are
// replaced wholesale, never patched.
type CacheEntry struct {
	Key       string    `json:"key"`
	Value     Result    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry is stale at now.
func (e CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
