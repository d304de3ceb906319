// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestNewPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		total     int
		known     bool
		limit     int
		offset    int
		returned  int
		wantPage  int
		wantPages int
		wantMore  bool
		wantTotal int
	}{
		{"known first page", 100, true, 24, 0, 24, 1, 5, true, 100},
		{"known last page", 100, true, 24, 96, 4, 5, 5, false, 100},
		{"known exact fit", 48, true, 24, 24, 24, 2, 2, false, 48},
		{"known empty", 0, true, 24, 0, 0, 1, 0, false, 0},
		{"unknown full page", 0, false, 24, 0, 24, 1, 2, true, 24},
		{"unknown short page", 0, false, 24, 24, 10, 2, 2, false, 34},
		{"zero limit clamps", 10, true, 0, 0, 0, 1, 10, true, 10},
		{"negative total clamps", -5, true, 10, 0, 0, 1, 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.known, tt.limit, tt.offset, tt.returned)
			if p.CurrentPage != tt.wantPage {
				t.Errorf("CurrentPage = %d, want %d", p.CurrentPage, tt.wantPage)
			}
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.HasMore != tt.wantMore {
				t.Errorf("HasMore = %v, want %v", p.HasMore, tt.wantMore)
			}
			if p.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", p.Total, tt.wantTotal)
			}
			if p.HasMore != (p.CurrentPage < p.TotalPages) {
				t.Errorf("HasMore %v inconsistent with page %d of %d", p.HasMore, p.CurrentPage, p.TotalPages)
			}
		})
	}
}

func TestMergePagination(t *testing.T) {
	t.Parallel()

	t.Run("sums known totals", func(t *testing.T) {
		parts := []Pagination{
			NewPagination(60, true, 12, 0, 12),
			NewPagination(40, true, 12, 0, 12),
		}
		p := MergePagination(parts, 24, 0)
		if p.Total != 100 || !p.TotalKnown {
			t.Errorf("Total = %d known=%v, want 100 known", p.Total, p.TotalKnown)
		}
		if !p.HasMore {
			t.Error("expected HasMore")
		}
		if p.TotalPages != 5 {
			t.Errorf("TotalPages = %d, want 5", p.TotalPages)
		}
	})

	t.Run("any provider with more wins", func(t *testing.T) {
		parts := []Pagination{
			NewPagination(12, true, 12, 0, 12),
			NewPagination(0, false, 12, 0, 12),
		}
		p := MergePagination(parts, 24, 0)
		if !p.HasMore {
			t.Error("expected HasMore when one provider reports a full page")
		}
		if p.TotalKnown {
			t.Error("TotalKnown must be false when one provider lacks totals")
		}
		if p.CurrentPage >= p.TotalPages {
			t.Errorf("page %d of %d contradicts HasMore", p.CurrentPage, p.TotalPages)
		}
	})

	t.Run("nothing more clamps pages", func(t *testing.T) {
		parts := []Pagination{
			NewPagination(30, true, 12, 12, 12),
			NewPagination(0, false, 12, 12, 3),
		}
		p := MergePagination(parts, 24, 24)
		if p.CurrentPage != 2 {
			t.Errorf("CurrentPage = %d, want 2", p.CurrentPage)
		}
		if p.HasMore != (p.CurrentPage < p.TotalPages) {
			t.Errorf("HasMore %v inconsistent with page %d of %d", p.HasMore, p.CurrentPage, p.TotalPages)
		}
	})

	t.Run("no parts", func(t *testing.T) {
		p := MergePagination(nil, 24, 0)
		if p.HasMore || p.TotalKnown || p.Total != 0 {
			t.Errorf("unexpected merge of nothing: %+v", p)
		}
	})
}

func TestNewStubItem(t *testing.T) {
	t.Parallel()

	item := NewStubItem("camstream", KindModels, 7)

	if item.ID != "camstream:stub-7" {
		t.Errorf("ID = %q", item.ID)
	}
	if item.Tags == nil {
		t.Error("Tags must never be nil")
	}
	if item.ThumbnailURL != PlaceholderThumbnail || item.PreviewURL != PlaceholderPreview {
		t.Error("stub must use placeholder media")
	}
	if item.Provider != "camstream" || item.Status != StatusUnknown {
		t.Errorf("unexpected stub %+v", item)
	}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, field := range []string{`"_provider":"camstream"`, `"tags":[]`, `"display_name":"Unknown"`} {
		if !strings.Contains(s, field) {
			t.Errorf("stub JSON missing %s: %s", field, s)
		}
	}
	if strings.Contains(s, "raw_data_ref") {
		t.Errorf("raw_data_ref must be omitted when empty: %s", s)
	}
}

func TestQueryHelpers(t *testing.T) {
	t.Parallel()

	q := Query{Kind: KindModels, Limit: 24}
	if q.IsLoadMore() {
		t.Error("offset 0 is a fresh request")
	}
	if q.SortOrDefault() != SortDefault {
		t.Errorf("SortOrDefault = %q", q.SortOrDefault())
	}

	q.Offset = 24
	if !q.IsLoadMore() {
		t.Error("positive offset is a load more")
	}

	q.Filters = map[string][]string{"hair_color": {"red"}, "age": {"20s"}, "ethnicity": {"asian"}}
	got := strings.Join(q.FilterTypes(), ",")
	if got != "age,ethnicity,hair_color" {
		t.Errorf("FilterTypes = %s", got)
	}
}

func TestResultClone(t *testing.T) {
	t.Parallel()

	now := time.Now()
	orig := Result{
		Success: true,
		Items:   []Item{{ID: "a:1", Tags: []string{"x"}}},
		Diagnostics: map[string]ProviderDiagnostic{
			"a": {Status: ProviderLive, Warnings: []string{"w"}},
		},
		CachedAt: &now,
	}

	c := orig.Clone()
	c.Items[0].Tags[0] = "changed"
	c.Diagnostics["a"] = ProviderDiagnostic{Status: ProviderCached}
	*c.CachedAt = now.Add(time.Hour)

	if orig.Items[0].Tags[0] != "x" {
		t.Error("clone shares item tags")
	}
	if orig.Diagnostics["a"].Status != ProviderLive {
		t.Error("clone shares diagnostics map")
	}
	if !orig.CachedAt.Equal(now) {
		t.Error("clone shares CachedAt")
	}
}

func TestResultAnyFallback(t *testing.T) {
	t.Parallel()

	r := Result{Diagnostics: map[string]ProviderDiagnostic{
		"a": {Status: ProviderLive},
		"b": {Status: ProviderFallback},
	}}
	if !r.AnyFallback() {
		t.Error("expected fallback to be detected")
	}
	delete(r.Diagnostics, "b")
	if r.AnyFallback() {
		t.Error("no fallback expected")
	}
}

func TestCacheEntryExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	e := CacheEntry{ExpiresAt: now.Add(time.Second)}
	if e.Expired(now) {
		t.Error("entry should still be fresh")
	}
	if !e.Expired(now.Add(time.Second)) {
		t.Error("entry should be expired at its deadline")
	}
}
