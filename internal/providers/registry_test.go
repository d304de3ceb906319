// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"reflect"
	"testing"

	"github.com/tomtom215/lineup/internal/config"
	"github.com/tomtom215/lineup/internal/models"
	"github.com/tomtom215/lineup/internal/taxonomy"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	cfg := testProviderConfig("http://unused.invalid")
	return NewRegistry(
		NewLivefeed(cfg, builtinTaxonomy(t, LivefeedID), DefaultOptions()),
		NewCamstream(cfg, builtinTaxonomy(t, CamstreamID), DefaultOptions()),
		NewVideofeed(cfg, builtinTaxonomy(t, VideofeedID), DefaultOptions()),
	)
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)

	tests := []struct {
		name      string
		selectors []string
		kind      models.ContentKind
		want      []string
		wantErr   error
	}{
		{"empty selects all models", nil, models.KindModels, []string{"livefeed", "camstream"}, nil},
		{"all selects all videos", []string{"all"}, models.KindVideos, []string{"videofeed"}, nil},
		{"single id", []string{"camstream"}, models.KindModels, []string{"camstream"}, nil},
		{"comma list keeps registry order", []string{"camstream, LIVEFEED"}, models.KindModels, []string{"livefeed", "camstream"}, nil},
		{"repeated entries", []string{"livefeed", "livefeed"}, models.KindModels, []string{"livefeed"}, nil},
		{"all wins over names", []string{"camstream", "all"}, models.KindModels, []string{"livefeed", "camstream"}, nil},
		{"unknown id", []string{"nope"}, models.KindModels, nil, ErrUnknownProvider},
		{"wrong kind", []string{"videofeed"}, models.KindModels, nil, ErrUnsupportedKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := reg.Resolve(tt.selectors, tt.kind)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if ids := IDs(got); !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("Resolve() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestRegistry_NoProvidersForKind(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(NewLivefeed(testProviderConfig("http://unused.invalid"), builtinTaxonomy(t, LivefeedID), DefaultOptions()))
	if _, err := reg.Resolve(nil, models.KindVideos); !errors.Is(err, ErrNoProviders) {
		t.Errorf("Resolve() error = %v, want ErrNoProviders", err)
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	replacement := NewLivefeed(testProviderConfig("http://other.invalid"), builtinTaxonomy(t, LivefeedID), DefaultOptions())
	reg.Register(replacement)

	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
	got, ok := reg.Get(" LiveFeed ")
	if !ok || got != Adapter(replacement) {
		t.Error("Get() did not return the replacement adapter")
	}
	if ids := IDs(reg.All()); ids[0] != LivefeedID {
		t.Errorf("order = %v, replacement should keep first slot", ids)
	}
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	taxonomies, err := taxonomy.Load("")
	if err != nil {
		t.Fatalf("taxonomy.Load() error = %v", err)
	}

	cfg := &config.ProvidersConfig{
		Livefeed:  *testProviderConfig("http://a.invalid"),
		Camstream: *testProviderConfig("http://b.invalid"),
		Videofeed: *testProviderConfig("http://c.invalid"),
	}
	cfg.Camstream.Enabled = false

	reg, err := FromConfig(cfg, taxonomies, DefaultOptions())
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	if ids := IDs(reg.All()); !reflect.DeepEqual(ids, []string{LivefeedID, VideofeedID}) {
		t.Errorf("FromConfig() providers = %v", ids)
	}

	if _, err := FromConfig(cfg, taxonomy.NewRegistry(), DefaultOptions()); err == nil {
		t.Error("FromConfig() without taxonomies should fail")
	}
}

// ============================================================================
// Parameter mapping
// ============================================================================

func TestMapParams_SubcategoryEnumerationAndSynonym(t *testing.T) {
	t.Parallel()

	cfg := testProviderConfig("http://unused.invalid")
	live := NewLivefeed(cfg, builtinTaxonomy(t, LivefeedID), DefaultOptions())
	vid := NewVideofeed(cfg, builtinTaxonomy(t, VideofeedID), DefaultOptions())

	// verbatim enumeration hit
	req := live.MapParams(models.Query{Kind: models.KindModels, Category: "girls", Subcategory: "asian", Limit: 24})
	if want := map[string][]string{"ethnicity": {"asian"}}; !reflect.DeepEqual(req.Filters, want) {
		t.Errorf("asian Filters = %v, want %v", req.Filters, want)
	}
	if req.Category != "girl" || req.Limit != 24 || req.Offset != 0 || req.Sort != models.SortDefault {
		t.Errorf("asian request = %+v", req)
	}

	// synonym hit
	req = vid.MapParams(models.Query{Kind: models.KindVideos, Subcategory: "latina", Limit: 24})
	if want := map[string][]string{"ethnicity": {"latin"}}; !reflect.DeepEqual(req.Filters, want) {
		t.Errorf("latina Filters = %v, want %v", req.Filters, want)
	}
}

func TestMapParams_Category(t *testing.T) {
	t.Parallel()

	cfg := testProviderConfig("http://unused.invalid")
	cfg.DefaultOrientation = "gay"
	vid := NewVideofeed(cfg, builtinTaxonomy(t, VideofeedID), DefaultOptions())
	cam := NewCamstream(cfg, builtinTaxonomy(t, CamstreamID), DefaultOptions())

	tests := []struct {
		name         string
		adapter      Adapter
		category     string
		kind         models.ContentKind
		wantCategory string
		wantWarnings int
	}{
		{"videofeed girls", vid, "girls", models.KindVideos, "straight", 0},
		{"videofeed trans", vid, "trans", models.KindVideos, "shemale", 0},
		{"videofeed default orientation", vid, "", models.KindVideos, "gay", 0},
		{"videofeed unknown category", vid, "robots", models.KindVideos, "gay", 1},
		{"camstream couples", cam, "couples", models.KindModels, "c", 0},
		{"camstream unknown category", cam, "robots", models.KindModels, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := tt.adapter.MapParams(models.Query{Kind: tt.kind, Category: tt.category, Limit: 10})
			if req.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", req.Category, tt.wantCategory)
			}
			if len(req.Warnings) != tt.wantWarnings {
				t.Errorf("Warnings = %v, want %d", req.Warnings, tt.wantWarnings)
			}
			if req.Provider != tt.adapter.ID() {
				t.Errorf("Provider = %q", req.Provider)
			}
		})
	}
}

func TestBuildRequest(t *testing.T) {
	t.Parallel()

	cfg := testProviderConfig("http://unused.invalid")
	filters := map[string][]string{"ethnicity": {"asian"}, "tags": {"feet", "toys"}}

	t.Run("livefeed", func(t *testing.T) {
		t.Parallel()
		a := NewLivefeed(cfg, builtinTaxonomy(t, LivefeedID), DefaultOptions())
		r := a.buildRequest(models.ProviderRequest{Category: "girl", Filters: filters, Limit: 12, Offset: 24, Sort: models.SortPopular})
		p := r.params
		checks := map[string]string{
			"siteId": "site-1", "psId": "ps-1", "accessKey": "secret-key",
			"limit": "12", "offset": "24", "category": "girl",
			"ethnicity": "asian", "tags": "feet,toys", "sort": "viewers",
		}
		for k, want := range checks {
			if got := p.Get(k); got != want {
				t.Errorf("%s = %q, want %q", k, got, want)
			}
		}
	})

	t.Run("camstream", func(t *testing.T) {
		t.Parallel()
		a := NewCamstream(cfg, builtinTaxonomy(t, CamstreamID), DefaultOptions())
		r := a.buildRequest(models.ProviderRequest{Category: "f", Filters: filters, Limit: 12})
		p := r.params
		if p.Get("wm") != "wm-1" || p.Get("client_ip") != "203.0.113.7" || p.Get("format") != "json" || p.Get("gender") != "f" {
			t.Errorf("fixed params = %v", p)
		}
		if got := p["tag"]; !reflect.DeepEqual(got, []string{"asian", "feet", "toys"}) {
			t.Errorf("tag = %v", got)
		}
		if p.Get("offset") != "0" {
			t.Errorf("offset = %q, want 0", p.Get("offset"))
		}
	})

	t.Run("videofeed", func(t *testing.T) {
		t.Parallel()
		a := NewVideofeed(cfg, builtinTaxonomy(t, VideofeedID), DefaultOptions())
		r := a.buildRequest(models.ProviderRequest{Filters: filters, Limit: 24, Offset: 48, Sort: models.SortNewest})
		p := r.params
		checks := map[string]string{
			"psId": "ps-1", "accessKey": "secret-key", "sexualOrientation": "straight",
			"limit": "24", "pageIndex": "3", "tags": "asian,feet,toys", "sort": "latest",
		}
		for k, want := range checks {
			if got := p.Get(k); got != want {
				t.Errorf("%s = %q, want %q", k, got, want)
			}
		}
		if r.path != videofeedPath {
			t.Errorf("path = %q", r.path)
		}
	})
}

// ============================================================================
// Pagination
// ============================================================================

func TestCamstreamPagination(t *testing.T) {
	t.Parallel()

	req := models.ProviderRequest{Limit: 10, Offset: 10}

	p := camstreamPagination(newMeta(t, `{"count":35}`), req, 10)
	if !p.TotalKnown || p.Total != 35 || !p.HasMore {
		t.Errorf("count pagination = %+v", p)
	}

	p = camstreamPagination(newMeta(t, `{"has_more":false}`), req, 10)
	if !p.TotalKnown || p.Total != 20 || p.HasMore {
		t.Errorf("has_more=false pagination = %+v", p)
	}

	p = camstreamPagination(newMeta(t, `{}`), req, 10)
	if p.TotalKnown || !p.HasMore {
		t.Errorf("heuristic pagination = %+v", p)
	}
}

func TestVideofeedPagination(t *testing.T) {
	t.Parallel()

	req := models.ProviderRequest{Limit: 20}

	p := videofeedPagination(newMeta(t, `{"data":{"pagination":{"totalPages":4}}}`), req, 20)
	if p.Total != 80 || p.TotalPages != 4 || !p.HasMore {
		t.Errorf("totalPages pagination = %+v", p)
	}

	p = videofeedPagination(newMeta(t, `{"total":5}`), req, 5)
	if p.Total != 5 || p.HasMore {
		t.Errorf("total pagination = %+v", p)
	}
}

// ============================================================================
// Classify
// ============================================================================

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want models.ErrorKind
	}{
		{nil, ""},
		{fmt.Errorf("%w: x", ErrBreakerOpen), models.ErrorKindBreakerOpen},
		{fmt.Errorf("%w: x", ErrProviderTimeout), models.ErrorKindTimeout},
		{context.DeadlineExceeded, models.ErrorKindTimeout},
		{fmt.Errorf("wrapped: %w", timeoutErr{}), models.ErrorKindTimeout},
		{&HTTPError{Provider: "p", Status: 502}, models.ErrorKindHTTP},
		{fmt.Errorf("%w: x", ErrProviderShape), models.ErrorKindShape},
		{errors.New("connection refused"), models.ErrorKindRequest},
	}

	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
