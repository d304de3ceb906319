// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	_ "github.com/tomtom215/lineup/docs"
	"github.com/tomtom215/lineup/internal/aggregator"
	"github.com/tomtom215/lineup/internal/cache"
	"github.com/tomtom215/lineup/internal/models"
	"github.com/tomtom215/lineup/internal/providers"
	"github.com/tomtom215/lineup/internal/taxonomy"
)

// stubAdapter returns req.Limit stub items, or err.
type stubAdapter struct {
	id   string
	kind models.ContentKind
	err  error
	tax  *taxonomy.Taxonomy
}

func (s *stubAdapter) ID() string                   { return s.id }
func (s *stubAdapter) Kind() models.ContentKind     { return s.kind }
func (s *stubAdapter) Taxonomy() *taxonomy.Taxonomy { return s.tax }
func (s *stubAdapter) BreakerState() string         { return "closed" }

func (s *stubAdapter) MapParams(q models.Query) models.ProviderRequest {
	return models.ProviderRequest{Provider: s.id, Limit: q.Limit, Offset: q.Offset}
}

func (s *stubAdapter) Fetch(_ context.Context, req models.ProviderRequest) (interface{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	items := make([]models.Item, req.Limit)
	for i := range items {
		items[i] = models.NewStubItem(s.id, s.kind, req.Offset+i)
	}
	return items, nil
}

func (s *stubAdapter) Normalize(raw interface{}, req models.ProviderRequest) (providers.Page, error) {
	items := raw.([]models.Item)
	return providers.Page{
		Items:      items,
		Pagination: models.NewPagination(0, false, req.Limit, req.Offset, len(items)),
	}, nil
}

type stubStatus []cache.TierStatus

func (s stubStatus) Status() []cache.TierStatus { return s }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func testTaxonomy(id string) *taxonomy.Taxonomy {
	return (&taxonomy.Taxonomy{
		Provider:   id,
		Filters:    map[string][]string{"ethnicity": {"asian", "latin"}},
		Synonyms:   map[string]string{"latina": "latin"},
		Categories: map[string]string{"girls": "girl", "couples": "couple"},
	}).Build()
}

func newTestServer(t *testing.T, status CacheStatus, adapters ...providers.Adapter) http.Handler {
	t.Helper()
	agg := aggregator.New(providers.NewRegistry(adapters...), cache.NewTiered(nil), aggregator.Config{
		ProviderTimeout: time.Second,
		DefaultLimit:    24,
		MaxLimit:        100,
	})
	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true
	return NewRouter(NewHandler(agg, status, time.Minute), mw).Setup()
}

func defaultAdapters() []providers.Adapter {
	return []providers.Adapter{
		&stubAdapter{id: "alpha", kind: models.KindModels, tax: testTaxonomy("alpha")},
		&stubAdapter{id: "beta", kind: models.KindModels},
		&stubAdapter{id: "gamma", kind: models.KindVideos},
	}
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") != "" && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("bad response body %s: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func decodeListing(t *testing.T, env envelope) ListingData {
	t.Helper()
	var data ListingData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("bad listing data %s: %v", env.Data, err)
	}
	return data
}

// ============================================================================
// Listings
// ============================================================================

func TestListings_Get(t *testing.T) {
	h := newTestServer(t, nil, defaultAdapters()...)

	rec, env := do(t, h, http.MethodGet, "/api/v1/listings?kind=models&limit=4&tags=hd,new&f.ethnicity=asian", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !env.Success || env.Error != nil {
		t.Errorf("success = %v, error = %+v", env.Success, env.Error)
	}
	if env.Meta == nil || env.Meta.RequestID == "" {
		t.Error("meta.request_id missing")
	}
	if rec.Header().Get("X-Request-ID") != env.Meta.RequestID {
		t.Error("X-Request-ID header does not match meta.request_id")
	}

	data := decodeListing(t, env)
	if len(data.Items) != 4 {
		t.Errorf("len(items) = %d, want 4", len(data.Items))
	}
	if _, ok := data.Diagnostics["alpha"]; !ok {
		t.Errorf("diagnostics = %v, want alpha and beta", data.Diagnostics)
	}
	if _, ok := data.Diagnostics["gamma"]; ok {
		t.Error("videos provider answered a models query")
	}
}

func TestListings_Post(t *testing.T) {
	h := newTestServer(t, nil, defaultAdapters()...)

	rec, env := do(t, h, http.MethodPost, "/api/v1/listings",
		`{"kind":"videos","limit":3,"providers":["gamma"],"filters":{"ethnicity":["asian"]}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	data := decodeListing(t, env)
	if len(data.Items) != 3 || data.Items[0].Provider != "gamma" {
		t.Errorf("items = %+v", data.Items)
	}
}

func TestListings_Errors(t *testing.T) {
	failing := []providers.Adapter{
		&stubAdapter{id: "alpha", kind: models.KindModels, err: errors.New("connection refused")},
	}

	tests := []struct {
		name     string
		adapters []providers.Adapter
		method   string
		target   string
		body     string
		status   int
		code     string
	}{
		{"missing kind", defaultAdapters(), http.MethodGet, "/api/v1/listings?limit=5", "", http.StatusBadRequest, ErrCodeValidationFailed},
		{"limit above max", defaultAdapters(), http.MethodGet, "/api/v1/listings?kind=models&limit=1000", "", http.StatusBadRequest, ErrCodeValidationFailed},
		{"non-numeric limit", defaultAdapters(), http.MethodGet, "/api/v1/listings?kind=models&limit=ten", "", http.StatusBadRequest, ErrCodeValidationFailed},
		{"bad sort", defaultAdapters(), http.MethodGet, "/api/v1/listings?kind=models&sort=sideways", "", http.StatusBadRequest, ErrCodeValidationFailed},
		{"unknown provider", defaultAdapters(), http.MethodGet, "/api/v1/listings?kind=models&provider=nope", "", http.StatusBadRequest, ErrCodeUnknownProvider},
		{"provider of other kind", defaultAdapters(), http.MethodGet, "/api/v1/listings?kind=models&provider=gamma", "", http.StatusBadRequest, ErrCodeUnknownProvider},
		{"no providers registered", nil, http.MethodGet, "/api/v1/listings?kind=models", "", http.StatusBadRequest, ErrCodeUnknownProvider},
		{"malformed body", defaultAdapters(), http.MethodPost, "/api/v1/listings", `{"kind":`, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown body field", defaultAdapters(), http.MethodPost, "/api/v1/listings", `{"kind":"models","colour":"red"}`, http.StatusBadRequest, ErrCodeBadRequest},
		{"all providers failed", failing, http.MethodGet, "/api/v1/listings?kind=models&limit=6", "", http.StatusOK, ErrCodeAllProvidersFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, nil, tt.adapters...)
			rec, env := do(t, h, tt.method, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if env.Success {
				t.Error("success = true")
			}
			if env.Error == nil || env.Error.Code != tt.code {
				t.Fatalf("error = %+v, want code %s", env.Error, tt.code)
			}
		})
	}
}

func TestListings_AllFailedStillServesItems(t *testing.T) {
	h := newTestServer(t, nil, &stubAdapter{id: "alpha", kind: models.KindModels, err: errors.New("boom")})

	_, env := do(t, h, http.MethodGet, "/api/v1/listings?kind=models&limit=6", "")
	data := decodeListing(t, env)
	if len(data.Items) != 6 {
		t.Errorf("len(items) = %d, want 6 fallback items", len(data.Items))
	}
	if data.Diagnostics["alpha"].Status != models.ProviderFallback {
		t.Errorf("diagnostic = %+v", data.Diagnostics["alpha"])
	}
}

func TestParseListingQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/?kind=MODELS&provider=livefeed,camstream&provider=videofeed&tags=a,,b&f.ethnicity=asian,latina&f.hair_color=red&f.=x&limit=12&offset=24&sort=Random", nil)
	q, err := parseListingQuery(req.URL.Query())
	if err != nil {
		t.Fatalf("parseListingQuery() error = %v", err)
	}

	if q.Kind != models.KindModels {
		t.Errorf("Kind = %q", q.Kind)
	}
	if strings.Join(q.Providers, ",") != "livefeed,camstream,videofeed" {
		t.Errorf("Providers = %v", q.Providers)
	}
	if strings.Join(q.Tags, ",") != "a,b" {
		t.Errorf("Tags = %v", q.Tags)
	}
	if len(q.Filters) != 2 || strings.Join(q.Filters["ethnicity"], ",") != "asian,latina" {
		t.Errorf("Filters = %v", q.Filters)
	}
	if q.Limit != 12 || q.Offset != 24 || q.Sort != models.SortRandom {
		t.Errorf("limit/offset/sort = %d/%d/%s", q.Limit, q.Offset, q.Sort)
	}

	if _, err := parseListingQuery(map[string][]string{"offset": {"-x"}}); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("bad offset error = %v, want ErrInvalidParam", err)
	}
}

// ============================================================================
// Introspection
// ============================================================================

func TestProviders(t *testing.T) {
	h := newTestServer(t, nil, defaultAdapters()...)

	rec, env := do(t, h, http.MethodGet, "/api/v1/providers?kind=models", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var infos []ProviderInfo
	if err := json.Unmarshal(env.Data, &infos); err != nil {
		t.Fatalf("bad data: %v", err)
	}
	if len(infos) != 2 || infos[0].ID != "alpha" || infos[1].ID != "beta" {
		t.Errorf("providers = %+v", infos)
	}
	if infos[0].BreakerState != "closed" {
		t.Errorf("breaker state = %q", infos[0].BreakerState)
	}
}

func TestTaxonomy(t *testing.T) {
	h := newTestServer(t, nil, defaultAdapters()...)

	for i := 0; i < 2; i++ { // second request is served from the view cache
		rec, env := do(t, h, http.MethodGet, "/api/v1/taxonomy/alpha", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var view TaxonomyView
		if err := json.Unmarshal(env.Data, &view); err != nil {
			t.Fatalf("bad data: %v", err)
		}
		if view.Provider != "alpha" || strings.Join(view.Categories, ",") != "couples,girls" {
			t.Errorf("view = %+v", view)
		}
	}

	tests := []string{"/api/v1/taxonomy/nope", "/api/v1/taxonomy/beta"}
	for _, target := range tests {
		rec, env := do(t, h, http.MethodGet, target, "")
		if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
			t.Errorf("%s: status = %d, error = %+v", target, rec.Code, env.Error)
		}
	}
}

// ============================================================================
// Health, metrics, middleware
// ============================================================================

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		status CacheStatus
		path   string
		want   int
	}{
		{"live", nil, "/api/v1/health/live", http.StatusOK},
		{"ready without cache", nil, "/api/v1/health/ready", http.StatusOK},
		{"ready healthy tiers", stubStatus{{Name: "memory", Healthy: true}, {Name: "durable", Healthy: true}}, "/api/v1/health/ready", http.StatusOK},
		{"ready degraded tier", stubStatus{{Name: "memory", Healthy: true}, {Name: "durable", Healthy: false}}, "/api/v1/health/ready", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, tt.status, defaultAdapters()...)
			rec, _ := do(t, h, http.MethodGet, tt.path, "")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("security headers missing")
			}
		})
	}
}

func TestHealthReady_CacheCounters(t *testing.T) {
	status := stubStatus{
		{Name: "memory", Healthy: true, Entries: 2, Hits: 3, Misses: 1, HitRate: 75},
		{Name: "none", Healthy: true},
	}
	h := newTestServer(t, status, defaultAdapters()...)
	rec, env := do(t, h, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var data struct {
		Cache []cache.TierStatus `json:"cache"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Cache) != 2 || data.Cache[0].HitRate != 75 || data.Cache[0].Hits != 3 {
		t.Errorf("cache = %+v", data.Cache)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, nil, defaultAdapters()...)
	do(t, h, http.MethodGet, "/api/v1/listings?kind=models&limit=2", "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("api_requests_total not exposed")
	}
}

func TestSwaggerDoc(t *testing.T) {
	h := newTestServer(t, nil, defaultAdapters()...)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var doc struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, path := range []string{"/listings", "/providers", "/taxonomy/{provider}"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("path %s missing from document", path)
		}
	}
}

func TestNotFoundRoute(t *testing.T) {
	h := newTestServer(t, nil, defaultAdapters()...)
	rec, env := do(t, h, http.MethodGet, "/api/v2/nothing", "")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("status = %d, error = %+v", rec.Code, env.Error)
	}
}

func TestRateLimit(t *testing.T) {
	agg := aggregator.New(providers.NewRegistry(defaultAdapters()...), nil, aggregator.Config{MaxLimit: 100})
	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitRequests = 2
	mw.RateLimitWindow = time.Minute
	h := NewRouter(NewHandler(agg, nil, time.Minute), mw).Setup()

	var last int
	for i := 0; i < 3; i++ {
		rec, _ := do(t, h, http.MethodGet, "/api/v1/providers", "")
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", last)
	}
}

func TestCORSPreflight(t *testing.T) {
	agg := aggregator.New(providers.NewRegistry(defaultAdapters()...), nil, aggregator.Config{})
	mw := DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = []string{"https://app.example.com"}
	mw.RateLimitDisabled = true
	h := NewRouter(NewHandler(agg, nil, time.Minute), mw).Setup()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/listings", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
