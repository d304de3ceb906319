// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/lineup/internal/cache"
	"github.com/tomtom215/lineup/internal/models"
)

// ProviderInfo describes one registered provider.
type ProviderInfo struct {
	ID           string             `json:"id"`
	Kind         models.ContentKind `json:"kind"`
	BreakerState string             `json:"breaker_state"`
}

// TaxonomyView is the public form of a provider's vocabulary.
type TaxonomyView struct {
	Provider   string              `json:"provider"`
	Filters    map[string][]string `json:"filters"`
	Categories []string            `json:"categories"`
	Synonyms   map[string]string   `json:"synonyms,omitempty"`
}

// Providers handles GET /api/v1/providers.
//
// @Summary List registered providers
// @Tags Providers
// @Produce json
// @Param kind query string false "Only providers serving this kind" Enums(models, videos)
// @Success 200 {object} APIResponse{data=[]ProviderInfo}
// @Router /providers [get]
func (h *Handler) Providers(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	kind := models.ContentKind(r.URL.Query().Get("kind"))
	adapters := h.agg.Registry().All()
	out := make([]ProviderInfo, 0, len(adapters))
	for _, a := range adapters {
		if kind != "" && a.Kind() != kind {
			continue
		}
		out = append(out, ProviderInfo{
			ID:           a.ID(),
			Kind:         a.Kind(),
			BreakerState: a.BreakerState(),
		})
	}
	rw.Success(out)
}

// Taxonomy handles GET /api/v1/taxonomy/{provider}.
//
// @Summary Get a provider's filter vocabulary
// @Tags Providers
// @Produce json
// @Param provider path string true "Provider ID"
// @Success 200 {object} APIResponse{data=TaxonomyView}
// @Failure 404 {object} APIResponse "Unknown provider"
// @Router /taxonomy/{provider} [get]
func (h *Handler) Taxonomy(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "provider")

	key := cache.GenerateKey("taxonomy", id)
	if view, ok := h.taxonomy.Get(key); ok {
		rw.Success(view)
		return
	}

	a, ok := h.agg.Registry().Get(id)
	if !ok {
		rw.NotFound("unknown provider: " + id)
		return
	}
	tax := a.Taxonomy()
	if tax == nil {
		rw.NotFound("no taxonomy for provider: " + id)
		return
	}

	categories := make([]string, 0, len(tax.Categories))
	for c := range tax.Categories {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	view := TaxonomyView{
		Provider:   a.ID(),
		Filters:    tax.Filters,
		Categories: categories,
		Synonyms:   tax.Synonyms,
	}
	h.taxonomy.Set(key, view)
	rw.Success(view)
}
