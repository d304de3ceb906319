// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/lineup/internal/aggregator"
	"github.com/tomtom215/lineup/internal/logging"
	"github.com/tomtom215/lineup/internal/models"
	"github.com/tomtom215/lineup/internal/providers"
	"github.com/tomtom215/lineup/internal/validation"
)

// ListingData is the data payload of a listing response.
type ListingData struct {
	Items       []models.Item                        `json:"items"`
	Pagination  models.Pagination                    `json:"pagination"`
	Diagnostics map[string]models.ProviderDiagnostic `json:"diagnostics"`
	CachedAt    *time.Time                           `json:"cached_at,omitempty"`
}

// Listings handles GET /api/v1/listings.
//
// @Summary Get an aggregated listing
// @Description Fans the query out to every selected provider, normalizes and merges the pages. Failed providers contribute placeholder items and a diagnostic.
// @Tags Listings
// @Produce json
// @Param kind query string true "Content kind" Enums(models, videos)
// @Param provider query string false "Provider IDs, repeated or comma-separated; all when omitted"
// @Param category query string false "Canonical category"
// @Param subcategory query string false "Canonical subcategory"
// @Param tags query string false "Comma-separated canonical tags" example("blonde,couple")
// @Param limit query int false "Items per page" default(24) minimum(1)
// @Param offset query int false "Global offset" default(0) minimum(0)
// @Param sort query string false "Sort order" Enums(popular, newest, random)
// @Success 200 {object} APIResponse{data=ListingData} "Listing; success is false when every provider failed"
// @Failure 400 {object} APIResponse "Invalid query or unknown provider"
// @Failure 429 {object} APIResponse "Rate limit exceeded"
// @Router /listings [get]
func (h *Handler) Listings(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q, err := parseListingQuery(r.URL.Query())
	if err != nil {
		rw.ValidationError(err.Error(), nil)
		return
	}
	h.serveListing(rw, r, q)
}

// ListingsPost handles POST /api/v1/listings with a JSON query body.
//
// @Summary Get an aggregated listing from a JSON query
// @Tags Listings
// @Accept json
// @Produce json
// @Param query body models.Query true "Canonical listing query"
// @Success 200 {object} APIResponse{data=ListingData}
// @Failure 400 {object} APIResponse "Malformed body or invalid query"
// @Router /listings [post]
func (h *Handler) ListingsPost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q, err := decodeListingQuery(w, r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	h.serveListing(rw, r, q)
}

func (h *Handler) serveListing(rw *ResponseWriter, r *http.Request, q models.Query) {
	res, err := h.agg.Aggregate(r.Context(), q)
	if err != nil {
		h.writeAggregateError(rw, r, err)
		return
	}

	data := ListingData{
		Items:       res.Items,
		Pagination:  res.Pagination,
		Diagnostics: res.Diagnostics,
		CachedAt:    res.CachedAt,
	}

	// Every provider fell back: the items are still served so the page is
	// never empty.
	if !res.Success {
		rw.Partial(data, ErrCodeAllProvidersFailed, res.Error)
		return
	}
	rw.Success(data)
}

func (h *Handler) writeAggregateError(rw *ResponseWriter, r *http.Request, err error) {
	var qerr *validation.QueryError
	switch {
	case errors.As(err, &qerr):
		rw.ValidationError(qerr.Error(), qerr.Details())
	case errors.Is(err, aggregator.ErrInvalidQuery):
		rw.ValidationError(err.Error(), nil)
	case errors.Is(err, providers.ErrUnknownProvider),
		errors.Is(err, providers.ErrUnsupportedKind),
		errors.Is(err, providers.ErrNoProviders):
		rw.Error(http.StatusBadRequest, ErrCodeUnknownProvider, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Listing request abandoned by client")
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "request cancelled")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Aggregation failed")
		rw.InternalError("aggregation failed")
	}
}
