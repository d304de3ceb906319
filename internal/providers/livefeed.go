// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package providers

import (
	"context"
	"sort"

	"github.com/tomtom215/lineup/internal/config"
	"github.com/tomtom215/lineup/internal/models"
	"github.com/tomtom215/lineup/internal/normalize"
	"github.com/tomtom215/lineup/internal/taxonomy"
)

// LivefeedID is the registry ID of the live model feed.
const LivefeedID = "livefeed"

const livefeedPath = "/api/v2/models"

// Livefeed adapts the live model feed. Requests carry siteId, psId and
// accessKey; filters are sent as one comma-joined parameter per type.
type Livefeed struct {
	*base
	siteID    string
	partnerID string
	accessKey string
}

var _ Adapter = (*Livefeed)(nil)

// NewLivefeed creates the livefeed adapter.
func NewLivefeed(cfg *config.ProviderConfig, tax *taxonomy.Taxonomy, opts Options) *Livefeed {
	return &Livefeed{
		base: &base{
			id:      LivefeedID,
			kind:    models.KindModels,
			tax:     tax,
			client:  NewClient(LivefeedID, cfg, opts.Breaker),
			keepRaw: opts.KeepRaw,
			matchers: []Matcher{
				ArrayAt("data.models"),
				ArrayAt("models"),
				ArrayAt("results"),
				BareArray(),
				ArrayScan(),
			},
			item:       livefeedItem,
			pagination: totalPagination("data.pagination.total", "pagination.total", "total", "count"),
		},
		siteID:    cfg.SiteID,
		partnerID: cfg.PartnerID,
		accessKey: cfg.AccessKey,
	}
}

// MapParams implements Adapter.
func (l *Livefeed) MapParams(q models.Query) models.ProviderRequest {
	return l.mapQuery(q)
}

// Fetch implements Adapter.
func (l *Livefeed) Fetch(ctx context.Context, req models.ProviderRequest) (interface{}, error) {
	r := l.buildRequest(req)
	return l.client.GetJSON(ctx, r.path, r.params)
}

func (l *Livefeed) buildRequest(req models.ProviderRequest) *apiRequest {
	r := newAPIRequest(livefeedPath).
		addParam("siteId", l.siteID).
		addParam("psId", l.partnerID).
		addParam("accessKey", l.accessKey).
		addIntParam("limit", req.Limit).
		addIntParamZero("offset", req.Offset).
		addParam("category", req.Category)

	types := make([]string, 0, len(req.Filters))
	for typ := range req.Filters {
		types = append(types, typ)
	}
	sort.Strings(types)
	for _, typ := range types {
		r.addParam(typ, filterValue(req, typ))
	}

	switch req.Sort {
	case models.SortPopular:
		r.addParam("sort", "viewers")
	case models.SortNewest:
		r.addParam("sort", "newest")
	}
	return r
}

func livefeedItem(rec normalize.Record, _ int) models.Item {
	online, _ := rec.Bool("isOnline", "is_online", "online")
	viewers, _ := rec.Int("viewerCount", "viewers", "membersCount")

	thumb := normalize.FirstURL("",
		rec.String("thumbnail", "thumbnailUrl", "profilePictureUrl"),
		rec.FirstImage("images", "large", "medium", "small"),
		rec.FirstImage("avatar", "large", "medium", "small"),
	)
	preview := normalize.FirstURL("",
		rec.String("previewUrl", "preview_url", "preview.url"),
		rec.FirstImage("images.preview", "large", "medium"),
	)

	return models.Item{
		ID:           rec.String("id", "modelId", "performerId"),
		Slug:         normalize.Slugify(rec.String("username", "slug", "screenName")),
		DisplayName:  rec.String("displayName", "display_name", "screenName", "username"),
		ThumbnailURL: thumb,
		PreviewURL:   preview,
		Tags:         rec.Tags("tags", "categories", "labels"),
		IsOnline:     online,
		Status:       normalize.NormalizeStatus(rec.String("status", "onlineStatus"), online),
		ViewerCount:  int(viewers),
	}
}
