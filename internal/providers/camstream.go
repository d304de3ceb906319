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

// CamstreamID is the registry ID of the room-based cam feed.
const CamstreamID = "camstream"

const camstreamPath = "/api/affiliates/rooms"

// Camstream adapts the affiliate room feed. The provider has a single tag
// facet, so every resolved filter value is sent as a repeated tag parameter.
type Camstream struct {
	*base
	campaign string
	clientIP string
}

var _ Adapter = (*Camstream)(nil)

// NewCamstream creates the camstream adapter.
func NewCamstream(cfg *config.ProviderConfig, tax *taxonomy.Taxonomy, opts Options) *Camstream {
	return &Camstream{
		base: &base{
			id:      CamstreamID,
			kind:    models.KindModels,
			tax:     tax,
			client:  NewClient(CamstreamID, cfg, opts.Breaker),
			keepRaw: opts.KeepRaw,
			matchers: []Matcher{
				ArrayAt("results"),
				ArrayAt("rooms"),
				ArrayAt("data"),
				BareArray(),
				ArrayScan(),
			},
			item:       camstreamItem,
			pagination: camstreamPagination,
		},
		campaign: cfg.Campaign,
		clientIP: cfg.ClientIP,
	}
}

// MapParams implements Adapter.
func (c *Camstream) MapParams(q models.Query) models.ProviderRequest {
	return c.mapQuery(q)
}

// Fetch implements Adapter.
func (c *Camstream) Fetch(ctx context.Context, req models.ProviderRequest) (interface{}, error) {
	r := c.buildRequest(req)
	return c.client.GetJSON(ctx, r.path, r.params)
}

func (c *Camstream) buildRequest(req models.ProviderRequest) *apiRequest {
	r := newAPIRequest(camstreamPath).
		addParam("wm", c.campaign).
		addParam("client_ip", c.clientIP).
		addParam("format", "json").
		addIntParam("limit", req.Limit).
		addIntParamZero("offset", req.Offset).
		addParam("gender", req.Category)

	types := make([]string, 0, len(req.Filters))
	for typ := range req.Filters {
		types = append(types, typ)
	}
	sort.Strings(types)
	for _, typ := range types {
		r.addRepeated("tag", req.Filters[typ])
	}
	return r
}

// camstreamPagination prefers a reported count. An explicit has_more=false
// pins the total to what has been seen so far.
func camstreamPagination(meta normalize.Record, req models.ProviderRequest, returned int) models.Pagination {
	if total, ok := meta.Int("count", "total_count"); ok && total >= 0 {
		return models.NewPagination(int(total), true, req.Limit, req.Offset, returned)
	}
	if more, ok := meta.Bool("has_more"); ok && !more {
		return models.NewPagination(req.Offset+returned, true, req.Limit, req.Offset, returned)
	}
	return models.NewPagination(0, false, req.Limit, req.Offset, returned)
}

func camstreamItem(rec normalize.Record, _ int) models.Item {
	show := rec.String("current_show", "status")
	online, known := rec.Bool("is_online", "online")
	if !known {
		online = show != "" && show != models.StatusOffline
	}
	viewers, _ := rec.Int("num_users", "viewers", "viewer_count")
	username := rec.String("username", "room", "slug")

	thumb := normalize.FirstURL("",
		rec.String("image_url_360x270", "image_url", "thumbnail"),
		rec.FirstImage("images", "large", "medium", "small"),
	)

	return models.Item{
		ID:           rec.String("id", "room_id", "username"),
		Slug:         normalize.Slugify(username),
		DisplayName:  rec.String("display_name", "displayName", "username"),
		ThumbnailURL: thumb,
		PreviewURL:   rec.String("preview_url", "image_url"),
		Tags:         rec.Tags("tags"),
		IsOnline:     online,
		Status:       normalize.NormalizeStatus(show, online),
		ViewerCount:  int(viewers),
	}
}
