// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package providers

import (
	"context"
	"sort"
	"strings"

	"github.com/tomtom215/lineup/internal/config"
	"github.com/tomtom215/lineup/internal/models"
	"github.com/tomtom215/lineup/internal/normalize"
	"github.com/tomtom215/lineup/internal/taxonomy"
)

// VideofeedID is the registry ID of the video promotion feed.
const VideofeedID = "videofeed"

const videofeedPath = "/api/video-promotion/v1/list"

// Videofeed adapts the video promotion feed. Every request must carry a
// sexualOrientation; it comes from the category or the configured default.
// Paging is by 1-based page index rather than offset.
type Videofeed struct {
	*base
	partnerID   string
	accessKey   string
	orientation string
}

var _ Adapter = (*Videofeed)(nil)

// NewVideofeed creates the videofeed adapter.
func NewVideofeed(cfg *config.ProviderConfig, tax *taxonomy.Taxonomy, opts Options) *Videofeed {
	return &Videofeed{
		base: &base{
			id:      VideofeedID,
			kind:    models.KindVideos,
			tax:     tax,
			client:  NewClient(VideofeedID, cfg, opts.Breaker),
			keepRaw: opts.KeepRaw,
			matchers: []Matcher{
				ArrayAt("data.videos"),
				ArrayAt("videos"),
				ArrayAt("items"),
				BareArray(),
				ArrayScan(),
			},
			item:       videofeedItem,
			pagination: videofeedPagination,
		},
		partnerID:   cfg.PartnerID,
		accessKey:   cfg.AccessKey,
		orientation: cfg.DefaultOrientation,
	}
}

// MapParams implements Adapter.
func (v *Videofeed) MapParams(q models.Query) models.ProviderRequest {
	req := v.mapQuery(q)
	if req.Category == "" {
		req.Category = v.orientation
	}
	return req
}

// Fetch implements Adapter.
func (v *Videofeed) Fetch(ctx context.Context, req models.ProviderRequest) (interface{}, error) {
	r := v.buildRequest(req)
	return v.client.GetJSON(ctx, r.path, r.params)
}

func (v *Videofeed) buildRequest(req models.ProviderRequest) *apiRequest {
	orientation := req.Category
	if orientation == "" {
		orientation = v.orientation
	}

	page := 1
	if req.Limit > 0 {
		page = req.Offset/req.Limit + 1
	}

	r := newAPIRequest(videofeedPath).
		addParam("psId", v.partnerID).
		addParam("accessKey", v.accessKey).
		addParam("sexualOrientation", orientation).
		addIntParam("limit", req.Limit).
		addIntParam("pageIndex", page)

	types := make([]string, 0, len(req.Filters))
	for typ := range req.Filters {
		types = append(types, typ)
	}
	sort.Strings(types)
	var tags []string
	for _, typ := range types {
		tags = append(tags, req.Filters[typ]...)
	}
	r.addParam("tags", strings.Join(tags, ","))

	switch req.Sort {
	case models.SortPopular:
		r.addParam("sort", "popular")
	case models.SortNewest:
		r.addParam("sort", "latest")
	}
	return r
}

// videofeedPagination reads the total count, or failing that the page
// count, which bounds the total to whole pages.
func videofeedPagination(meta normalize.Record, req models.ProviderRequest, returned int) models.Pagination {
	if total, ok := meta.Int("data.pagination.total", "total"); ok && total >= 0 {
		return models.NewPagination(int(total), true, req.Limit, req.Offset, returned)
	}
	if pages, ok := meta.Int("data.pagination.totalPages"); ok && pages >= 0 && req.Limit > 0 {
		return models.NewPagination(int(pages)*req.Limit, true, req.Limit, req.Offset, returned)
	}
	return models.NewPagination(0, false, req.Limit, req.Offset, returned)
}

func videofeedItem(rec normalize.Record, _ int) models.Item {
	duration, _ := rec.Get("duration")
	if duration == nil {
		duration, _ = rec.Get("length")
	}
	views, _ := rec.Int("views", "viewCount", "view_count")
	title := rec.String("title", "name")

	thumb := normalize.FirstURL("",
		rec.String("thumbImage", "thumbnail", "thumbnailUrl"),
		rec.FirstImage("thumbnails", "large", "medium", "small"),
	)
	preview := normalize.FirstURL("",
		rec.String("previewVideoUrl", "previewUrl", "trailerUrl"),
		rec.String("previewImages.0", "coverImage"),
	)

	return models.Item{
		ID:           rec.String("id", "videoId", "video_id"),
		Slug:         normalize.Slugify(rec.String("slug", "title")),
		DisplayName:  title,
		ThumbnailURL: thumb,
		PreviewURL:   preview,
		Tags:         rec.Tags("tags", "categories"),
		Status:       models.StatusUnknown,
		Duration:     normalize.DurationSeconds(duration),
		Views:        views,
	}
}
