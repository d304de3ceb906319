// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package normalize

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/lineup/internal/models"
)

// ItemFunc converts one decoded record into an Item. index is the record's
// absolute position in the provider's listing. Implementations may leave
// fields empty; Batch applies Complete afterwards.
type ItemFunc func(rec Record, index int) models.Item

// Batch normalizes every raw record with fn. Non-object records become stub
// items, and a panic inside fn for one record is contained to that record.
// Provider is stamped on every item. offset is the page's position in the
// listing, so generated stub-N and idx-N IDs stay unique across pages. When
// keepRaw is set the original record is attached as RawDataRef.
func Batch(provider string, kind models.ContentKind, raws []interface{}, offset int, keepRaw bool, fn ItemFunc) []models.Item {
	items := make([]models.Item, 0, len(raws))
	for i, raw := range raws {
		items = append(items, one(provider, kind, raw, offset+i, keepRaw, fn))
	}
	return items
}

func one(provider string, kind models.ContentKind, raw interface{}, index int, keepRaw bool, fn ItemFunc) (item models.Item) {
	rec, ok := NewRecord(raw)
	if !ok {
		return models.NewStubItem(provider, kind, index)
	}

	defer func() {
		if r := recover(); r != nil {
			item = models.NewStubItem(provider, kind, index)
		}
	}()

	item = Complete(fn(rec, index), provider, kind, index)
	if keepRaw {
		if data, err := json.Marshal(rec.Raw()); err == nil {
			item.RawDataRef = data
		}
	}
	return item
}

// Complete fills every empty field of item with its default and stamps the
// provider attribution. The native ID is namespaced as provider:id.
func Complete(item models.Item, provider string, kind models.ContentKind, index int) models.Item {
	item.Provider = provider
	item.Kind = kind

	native := strings.TrimPrefix(item.ID, provider+":")
	if native == "" {
		native = item.Slug
	}
	if native == "" {
		native = "idx-" + strconv.Itoa(index)
	}
	item.ID = models.NamespacedID(provider, native)

	if item.Slug == "" {
		item.Slug = Slugify(item.DisplayName)
	}
	if item.Slug == "" {
		item.Slug = Slugify(native)
	}
	if item.DisplayName == "" {
		item.DisplayName = item.Slug
	}
	if item.DisplayName == "" {
		item.DisplayName = models.UnknownDisplayName
	}

	thumb, preview := item.ThumbnailURL, item.PreviewURL
	item.ThumbnailURL = FirstURL(PlaceholderThumbnail, thumb, preview)
	item.PreviewURL = FirstURL(PlaceholderPreview, preview, thumb)

	if item.Tags == nil {
		item.Tags = []string{}
	}
	if item.Status == "" {
		if kind == models.KindVideos {
			item.Status = models.StatusUnknown
		} else {
			item.Status = NormalizeStatus("", item.IsOnline)
		}
	}
	if item.ViewerCount < 0 {
		item.ViewerCount = 0
	}
	if item.Duration < 0 {
		item.Duration = 0
	}
	if item.Views < 0 {
		item.Views = 0
	}
	return item
}
