// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package models

import (
	"strconv"

	"github.com/goccy/go-json"
)

// Status values for Item.Status.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusAway    = "away"
	StatusUnknown = "unknown"
)

// Placeholder media used whenever a provider record carries no usable image.
const (
	PlaceholderThumbnail = "https://placeholder.lineup.invalid/thumb.jpg"
	PlaceholderPreview   = "https://placeholder.lineup.invalid/preview.jpg"
	UnknownDisplayName   = "Unknown"
)

// Item is the canonical listing record.
//
// Every field always carries a value: normalizers default what a provider
// omits so clients can rely on the shape. Provider is authoritative for
// downstream routing (detail page URL patterns and so on).
type Item struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	DisplayName  string          `json:"display_name"`
	ThumbnailURL string          `json:"thumbnail_url"`
	PreviewURL   string          `json:"preview_url"`
	Tags         []string        `json:"tags"`
	IsOnline     bool            `json:"is_online"`
	Status       string          `json:"status"`
	ViewerCount  int             `json:"viewer_count"`
	Duration     int             `json:"duration"`
	Views        int64           `json:"views"`
	Kind         ContentKind     `json:"kind"`
	Provider     string          `json:"_provider"`
	RawDataRef   json.RawMessage `json:"raw_data_ref,omitempty"`
}

// NewStubItem returns the fully defaulted item emitted in place of a record
// that could not be interpreted at all. index is the record's absolute
// position in the provider's listing and keeps stub IDs unique across pages.
func NewStubItem(provider string, kind ContentKind, index int) Item {
	n := strconv.Itoa(index)
	return Item{
		ID:           provider + ":stub-" + n,
		Slug:         "stub-" + n,
		DisplayName:  UnknownDisplayName,
		ThumbnailURL: PlaceholderThumbnail,
		PreviewURL:   PlaceholderPreview,
		Tags:         []string{},
		Status:       StatusUnknown,
		Kind:         kind,
		Provider:     provider,
	}
}

// NamespacedID joins a provider ID and a provider-native identifier.
func NamespacedID(provider, nativeID string) string {
	return provider + ":" + nativeID
}
