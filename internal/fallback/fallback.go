// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package fallback

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/tomtom215/lineup/internal/models"
)

// ProviderID is stamped on every synthetic item.
const ProviderID = "fallback"

// Tag is carried by every synthetic item.
const Tag = "fallback"

// mediaBase is under the reserved .invalid TLD so placeholder media can
// never resolve to real content.
const mediaBase = "https://placeholder.lineup.invalid/"

var firstNames = []string{
	"Alex", "Blair", "Casey", "Dana", "Eden", "Finley", "Gray", "Harper",
	"Indie", "Jordan", "Kai", "Logan", "Morgan", "Noel", "Quinn", "Remy",
	"Sage", "Taylor", "Val", "Wren",
}

var videoTitles = []string{
	"Evening Session", "Behind the Scenes", "Studio Preview", "Weekend Special",
	"Late Night Stream", "Fan Favourite", "Morning Show", "Highlights Reel",
}

// Generator produces deterministic placeholder items for one content kind.
// The zero value generates model listings.
type Generator struct {
	Kind models.ContentKind
}

// New returns a generator for kind.
func New(kind models.ContentKind) Generator {
	return Generator{Kind: kind}
}

// Generate returns limit synthetic items for the absolute positions
// offset..offset+limit-1. Identical arguments always yield identical items,
// so paging through fallback data neither repeats nor skips.
func (g Generator) Generate(category, subcategory string, limit, offset int) []models.Item {
	return g.GenerateFor("", category, subcategory, limit, offset)
}

// GenerateFor is Generate namespaced by the provider whose slice is being
// replaced, so two failing providers never emit the same IDs.
func (g Generator) GenerateFor(source, category, subcategory string, limit, offset int) []models.Item {
	if limit <= 0 {
		return []models.Item{}
	}
	if offset < 0 {
		offset = 0
	}

	kind := g.Kind
	if kind == "" {
		kind = models.KindModels
	}

	items := make([]models.Item, 0, limit)
	for i := 0; i < limit; i++ {
		items = append(items, g.item(kind, source, category, subcategory, offset+i))
	}
	return items
}

func (g Generator) item(kind models.ContentKind, source, category, subcategory string, pos int) models.Item {
	seed := xxhash.Sum64String(strings.Join([]string{
		string(kind), source, category, subcategory, strconv.Itoa(pos),
	}, "\x00"))
	token := strconv.FormatUint(seed, 16)

	native := strconv.Itoa(pos)
	if source != "" {
		native = source + "-" + native
	}

	it := models.Item{
		ID:           models.NamespacedID(ProviderID, native),
		Slug:         "fallback-" + token[:min(8, len(token))],
		ThumbnailURL: mediaBase + "thumb/" + token + ".jpg",
		PreviewURL:   mediaBase + "preview/" + token + ".jpg",
		Tags:         tags(category, subcategory),
		Kind:         kind,
		Provider:     ProviderID,
	}

	if kind == models.KindVideos {
		it.DisplayName = videoTitles[seed%uint64(len(videoTitles))] + " #" + strconv.Itoa(pos+1)
		it.Status = models.StatusUnknown
		it.Duration = 120 + int(seed%1680)
		it.Views = int64(seed % 250000)
		return it
	}

	it.DisplayName = firstNames[seed%uint64(len(firstNames))] + " " + strconv.Itoa(pos+1)
	it.IsOnline = true
	it.Status = models.StatusOnline
	it.ViewerCount = int((seed >> 8) % 500)
	return it
}

func tags(category, subcategory string) []string {
	out := []string{Tag}
	for _, t := range []string{category, subcategory} {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}
