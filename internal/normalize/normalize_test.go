// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package normalize

import (
	"math"
	"reflect"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/lineup/internal/models"
)

func decode(t *testing.T, s string) interface{} {
	t.Helper()
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode %s: %v", s, err)
	}
	return v
}

func record(t *testing.T, s string) Record {
	t.Helper()
	rec, ok := NewRecord(decode(t, s))
	if !ok {
		t.Fatalf("not an object: %s", s)
	}
	return rec
}

// ============================================================================
// Record accessors
// ============================================================================

func TestRecordString(t *testing.T) {
	t.Parallel()

	rec := record(t, `{"id": 12345, "name": "  ", "alias": "Mia", "nested": {"title": "Deep"}, "list": [{"u": "first"}], "ratio": 1.5}`)

	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{"numeric id", []string{"id"}, "12345"},
		{"blank skipped", []string{"name", "alias"}, "Mia"},
		{"nested path", []string{"missing", "nested.title"}, "Deep"},
		{"array index", []string{"list.0.u"}, "first"},
		{"array out of range", []string{"list.5.u"}, ""},
		{"fractional", []string{"ratio"}, "1.5"},
		{"through scalar", []string{"alias.x"}, ""},
		{"nothing", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rec.String(tt.paths...); got != tt.want {
				t.Errorf("String(%v) = %q, want %q", tt.paths, got, tt.want)
			}
		})
	}
}

func TestRecordIntBool(t *testing.T) {
	t.Parallel()

	rec := record(t, `{"viewers": "1,204", "views": 99.9, "bad": "lots", "online": "yes", "flag": 0, "live": true}`)

	if n, ok := rec.Int("bad", "viewers"); !ok || n != 1204 {
		t.Errorf("Int(viewers) = %d, %v", n, ok)
	}
	if n, ok := rec.Int("views"); !ok || n != 99 {
		t.Errorf("Int(views) = %d, %v", n, ok)
	}
	if _, ok := rec.Int("missing"); ok {
		t.Error("Int(missing) should not be ok")
	}
	if b, ok := rec.Bool("online"); !ok || !b {
		t.Errorf("Bool(online) = %v, %v", b, ok)
	}
	if b, ok := rec.Bool("flag"); !ok || b {
		t.Errorf("Bool(flag) = %v, %v", b, ok)
	}
	if b, ok := rec.Bool("bad", "live"); !ok || !b {
		t.Errorf("Bool(live) = %v, %v", b, ok)
	}
}

func TestRecordTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"array", `{"tags": ["Feet", "toys", "feet"]}`, []string{"feet", "toys"}},
		{"objects", `{"tags": [{"name": "Oil"}, {"tag": "shower"}, 3]}`, []string{"oil", "shower"}},
		{"comma string", `{"tags": "asian, petite,,Toys"}`, []string{"asian", "petite", "toys"}},
		{"empty falls to next", `{"tags": [], "categories": "solo"}`, []string{"solo"}},
		{"number is not tags", `{"tags": 5}`, []string{}},
		{"absent", `{}`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := record(t, tt.doc).Tags("tags", "categories")
			if got == nil {
				t.Fatal("Tags must never be nil")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tags = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordFirstImage(t *testing.T) {
	t.Parallel()

	rec := record(t, `{
		"images": {"small": "//cdn/s.jpg", "medium": {"url": "//cdn/m.jpg"}},
		"gallery": [{"src": ""}, {"src": "https://cdn/g.jpg"}],
		"plain": "https://cdn/p.jpg"
	}`)

	if got := rec.FirstImage("images", "large", "medium", "small"); got != "//cdn/m.jpg" {
		t.Errorf("FirstImage(images) = %q", got)
	}
	if got := rec.FirstImage("gallery"); got != "https://cdn/g.jpg" {
		t.Errorf("FirstImage(gallery) = %q", got)
	}
	if got := rec.FirstImage("plain"); got != "https://cdn/p.jpg" {
		t.Errorf("FirstImage(plain) = %q", got)
	}
	if got := rec.FirstImage("missing"); got != "" {
		t.Errorf("FirstImage(missing) = %q", got)
	}
}

// ============================================================================
// Text helpers
// ============================================================================

func TestSecureURL(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"//cdn.example.com/a.jpg":  "https://cdn.example.com/a.jpg",
		"https://x.example/a.jpg":  "https://x.example/a.jpg",
		"http://x.example/a.jpg":   "http://x.example/a.jpg",
		"HTTPS://x.example/a.jpg":  "HTTPS://x.example/a.jpg",
		"  //cdn.example.com/b  ":  "https://cdn.example.com/b",
		"":                         "fb",
		"javascript:alert(1)":      "fb",
		"relative/path.jpg":        "fb",
	}
	for in, want := range tests {
		if got := SecureURL(in, "fb"); got != want {
			t.Errorf("SecureURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Zoë Café":        "zoe-cafe",
		"  Hello, World ": "hello-world",
		"ÀÉÎ__ õü":        "aei-ou",
		"---":             "",
		"":                "",
		"abc123":          "abc123",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDurationSeconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   interface{}
		want int
	}{
		{float64(754), 754},
		{"754", 754},
		{"12:34", 754},
		{"1:02:03", 3723},
		{"PT5M3S", 303},
		{"pt1h", 3600},
		{"12:xx", 0},
		{"soon", 0},
		{float64(-3), 0},
		{math.NaN(), 0},
		{nil, 0},
		{true, 0},
	}
	for _, tt := range tests {
		if got := DurationSeconds(tt.in); got != tt.want {
			t.Errorf("DurationSeconds(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		online bool
		want   string
	}{
		{"public", false, models.StatusOnline},
		{"Away", true, models.StatusAway},
		{"off", true, models.StatusOffline},
		{"", true, models.StatusOnline},
		{"", false, models.StatusOffline},
		{"weird", false, models.StatusUnknown},
	}
	for _, tt := range tests {
		if got := NormalizeStatus(tt.raw, tt.online); got != tt.want {
			t.Errorf("NormalizeStatus(%q, %v) = %q, want %q", tt.raw, tt.online, got, tt.want)
		}
	}
}

// ============================================================================
// Batch
// ============================================================================

func TestBatch(t *testing.T) {
	t.Parallel()

	raws := decode(t, `[
		{"id": 7, "name": "Zoë", "thumb": "//img/z.jpg"},
		"garbage",
		null,
		{"id": "boom"},
		{}
	]`).([]interface{})

	fn := func(rec Record, index int) models.Item {
		if rec.String("id") == "boom" {
			panic("bad record")
		}
		return models.Item{
			ID:           rec.String("id"),
			DisplayName:  rec.String("name"),
			ThumbnailURL: rec.String("thumb"),
			Tags:         rec.Tags("tags"),
		}
	}

	items := Batch("livefeed", models.KindModels, raws, 0, true, fn)
	if len(items) != len(raws) {
		t.Fatalf("got %d items for %d records", len(items), len(raws))
	}

	first := items[0]
	if first.ID != "livefeed:7" || first.Slug != "zoe" || first.ThumbnailURL != "https://img/z.jpg" {
		t.Errorf("unexpected first item %+v", first)
	}
	if first.PreviewURL != "https://img/z.jpg" {
		t.Errorf("preview should fall back to thumbnail, got %q", first.PreviewURL)
	}
	if len(first.RawDataRef) == 0 {
		t.Error("keepRaw should attach the raw record")
	}

	for i := 1; i <= 3; i++ {
		if items[i].ID != "livefeed:stub-"+string(rune('0'+i)) {
			t.Errorf("item %d should be a stub, got %q", i, items[i].ID)
		}
	}

	last := items[4]
	if last.ID != "livefeed:idx-4" || last.DisplayName != "idx-4" {
		t.Errorf("empty record defaults wrong: %+v", last)
	}
	if last.ThumbnailURL != PlaceholderThumbnail || last.PreviewURL != PlaceholderPreview {
		t.Errorf("empty record should use placeholders: %+v", last)
	}

	for i, it := range items {
		if it.Provider != "livefeed" {
			t.Errorf("item %d missing provider stamp", i)
		}
		if it.Tags == nil {
			t.Errorf("item %d has nil tags", i)
		}
	}
}

func TestBatch_GeneratedIDsFollowPageOffset(t *testing.T) {
	t.Parallel()

	raws := decode(t, `["garbage", {}]`).([]interface{})
	fn := func(rec Record, index int) models.Item { return models.Item{} }

	first := Batch("livefeed", models.KindModels, raws, 0, false, fn)
	second := Batch("livefeed", models.KindModels, raws, 24, false, fn)

	tests := []struct {
		got, want string
	}{
		{first[0].ID, "livefeed:stub-0"},
		{first[1].ID, "livefeed:idx-1"},
		{second[0].ID, "livefeed:stub-24"},
		{second[1].ID, "livefeed:idx-25"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("ID = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestComplete_KeepsNamespacedID(t *testing.T) {
	t.Parallel()

	it := Complete(models.Item{ID: "videofeed:abc"}, "videofeed", models.KindVideos, 0)
	if it.ID != "videofeed:abc" {
		t.Errorf("ID = %q", it.ID)
	}
	if it.Status != models.StatusUnknown {
		t.Errorf("video status = %q", it.Status)
	}
}
