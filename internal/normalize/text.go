// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tomtom215/lineup/internal/models"
)

// Placeholder media for records without usable images.
const (
	PlaceholderThumbnail = models.PlaceholderThumbnail
	PlaceholderPreview   = models.PlaceholderPreview
)

// SecureURL rewrites protocol-relative URLs ("//host/path") to https.
// Absolute http and https URLs are returned unchanged. Anything else,
// including the empty string, yields fallback.
func SecureURL(raw, fallback string) string {
	u := strings.TrimSpace(raw)
	switch {
	case u == "":
		return fallback
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	case hasScheme(u, "https://"), hasScheme(u, "http://"):
		return u
	}
	return fallback
}

func hasScheme(u, scheme string) bool {
	return len(u) > len(scheme) && strings.EqualFold(u[:len(scheme)], scheme)
}

// FirstURL returns the first candidate that SecureURL accepts, or fallback.
func FirstURL(fallback string, candidates ...string) string {
	for _, c := range candidates {
		if u := SecureURL(c, ""); u != "" {
			return u
		}
	}
	return fallback
}

// accent folding chain; each goroutine takes its own transformer
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	},
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a URL slug: accents folded, lower-case
// ASCII letters and digits, runs of anything else collapsed to one hyphen.
func Slugify(s string) string {
	if s == "" {
		return ""
	}
	tr := foldPool.Get().(transform.Transformer)
	folded, _, err := transform.String(tr, strings.ToValidUTF8(s, ""))
	tr.Reset()
	foldPool.Put(tr)
	if err != nil {
		folded = s
	}
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(folded), "-"), "-")
}

var isoDuration = regexp.MustCompile(`(?i)^PT?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// DurationSeconds parses a duration in any of the forms providers send:
// a number of seconds, "mm:ss", "hh:mm:ss" or an ISO-8601 "PT1H2M3S".
// Unparseable input yields 0.
func DurationSeconds(v interface{}) int {
	s, isString := v.(string)
	if !isString {
		n, ok := asInt(v)
		if !ok || n < 0 {
			return 0
		}
		return int(n)
	}

	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return 0
	case strings.Contains(s, ":"):
		total := 0
		for _, part := range strings.Split(s, ":") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 0 {
				return 0
			}
			total = total*60 + n
		}
		return total
	}

	if m := isoDuration.FindStringSubmatch(s); m != nil {
		total := 0
		for i, mult := range []int{3600, 60, 1} {
			if m[i+1] == "" {
				continue
			}
			n, _ := strconv.Atoi(m[i+1])
			total += n * mult
		}
		return total
	}

	if n, ok := asInt(s); ok && n >= 0 {
		return int(n)
	}
	return 0
}

// NormalizeStatus maps provider status strings onto the canonical set.
func NormalizeStatus(raw string, online bool) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "online", "public", "live", "free_chat", "in_show", "private", "group", "p2p":
		return models.StatusOnline
	case "away", "idle", "break":
		return models.StatusAway
	case "offline", "off":
		return models.StatusOffline
	}
	if online {
		return models.StatusOnline
	}
	if raw == "" {
		return models.StatusOffline
	}
	return models.StatusUnknown
}
