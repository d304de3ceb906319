// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package models

// Pagination is the page summary attached to every listing result.
//
// HasMore always equals CurrentPage < TotalPages. When the source reports no
// total, Total is the number of items seen so far (Offset + returned) and
// TotalPages is derived from HasMore instead of the other way round.
type Pagination struct {
	Total       int  `json:"total"`
	TotalKnown  bool `json:"total_known"`
	Limit       int  `json:"limit"`
	Offset      int  `json:"offset"`
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	HasMore     bool `json:"has_more"`
}

// NewPagination is the single hasMore heuristic shared by every adapter and
// by the fallback path.
//
// With a known total the page count comes from the total. Without one, a
// full page (returned >= limit) is taken to mean more data exists.
func NewPagination(total int, known bool, limit, offset, returned int) Pagination {
	if limit <= 0 {
		limit = 1
	}
	if offset < 0 {
		offset = 0
	}
	p := Pagination{
		Limit:       limit,
		Offset:      offset,
		CurrentPage: offset/limit + 1,
		TotalKnown:  known,
	}

	if known {
		if total < 0 {
			total = 0
		}
		p.Total = total
		p.TotalPages = ceilDiv(total, limit)
		p.HasMore = p.CurrentPage < p.TotalPages
		return p
	}

	p.Total = offset + returned
	p.HasMore = returned >= limit
	p.TotalPages = p.CurrentPage
	if p.HasMore {
		p.TotalPages++
	}
	return p
}

// MergePagination combines per-provider summaries into one for the merged
// page. Totals are summed; TotalKnown holds only when every part knew its
// total. HasMore is true when any part has more, and TotalPages is clamped
// so the CurrentPage < TotalPages relation still holds.
func MergePagination(parts []Pagination, limit, offset int) Pagination {
	if limit <= 0 {
		limit = 1
	}
	if offset < 0 {
		offset = 0
	}
	p := Pagination{
		Limit:       limit,
		Offset:      offset,
		CurrentPage: offset/limit + 1,
		TotalKnown:  len(parts) > 0,
	}
	for _, part := range parts {
		p.Total += part.Total
		p.TotalKnown = p.TotalKnown && part.TotalKnown
		p.HasMore = p.HasMore || part.HasMore
	}

	p.TotalPages = ceilDiv(p.Total, limit)
	switch {
	case p.HasMore && p.TotalPages <= p.CurrentPage:
		p.TotalPages = p.CurrentPage + 1
	case !p.HasMore && p.TotalPages > p.CurrentPage:
		p.TotalPages = p.CurrentPage
	}
	return p
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
