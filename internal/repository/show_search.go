package repository

import (
	"context"
	"strings"
	"time"
)

// SearchTerm is a show search keyword resolved once at the boundary:
// either a text query against venue/artist names or an exact start-time
// query. Handlers call ParseSearchTerm and the repository only switches
// on the tag, never on runtime types.
type SearchTerm struct {
	Text   string
	At     time.Time
	IsTime bool
}

// searchTimeLayouts are the timestamp shapes accepted from the search
// box, tried in order.
var searchTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseSearchTerm classifies a raw search box value. A value that
// parses as a timestamp becomes a time query; exact-time hits take
// precedence over name matching. Anything else is a text query.
func ParseSearchTerm(raw string) SearchTerm {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range searchTimeLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return SearchTerm{At: t.UTC(), IsTime: true}
		}
	}
	return SearchTerm{Text: trimmed}
}

// Search returns show listing rows matching the term. Text terms match
// a case-insensitive substring of the venue name OR the artist name
// (an empty text term matches everything); time terms match shows whose
// start_time equals the instant exactly, regardless of names.
func (r *ShowRepo) Search(ctx context.Context, term SearchTerm) ([]ShowListingRow, error) {
	const base = `SELECT s.id, v.id, v.name, a.id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		JOIN artists a ON a.id = s.artist_id
		WHERE `
	if term.IsTime {
		return r.queryListings(ctx, base+`s.start_time = ? ORDER BY s.id`, term.At)
	}
	pattern := "%" + strings.ToLower(term.Text) + "%"
	return r.queryListings(ctx,
		base+`(LOWER(v.name) LIKE ? OR LOWER(a.name) LIKE ?) ORDER BY s.start_time`,
		pattern, pattern)
}
