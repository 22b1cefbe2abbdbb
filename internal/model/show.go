package model

import "time"

// Show is a scheduled event linking one artist to one venue at a start
// time. Shows are insert-only: there is no update or delete path.
// Whether a show is "upcoming" or "past" is derived from StartTime at
// query time and never stored.
type Show struct {
	ID        uint64    // shows.id
	ArtistID  uint64    // shows.artist_id, references artists.id
	VenueID   uint64    // shows.venue_id, references venues.id
	StartTime time.Time // shows.start_time (UTC)
	CreatedAt time.Time // shows.created_at
}
