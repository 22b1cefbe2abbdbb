// Package queue defines the listing event payloads exchanged over the
// message broker and the background consumer that records them.
package queue

// ShowListedEvent is published when a new show is successfully listed.
// It carries enough to log or notify without querying the database.
type ShowListedEvent struct {
	Type       string `json:"type"` // always "show.listed"
	ShowID     uint64 `json:"show_id"`
	VenueID    uint64 `json:"venue_id"`
	VenueName  string `json:"venue_name"`
	ArtistID   uint64 `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	StartTime  string `json:"start_time"`
	ListedAt   string `json:"listed_at"`
}

// VenueRemovedEvent is published when a venue is deleted from the
// directory.
type VenueRemovedEvent struct {
	Type      string `json:"type"` // always "venue.removed"
	VenueID   uint64 `json:"venue_id"`
	Name      string `json:"name"`
	RemovedAt string `json:"removed_at"`
}
