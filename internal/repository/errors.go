// Package repository contains all data access for venues, artists,
// shows and promoter accounts. This file defines sentinel errors shared
// across repositories so handlers can map failures to HTTP responses
// with errors.Is instead of string matching. Repositories never retry,
// never log and never swallow an error; everything propagates to the
// caller.
package repository

import (
	"errors"
	"strings"
)

// ErrVenueNotFound is returned when a venue id matches no row.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist id matches no row.
var ErrArtistNotFound = errors.New("artist not found")

// ErrShowNotFound is returned when a show id matches no row.
var ErrShowNotFound = errors.New("show not found")

// ErrVenueHasShows is returned when a venue cannot be deleted because
// shows still reference it. Deletion never cascades; handlers translate
// this into a 400 on the delete surface.
var ErrVenueHasShows = errors.New("venue has dependent shows")

// ErrBadReference is returned when an insert names an artist or venue
// id that does not exist (foreign key violation at the store).
var ErrBadReference = errors.New("referenced entity does not exist")

// isMySQLErr reports whether err carries the given MySQL error number.
// Used for duplicate-key (1062) and foreign-key (1452) detection.
func isMySQLErr(err error, number string) bool {
	return err != nil && strings.Contains(err.Error(), number)
}
