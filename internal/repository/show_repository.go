// This file defines the show repository: the insert path plus the join
// projections the venue, artist and show pages render. Every read that
// needs artist or venue fields joins them in one query; the upcoming
// counts on the venue index come from a single batched IN query rather
// than one query per venue.
package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gigboard/gigboard/internal/model"
)

// VenueShowRow is one show on a venue page: the artist summary joined
// to the show's start time.
type VenueShowRow struct {
	ShowID          uint64    `json:"show_id"`
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ArtistShowRow is one show on an artist page: the venue summary joined
// to the show's start time.
type ArtistShowRow struct {
	ShowID         uint64    `json:"show_id"`
	VenueID        uint64    `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

// ShowListingRow is one row of the flat show list: both sides joined,
// no time partitioning.
type ShowListingRow struct {
	ShowID          uint64    `json:"id"`
	VenueID         uint64    `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show. A foreign key miss (unknown artist_id or
// venue_id) is surfaced as ErrBadReference; everything else propagates
// unchanged.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime.UTC())
	if err != nil {
		if isMySQLErr(err, "1452") {
			return ErrBadReference
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT created_at FROM shows WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(&s.CreatedAt)
}

// ByVenue returns every show at the venue joined with the artist
// summary, ordered by start time. The caller partitions the result into
// upcoming and past.
func (r *ShowRepo) ByVenue(ctx context.Context, venueID uint64) ([]VenueShowRow, error) {
	const q = `SELECT s.id, a.id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN artists a ON a.id = s.artist_id
		WHERE s.venue_id = ?
		ORDER BY s.start_time`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VenueShowRow
	for rows.Next() {
		var v VenueShowRow
		if err := rows.Scan(&v.ShowID, &v.ArtistID, &v.ArtistName,
			&v.ArtistImageLink, &v.StartTime); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ByArtist is the symmetric join for artist pages: every show by the
// artist joined with the venue summary.
func (r *ShowRepo) ByArtist(ctx context.Context, artistID uint64) ([]ArtistShowRow, error) {
	const q = `SELECT s.id, v.id, v.name, v.image_link, s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		WHERE s.artist_id = ?
		ORDER BY s.start_time`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ArtistShowRow
	for rows.Next() {
		var a ArtistShowRow
		if err := rows.Scan(&a.ShowID, &a.VenueID, &a.VenueName,
			&a.VenueImageLink, &a.StartTime); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns the flat show list with both joins, ordered by start
// time. No time partitioning happens here.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowListingRow, error) {
	const q = `SELECT s.id, v.id, v.name, a.id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		JOIN artists a ON a.id = s.artist_id
		ORDER BY s.start_time`
	return r.queryListings(ctx, q)
}

// UpcomingByVenues returns all shows at any of the given venues whose
// start time is at or after now, in one batched query. An empty id set
// returns an empty result without touching the database.
func (r *ShowRepo) UpcomingByVenues(ctx context.Context, venueIDs []uint64, now time.Time) ([]model.Show, error) {
	if len(venueIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.Repeat("?,", len(venueIDs))
	placeholders = placeholders[:len(placeholders)-1]
	q := `SELECT id, artist_id, venue_id, start_time, created_at
		FROM shows
		WHERE venue_id IN (` + placeholders + `) AND start_time >= ?`
	args := make([]any, 0, len(venueIDs)+1)
	for _, id := range venueIDs {
		args = append(args, id)
	}
	args = append(args, now.UTC())
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Show
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(&s.ID, &s.ArtistID, &s.VenueID, &s.StartTime, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ShowRepo) queryListings(ctx context.Context, q string, args ...any) ([]ShowListingRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ShowListingRow
	for rows.Next() {
		var l ShowListingRow
		if err := rows.Scan(&l.ShowID, &l.VenueID, &l.VenueName,
			&l.ArtistID, &l.ArtistName, &l.ArtistImageLink, &l.StartTime); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
