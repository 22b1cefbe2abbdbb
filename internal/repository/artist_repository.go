// This file defines the artist repository. Artists have no delete path
// on the current surface, and the index listing is a deliberate id+name
// projection rather than full rows.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gigboard/gigboard/internal/genre"
	"github.com/gigboard/gigboard/internal/model"
)

const artistColumns = `id, name, city, state, phone, genres, image_link,
	facebook_link, website_link, seeking_venue, seeking_description,
	created_at, updated_at`

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// Create inserts a new artist and populates the generated ID and the
// DB-default timestamps on the given model.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists
		(name, city, state, phone, genres, image_link, facebook_link,
		 website_link, seeking_venue, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, genre.EncodeStored(a.Genres),
		a.ImageLink, a.FacebookLink, a.WebsiteLink, a.SeekingVenue,
		a.SeekingDescription)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM artists WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, a.ID).Scan(&a.CreatedAt, &a.UpdatedAt)
}

// GetByID fetches an artist by its ID. It returns ErrArtistNotFound
// when there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM artists WHERE id = ?`
	a, err := scanArtist(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListSummaries returns id and name for every artist, ordered by id.
// The index page never renders any other artist field, so full rows are
// never loaded for it.
func (r *ArtistRepo) ListSummaries(ctx context.Context) ([]model.ArtistSummary, error) {
	const q = `SELECT id, name FROM artists ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ArtistSummary
	for rows.Next() {
		var s model.ArtistSummary
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns artists whose name contains the keyword,
// case-insensitively. An empty keyword matches everything, same as the
// venue search.
func (r *ArtistRepo) SearchByName(ctx context.Context, keyword string) ([]*model.Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM artists
		WHERE LOWER(name) LIKE LOWER(?) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, "%"+keyword+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Artist
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update loads the artist, applies the patch field-by-field and writes
// the full row back.
func (r *ArtistRepo) Update(ctx context.Context, id uint64, p model.ArtistPatch) (*model.Artist, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(a)
	const q = `UPDATE artists SET
		name = ?, city = ?, state = ?, phone = ?, genres = ?,
		image_link = ?, facebook_link = ?, website_link = ?,
		seeking_venue = ?, seeking_description = ?,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, genre.EncodeStored(a.Genres),
		a.ImageLink, a.FacebookLink, a.WebsiteLink, a.SeekingVenue,
		a.SeekingDescription, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func scanArtist(row rowScanner) (*model.Artist, error) {
	var a model.Artist
	var stored string
	if err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone,
		&stored, &a.ImageLink, &a.FacebookLink, &a.WebsiteLink,
		&a.SeekingVenue, &a.SeekingDescription, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Genres = genre.DecodeStored(stored)
	return &a, nil
}
