// This file defines the venue repository. Venues are the only entity
// with a delete path on the current surface; deletion is refused while
// dependent shows exist rather than cascading.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gigboard/gigboard/internal/genre"
	"github.com/gigboard/gigboard/internal/model"
)

const venueColumns = `id, name, city, state, address, phone, genres,
	image_link, facebook_link, website_link, seeking_talent,
	seeking_description, created_at, updated_at`

// VenueRepo encapsulates all database queries related to venues. The
// genres column is encoded/decoded at this boundary so the rest of the
// program only ever sees the ordered name list.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts a new venue and populates the generated ID and the
// DB-default timestamps on the given model.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues
		(name, city, state, address, phone, genres, image_link,
		 facebook_link, website_link, seeking_talent, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone,
		genre.EncodeStored(v.Genres), v.ImageLink, v.FacebookLink,
		v.WebsiteLink, v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	// Select the row back so created_at/updated_at reflect DB defaults.
	const sel = `SELECT created_at, updated_at FROM venues WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, v.ID).Scan(&v.CreatedAt, &v.UpdatedAt)
}

// GetByID fetches a venue by its ID. It returns ErrVenueNotFound when
// there is no matching row.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// ListAll returns every venue ordered by id. The listing page groups
// the result by (city, state) in the handler.
func (r *VenueRepo) ListAll(ctx context.Context) ([]*model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues ORDER BY id`
	return r.queryVenues(ctx, q)
}

// SearchByName returns venues whose name contains the keyword,
// case-insensitively. An empty keyword deliberately matches everything;
// the permissive behavior is part of the search surface.
func (r *VenueRepo) SearchByName(ctx context.Context, keyword string) ([]*model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues
		WHERE LOWER(name) LIKE LOWER(?) ORDER BY id`
	return r.queryVenues(ctx, q, "%"+keyword+"%")
}

// Update loads the venue, applies the patch field-by-field and writes
// the full row back. Only submitted fields change; absent patch fields
// keep their stored values.
func (r *VenueRepo) Update(ctx context.Context, id uint64, p model.VenuePatch) (*model.Venue, error) {
	v, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(v)
	const q = `UPDATE venues SET
		name = ?, city = ?, state = ?, address = ?, phone = ?, genres = ?,
		image_link = ?, facebook_link = ?, website_link = ?,
		seeking_talent = ?, seeking_description = ?,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone,
		genre.EncodeStored(v.Genres), v.ImageLink, v.FacebookLink,
		v.WebsiteLink, v.SeekingTalent, v.SeekingDescription, v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

// Delete removes a venue. It runs in a transaction: the venue must
// exist (ErrVenueNotFound) and must have no dependent shows
// (ErrVenueHasShows); otherwise nothing is deleted.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}

	var shows int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shows WHERE venue_id = ?`, id).Scan(&shows); err != nil {
		return err
	}
	if shows > 0 {
		err = ErrVenueHasShows
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	return err
}

func (r *VenueRepo) queryVenues(ctx context.Context, q string, args ...any) ([]*model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*model.Venue, error) {
	var v model.Venue
	var stored string
	if err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address,
		&v.Phone, &stored, &v.ImageLink, &v.FacebookLink, &v.WebsiteLink,
		&v.SeekingTalent, &v.SeekingDescription, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.Genres = genre.DecodeStored(stored)
	return &v, nil
}
