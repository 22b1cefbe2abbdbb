package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigboard/gigboard/internal/model"
)

func TestShowCreateBadReference(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO shows").
		WithArgs(uint64(99), uint64(1), start).
		WillReturnError(errors.New("Error 1452: Cannot add or update a child row: a foreign key constraint fails"))

	err = NewShowRepo(db).Create(context.Background(), &model.Show{
		ArtistID: 99, VenueID: 1, StartTime: start,
	})
	assert.ErrorIs(t, err, ErrBadReference)
}

func TestShowCreateSetsIDAndCreatedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	created := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO shows").
		WithArgs(uint64(4), uint64(2), start).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT created_at FROM shows WHERE id").
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	s := &model.Show{ArtistID: 4, VenueID: 2, StartTime: start}
	require.NoError(t, NewShowRepo(db).Create(context.Background(), s))
	assert.Equal(t, uint64(11), s.ID)
	assert.Equal(t, created, s.CreatedAt)
}

func TestUpcomingByVenuesEmptyIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// No query must reach the database.
	out, err := NewShowRepo(db).UpcomingByVenues(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpcomingByVenuesBatchesIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "artist_id", "venue_id", "start_time", "created_at"}).
		AddRow(1, 5, 10, now.Add(time.Hour), now).
		AddRow(2, 6, 20, now.Add(2*time.Hour), now)
	mock.ExpectQuery("SELECT (.+) FROM shows\\s+WHERE venue_id IN \\(\\?,\\?,\\?\\) AND start_time >=").
		WithArgs(uint64(10), uint64(20), uint64(30), now).
		WillReturnRows(rows)

	out, err := NewShowRepo(db).UpcomingByVenues(context.Background(), []uint64{10, 20, 30}, now)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, uint64(10), out[0].VenueID)
	assert.Equal(t, uint64(20), out[1].VenueID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowSearchByTime(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"s.id", "v.id", "v.name", "a.id", "a.name", "a.image_link", "s.start_time"}).
		AddRow(3, 1, "The Musical Hop", 2, "Guns N Petals", "", at)
	mock.ExpectQuery("FROM shows s\\s+JOIN venues v (.+) JOIN artists a (.+) s.start_time = ").
		WithArgs(at).WillReturnRows(rows)

	out, err := NewShowRepo(db).Search(context.Background(), SearchTerm{At: at, IsTime: true})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, uint64(3), out[0].ShowID)
}

func TestShowSearchByTextLowercasesPattern(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"s.id", "v.id", "v.name", "a.id", "a.name", "a.image_link", "s.start_time"})
	mock.ExpectQuery("LOWER\\(v.name\\) LIKE \\? OR LOWER\\(a.name\\) LIKE \\?").
		WithArgs("%hop%", "%hop%").WillReturnRows(rows)

	out, err := NewShowRepo(db).Search(context.Background(), SearchTerm{Text: "Hop"})
	require.NoError(t, err)
	assert.Empty(t, out)
}
