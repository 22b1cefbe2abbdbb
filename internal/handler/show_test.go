package handler

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigboard/gigboard/internal/repository"
)

func newShowHandler(t *testing.T) (*ShowHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewShowHandler(
		repository.NewShowRepo(db),
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
	), mock
}

var listingCols = []string{"s.id", "v.id", "v.name", "a.id", "a.name", "a.image_link", "s.start_time"}

func TestShowListShape(t *testing.T) {
	h, mock := newShowHandler(t)

	at := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(listingCols).
		AddRow(1, 2, "The Musical Hop", 3, "Guns N Petals", "", at)
	mock.ExpectQuery("FROM shows s\\s+JOIN venues v (.+) JOIN artists a").
		WillReturnRows(rows)

	rec := getRequest(t, h.List, "/shows")
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	shows := body["shows"].([]any)
	require.Len(t, shows, 1)
	row := shows[0].(map[string]any)
	assert.Equal(t, float64(1), row["id"])
	assert.Equal(t, "The Musical Hop", row["venue_name"])
	assert.Equal(t, "Guns N Petals", row["artist_name"])
}

func TestShowListEmptyIsArray(t *testing.T) {
	h, mock := newShowHandler(t)
	mock.ExpectQuery("FROM shows s\\s+JOIN venues v (.+) JOIN artists a").
		WillReturnRows(sqlmock.NewRows(listingCols))

	rec := getRequest(t, h.List, "/shows")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"shows":[]}`, rec.Body.String())
}

func TestShowSearchByDate(t *testing.T) {
	h, mock := newShowHandler(t)

	at := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(listingCols).
		AddRow(5, 2, "The Musical Hop", 3, "Guns N Petals", "", at)
	mock.ExpectQuery("s.start_time = ").
		WithArgs(at).WillReturnRows(rows)

	rec := formRequest(t, h.Search, http.MethodPost, "/shows/search",
		url.Values{"search_term": {"2026-09-01"}})
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
	hit := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(5), hit["id"])
	assert.Equal(t, float64(0), hit["num_upcoming_shows"])
}

func TestShowSearchByName(t *testing.T) {
	h, mock := newShowHandler(t)

	mock.ExpectQuery("LOWER\\(v.name\\) LIKE \\? OR LOWER\\(a.name\\) LIKE \\?").
		WithArgs("%petals%", "%petals%").
		WillReturnRows(sqlmock.NewRows(listingCols))

	rec := formRequest(t, h.Search, http.MethodPost, "/shows/search",
		url.Values{"search_term": {"Petals"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeBody(t, rec)["count"])
}

func TestShowCreateRejectsBadStartTime(t *testing.T) {
	h, _ := newShowHandler(t)

	rec := formRequest(t, h.Create, http.MethodPost, "/shows/create", url.Values{
		"artist_id":  {"1"},
		"venue_id":   {"2"},
		"start_time": {"whenever"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShowCreateRejectsUnknownReference(t *testing.T) {
	h, mock := newShowHandler(t)

	mock.ExpectExec("INSERT INTO shows").
		WillReturnError(errors.New("Error 1452: Cannot add or update a child row: a foreign key constraint fails"))

	rec := formRequest(t, h.Create, http.MethodPost, "/shows/create", url.Values{
		"artist_id":  {"99"},
		"venue_id":   {"1"},
		"start_time": {"2026-09-01T20:00:00Z"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not exist")
}
