package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigboard/gigboard/internal/repository"
)

var venueCols = []string{
	"id", "name", "city", "state", "address", "phone", "genres",
	"image_link", "facebook_link", "website_link", "seeking_talent",
	"seeking_description", "created_at", "updated_at",
}

func newVenueHandler(t *testing.T) (*VenueHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewVenueHandler(repository.NewVenueRepo(db), repository.NewShowRepo(db)), mock
}

func addVenueRow(rows *sqlmock.Rows, id uint64, name, city, state string) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows.AddRow(id, name, city, state, "1 Main St", "555-0100", "{Jazz}",
		"", "", "", false, "", now, now)
}

func getRequest(t *testing.T, h echo.HandlerFunc, path string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setParams(c, params)
	require.NoError(t, h(c))
	return rec
}

func formRequest(t *testing.T, h echo.HandlerFunc, method, path string, form url.Values, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setParams(c, params)
	require.NoError(t, h(c))
	return rec
}

func setParams(c echo.Context, params []string) {
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestVenueListGroupsByCityState(t *testing.T) {
	h, mock := newVenueHandler(t)

	rows := sqlmock.NewRows(venueCols)
	addVenueRow(rows, 1, "The Musical Hop", "San Francisco", "CA")
	addVenueRow(rows, 2, "Park Square Live", "New York", "NY")
	addVenueRow(rows, 3, "The Dueling Pianos Bar", "San Francisco", "CA")
	mock.ExpectQuery("SELECT (.+) FROM venues ORDER BY id").WillReturnRows(rows)

	now := time.Now().UTC()
	upcoming := sqlmock.NewRows([]string{"id", "artist_id", "venue_id", "start_time", "created_at"}).
		AddRow(10, 5, 1, now.Add(time.Hour), now).
		AddRow(11, 6, 1, now.Add(2*time.Hour), now)
	mock.ExpectQuery("FROM shows\\s+WHERE venue_id IN").
		WithArgs(uint64(1), uint64(2), uint64(3), sqlmock.AnyArg()).
		WillReturnRows(upcoming)

	rec := getRequest(t, h.List, "/venues")
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	areas, ok := body["areas"].([]any)
	require.True(t, ok)
	require.Len(t, areas, 2)

	first := areas[0].(map[string]any)
	assert.Equal(t, "San Francisco", first["city"])
	assert.Equal(t, "CA", first["state"])
	venues := first["venues"].([]any)
	require.Len(t, venues, 2)
	assert.Equal(t, float64(2), venues[0].(map[string]any)["num_upcoming_shows"])
	assert.Equal(t, float64(0), venues[1].(map[string]any)["num_upcoming_shows"])

	second := areas[1].(map[string]any)
	assert.Equal(t, "New York", second["city"])
}

func TestVenueSearchShape(t *testing.T) {
	h, mock := newVenueHandler(t)

	rows := sqlmock.NewRows(venueCols)
	addVenueRow(rows, 1, "The Musical Hop", "San Francisco", "CA")
	mock.ExpectQuery("FROM venues\\s+WHERE LOWER\\(name\\) LIKE LOWER").
		WithArgs("%Hop%").WillReturnRows(rows)

	rec := formRequest(t, h.Search, http.MethodPost, "/venues/search",
		url.Values{"search_term": {"Hop"}})
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
	data := body["data"].([]any)
	hit := data[0].(map[string]any)
	assert.Equal(t, "The Musical Hop", hit["name"])
	assert.Equal(t, float64(0), hit["num_upcoming_shows"])
}

func TestVenueGetPartitionsShows(t *testing.T) {
	h, mock := newVenueHandler(t)

	rows := sqlmock.NewRows(venueCols)
	addVenueRow(rows, 7, "The Musical Hop", "San Francisco", "CA")
	mock.ExpectQuery("SELECT (.+) FROM venues WHERE id").
		WithArgs(uint64(7)).WillReturnRows(rows)

	now := time.Now().UTC()
	shows := sqlmock.NewRows([]string{"s.id", "a.id", "a.name", "a.image_link", "s.start_time"}).
		AddRow(1, 5, "Guns N Petals", "", now.Add(-24*time.Hour)).
		AddRow(2, 6, "The Wild Sax Band", "", now.Add(24*time.Hour))
	mock.ExpectQuery("FROM shows s\\s+JOIN artists a").
		WithArgs(uint64(7)).WillReturnRows(shows)

	rec := getRequest(t, h.Get, "/venues/7", "id", "7")
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["past_shows_count"])
	assert.Equal(t, float64(1), body["upcoming_shows_count"])
	assert.Equal(t, []any{"Jazz"}, body["genres"])
	past := body["past_shows"].([]any)
	assert.Equal(t, "Guns N Petals", past[0].(map[string]any)["artist_name"])
}

func TestVenueGetNotFound(t *testing.T) {
	h, mock := newVenueHandler(t)
	mock.ExpectQuery("SELECT (.+) FROM venues WHERE id").
		WithArgs(uint64(404)).WillReturnError(sql.ErrNoRows)

	rec := getRequest(t, h.Get, "/venues/404", "id", "404")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVenueCreateSuccess(t *testing.T) {
	h, mock := newVenueHandler(t)

	mock.ExpectExec("INSERT INTO venues").
		WillReturnResult(sqlmock.NewResult(42, 1))
	created := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT created_at, updated_at FROM venues WHERE id").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	rec := formRequest(t, h.Create, http.MethodPost, "/venues/create", url.Values{
		"name":    {"The Musical Hop"},
		"city":    {"San Francisco"},
		"state":   {"CA"},
		"address": {"1015 Folsom Street"},
		"genres":  {"Jazz", "Reggae"},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(42), body["id"])
	assert.Equal(t, "Venue The Musical Hop was successfully listed!", body["message"])
}

func TestVenueCreateRejectsUnknownGenre(t *testing.T) {
	h, _ := newVenueHandler(t)

	rec := formRequest(t, h.Create, http.MethodPost, "/venues/create", url.Values{
		"name":    {"X"},
		"city":    {"Y"},
		"state":   {"CA"},
		"address": {"Z"},
		"genres":  {"Polka"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVenueDeleteSuccess(t *testing.T) {
	h, mock := newVenueHandler(t)

	rows := sqlmock.NewRows(venueCols)
	addVenueRow(rows, 3, "Closing Venue", "New York", "NY")
	mock.ExpectQuery("SELECT (.+) FROM venues WHERE id").
		WithArgs(uint64(3)).WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM venues WHERE id").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM shows WHERE venue_id").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM venues WHERE id").
		WithArgs(uint64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec := formRequest(t, h.Delete, http.MethodDelete, "/venues/3", nil, "id", "3")
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
}

func TestVenueDeleteRefusedWhenShowsExist(t *testing.T) {
	h, mock := newVenueHandler(t)

	rows := sqlmock.NewRows(venueCols)
	addVenueRow(rows, 3, "Busy Venue", "New York", "NY")
	mock.ExpectQuery("SELECT (.+) FROM venues WHERE id").
		WithArgs(uint64(3)).WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM venues WHERE id").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM shows WHERE venue_id").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectRollback()

	rec := formRequest(t, h.Delete, http.MethodDelete, "/venues/3", nil, "id", "3")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestVenueDeleteUnknownID(t *testing.T) {
	h, mock := newVenueHandler(t)
	mock.ExpectQuery("SELECT (.+) FROM venues WHERE id").
		WithArgs(uint64(99)).WillReturnError(sql.ErrNoRows)

	rec := formRequest(t, h.Delete, http.MethodDelete, "/venues/99", nil, "id", "99")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestVenueEditPatchesSubmittedFields(t *testing.T) {
	h, mock := newVenueHandler(t)

	rows := sqlmock.NewRows(venueCols)
	addVenueRow(rows, 7, "Old Name", "San Francisco", "CA")
	mock.ExpectQuery("SELECT (.+) FROM venues WHERE id").
		WithArgs(uint64(7)).WillReturnRows(rows)
	mock.ExpectExec("UPDATE venues SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := formRequest(t, h.Edit, http.MethodPost, "/venues/7/edit",
		url.Values{"name": {"New Name"}}, "id", "7")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New Name", decodeBody(t, rec)["name"])
}
