package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/gigboard/gigboard/internal/genre"
	"github.com/gigboard/gigboard/internal/repository"
)

// ArtistHandler serves the artist pages: flat index, search, detail
// with upcoming/past shows, and the create/edit surface.
type ArtistHandler struct {
	Artists *repository.ArtistRepo
	Shows   *repository.ShowRepo
}

// NewArtistHandler constructs an ArtistHandler.
func NewArtistHandler(artists *repository.ArtistRepo, shows *repository.ShowRepo) *ArtistHandler {
	return &ArtistHandler{Artists: artists, Shows: shows}
}

type artistOverview struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type artistDetail struct {
	ID                 uint64                     `json:"id"`
	Name               string                     `json:"name"`
	City               string                     `json:"city"`
	State              string                     `json:"state"`
	Phone              string                     `json:"phone"`
	Genres             []string                   `json:"genres"`
	ImageLink          string                     `json:"image_link"`
	FacebookLink       string                     `json:"facebook_link"`
	WebsiteLink        string                     `json:"website_link"`
	SeekingVenue       bool                       `json:"seeking_venue"`
	SeekingDescription string                     `json:"seeking_description"`
	UpcomingShows      []repository.ArtistShowRow `json:"upcoming_shows"`
	PastShows          []repository.ArtistShowRow `json:"past_shows"`
	UpcomingShowsCount int                        `json:"upcoming_shows_count"`
	PastShowsCount     int                        `json:"past_shows_count"`
}

// List handles GET /artists: id and name only, no show counts.
func (h *ArtistHandler) List(c echo.Context) error {
	artists, err := h.Artists.ListSummaries(c.Request().Context())
	if err != nil {
		return dbError(c, err)
	}
	data := make([]echo.Map, 0, len(artists))
	for _, a := range artists {
		data = append(data, echo.Map{"id": a.ID, "name": a.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": data})
}

// Search handles POST /artists/search.
func (h *ArtistHandler) Search(c echo.Context) error {
	keyword := c.FormValue("search_term")
	artists, err := h.Artists.SearchByName(c.Request().Context(), keyword)
	if err != nil {
		return dbError(c, err)
	}
	data := make([]artistOverview, 0, len(artists))
	for _, a := range artists {
		data = append(data, artistOverview{ID: a.ID, Name: a.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(data), "data": data})
}

// Get handles GET /artists/:id.
func (h *ArtistHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return dbError(c, err)
	}
	labels, err := genre.NamesToLabels(a.Genres)
	if err != nil {
		return dbError(c, err)
	}
	rows, err := h.Shows.ByArtist(ctx, id)
	if err != nil {
		return dbError(c, err)
	}
	now := time.Now().UTC()
	upcoming, past := repository.PartitionShows(rows, now)

	return c.JSON(http.StatusOK, artistDetail{
		ID:                 a.ID,
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             labels,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		UpcomingShows:      emptyIfNil(upcoming),
		PastShows:          emptyIfNil(past),
		UpcomingShowsCount: len(upcoming),
		PastShowsCount:     len(past),
	})
}

// NewForm handles GET /artists/create.
func (h *ArtistHandler) NewForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"genres": genre.Labels(),
		"states": genre.States(),
	})
}

// Create handles POST /artists/create.
func (h *ArtistHandler) Create(c echo.Context) error {
	values, err := postForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form body"})
	}
	form := artistFormFrom(values)
	if err := validate.Struct(form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	a, err := form.toArtist()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Artists.Create(c.Request().Context(), a); err != nil {
		log.Error().Err(err).Str("artist", form.Name).Msg("artist create failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": fmt.Sprintf("An error occurred. Artist %s could not be listed.", form.Name),
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":      a.ID,
		"message": fmt.Sprintf("Artist %s was successfully listed!", a.Name),
	})
}

// EditForm handles GET /artists/:id/edit.
func (h *ArtistHandler) EditForm(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return dbError(c, err)
	}
	labels, err := genre.NamesToLabels(a.Genres)
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"artist": echo.Map{
			"id":                  a.ID,
			"name":                a.Name,
			"city":                a.City,
			"state":               a.State,
			"phone":               a.Phone,
			"genres":              labels,
			"image_link":          a.ImageLink,
			"facebook_link":       a.FacebookLink,
			"website_link":        a.WebsiteLink,
			"seeking_venue":       a.SeekingVenue,
			"seeking_description": a.SeekingDescription,
		},
		"genres": genre.Labels(),
		"states": genre.States(),
	})
}

// Edit handles POST /artists/:id/edit: only submitted fields change.
func (h *ArtistHandler) Edit(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	values, err := postForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form body"})
	}
	patch, err := artistPatchFrom(values)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	a, err := h.Artists.Update(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": a.ID, "name": a.Name})
}
