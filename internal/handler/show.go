package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/gigboard/gigboard/internal/model"
	"github.com/gigboard/gigboard/internal/queue"
	"github.com/gigboard/gigboard/internal/repository"
	queue_publisher "github.com/gigboard/gigboard/internal/service"
)

// ShowHandler serves the show listing, search, and create surface.
// Shows are insert-only: there is no edit or delete here.
type ShowHandler struct {
	Shows   *repository.ShowRepo
	Venues  *repository.VenueRepo
	Artists *repository.ArtistRepo
}

// NewShowHandler constructs a ShowHandler.
func NewShowHandler(shows *repository.ShowRepo, venues *repository.VenueRepo, artists *repository.ArtistRepo) *ShowHandler {
	return &ShowHandler{Shows: shows, Venues: venues, Artists: artists}
}

type showSearchHit struct {
	repository.ShowListingRow
	NumUpcomingShows int `json:"num_upcoming_shows"`
}

// List handles GET /shows: every show joined with its venue and artist.
func (h *ShowHandler) List(c echo.Context) error {
	rows, err := h.Shows.ListAll(c.Request().Context())
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": emptyIfNil(rows)})
}

// Search handles POST /shows/search. A term that parses as a date or
// datetime matches start times exactly; anything else matches venue or
// artist names as a substring.
func (h *ShowHandler) Search(c echo.Context) error {
	term := repository.ParseSearchTerm(c.FormValue("search_term"))
	rows, err := h.Shows.Search(c.Request().Context(), term)
	if err != nil {
		return dbError(c, err)
	}
	data := make([]showSearchHit, 0, len(rows))
	for _, r := range rows {
		data = append(data, showSearchHit{ShowListingRow: r})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(data), "data": data})
}

// NewForm handles GET /shows/create: a default start time for the form.
func (h *ShowHandler) NewForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"start_time": time.Now().UTC().Format(time.RFC3339),
	})
}

// Create handles POST /shows/create. Referencing an artist or venue
// that does not exist is a client error, not a server one.
func (h *ShowHandler) Create(c echo.Context) error {
	artistID, err := strconv.ParseUint(c.FormValue("artist_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist_id must be a positive integer"})
	}
	venueID, err := strconv.ParseUint(c.FormValue("venue_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue_id must be a positive integer"})
	}
	startTime, ok := parseStartTime(c.FormValue("start_time"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time is not a valid timestamp"})
	}

	show := &model.Show{ArtistID: artistID, VenueID: venueID, StartTime: startTime}
	if err := h.Shows.Create(c.Request().Context(), show); err != nil {
		if errors.Is(err, repository.ErrBadReference) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist or venue does not exist"})
		}
		log.Error().Err(err).Msg("show create failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "An error occurred. Show could not be listed.",
		})
	}

	h.announceListing(show)

	return c.JSON(http.StatusCreated, echo.Map{
		"id":      show.ID,
		"message": "Show was successfully listed!",
	})
}

// announceListing publishes a show.listed event in the background.
// Lookups and publishing are best-effort; a broker or store outage
// never affects the caller's response.
func (h *ShowHandler) announceListing(show *model.Show) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		ev := queue.ShowListedEvent{
			ShowID:    show.ID,
			VenueID:   show.VenueID,
			ArtistID:  show.ArtistID,
			StartTime: show.StartTime.Format(time.RFC3339),
			ListedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if v, err := h.Venues.GetByID(ctx, show.VenueID); err == nil {
			ev.VenueName = v.Name
		}
		if a, err := h.Artists.GetByID(ctx, show.ArtistID); err == nil {
			ev.ArtistName = a.Name
		}
		_ = queue_publisher.PublishShowListed(ctx, ev)
	}()
}
