package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/gigboard/gigboard/internal/genre"
	"github.com/gigboard/gigboard/internal/queue"
	"github.com/gigboard/gigboard/internal/repository"
	queue_publisher "github.com/gigboard/gigboard/internal/service"
)

// VenueHandler serves the venue pages: grouped index, search, detail
// with upcoming/past shows, and the create/edit/delete surface.
type VenueHandler struct {
	Venues *repository.VenueRepo
	Shows  *repository.ShowRepo
}

// NewVenueHandler constructs a VenueHandler.
func NewVenueHandler(venues *repository.VenueRepo, shows *repository.ShowRepo) *VenueHandler {
	return &VenueHandler{Venues: venues, Shows: shows}
}

// venueArea is one (city, state) group on the venue index.
type venueArea struct {
	City   string          `json:"city"`
	State  string          `json:"state"`
	Venues []venueOverview `json:"venues"`
}

type venueOverview struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// venueDetail is the full venue page payload. Genres are display
// labels, not stored names.
type venueDetail struct {
	ID                 uint64                     `json:"id"`
	Name               string                     `json:"name"`
	City               string                     `json:"city"`
	State              string                     `json:"state"`
	Address            string                     `json:"address"`
	Phone              string                     `json:"phone"`
	Genres             []string                   `json:"genres"`
	ImageLink          string                     `json:"image_link"`
	FacebookLink       string                     `json:"facebook_link"`
	WebsiteLink        string                     `json:"website_link"`
	SeekingTalent      bool                       `json:"seeking_talent"`
	SeekingDescription string                     `json:"seeking_description"`
	UpcomingShows      []repository.VenueShowRow  `json:"upcoming_shows"`
	PastShows          []repository.VenueShowRow  `json:"past_shows"`
	UpcomingShowsCount int                        `json:"upcoming_shows_count"`
	PastShowsCount     int                        `json:"past_shows_count"`
}

// List handles GET /venues: every venue grouped by (city, state), each
// with its count of upcoming shows. The counts come from one batched
// query over all venue ids, never one query per venue.
func (h *VenueHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	venues, err := h.Venues.ListAll(ctx)
	if err != nil {
		return dbError(c, err)
	}

	ids := make([]uint64, 0, len(venues))
	for _, v := range venues {
		ids = append(ids, v.ID)
	}
	now := time.Now().UTC()
	upcoming, err := h.Shows.UpcomingByVenues(ctx, ids, now)
	if err != nil {
		return dbError(c, err)
	}
	counts := make(map[uint64]int, len(ids))
	for _, s := range upcoming {
		counts[s.VenueID]++
	}

	// Group by (city, state) preserving first-seen order.
	type areaKey struct{ city, state string }
	index := map[areaKey]int{}
	areas := []venueArea{}
	for _, v := range venues {
		key := areaKey{v.City, v.State}
		i, ok := index[key]
		if !ok {
			i = len(areas)
			index[key] = i
			areas = append(areas, venueArea{City: v.City, State: v.State})
		}
		areas[i].Venues = append(areas[i].Venues, venueOverview{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: counts[v.ID],
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// Search handles POST /venues/search: case-insensitive substring match
// on name. num_upcoming_shows is always 0 on this surface.
func (h *VenueHandler) Search(c echo.Context) error {
	keyword := c.FormValue("search_term")
	venues, err := h.Venues.SearchByName(c.Request().Context(), keyword)
	if err != nil {
		return dbError(c, err)
	}
	data := make([]venueOverview, 0, len(venues))
	for _, v := range venues {
		data = append(data, venueOverview{ID: v.ID, Name: v.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(data), "data": data})
}

// Get handles GET /venues/:id: the detail page with shows partitioned
// into upcoming and past against a single time snapshot.
func (h *VenueHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return dbError(c, err)
	}
	labels, err := genre.NamesToLabels(v.Genres)
	if err != nil {
		// A stored genre name outside the closed set means corrupt data.
		return dbError(c, err)
	}
	rows, err := h.Shows.ByVenue(ctx, id)
	if err != nil {
		return dbError(c, err)
	}
	now := time.Now().UTC()
	upcoming, past := repository.PartitionShows(rows, now)

	return c.JSON(http.StatusOK, venueDetail{
		ID:                 v.ID,
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             labels,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.WebsiteLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		UpcomingShows:      emptyIfNil(upcoming),
		PastShows:          emptyIfNil(past),
		UpcomingShowsCount: len(upcoming),
		PastShowsCount:     len(past),
	})
}

// NewForm handles GET /venues/create: the choice sets the form renders.
func (h *VenueHandler) NewForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"genres": genre.Labels(),
		"states": genre.States(),
	})
}

// Create handles POST /venues/create.
func (h *VenueHandler) Create(c echo.Context) error {
	values, err := postForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form body"})
	}
	form := venueFormFrom(values)
	if err := validate.Struct(form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	v, err := form.toVenue()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Venues.Create(c.Request().Context(), v); err != nil {
		log.Error().Err(err).Str("venue", form.Name).Msg("venue create failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": fmt.Sprintf("An error occurred. Venue with name %s could not be saved.", form.Name),
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":      v.ID,
		"message": fmt.Sprintf("Venue %s was successfully listed!", v.Name),
	})
}

// EditForm handles GET /venues/:id/edit: current values plus choices.
func (h *VenueHandler) EditForm(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return dbError(c, err)
	}
	labels, err := genre.NamesToLabels(v.Genres)
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"venue": echo.Map{
			"id":                  v.ID,
			"name":                v.Name,
			"city":                v.City,
			"state":               v.State,
			"address":             v.Address,
			"phone":               v.Phone,
			"genres":              labels,
			"image_link":          v.ImageLink,
			"facebook_link":       v.FacebookLink,
			"website_link":        v.WebsiteLink,
			"seeking_talent":      v.SeekingTalent,
			"seeking_description": v.SeekingDescription,
		},
		"genres": genre.Labels(),
		"states": genre.States(),
	})
}

// Edit handles POST /venues/:id/edit: only submitted fields change.
func (h *VenueHandler) Edit(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	values, err := postForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form body"})
	}
	patch, err := venuePatchFrom(values)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	v, err := h.Venues.Update(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": v.ID, "name": v.Name})
}

// Delete handles DELETE /venues/:id. The response is {success} with
// 200 on success and 400 on any expected failure: unknown id or a
// venue that still has shows (deletion never cascades).
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false})
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false})
	}
	if err := h.Venues.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrVenueNotFound), errors.Is(err, repository.ErrVenueHasShows):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false})
		default:
			log.Error().Err(err).Uint64("venue_id", id).Msg("venue delete failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false})
		}
	}

	// Best-effort event; never blocks or fails the response.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishVenueRemoved(ctx, queue.VenueRemovedEvent{
			VenueID:   v.ID,
			Name:      v.Name,
			RemovedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Venue with the id %d deleted successfully", id),
	})
}

// dbError reports an unexpected store failure: logged distinctly and
// answered with a 500.
func dbError(c echo.Context, err error) error {
	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("database error")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// emptyIfNil keeps empty show lists rendering as [] rather than null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
