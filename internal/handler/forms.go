// Package handler exposes the HTTP surface: venue/artist/show browsing,
// search, create/edit/delete form submissions and promoter account
// endpoints. Handlers decode forms, call repositories and shape view
// models; all query logic lives in the repository package.
//
// This file holds the form decoding layer. Create/edit pages submit
// url-encoded forms; genres arrive as display labels (one value per
// selected option) and are converted to stored names here, at the
// boundary, so single-vs-multiple selections never reach the data
// layer as different shapes. Edit submissions are partial: a patch
// field is set only when its key is present in the form.
package handler

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/gigboard/gigboard/internal/genre"
	"github.com/gigboard/gigboard/internal/model"
)

var validate = validator.New()

// startTimeLayouts are the timestamp shapes accepted from show forms.
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// postForm parses the request body and returns the submitted fields.
func postForm(c echo.Context) (url.Values, error) {
	if err := c.Request().ParseForm(); err != nil {
		return nil, err
	}
	return c.Request().PostForm, nil
}

// formBool interprets checkbox values. The legacy forms submit "y".
func formBool(v string) bool {
	switch strings.ToLower(v) {
	case "y", "yes", "true", "on", "1":
		return true
	}
	return false
}

// parseStartTime tries the accepted layouts in order.
func parseStartTime(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// venueForm mirrors the venue create form. Genres hold display labels.
type venueForm struct {
	Name               string   `validate:"required"`
	City               string   `validate:"required"`
	State              string   `validate:"required"`
	Address            string   `validate:"required"`
	Phone              string
	Genres             []string `validate:"required,min=1"`
	ImageLink          string
	FacebookLink       string `validate:"omitempty,url"`
	WebsiteLink        string
	SeekingTalent      bool
	SeekingDescription string
}

func venueFormFrom(values url.Values) venueForm {
	return venueForm{
		Name:               strings.TrimSpace(values.Get("name")),
		City:               strings.TrimSpace(values.Get("city")),
		State:              strings.TrimSpace(values.Get("state")),
		Address:            strings.TrimSpace(values.Get("address")),
		Phone:              strings.TrimSpace(values.Get("phone")),
		Genres:             values["genres"],
		ImageLink:          strings.TrimSpace(values.Get("image_link")),
		FacebookLink:       strings.TrimSpace(values.Get("facebook_link")),
		WebsiteLink:        strings.TrimSpace(values.Get("website_link")),
		SeekingTalent:      formBool(values.Get("seeking_talent")),
		SeekingDescription: values.Get("seeking_description"),
	}
}

// toVenue validates the closed-set fields and builds the model with
// genres converted to stored names.
func (f venueForm) toVenue() (*model.Venue, error) {
	if _, err := genre.StateByCode(f.State); err != nil {
		return nil, err
	}
	names, err := genre.LabelsToNames(f.Genres)
	if err != nil {
		return nil, err
	}
	return &model.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		Genres:             names,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}, nil
}

// venuePatchFrom builds a partial update from the submitted keys only.
func venuePatchFrom(values url.Values) (model.VenuePatch, error) {
	var p model.VenuePatch
	if err := patchString(values, "name", &p.Name); err != nil {
		return p, err
	}
	patchStringRaw(values, "city", &p.City)
	patchStringRaw(values, "address", &p.Address)
	patchStringRaw(values, "phone", &p.Phone)
	patchStringRaw(values, "image_link", &p.ImageLink)
	patchStringRaw(values, "facebook_link", &p.FacebookLink)
	patchStringRaw(values, "website_link", &p.WebsiteLink)
	patchStringRaw(values, "seeking_description", &p.SeekingDescription)
	if values.Has("state") {
		state, err := genre.StateByCode(strings.TrimSpace(values.Get("state")))
		if err != nil {
			return p, err
		}
		p.State = &state
	}
	if values.Has("genres") {
		names, err := genre.LabelsToNames(values["genres"])
		if err != nil {
			return p, err
		}
		p.Genres = &names
	}
	if values.Has("seeking_talent") {
		b := formBool(values.Get("seeking_talent"))
		p.SeekingTalent = &b
	}
	return p, nil
}

// artistForm mirrors the artist create form.
type artistForm struct {
	Name               string   `validate:"required"`
	City               string   `validate:"required"`
	State              string   `validate:"required"`
	Phone              string
	Genres             []string `validate:"required,min=1"`
	ImageLink          string
	FacebookLink       string `validate:"omitempty,url"`
	WebsiteLink        string
	SeekingVenue       bool
	SeekingDescription string
}

func artistFormFrom(values url.Values) artistForm {
	return artistForm{
		Name:               strings.TrimSpace(values.Get("name")),
		City:               strings.TrimSpace(values.Get("city")),
		State:              strings.TrimSpace(values.Get("state")),
		Phone:              strings.TrimSpace(values.Get("phone")),
		Genres:             values["genres"],
		ImageLink:          strings.TrimSpace(values.Get("image_link")),
		FacebookLink:       strings.TrimSpace(values.Get("facebook_link")),
		WebsiteLink:        strings.TrimSpace(values.Get("website_link")),
		SeekingVenue:       formBool(values.Get("seeking_venue")),
		SeekingDescription: values.Get("seeking_description"),
	}
}

func (f artistForm) toArtist() (*model.Artist, error) {
	if _, err := genre.StateByCode(f.State); err != nil {
		return nil, err
	}
	names, err := genre.LabelsToNames(f.Genres)
	if err != nil {
		return nil, err
	}
	return &model.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             names,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}, nil
}

// artistPatchFrom builds a partial update from the submitted keys only.
func artistPatchFrom(values url.Values) (model.ArtistPatch, error) {
	var p model.ArtistPatch
	if err := patchString(values, "name", &p.Name); err != nil {
		return p, err
	}
	patchStringRaw(values, "city", &p.City)
	patchStringRaw(values, "phone", &p.Phone)
	patchStringRaw(values, "image_link", &p.ImageLink)
	patchStringRaw(values, "facebook_link", &p.FacebookLink)
	patchStringRaw(values, "website_link", &p.WebsiteLink)
	patchStringRaw(values, "seeking_description", &p.SeekingDescription)
	if values.Has("state") {
		state, err := genre.StateByCode(strings.TrimSpace(values.Get("state")))
		if err != nil {
			return p, err
		}
		p.State = &state
	}
	if values.Has("genres") {
		names, err := genre.LabelsToNames(values["genres"])
		if err != nil {
			return p, err
		}
		p.Genres = &names
	}
	if values.Has("seeking_venue") {
		b := formBool(values.Get("seeking_venue"))
		p.SeekingVenue = &b
	}
	return p, nil
}

// patchString sets dst when the key is submitted, rejecting an empty
// value for required fields.
func patchString(values url.Values, key string, dst **string) error {
	if !values.Has(key) {
		return nil
	}
	v := strings.TrimSpace(values.Get(key))
	if v == "" {
		return fmt.Errorf("%s cannot be empty", key)
	}
	*dst = &v
	return nil
}

// patchStringRaw sets dst when the key is submitted, empty allowed.
func patchStringRaw(values url.Values, key string, dst **string) {
	if values.Has(key) {
		v := strings.TrimSpace(values.Get(key))
		*dst = &v
	}
}
