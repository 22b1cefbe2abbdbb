package model

import "time"

// Artist represents a performer who can be booked. Same genre handling
// as Venue; an artist owns zero or more shows via shows.artist_id.
type Artist struct {
	ID                 uint64    // artists.id
	Name               string    // artists.name
	City               string    // artists.city
	State              string    // artists.state
	Phone              string    // artists.phone
	Genres             []string  // artists.genres, decoded from the brace form
	ImageLink          string    // artists.image_link
	FacebookLink       string    // artists.facebook_link
	WebsiteLink        string    // artists.website_link
	SeekingVenue       bool      // artists.seeking_venue
	SeekingDescription string    // artists.seeking_description
	CreatedAt          time.Time // artists.created_at
	UpdatedAt          time.Time // artists.updated_at
}

// ArtistSummary is the light projection used by the artist index page:
// id and name only.
type ArtistSummary struct {
	ID   uint64
	Name string
}

// ArtistPatch is a partial update of an artist; nil means untouched.
type ArtistPatch struct {
	Name               *string
	City               *string
	State              *string
	Phone              *string
	Genres             *[]string
	ImageLink          *string
	FacebookLink       *string
	WebsiteLink        *string
	SeekingVenue       *bool
	SeekingDescription *string
}

// Apply overwrites a's fields with the patch's present values.
func (p ArtistPatch) Apply(a *Artist) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.City != nil {
		a.City = *p.City
	}
	if p.State != nil {
		a.State = *p.State
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Genres != nil {
		a.Genres = *p.Genres
	}
	if p.ImageLink != nil {
		a.ImageLink = *p.ImageLink
	}
	if p.FacebookLink != nil {
		a.FacebookLink = *p.FacebookLink
	}
	if p.WebsiteLink != nil {
		a.WebsiteLink = *p.WebsiteLink
	}
	if p.SeekingVenue != nil {
		a.SeekingVenue = *p.SeekingVenue
	}
	if p.SeekingDescription != nil {
		a.SeekingDescription = *p.SeekingDescription
	}
}
