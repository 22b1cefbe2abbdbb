package model

import "time"

// Venue represents a place that hosts performances. Genres holds the
// decoded list of genre names; the repository encodes it into the single
// stored column on write and decodes on read. A venue owns zero or more
// shows via shows.venue_id.
//
// Fields map one-to-one onto the `venues` table.
type Venue struct {
	ID                 uint64    // venues.id
	Name               string    // venues.name
	City               string    // venues.city
	State              string    // venues.state
	Address            string    // venues.address
	Phone              string    // venues.phone
	Genres             []string  // venues.genres, decoded from the brace form
	ImageLink          string    // venues.image_link
	FacebookLink       string    // venues.facebook_link
	WebsiteLink        string    // venues.website_link
	SeekingTalent      bool      // venues.seeking_talent
	SeekingDescription string    // venues.seeking_description
	CreatedAt          time.Time // venues.created_at
	UpdatedAt          time.Time // venues.updated_at
}

// VenuePatch is a partial update of a venue. A nil field means "not
// submitted, leave untouched". Apply copies the set fields onto a loaded
// venue; there is no reflective field walk anywhere.
type VenuePatch struct {
	Name               *string
	City               *string
	State              *string
	Address            *string
	Phone              *string
	Genres             *[]string
	ImageLink          *string
	FacebookLink       *string
	WebsiteLink        *string
	SeekingTalent      *bool
	SeekingDescription *string
}

// Apply overwrites v's fields with the patch's present values.
func (p VenuePatch) Apply(v *Venue) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.City != nil {
		v.City = *p.City
	}
	if p.State != nil {
		v.State = *p.State
	}
	if p.Address != nil {
		v.Address = *p.Address
	}
	if p.Phone != nil {
		v.Phone = *p.Phone
	}
	if p.Genres != nil {
		v.Genres = *p.Genres
	}
	if p.ImageLink != nil {
		v.ImageLink = *p.ImageLink
	}
	if p.FacebookLink != nil {
		v.FacebookLink = *p.FacebookLink
	}
	if p.WebsiteLink != nil {
		v.WebsiteLink = *p.WebsiteLink
	}
	if p.SeekingTalent != nil {
		v.SeekingTalent = *p.SeekingTalent
	}
	if p.SeekingDescription != nil {
		v.SeekingDescription = *p.SeekingDescription
	}
}
