package repository

import "time"

// Scheduled is anything carrying a show start time.
type Scheduled interface {
	ScheduledAt() time.Time
}

// ScheduledAt implements Scheduled for venue-page rows.
func (r VenueShowRow) ScheduledAt() time.Time { return r.StartTime }

// ScheduledAt implements Scheduled for artist-page rows.
func (r ArtistShowRow) ScheduledAt() time.Time { return r.StartTime }

// PartitionShows splits rows into upcoming (start time at or after now)
// and past (before now). The two buckets are disjoint and together
// contain every input row. now must be a single snapshot taken once per
// request so a row cannot flicker between buckets mid-computation.
func PartitionShows[S Scheduled](shows []S, now time.Time) (upcoming, past []S) {
	for _, s := range shows {
		if s.ScheduledAt().Before(now) {
			past = append(past, s)
		} else {
			upcoming = append(upcoming, s)
		}
	}
	return upcoming, past
}
