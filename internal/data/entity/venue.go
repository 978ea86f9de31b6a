package entity

import "time"

type Venue struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	City      string    `db:"city"`
	Rating    *float64  `db:"rating"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

// TimeSlot is a reservable unit of venue + date + time. Reservation flips
// Available false as a single atomic update; at most one confirmed booking
// holds a slot at a time.
type TimeSlot struct {
	ID        int64     `db:"id"`
	VenueID   int64     `db:"venue_id"`
	Date      string    `db:"date"` // YYYY-MM-DD
	Time      string    `db:"time"` // HH:MM
	Available bool      `db:"available"`
	CreatedAt time.Time `db:"created_at"`
}
