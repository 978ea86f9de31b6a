package response

import (
	"blinddate-booking/internal/data/entity"
)

type VenueResponse struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	City     string   `json:"city"`
	Rating   *float64 `json:"rating"`
	IsActive bool     `json:"is_active"`
}

type TimeSlotResponse struct {
	ID        int64  `json:"id"`
	VenueID   int64  `json:"venue_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type TimeSlotBulkResponse struct {
	VenueID int64 `json:"venue_id"`
	Created int64 `json:"created"`
}

// Helper converters
func VenueToResponse(v *entity.Venue) VenueResponse {
	return VenueResponse{
		ID:       v.ID,
		Name:     v.Name,
		Address:  v.Address,
		City:     v.City,
		Rating:   v.Rating,
		IsActive: v.IsActive,
	}
}

func TimeSlotToResponse(s *entity.TimeSlot) TimeSlotResponse {
	return TimeSlotResponse{
		ID:        s.ID,
		VenueID:   s.VenueID,
		Date:      s.Date,
		Time:      s.Time,
		Available: s.Available,
	}
}
