package request

// TimeSlotBulkRequest seeds the cross product of dates and times as
// bookable slots for a venue.
type TimeSlotBulkRequest struct {
	Dates []string `json:"dates" validate:"required,min=1,dive,datetime=2006-01-02"`
	Times []string `json:"times" validate:"required,min=1,dive,datetime=15:04"`
}
