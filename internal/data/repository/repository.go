package repository

import (
	"blinddate-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Booking  BookingRepository
	Venue    VenueRepository
	TimeSlot TimeSlotRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Booking:  NewBookingRepository(db, log),
		Venue:    NewVenueRepository(db, log),
		TimeSlot: NewTimeSlotRepository(db, log),
	}
}
