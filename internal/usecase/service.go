package usecase

import (
	"blinddate-booking/internal/data/repository"
	"blinddate-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
	Venue   VenueService
}

func NewService(repo *repository.Repository, config *utils.Config, pub EventPublisher, log *zap.Logger) *Service {
	matches := NewMatchingClient(config.Matching, log)

	return &Service{
		Booking: NewBookingService(repo, matches, pub, log),
		Venue:   NewVenueService(repo, log),
	}
}
