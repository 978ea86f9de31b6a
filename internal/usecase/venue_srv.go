package usecase

import (
	"context"
	"fmt"

	"blinddate-booking/internal/data/repository"
	"blinddate-booking/internal/dto/request"
	"blinddate-booking/internal/dto/response"
	"blinddate-booking/internal/negotiation"
	"blinddate-booking/pkg/utils"

	"go.uber.org/zap"
)

// VenueService is the read-mostly venue directory pass-through: listing,
// details, slot availability, plus bulk slot seeding.
type VenueService interface {
	GetVenues(ctx context.Context, req *request.PaginatedRequest, cityFilter *string, activeOnly bool) (*response.PaginatedResponse[response.VenueResponse], error)
	GetVenueByID(ctx context.Context, venueID int64) (*response.VenueResponse, error)
	GetAvailableTimes(ctx context.Context, venueID int64, date string) ([]*response.TimeSlotResponse, error)
	CreateTimeSlots(ctx context.Context, venueID int64, req *request.TimeSlotBulkRequest) (*response.TimeSlotBulkResponse, error)
}

type venueService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVenueService(repo *repository.Repository, log *zap.Logger) VenueService {
	return &venueService{
		repo: repo,
		log:  log.With(zap.String("service", "venue")),
	}
}

func (s *venueService) GetVenues(ctx context.Context, req *request.PaginatedRequest, cityFilter *string, activeOnly bool) (*response.PaginatedResponse[response.VenueResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	venues, err := s.repo.Venue.FindAll(ctx, limit, offset, cityFilter, activeOnly)
	if err != nil {
		s.log.Error("Failed to get venues",
			zap.Error(err),
			zap.Stringp("city_filter", cityFilter),
		)
		return nil, fmt.Errorf("get venues: %w", err)
	}

	total, err := s.repo.Venue.CountAll(ctx, cityFilter, activeOnly)
	if err != nil {
		s.log.Error("Failed to count venues", zap.Error(err))
		return nil, fmt.Errorf("count venues: %w", err)
	}

	venueResponses := make([]response.VenueResponse, len(venues))
	for i, venue := range venues {
		venueResponses[i] = response.VenueToResponse(venue)
	}

	return response.NewPaginatedResponse(venueResponses, req.Page, req.PerPage, total), nil
}

func (s *venueService) GetVenueByID(ctx context.Context, venueID int64) (*response.VenueResponse, error) {
	venue, err := s.repo.Venue.FindByID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("get venue %d: %w", venueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %d: %w", venueID, negotiation.ErrVenueNotFound)
	}

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) GetAvailableTimes(ctx context.Context, venueID int64, date string) ([]*response.TimeSlotResponse, error) {
	exists, err := s.repo.Venue.Exists(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("venue %d: %w", venueID, negotiation.ErrVenueNotFound)
	}

	slots, err := s.repo.TimeSlot.FindAvailable(ctx, venueID, date)
	if err != nil {
		return nil, fmt.Errorf("get available times for venue %d: %w", venueID, err)
	}

	slotResponses := make([]*response.TimeSlotResponse, len(slots))
	for i, slot := range slots {
		resp := response.TimeSlotToResponse(slot)
		slotResponses[i] = &resp
	}

	s.log.Info("Available times retrieved",
		zap.Int64("venue_id", venueID),
		zap.String("date", date),
		zap.Int("count", len(slots)),
	)

	return slotResponses, nil
}

func (s *venueService) CreateTimeSlots(ctx context.Context, venueID int64, req *request.TimeSlotBulkRequest) (*response.TimeSlotBulkResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create time slots validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	exists, err := s.repo.Venue.Exists(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("venue %d: %w", venueID, negotiation.ErrVenueNotFound)
	}

	created, err := s.repo.TimeSlot.CreateBatch(ctx, venueID, req.Dates, req.Times)
	if err != nil {
		return nil, fmt.Errorf("create time slots: %w", err)
	}

	s.log.Info("Time slots created",
		zap.Int64("venue_id", venueID),
		zap.Int64("created", created),
	)

	return &response.TimeSlotBulkResponse{
		VenueID: venueID,
		Created: created,
	}, nil
}
