package usecase

import (
	"context"
	"fmt"
	"time"

	"blinddate-booking/internal/data/entity"
	"blinddate-booking/internal/data/repository"
	"blinddate-booking/internal/dto/request"
	"blinddate-booking/internal/dto/response"
	"blinddate-booking/internal/negotiation"
	"blinddate-booking/pkg/events"
	"blinddate-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetPartnerProposal(ctx context.Context, bookingID string, userID int64) (*response.PartnerProposalResponse, error)

	ProposeVenue(ctx context.Context, bookingID string, req *request.VenueProposalRequest) (*response.BookingResponse, error)
	ApproveVenue(ctx context.Context, bookingID string, req *request.VenueApprovalRequest) (*response.BookingResponse, error)
	RejectVenue(ctx context.Context, bookingID string, req *request.RejectRequest) (*response.BookingResponse, error)
	ProposeTime(ctx context.Context, bookingID string, req *request.TimeProposalRequest) (*response.BookingResponse, error)
	ApproveTime(ctx context.Context, bookingID string, req *request.TimeApprovalRequest) (*response.BookingResponse, error)
	RejectTime(ctx context.Context, bookingID string, req *request.RejectRequest) (*response.BookingResponse, error)

	ConfirmBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error)
	CompleteBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
}

// EventPublisher is satisfied by events.Publisher; nil disables publishing.
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

type bookingService struct {
	repo    *repository.Repository
	matches MatchDirectory
	pub     EventPublisher
	locks   *utils.KeyedMutex
	log     *zap.Logger
}

func NewBookingService(repo *repository.Repository, matches MatchDirectory, pub EventPublisher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:    repo,
		matches: matches,
		pub:     pub,
		locks:   utils.NewKeyedMutex(),
		log:     log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// The match is the source of truth for who the participants are.
	match, err := s.matches.GetConfirmedMatch(ctx, req.MatchID)
	if err != nil {
		return nil, err
	}
	if !sameParticipants(match, req.User1ID, req.User2ID) {
		s.log.Warn("Booking participants do not match the confirmed match",
			zap.Int64("match_id", req.MatchID),
			zap.Int64("user_1_id", req.User1ID),
			zap.Int64("user_2_id", req.User2ID),
		)
		return nil, fmt.Errorf("participants of match %d: %w", req.MatchID, negotiation.ErrUnauthorized)
	}

	existing, err := s.repo.Booking.FindByMatchID(ctx, req.MatchID)
	if err != nil {
		return nil, fmt.Errorf("check existing booking: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("match %d: %w", req.MatchID, negotiation.ErrDuplicateMatch)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MatchID: req.MatchID,
		User1ID: req.User1ID,
		User2ID: req.User2ID,
		Status:  entity.BookingStatusPendingVenueApproval,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("match_id", req.MatchID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("match_id", booking.MatchID),
		zap.Int64("user_1_id", booking.User1ID),
		zap.Int64("user_2_id", booking.User2ID),
	)

	s.publish(ctx, events.KeyBookingCreated, booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetPartnerProposal(ctx context.Context, bookingID string, userID int64) (*response.PartnerProposalResponse, error) {
	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsParticipant(userID) {
		return nil, negotiation.ErrUnauthorized
	}

	partnerID := booking.Counterpart(userID)
	date, timeOfDay := booking.ProposedDateTime(partnerID)

	return &response.PartnerProposalResponse{
		BookingID:       booking.ID.String(),
		PartnerID:       partnerID,
		ProposedVenueID: booking.ProposedVenue(partnerID),
		ProposedDate:    date,
		ProposedTime:    timeOfDay,
		Status:          booking.Status,
	}, nil
}

func (s *bookingService) ProposeVenue(ctx context.Context, bookingID string, req *request.VenueProposalRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	exists, err := s.repo.Venue.Exists(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("venue %d: %w", req.VenueID, negotiation.ErrVenueNotFound)
	}

	return s.mutate(ctx, bookingID, "propose venue", func(b *entity.Booking) error {
		return negotiation.ProposeVenue(b, req.UserID, req.VenueID)
	})
}

func (s *bookingService) ApproveVenue(ctx context.Context, bookingID string, req *request.VenueApprovalRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	return s.mutate(ctx, bookingID, "approve venue", func(b *entity.Booking) error {
		return negotiation.ApproveVenue(b, req.UserID, req.VenueID, *req.Approved)
	})
}

func (s *bookingService) RejectVenue(ctx context.Context, bookingID string, req *request.RejectRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	return s.mutate(ctx, bookingID, "reject venue", func(b *entity.Booking) error {
		return negotiation.RejectVenue(b, req.UserID)
	})
}

func (s *bookingService) ProposeTime(ctx context.Context, bookingID string, req *request.TimeProposalRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	return s.mutate(ctx, bookingID, "propose time", func(b *entity.Booking) error {
		return negotiation.ProposeTime(b, req.UserID, req.Date, req.Time)
	})
}

func (s *bookingService) ApproveTime(ctx context.Context, bookingID string, req *request.TimeApprovalRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	return s.mutate(ctx, bookingID, "approve time", func(b *entity.Booking) error {
		return negotiation.ApproveTime(b, req.UserID, req.Date, req.Time, *req.Approved)
	})
}

func (s *bookingService) RejectTime(ctx context.Context, bookingID string, req *request.RejectRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	return s.mutate(ctx, bookingID, "reject time", func(b *entity.Booking) error {
		return negotiation.RejectTime(b, req.UserID)
	})
}

// ConfirmBooking is the confirmation coordinator: it reserves the agreed
// slot in the directory and stamps the booking confirmed. The slot CAS is
// the only write shared across bookings; when two bookings race for the
// same slot exactly one reserve succeeds and the loser stays in
// both_approved with nothing changed.
func (s *bookingService) ConfirmBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking ID %q: %w", bookingID, negotiation.ErrInvalidID)
	}

	// Lock on the canonical form: uuid.Parse accepts several spellings of
	// the same id, and they all must land on one mutex.
	unlock := s.locks.Lock(id.String())
	defer unlock()

	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	venueID, date, timeOfDay, err := negotiation.AgreedSelection(booking)
	if err != nil {
		return nil, err
	}

	reserved, err := s.repo.TimeSlot.Reserve(ctx, venueID, date, timeOfDay)
	if err != nil {
		return nil, err
	}
	if !reserved {
		s.log.Warn("Slot already taken at confirmation",
			zap.String("booking_id", bookingID),
			zap.Int64("venue_id", venueID),
			zap.String("date", date),
			zap.String("time", timeOfDay),
		)
		return nil, fmt.Errorf("slot %d/%s %s: %w", venueID, date, timeOfDay, negotiation.ErrSlotUnavailable)
	}

	code := utils.GenerateConfirmationCode()
	if err := negotiation.MarkConfirmed(booking, venueID, date, timeOfDay, code); err != nil {
		// Unreachable after AgreedSelection, but never strand the slot.
		s.releaseSlot(ctx, venueID, date, timeOfDay)
		return nil, err
	}

	booking.UpdatedAt = time.Now()
	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.releaseSlot(ctx, venueID, date, timeOfDay)
		return nil, fmt.Errorf("persist confirmation: %w", err)
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", bookingID),
		zap.Int64("venue_id", venueID),
		zap.String("date", date),
		zap.String("time", timeOfDay),
		zap.String("confirmation_code", code),
	)

	s.publish(ctx, events.KeyBookingConfirmed, booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking ID %q: %w", bookingID, negotiation.ErrInvalidID)
	}

	// Lock on the canonical form: uuid.Parse accepts several spellings of
	// the same id, and they all must land on one mutex.
	unlock := s.locks.Lock(id.String())
	defer unlock()

	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	wasConfirmed := booking.Status == entity.BookingStatusConfirmed

	if err := negotiation.Cancel(booking, req.Reason); err != nil {
		return nil, err
	}

	// A confirmed booking holds a reserved slot; give it back. If the
	// release fails the slot leaks until an operator intervenes, which
	// beats leaving the booking stuck un-cancellable.
	if wasConfirmed && booking.VenueID != nil && booking.BookingDate != nil && booking.BookingTime != nil {
		s.releaseSlot(ctx, *booking.VenueID, *booking.BookingDate, *booking.BookingTime)
	}

	booking.UpdatedAt = time.Now()
	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("persist cancellation: %w", err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.Bool("was_confirmed", wasConfirmed),
		zap.Stringp("reason", req.Reason),
	)

	s.publish(ctx, events.KeyBookingCancelled, booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	resp, err := s.mutate(ctx, bookingID, "complete booking", func(b *entity.Booking) error {
		return negotiation.Complete(b)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking completed", zap.String("booking_id", bookingID))
	return resp, nil
}

// ==================== HELPER METHODS ====================

// mutate runs one negotiation step inside the per-booking critical section:
// load the current state, apply the engine, persist the full new state. The
// engine rejected steps leave the row untouched.
func (s *bookingService) mutate(ctx context.Context, bookingID, operation string, step func(*entity.Booking) error) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking ID %q: %w", bookingID, negotiation.ErrInvalidID)
	}

	// Lock on the canonical form: uuid.Parse accepts several spellings of
	// the same id, and they all must land on one mutex.
	unlock := s.locks.Lock(id.String())
	defer unlock()

	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := step(booking); err != nil {
		return nil, err
	}

	booking.UpdatedAt = time.Now()
	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.log.Error("Failed to persist negotiation step",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("operation", operation),
		)
		return nil, fmt.Errorf("persist %s: %w", operation, err)
	}

	s.log.Info("Negotiation step applied",
		zap.String("booking_id", bookingID),
		zap.String("operation", operation),
		zap.String("status", string(booking.Status)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) find(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking ID %q: %w", bookingID, negotiation.ErrInvalidID)
	}
	return s.load(ctx, id)
}

func (s *bookingService) load(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", id.String(), negotiation.ErrNotFound)
	}
	return booking, nil
}

func (s *bookingService) releaseSlot(ctx context.Context, venueID int64, date, timeOfDay string) {
	if err := s.repo.TimeSlot.Release(ctx, venueID, date, timeOfDay); err != nil {
		s.log.Error("Failed to release reserved slot",
			zap.Error(err),
			zap.Int64("venue_id", venueID),
			zap.String("date", date),
			zap.String("time", timeOfDay),
		)
	}
}

func (s *bookingService) publish(ctx context.Context, key string, b *entity.Booking) {
	if s.pub == nil {
		return
	}

	event := events.BookingEvent{
		BookingID:        b.ID.String(),
		MatchID:          b.MatchID,
		User1ID:          b.User1ID,
		User2ID:          b.User2ID,
		Status:           string(b.Status),
		VenueID:          b.VenueID,
		BookingDate:      b.BookingDate,
		BookingTime:      b.BookingTime,
		ConfirmationCode: b.ConfirmationCode,
		OccurredAt:       time.Now(),
	}

	if err := s.pub.Publish(ctx, key, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("key", key),
			zap.String("booking_id", b.ID.String()),
		)
	}
}

func sameParticipants(match *entity.Match, user1ID, user2ID int64) bool {
	return (match.User1ID == user1ID && match.User2ID == user2ID) ||
		(match.User1ID == user2ID && match.User2ID == user1ID)
}
