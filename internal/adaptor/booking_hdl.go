package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"blinddate-booking/internal/dto/request"
	"blinddate-booking/internal/negotiation"
	"blinddate-booking/internal/usecase"
	"blinddate-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.GetBooking(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetUserBookings handles GET /api/users/{userId}/bookings
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID := utils.ParseInt64(chi.URLParam(r, "userId"))
	if userID == 0 {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userID, req)
	if err != nil {
		h.handleServiceError(w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetPartnerProposal handles GET /api/bookings/{id}/partner-proposal
func (h *BookingHandler) GetPartnerProposal(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	userID := utils.ParseInt64(r.URL.Query().Get("user_id"))
	if bookingID == "" || userID == 0 {
		utils.ResponseBadRequest(w, "Booking ID and user_id are required", nil)
		return
	}

	proposal, err := h.service.GetPartnerProposal(r.Context(), bookingID, userID)
	if err != nil {
		h.handleServiceError(w, err, "get partner proposal")
		return
	}

	utils.ResponseSuccess(w, "success", proposal)
}

// ProposeVenue handles POST /api/bookings/{id}/propose-venue
func (h *BookingHandler) ProposeVenue(w http.ResponseWriter, r *http.Request) {
	var req request.VenueProposalRequest
	h.negotiate(w, r, &req, "propose venue", func(bookingID string) (any, error) {
		return h.service.ProposeVenue(r.Context(), bookingID, &req)
	})
}

// ApproveVenue handles POST /api/bookings/{id}/approve-venue
func (h *BookingHandler) ApproveVenue(w http.ResponseWriter, r *http.Request) {
	var req request.VenueApprovalRequest
	h.negotiate(w, r, &req, "approve venue", func(bookingID string) (any, error) {
		return h.service.ApproveVenue(r.Context(), bookingID, &req)
	})
}

// RejectVenue handles POST /api/bookings/{id}/reject-venue
func (h *BookingHandler) RejectVenue(w http.ResponseWriter, r *http.Request) {
	var req request.RejectRequest
	h.negotiate(w, r, &req, "reject venue", func(bookingID string) (any, error) {
		return h.service.RejectVenue(r.Context(), bookingID, &req)
	})
}

// ProposeTime handles POST /api/bookings/{id}/propose-time
func (h *BookingHandler) ProposeTime(w http.ResponseWriter, r *http.Request) {
	var req request.TimeProposalRequest
	h.negotiate(w, r, &req, "propose time", func(bookingID string) (any, error) {
		return h.service.ProposeTime(r.Context(), bookingID, &req)
	})
}

// ApproveTime handles POST /api/bookings/{id}/approve-time
func (h *BookingHandler) ApproveTime(w http.ResponseWriter, r *http.Request) {
	var req request.TimeApprovalRequest
	h.negotiate(w, r, &req, "approve time", func(bookingID string) (any, error) {
		return h.service.ApproveTime(r.Context(), bookingID, &req)
	})
}

// RejectTime handles POST /api/bookings/{id}/reject-time
func (h *BookingHandler) RejectTime(w http.ResponseWriter, r *http.Request) {
	var req request.RejectRequest
	h.negotiate(w, r, &req, "reject time", func(bookingID string) (any, error) {
		return h.service.RejectTime(r.Context(), bookingID, &req)
	})
}

// ConfirmBooking handles POST /api/bookings/{id}/confirm
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.ConfirmBooking(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, err, "confirm booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelBooking handles POST /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	// Body is optional; an absent body cancels without a reason. A present
	// but malformed body is still an error.
	var req request.CancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), bookingID, &req)
	if err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CompleteBooking handles POST /api/bookings/{id}/complete
func (h *BookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.CompleteBooking(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, err, "complete booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// negotiate handles the shared decode/validate/respond shape of the
// negotiation step endpoints.
func (h *BookingHandler) negotiate(w http.ResponseWriter, r *http.Request, req any, operation string, call func(bookingID string) (any, error)) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := call(bookingID)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// handleServiceError maps domain errors to HTTP status codes
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, negotiation.ErrNotFound),
		errors.Is(err, negotiation.ErrMatchNotFound),
		errors.Is(err, negotiation.ErrVenueNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, negotiation.ErrUnauthorized):
		h.log.Warn(operation+" failed - not a participant", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case errors.Is(err, negotiation.ErrSlotUnavailable):
		h.log.Warn(operation+" failed - slot taken", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, negotiation.ErrInvalidState),
		errors.Is(err, negotiation.ErrProposalMismatch),
		errors.Is(err, negotiation.ErrDuplicateMatch),
		errors.Is(err, negotiation.ErrInvalidID):
		h.log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
