package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"blinddate-booking/internal/dto/request"
	"blinddate-booking/internal/negotiation"
	"blinddate-booking/internal/usecase"
	"blinddate-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VenueHandler struct {
	service usecase.VenueService
	log     *zap.Logger
}

func NewVenueHandler(service usecase.VenueService, log *zap.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		log:     log.With(zap.String("handler", "venue")),
	}
}

// GetVenues handles GET /api/venues
func (h *VenueHandler) GetVenues(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	var cityFilter *string
	if city := query.Get("city"); city != "" {
		cityFilter = &city
	}

	activeOnly := query.Get("active_only") != "false"

	venues, err := h.service.GetVenues(r.Context(), req, cityFilter, activeOnly)
	if err != nil {
		h.handleServiceError(w, err, "get venues")
		return
	}

	utils.ResponseSuccess(w, "success", venues)
}

// GetVenueByID handles GET /api/venues/{id}
func (h *VenueHandler) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	venueID := utils.ParseInt64(chi.URLParam(r, "id"))
	if venueID == 0 {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	venue, err := h.service.GetVenueByID(r.Context(), venueID)
	if err != nil {
		h.handleServiceError(w, err, "get venue by ID")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// GetAvailableTimes handles GET /api/venues/{id}/available-times
func (h *VenueHandler) GetAvailableTimes(w http.ResponseWriter, r *http.Request) {
	venueID := utils.ParseInt64(chi.URLParam(r, "id"))
	date := r.URL.Query().Get("date")
	if venueID == 0 || date == "" {
		utils.ResponseBadRequest(w, "Venue ID and date are required", nil)
		return
	}

	slots, err := h.service.GetAvailableTimes(r.Context(), venueID, date)
	if err != nil {
		h.handleServiceError(w, err, "get available times")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// CreateTimeSlots handles POST /api/venues/{id}/timeslots
func (h *VenueHandler) CreateTimeSlots(w http.ResponseWriter, r *http.Request) {
	venueID := utils.ParseInt64(chi.URLParam(r, "id"))
	if venueID == 0 {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	var req request.TimeSlotBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.CreateTimeSlots(r.Context(), venueID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create time slots")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

func (h *VenueHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, negotiation.ErrVenueNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
