package response

import (
	"time"

	"blinddate-booking/internal/data/entity"
)

type BookingResponse struct {
	ID      string `json:"id"`
	MatchID int64  `json:"match_id"`
	User1ID int64  `json:"user_1_id"`
	User2ID int64  `json:"user_2_id"`

	User1ProposedVenueID *int64  `json:"user_1_proposed_venue_id"`
	User1ProposedDate    *string `json:"user_1_proposed_date"`
	User1ProposedTime    *string `json:"user_1_proposed_time"`
	User2ProposedVenueID *int64  `json:"user_2_proposed_venue_id"`
	User2ProposedDate    *string `json:"user_2_proposed_date"`
	User2ProposedTime    *string `json:"user_2_proposed_time"`

	VenueID     *int64  `json:"venue_id"`
	BookingDate *string `json:"booking_date"`
	BookingTime *string `json:"booking_time"`

	Status             entity.BookingStatus `json:"status"`
	User1VenueApproved bool                 `json:"user_1_venue_approved"`
	User2VenueApproved bool                 `json:"user_2_venue_approved"`
	User1TimeApproved  bool                 `json:"user_1_time_approved"`
	User2TimeApproved  bool                 `json:"user_2_time_approved"`

	ConfirmationCode   *string `json:"confirmation_code,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`

	// NextStep tells a client which screen the negotiation is on:
	// venue, time, confirm or done.
	NextStep string `json:"next_step"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartnerProposalResponse is what one side sees of the other's outstanding
// proposal, used to render the approve/reject prompt.
type PartnerProposalResponse struct {
	BookingID       string               `json:"booking_id"`
	PartnerID       int64                `json:"partner_id"`
	ProposedVenueID *int64               `json:"proposed_venue_id"`
	ProposedDate    *string              `json:"proposed_date"`
	ProposedTime    *string              `json:"proposed_time"`
	Status          entity.BookingStatus `json:"status"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:      b.ID.String(),
		MatchID: b.MatchID,
		User1ID: b.User1ID,
		User2ID: b.User2ID,

		User1ProposedVenueID: b.User1ProposedVenueID,
		User1ProposedDate:    b.User1ProposedDate,
		User1ProposedTime:    b.User1ProposedTime,
		User2ProposedVenueID: b.User2ProposedVenueID,
		User2ProposedDate:    b.User2ProposedDate,
		User2ProposedTime:    b.User2ProposedTime,

		VenueID:     b.VenueID,
		BookingDate: b.BookingDate,
		BookingTime: b.BookingTime,

		Status:             b.Status,
		User1VenueApproved: b.User1VenueApproved,
		User2VenueApproved: b.User2VenueApproved,
		User1TimeApproved:  b.User1TimeApproved,
		User2TimeApproved:  b.User2TimeApproved,

		ConfirmationCode:   b.ConfirmationCode,
		CancellationReason: b.CancellationReason,

		NextStep: nextStep(b.Status),

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func nextStep(status entity.BookingStatus) string {
	switch status {
	case entity.BookingStatusPendingVenueApproval:
		return "venue"
	case entity.BookingStatusPendingTimeApproval:
		return "time"
	case entity.BookingStatusBothApproved:
		return "confirm"
	default:
		return "done"
	}
}
