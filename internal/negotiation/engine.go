// Package negotiation holds the pure state machine behind the dual-proposal
// booking protocol. Functions here validate a step against the current
// booking state and participant identity and mutate the entity in memory;
// they perform no I/O. Persistence and slot reservation are the caller's
// concern, and the caller must hold the per-booking lock across
// load -> engine -> persist.
//
// Approval rule: a user's own live proposal counts as that user's approval
// of that value. A successful approve therefore closes the stage in one
// call: the approver accepts the counterpart's proposal, and the counterpart
// already stands behind it. On agreement both proposal fields are normalized
// to the agreed value and both flags are set, so "both approved the same
// value" holds structurally from then on.
package negotiation

import (
	"fmt"

	"blinddate-booking/internal/data/entity"
)

// ProposeVenue records userID's candidate venue. Any new proposal restarts
// the approval cycle: both venue approval flags are cleared.
func ProposeVenue(b *entity.Booking, userID, venueID int64) error {
	if !b.IsParticipant(userID) {
		return ErrUnauthorized
	}
	if b.Status != entity.BookingStatusPendingVenueApproval {
		return fmt.Errorf("propose venue in status %s: %w", b.Status, ErrInvalidState)
	}

	b.SetProposedVenue(userID, &venueID)
	b.User1VenueApproved = false
	b.User2VenueApproved = false
	return nil
}

// ApproveVenue handles userID's verdict on the counterpart's proposed venue.
// venueID must match the counterpart's live proposal exactly; approving a
// superseded value fails with ErrProposalMismatch. approved=false behaves
// exactly as RejectVenue. A replay of an already-agreed approval is a no-op.
func ApproveVenue(b *entity.Booking, userID, venueID int64, approved bool) error {
	if !b.IsParticipant(userID) {
		return ErrUnauthorized
	}
	if !approved {
		return RejectVenue(b, userID)
	}

	if b.Status != entity.BookingStatusPendingVenueApproval {
		if venueAgreedAt(b, venueID) {
			return nil
		}
		return fmt.Errorf("approve venue in status %s: %w", b.Status, ErrInvalidState)
	}

	proposal := b.ProposedVenue(b.Counterpart(userID))
	if proposal == nil || *proposal != venueID {
		return ErrProposalMismatch
	}

	// The counterpart proposed venueID, which is their implicit approval of
	// it; the explicit approval from userID completes the agreement.
	agreed := venueID
	b.User1ProposedVenueID = &agreed
	b.User2ProposedVenueID = &agreed
	b.User1VenueApproved = true
	b.User2VenueApproved = true
	b.Status = entity.BookingStatusPendingTimeApproval
	return nil
}

// RejectVenue discards both users' venue proposals entirely, not just the
// acting user's verdict: the counterpart must re-propose from scratch.
func RejectVenue(b *entity.Booking, userID int64) error {
	if !b.IsParticipant(userID) {
		return ErrUnauthorized
	}
	if b.Status != entity.BookingStatusPendingVenueApproval {
		return fmt.Errorf("reject venue in status %s: %w", b.Status, ErrInvalidState)
	}

	b.User1ProposedVenueID = nil
	b.User2ProposedVenueID = nil
	b.User1VenueApproved = false
	b.User2VenueApproved = false
	return nil
}

// ProposeTime records userID's candidate date and time. Only legal once the
// venue stage has closed.
func ProposeTime(b *entity.Booking, userID int64, date, timeOfDay string) error {
	if !b.IsParticipant(userID) {
		return ErrUnauthorized
	}
	if b.Status != entity.BookingStatusPendingTimeApproval {
		return fmt.Errorf("propose time in status %s: %w", b.Status, ErrInvalidState)
	}

	b.SetProposedDateTime(userID, &date, &timeOfDay)
	b.User1TimeApproved = false
	b.User2TimeApproved = false
	return nil
}

// ApproveTime mirrors ApproveVenue for the date/time stage. On agreement the
// booking moves to both_approved, ready for confirmation.
func ApproveTime(b *entity.Booking, userID int64, date, timeOfDay string, approved bool) error {
	if !b.IsParticipant(userID) {
		return ErrUnauthorized
	}
	if !approved {
		return RejectTime(b, userID)
	}

	if b.Status != entity.BookingStatusPendingTimeApproval {
		if timeAgreedAt(b, date, timeOfDay) {
			return nil
		}
		return fmt.Errorf("approve time in status %s: %w", b.Status, ErrInvalidState)
	}

	propDate, propTime := b.ProposedDateTime(b.Counterpart(userID))
	if propDate == nil || propTime == nil || *propDate != date || *propTime != timeOfDay {
		return ErrProposalMismatch
	}

	agreedDate, agreedTime := date, timeOfDay
	b.User1ProposedDate, b.User1ProposedTime = &agreedDate, &agreedTime
	b.User2ProposedDate, b.User2ProposedTime = &agreedDate, &agreedTime
	b.User1TimeApproved = true
	b.User2TimeApproved = true
	b.Status = entity.BookingStatusBothApproved
	return nil
}

// RejectTime clears both users' time proposals and returns the booking to
// pending_time_approval. It is also legal from both_approved: that is the
// re-negotiation path after a confirmation lost the slot race.
func RejectTime(b *entity.Booking, userID int64) error {
	if !b.IsParticipant(userID) {
		return ErrUnauthorized
	}
	if b.Status != entity.BookingStatusPendingTimeApproval && b.Status != entity.BookingStatusBothApproved {
		return fmt.Errorf("reject time in status %s: %w", b.Status, ErrInvalidState)
	}

	b.User1ProposedDate, b.User1ProposedTime = nil, nil
	b.User2ProposedDate, b.User2ProposedTime = nil, nil
	b.User1TimeApproved = false
	b.User2TimeApproved = false
	b.Status = entity.BookingStatusPendingTimeApproval
	return nil
}

// AgreedSelection derives the slot both users settled on. Only meaningful in
// both_approved; the normalization done at approval time guarantees the two
// sides reference identical values.
func AgreedSelection(b *entity.Booking) (venueID int64, date, timeOfDay string, err error) {
	if b.Status != entity.BookingStatusBothApproved {
		return 0, "", "", fmt.Errorf("booking status is %s: %w", b.Status, ErrInvalidState)
	}
	if b.User1ProposedVenueID == nil || b.User2ProposedVenueID == nil ||
		*b.User1ProposedVenueID != *b.User2ProposedVenueID {
		return 0, "", "", fmt.Errorf("venue proposals diverged in both_approved state")
	}
	if b.User1ProposedDate == nil || b.User1ProposedTime == nil ||
		b.User2ProposedDate == nil || b.User2ProposedTime == nil ||
		*b.User1ProposedDate != *b.User2ProposedDate || *b.User1ProposedTime != *b.User2ProposedTime {
		return 0, "", "", fmt.Errorf("time proposals diverged in both_approved state")
	}
	return *b.User1ProposedVenueID, *b.User1ProposedDate, *b.User1ProposedTime, nil
}

// MarkConfirmed stamps the final slot and confirmation code in one step,
// after the caller reserved the slot. The four final fields are never set
// separately.
func MarkConfirmed(b *entity.Booking, venueID int64, date, timeOfDay, code string) error {
	if b.Status != entity.BookingStatusBothApproved {
		return fmt.Errorf("confirm in status %s: %w", b.Status, ErrInvalidState)
	}
	b.VenueID = &venueID
	b.BookingDate = &date
	b.BookingTime = &timeOfDay
	b.ConfirmationCode = &code
	b.Status = entity.BookingStatusConfirmed
	return nil
}

// Cancel abandons the booking from any non-terminal state. Releasing an
// already-reserved slot is the caller's responsibility.
func Cancel(b *entity.Booking, reason *string) error {
	if b.Terminal() {
		return fmt.Errorf("cancel in status %s: %w", b.Status, ErrInvalidState)
	}
	b.Status = entity.BookingStatusCancelled
	b.CancellationReason = reason
	return nil
}

// Complete marks the meeting as having occurred. Only legal from confirmed;
// no further mutation is permitted afterwards.
func Complete(b *entity.Booking) error {
	if b.Status != entity.BookingStatusConfirmed {
		return fmt.Errorf("complete in status %s: %w", b.Status, ErrInvalidState)
	}
	b.Status = entity.BookingStatusCompleted
	return nil
}

// venueAgreedAt reports whether the venue stage already closed on venueID,
// making a replayed approval a harmless duplicate.
func venueAgreedAt(b *entity.Booking, venueID int64) bool {
	if b.Status != entity.BookingStatusPendingTimeApproval && b.Status != entity.BookingStatusBothApproved {
		return false
	}
	return b.User1VenueApproved && b.User2VenueApproved &&
		b.User1ProposedVenueID != nil && *b.User1ProposedVenueID == venueID &&
		b.User2ProposedVenueID != nil && *b.User2ProposedVenueID == venueID
}

func timeAgreedAt(b *entity.Booking, date, timeOfDay string) bool {
	if b.Status != entity.BookingStatusBothApproved {
		return false
	}
	return b.User1TimeApproved && b.User2TimeApproved &&
		b.User1ProposedDate != nil && *b.User1ProposedDate == date &&
		b.User1ProposedTime != nil && *b.User1ProposedTime == timeOfDay
}
