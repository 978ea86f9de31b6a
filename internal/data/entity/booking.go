package entity

type BookingStatus string

const (
	BookingStatusPendingVenueApproval BookingStatus = "pending_venue_approval"
	BookingStatusPendingTimeApproval  BookingStatus = "pending_time_approval"
	BookingStatusBothApproved         BookingStatus = "both_approved"
	BookingStatusConfirmed            BookingStatus = "confirmed"
	BookingStatusCompleted            BookingStatus = "completed"
	BookingStatusCancelled            BookingStatus = "cancelled"
)

// Booking is the negotiation record between two matched users for a single
// meeting. Dates are YYYY-MM-DD strings and times HH:MM strings; slots are
// keyed by exact string equality.
type Booking struct {
	Base
	MatchID int64 `db:"match_id"`
	User1ID int64 `db:"user_1_id"`
	User2ID int64 `db:"user_2_id"`

	User1ProposedVenueID *int64  `db:"user_1_proposed_venue_id"`
	User1ProposedDate    *string `db:"user_1_proposed_date"`
	User1ProposedTime    *string `db:"user_1_proposed_time"`

	User2ProposedVenueID *int64  `db:"user_2_proposed_venue_id"`
	User2ProposedDate    *string `db:"user_2_proposed_date"`
	User2ProposedTime    *string `db:"user_2_proposed_time"`

	// Final selections, stamped together at confirmation, immutable after.
	VenueID     *int64  `db:"venue_id"`
	BookingDate *string `db:"booking_date"`
	BookingTime *string `db:"booking_time"`

	Status             BookingStatus `db:"status"`
	User1VenueApproved bool          `db:"user_1_venue_approved"`
	User2VenueApproved bool          `db:"user_2_venue_approved"`
	User1TimeApproved  bool          `db:"user_1_time_approved"`
	User2TimeApproved  bool          `db:"user_2_time_approved"`

	ConfirmationCode   *string `db:"confirmation_code"`
	CancellationReason *string `db:"cancellation_reason"`
}

// IsParticipant reports whether userID is one of the two matched users.
func (b *Booking) IsParticipant(userID int64) bool {
	return userID == b.User1ID || userID == b.User2ID
}

// Counterpart returns the other participant's id.
func (b *Booking) Counterpart(userID int64) int64 {
	if userID == b.User1ID {
		return b.User2ID
	}
	return b.User1ID
}

// Terminal reports whether the booking can no longer change.
func (b *Booking) Terminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

func (b *Booking) ProposedVenue(userID int64) *int64 {
	if userID == b.User1ID {
		return b.User1ProposedVenueID
	}
	return b.User2ProposedVenueID
}

func (b *Booking) SetProposedVenue(userID int64, venueID *int64) {
	if userID == b.User1ID {
		b.User1ProposedVenueID = venueID
	} else {
		b.User2ProposedVenueID = venueID
	}
}

func (b *Booking) VenueApproved(userID int64) bool {
	if userID == b.User1ID {
		return b.User1VenueApproved
	}
	return b.User2VenueApproved
}

func (b *Booking) SetVenueApproved(userID int64, approved bool) {
	if userID == b.User1ID {
		b.User1VenueApproved = approved
	} else {
		b.User2VenueApproved = approved
	}
}

func (b *Booking) ProposedDateTime(userID int64) (*string, *string) {
	if userID == b.User1ID {
		return b.User1ProposedDate, b.User1ProposedTime
	}
	return b.User2ProposedDate, b.User2ProposedTime
}

func (b *Booking) SetProposedDateTime(userID int64, date, timeOfDay *string) {
	if userID == b.User1ID {
		b.User1ProposedDate = date
		b.User1ProposedTime = timeOfDay
	} else {
		b.User2ProposedDate = date
		b.User2ProposedTime = timeOfDay
	}
}

func (b *Booking) TimeApproved(userID int64) bool {
	if userID == b.User1ID {
		return b.User1TimeApproved
	}
	return b.User2TimeApproved
}

func (b *Booking) SetTimeApproved(userID int64, approved bool) {
	if userID == b.User1ID {
		b.User1TimeApproved = approved
	} else {
		b.User2TimeApproved = approved
	}
}
