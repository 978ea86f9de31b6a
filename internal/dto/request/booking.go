package request

type CreateBookingRequest struct {
	MatchID int64 `json:"match_id" validate:"required"`
	User1ID int64 `json:"user_1_id" validate:"required"`
	User2ID int64 `json:"user_2_id" validate:"required,nefield=User1ID"`
}

type VenueProposalRequest struct {
	UserID  int64 `json:"user_id" validate:"required"`
	VenueID int64 `json:"venue_id" validate:"required"`
}

type VenueApprovalRequest struct {
	UserID  int64 `json:"user_id" validate:"required"`
	VenueID int64 `json:"venue_id" validate:"required"`
	// Pointer so an explicit false survives required validation.
	Approved *bool `json:"approved" validate:"required"`
}

type TimeProposalRequest struct {
	UserID int64  `json:"user_id" validate:"required"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Time   string `json:"time" validate:"required,datetime=15:04"`
}

type TimeApprovalRequest struct {
	UserID   int64  `json:"user_id" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
	Approved *bool  `json:"approved" validate:"required"`
}

type RejectRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}
