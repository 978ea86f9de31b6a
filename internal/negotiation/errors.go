package negotiation

import "errors"

// Domain error taxonomy. All are client-visible and non-retryable as-is:
// the caller must change its request (re-fetch the counterpart's proposal,
// pick another slot) rather than blindly retry. ErrSlotUnavailable is the
// one condition where retrying with a fresh proposal cycle is expected.
var (
	ErrInvalidID        = errors.New("booking id is not a valid UUID")
	ErrNotFound         = errors.New("booking not found")
	ErrMatchNotFound    = errors.New("match not found")
	ErrVenueNotFound    = errors.New("venue not found")
	ErrUnauthorized     = errors.New("user is not a participant in this booking")
	ErrInvalidState     = errors.New("operation not allowed in current booking status")
	ErrProposalMismatch = errors.New("value does not match the counterpart's current proposal")
	ErrSlotUnavailable  = errors.New("time slot is no longer available")
	ErrDuplicateMatch   = errors.New("booking already exists for this match")
)
