package repository

import (
	"context"
	"fmt"

	"blinddate-booking/internal/data/entity"
	"blinddate-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByMatchID(ctx context.Context, matchID int64) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `
	id, match_id, user_1_id, user_2_id,
	user_1_proposed_venue_id, user_1_proposed_date, user_1_proposed_time,
	user_2_proposed_venue_id, user_2_proposed_date, user_2_proposed_time,
	venue_id, booking_date, booking_time,
	status,
	user_1_venue_approved, user_2_venue_approved,
	user_1_time_approved, user_2_time_approved,
	confirmation_code, cancellation_reason,
	created_at, updated_at
`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID, &b.MatchID, &b.User1ID, &b.User2ID,
		&b.User1ProposedVenueID, &b.User1ProposedDate, &b.User1ProposedTime,
		&b.User2ProposedVenueID, &b.User2ProposedDate, &b.User2ProposedTime,
		&b.VenueID, &b.BookingDate, &b.BookingTime,
		&b.Status,
		&b.User1VenueApproved, &b.User2VenueApproved,
		&b.User1TimeApproved, &b.User2TimeApproved,
		&b.ConfirmationCode, &b.CancellationReason,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO blind_date_bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID, booking.MatchID, booking.User1ID, booking.User2ID,
		booking.User1ProposedVenueID, booking.User1ProposedDate, booking.User1ProposedTime,
		booking.User2ProposedVenueID, booking.User2ProposedDate, booking.User2ProposedTime,
		booking.VenueID, booking.BookingDate, booking.BookingTime,
		booking.Status,
		booking.User1VenueApproved, booking.User2VenueApproved,
		booking.User1TimeApproved, booking.User2TimeApproved,
		booking.ConfirmationCode, booking.CancellationReason,
		booking.CreatedAt, booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.Int64("match_id", booking.MatchID),
		)
		return fmt.Errorf("create booking for match %d: %w", booking.MatchID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM blind_date_bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByMatchID(ctx context.Context, matchID int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM blind_date_bookings WHERE match_id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, matchID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by match ID",
			zap.Error(err),
			zap.Int64("match_id", matchID),
		)
		return nil, fmt.Errorf("find booking by match ID %d: %w", matchID, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM blind_date_bookings
		WHERE user_1_id = $1 OR user_2_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %d: %w", userID, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM blind_date_bookings WHERE user_1_id = $1 OR user_2_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return 0, fmt.Errorf("count bookings by user ID %d: %w", userID, err)
	}

	return count, nil
}

// Update persists the full negotiation field set in a single row write. The
// engine has already validated the transition, so the row either reflects
// the complete new state or, on error, remains at the previous one.
func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE blind_date_bookings
		SET user_1_proposed_venue_id = $2, user_1_proposed_date = $3, user_1_proposed_time = $4,
		    user_2_proposed_venue_id = $5, user_2_proposed_date = $6, user_2_proposed_time = $7,
		    venue_id = $8, booking_date = $9, booking_time = $10,
		    status = $11,
		    user_1_venue_approved = $12, user_2_venue_approved = $13,
		    user_1_time_approved = $14, user_2_time_approved = $15,
		    confirmation_code = $16, cancellation_reason = $17,
		    updated_at = $18
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.User1ProposedVenueID, booking.User1ProposedDate, booking.User1ProposedTime,
		booking.User2ProposedVenueID, booking.User2ProposedDate, booking.User2ProposedTime,
		booking.VenueID, booking.BookingDate, booking.BookingTime,
		booking.Status,
		booking.User1VenueApproved, booking.User2VenueApproved,
		booking.User1TimeApproved, booking.User2TimeApproved,
		booking.ConfirmationCode, booking.CancellationReason,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}
