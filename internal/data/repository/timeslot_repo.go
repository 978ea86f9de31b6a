package repository

import (
	"context"
	"fmt"

	"blinddate-booking/internal/data/entity"
	"blinddate-booking/pkg/database"

	"go.uber.org/zap"
)

type TimeSlotRepository interface {
	FindAvailable(ctx context.Context, venueID int64, date string) ([]*entity.TimeSlot, error)
	CreateBatch(ctx context.Context, venueID int64, dates, times []string) (int64, error)

	// Reserve flips a slot from available to unavailable as a single
	// compare-and-set; false means the slot was already taken. This is the
	// one write shared across bookings, so it runs independent of any
	// per-booking lock.
	Reserve(ctx context.Context, venueID int64, date, timeOfDay string) (bool, error)
	Release(ctx context.Context, venueID int64, date, timeOfDay string) error
}

type timeSlotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTimeSlotRepository(db database.PgxIface, log *zap.Logger) TimeSlotRepository {
	return &timeSlotRepository{
		db:  db,
		log: log.With(zap.String("repository", "timeslot")),
	}
}

func (r *timeSlotRepository) FindAvailable(ctx context.Context, venueID int64, date string) ([]*entity.TimeSlot, error) {
	query := `
		SELECT id, venue_id, date, time, available, created_at
		FROM venue_time_slots
		WHERE venue_id = $1 AND date = $2 AND available
		ORDER BY time
	`

	rows, err := r.db.Query(ctx, query, venueID, date)
	if err != nil {
		r.log.Error("Failed to find available time slots",
			zap.Error(err),
			zap.Int64("venue_id", venueID),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find available slots for venue %d on %s: %w", venueID, date, err)
	}
	defer rows.Close()

	var slots []*entity.TimeSlot
	for rows.Next() {
		var s entity.TimeSlot
		if err := rows.Scan(&s.ID, &s.VenueID, &s.Date, &s.Time, &s.Available, &s.CreatedAt); err != nil {
			r.log.Error("Failed to scan time slot row", zap.Error(err))
			return nil, fmt.Errorf("scan time slot row: %w", err)
		}
		slots = append(slots, &s)
	}

	return slots, nil
}

// CreateBatch inserts the cross product of dates and times for a venue,
// skipping slots that already exist. Returns the number inserted.
func (r *timeSlotRepository) CreateBatch(ctx context.Context, venueID int64, dates, times []string) (int64, error) {
	query := `
		INSERT INTO venue_time_slots (venue_id, date, time, available, created_at)
		SELECT $1, d, t, TRUE, NOW()
		FROM unnest($2::text[]) AS d, unnest($3::text[]) AS t
		ON CONFLICT (venue_id, date, time) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, venueID, dates, times)
	if err != nil {
		r.log.Error("Failed to create time slots",
			zap.Error(err),
			zap.Int64("venue_id", venueID),
			zap.Int("dates", len(dates)),
			zap.Int("times", len(times)),
		)
		return 0, fmt.Errorf("create time slots for venue %d: %w", venueID, err)
	}

	return result.RowsAffected(), nil
}

func (r *timeSlotRepository) Reserve(ctx context.Context, venueID int64, date, timeOfDay string) (bool, error) {
	query := `
		UPDATE venue_time_slots
		SET available = FALSE
		WHERE venue_id = $1 AND date = $2 AND time = $3 AND available
	`

	result, err := r.db.Exec(ctx, query, venueID, date, timeOfDay)
	if err != nil {
		r.log.Error("Failed to reserve time slot",
			zap.Error(err),
			zap.Int64("venue_id", venueID),
			zap.String("date", date),
			zap.String("time", timeOfDay),
		)
		return false, fmt.Errorf("reserve slot %d/%s/%s: %w", venueID, date, timeOfDay, err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *timeSlotRepository) Release(ctx context.Context, venueID int64, date, timeOfDay string) error {
	query := `
		UPDATE venue_time_slots
		SET available = TRUE
		WHERE venue_id = $1 AND date = $2 AND time = $3
	`

	result, err := r.db.Exec(ctx, query, venueID, date, timeOfDay)
	if err != nil {
		r.log.Error("Failed to release time slot",
			zap.Error(err),
			zap.Int64("venue_id", venueID),
			zap.String("date", date),
			zap.String("time", timeOfDay),
		)
		return fmt.Errorf("release slot %d/%s/%s: %w", venueID, date, timeOfDay, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %d/%s/%s not found", venueID, date, timeOfDay)
	}

	return nil
}
