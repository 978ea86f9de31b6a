package repository

import (
	"context"
	"fmt"

	"blinddate-booking/internal/data/entity"
	"blinddate-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VenueRepository interface {
	FindAll(ctx context.Context, limit, offset int, cityFilter *string, activeOnly bool) ([]*entity.Venue, error)
	CountAll(ctx context.Context, cityFilter *string, activeOnly bool) (int64, error)
	FindByID(ctx context.Context, id int64) (*entity.Venue, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type venueRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVenueRepository(db database.PgxIface, log *zap.Logger) VenueRepository {
	return &venueRepository{
		db:  db,
		log: log.With(zap.String("repository", "venue")),
	}
}

func (r *venueRepository) FindAll(ctx context.Context, limit, offset int, cityFilter *string, activeOnly bool) ([]*entity.Venue, error) {
	query := `
		SELECT id, name, address, city, rating, is_active, created_at
		FROM venues
		WHERE ($3::text IS NULL OR city = $3)
		  AND (NOT $4 OR is_active)
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset, cityFilter, activeOnly)
	if err != nil {
		r.log.Error("Failed to find venues",
			zap.Error(err),
			zap.Stringp("city_filter", cityFilter),
			zap.Bool("active_only", activeOnly),
		)
		return nil, fmt.Errorf("find venues: %w", err)
	}
	defer rows.Close()

	var venues []*entity.Venue
	for rows.Next() {
		var v entity.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Rating, &v.IsActive, &v.CreatedAt); err != nil {
			r.log.Error("Failed to scan venue row", zap.Error(err))
			return nil, fmt.Errorf("scan venue row: %w", err)
		}
		venues = append(venues, &v)
	}

	return venues, nil
}

func (r *venueRepository) CountAll(ctx context.Context, cityFilter *string, activeOnly bool) (int64, error) {
	query := `
		SELECT COUNT(*) FROM venues
		WHERE ($1::text IS NULL OR city = $1)
		  AND (NOT $2 OR is_active)
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, cityFilter, activeOnly).Scan(&count); err != nil {
		r.log.Error("Failed to count venues", zap.Error(err))
		return 0, fmt.Errorf("count venues: %w", err)
	}

	return count, nil
}

func (r *venueRepository) FindByID(ctx context.Context, id int64) (*entity.Venue, error) {
	query := `
		SELECT id, name, address, city, rating, is_active, created_at
		FROM venues
		WHERE id = $1
	`

	var v entity.Venue
	err := r.db.QueryRow(ctx, query, id).Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Rating, &v.IsActive, &v.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find venue by ID",
			zap.Error(err),
			zap.Int64("venue_id", id),
		)
		return nil, fmt.Errorf("find venue by ID %d: %w", id, err)
	}

	return &v, nil
}

func (r *venueRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM venues WHERE id = $1 AND is_active)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		r.log.Error("Failed to check venue existence",
			zap.Error(err),
			zap.Int64("venue_id", id),
		)
		return false, fmt.Errorf("check venue %d exists: %w", id, err)
	}

	return exists, nil
}
