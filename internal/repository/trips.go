package repository

import (
	"context"
	"database/sql"

	"sefer/internal/database"
	"sefer/internal/models"
)

type TripRepository struct {
	db *database.DB
}

func NewTripRepository(db *database.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) error {
	query := `
		INSERT INTO trips (origin, destination, departure_at, price_cents, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		trip.Origin,
		trip.Destination,
		trip.DepartureAt,
		trip.PriceCents,
		trip.Status,
	).Scan(&trip.ID, &trip.CreatedAt, &trip.UpdatedAt)
}

func (r *TripRepository) GetByID(ctx context.Context, id int64) (*models.Trip, error) {
	trip := &models.Trip{}
	query := `
		SELECT id, origin, destination, departure_at, price_cents, status, created_at, updated_at
		FROM trips
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.Origin,
		&trip.Destination,
		&trip.DepartureAt,
		&trip.PriceCents,
		&trip.Status,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return trip, err
}

// GetForShareTx reads a trip inside the claim transaction with a shared row
// lock, so a concurrent trip cancellation cannot slip between the active
// check and the reservation insert.
func (r *TripRepository) GetForShareTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Trip, error) {
	trip := &models.Trip{}
	query := `
		SELECT id, origin, destination, departure_at, price_cents, status, created_at, updated_at
		FROM trips
		WHERE id = $1
		FOR SHARE`

	err := tx.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.Origin,
		&trip.Destination,
		&trip.DepartureAt,
		&trip.PriceCents,
		&trip.Status,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return trip, err
}
