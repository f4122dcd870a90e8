package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sefer/internal/database"
	"sefer/internal/errors"
	"sefer/internal/models"
)

type SeatRepository struct {
	db *database.DB
}

func NewSeatRepository(db *database.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

// CreateForTrip provisions the fixed seat set of a trip: wagons numbered from
// 1, seats numbered from 1 within each wagon. Seats exist once per trip for
// its whole lifetime.
func (r *SeatRepository) CreateForTrip(ctx context.Context, tripID int64, wagons, seatsPerWagon int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for wagon := 1; wagon <= wagons; wagon++ {
		for seat := 1; seat <= seatsPerWagon; seat++ {
			label := fmt.Sprintf("%d-%d", wagon, seat)

			query := `
				INSERT INTO seats (trip_id, wagon, seat_number, label, occupied)
				VALUES ($1, $2, $3, $4, FALSE)`

			if _, err := tx.ExecContext(ctx, query, tripID, wagon, seat, label); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (r *SeatRepository) GetByID(ctx context.Context, id int64) (*models.Seat, error) {
	seat := &models.Seat{}
	query := `
		SELECT id, trip_id, wagon, seat_number, label, occupied, created_at, updated_at
		FROM seats
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&seat.ID,
		&seat.TripID,
		&seat.Wagon,
		&seat.Number,
		&seat.Label,
		&seat.Occupied,
		&seat.CreatedAt,
		&seat.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return seat, err
}

// ListAvailable returns the unoccupied seats of a trip. Plain snapshot read,
// no lock: the claim inside CreateReservation re-checks under FOR UPDATE.
func (r *SeatRepository) ListAvailable(ctx context.Context, tripID int64) ([]models.Seat, error) {
	var seats []models.Seat
	query := `
		SELECT id, trip_id, wagon, seat_number, label, occupied, created_at, updated_at
		FROM seats
		WHERE trip_id = $1 AND occupied = FALSE
		ORDER BY wagon, seat_number`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var seat models.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.TripID,
			&seat.Wagon,
			&seat.Number,
			&seat.Label,
			&seat.Occupied,
			&seat.CreatedAt,
			&seat.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

// ClaimTx locks the seat row and marks it occupied. It has no standalone
// atomicity guarantee: the caller's transaction is what makes the claim and
// the reservation insert one unit. Returns ErrInvalidSeat when the seat does
// not belong to the trip and ErrSeatUnavailable when it is already held.
func (r *SeatRepository) ClaimTx(ctx context.Context, tx *sql.Tx, tripID, seatID int64) error {
	var occupied bool
	checkQuery := `SELECT occupied FROM seats WHERE id = $1 AND trip_id = $2 FOR UPDATE`
	err := tx.QueryRowContext(ctx, checkQuery, seatID, tripID).Scan(&occupied)
	if err == sql.ErrNoRows {
		return errors.ErrInvalidSeat
	}
	if err != nil {
		return err
	}

	if occupied {
		return errors.ErrSeatUnavailable
	}

	updateQuery := `UPDATE seats SET occupied = TRUE, updated_at = NOW() WHERE id = $1`
	_, err = tx.ExecContext(ctx, updateQuery, seatID)
	return err
}

// ReleaseTx clears the occupied flag inside the caller's transaction.
func (r *SeatRepository) ReleaseTx(ctx context.Context, tx *sql.Tx, seatID int64) error {
	query := `UPDATE seats SET occupied = FALSE, updated_at = NOW() WHERE id = $1`
	_, err := tx.ExecContext(ctx, query, seatID)
	return err
}
