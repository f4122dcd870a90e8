package repository

import (
	"context"
	"database/sql"
	"time"

	"sefer/internal/database"
	"sefer/internal/errors"
	"sefer/internal/models"

	"github.com/lib/pq"
)

type ReservationRepository struct {
	db *database.DB
}

func NewReservationRepository(db *database.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, user_id, trip_id, seat_id, price_cents, status, payment_status,
	       reason_id, reason_note, created_at, updated_at`

func scanReservation(row interface {
	Scan(dest ...interface{}) error
}, res *models.Reservation) error {
	return row.Scan(
		&res.ID,
		&res.UserID,
		&res.TripID,
		&res.SeatID,
		&res.PriceCents,
		&res.Status,
		&res.PaymentStatus,
		&res.ReasonID,
		&res.ReasonNote,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
}

// InsertTx writes the reservation row inside the caller's transaction. The
// partial unique index on (trip_id, seat_id) over non-cancelled rows is the
// database backstop behind the seat claim; a conflict on it surfaces as
// ErrSeatUnavailable.
func (r *ReservationRepository) InsertTx(ctx context.Context, tx *sql.Tx, res *models.Reservation) error {
	query := `
		INSERT INTO reservations (user_id, trip_id, seat_id, price_cents, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := tx.QueryRowContext(ctx, query,
		res.UserID,
		res.TripID,
		res.SeatID,
		res.PriceCents,
		res.Status,
		res.PaymentStatus,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return errors.ErrSeatUnavailable
	}

	return err
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	res := &models.Reservation{}
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	err := scanReservation(r.db.QueryRowContext(ctx, query, id), res)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return res, err
}

// GetForUpdateTx locks the reservation row for the rest of the transaction.
// Concurrent cancels and payments on the same reservation serialize here.
func (r *ReservationRepository) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Reservation, error) {
	res := &models.Reservation{}
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`

	err := scanReservation(tx.QueryRowContext(ctx, query, id), res)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return res, err
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64, excludeCancelled bool) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1`
	if excludeCancelled {
		query += ` AND status <> 'CANCELLED'`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

// CancelTx flips the reservation to CANCELLED with its reason reference.
// Cancellation is a status flip, the row is never deleted.
func (r *ReservationRepository) CancelTx(ctx context.Context, tx *sql.Tx, id int64, reasonID *int64, reasonNote *string) error {
	query := `
		UPDATE reservations
		SET status = 'CANCELLED', reason_id = $1, reason_note = $2, updated_at = NOW()
		WHERE id = $3`

	_, err := tx.ExecContext(ctx, query, reasonID, reasonNote, id)
	return err
}

// SetPaymentStatusTx flips the payment status inside the caller's transaction.
func (r *ReservationRepository) SetPaymentStatusTx(ctx context.Context, tx *sql.Tx, id int64, paymentStatus string) error {
	query := `UPDATE reservations SET payment_status = $1, updated_at = NOW() WHERE id = $2`
	_, err := tx.ExecContext(ctx, query, paymentStatus, id)
	return err
}

// ListExpired returns reservations still awaiting payment that were created
// before the cutoff. Paid reservations are never candidates, however old.
func (r *ReservationRepository) ListExpired(ctx context.Context, cutoff time.Time) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE status = 'RESERVED'
		  AND payment_status = 'PENDING'
		  AND created_at < $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}
