package repository

import (
	"context"
	"database/sql"

	"sefer/internal/database"
	"sefer/internal/models"
)

type PaymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// InsertTx appends a payment attempt inside the caller's transaction.
func (r *PaymentRepository) InsertTx(ctx context.Context, tx *sql.Tx, p *models.Payment) error {
	query := `
		INSERT INTO payments (reservation_id, method, amount_cents, outcome, reference)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return tx.QueryRowContext(ctx, query,
		p.ReservationID,
		p.Method,
		p.AmountCents,
		p.Outcome,
		p.Reference,
	).Scan(&p.ID, &p.CreatedAt)
}

// Insert appends a payment attempt outside any transaction. Used to record
// rejected attempts after the guarded transaction has rolled back, so the
// failure survives for audit.
func (r *PaymentRepository) Insert(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (reservation_id, method, amount_cents, outcome, reference)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		p.ReservationID,
		p.Method,
		p.AmountCents,
		p.Outcome,
		p.Reference,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *PaymentRepository) ListByReservation(ctx context.Context, reservationID int64) ([]models.Payment, error) {
	var payments []models.Payment
	query := `
		SELECT id, reservation_id, method, amount_cents, outcome, reference, created_at
		FROM payments
		WHERE reservation_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Payment
		err := rows.Scan(
			&p.ID,
			&p.ReservationID,
			&p.Method,
			&p.AmountCents,
			&p.Outcome,
			&p.Reference,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// GetSuccessful returns the single successful attempt of a reservation, or
// nil when it has none.
func (r *PaymentRepository) GetSuccessful(ctx context.Context, reservationID int64) (*models.Payment, error) {
	p := &models.Payment{}
	query := `
		SELECT id, reservation_id, method, amount_cents, outcome, reference, created_at
		FROM payments
		WHERE reservation_id = $1 AND outcome = 'SUCCESS'`

	err := r.db.QueryRowContext(ctx, query, reservationID).Scan(
		&p.ID,
		&p.ReservationID,
		&p.Method,
		&p.AmountCents,
		&p.Outcome,
		&p.Reference,
		&p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return p, err
}
