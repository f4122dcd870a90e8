package repository

import (
	"context"
	"database/sql"

	"sefer/internal/database"
	"sefer/internal/models"
)

// AutoCancellationRepository keeps the sweeper's specialized log, parallel to
// the general audit log, for automatic-cancellation reporting.
type AutoCancellationRepository struct {
	db *database.DB
}

func NewAutoCancellationRepository(db *database.DB) *AutoCancellationRepository {
	return &AutoCancellationRepository{db: db}
}

func (r *AutoCancellationRepository) AppendTx(ctx context.Context, tx *sql.Tx, entry *models.AutoCancellationLogEntry) error {
	query := `
		INSERT INTO auto_cancellation_log (reservation_id, trip_id, seat_id, detail)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return tx.QueryRowContext(ctx, query,
		entry.ReservationID,
		entry.TripID,
		entry.SeatID,
		entry.Detail,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *AutoCancellationRepository) List(ctx context.Context, limit int) ([]models.AutoCancellationLogEntry, error) {
	query := `
		SELECT id, reservation_id, trip_id, seat_id, detail, created_at
		FROM auto_cancellation_log
		ORDER BY created_at DESC`
	args := []interface{}{}

	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AutoCancellationLogEntry
	for rows.Next() {
		var entry models.AutoCancellationLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.ReservationID,
			&entry.TripID,
			&entry.SeatID,
			&entry.Detail,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
