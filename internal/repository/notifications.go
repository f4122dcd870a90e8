package repository

import (
	"context"
	"database/sql"

	"sefer/internal/database"
	"sefer/internal/models"
)

type NotificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// EnqueueTx inserts a pending notification inside the caller's transaction.
// The engine only ever inserts queue rows; the external delivery worker is
// the one that sets delivered_at.
func (r *NotificationRepository) EnqueueTx(ctx context.Context, tx *sql.Tx, entry *models.NotificationQueueEntry) error {
	query := `
		INSERT INTO notification_queue (user_id, reservation_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return tx.QueryRowContext(ctx, query,
		entry.UserID,
		entry.ReservationID,
		entry.Message,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// ListPending returns undelivered notifications oldest first.
func (r *NotificationRepository) ListPending(ctx context.Context, limit int) ([]models.NotificationQueueEntry, error) {
	query := `
		SELECT id, user_id, reservation_id, message, delivered_at, created_at
		FROM notification_queue
		WHERE delivered_at IS NULL
		ORDER BY created_at ASC`
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

	var entries []models.NotificationQueueEntry
	for rows.Next() {
		var entry models.NotificationQueueEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.ReservationID,
			&entry.Message,
			&entry.DeliveredAt,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
