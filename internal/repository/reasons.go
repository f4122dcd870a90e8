package repository

import (
	"context"
	"database/sql"

	"sefer/internal/database"
	"sefer/internal/models"
)

type ReasonRepository struct {
	db *database.DB
}

func NewReasonRepository(db *database.DB) *ReasonRepository {
	return &ReasonRepository{db: db}
}

func (r *ReasonRepository) GetByID(ctx context.Context, id int64) (*models.CancellationReason, error) {
	reason := &models.CancellationReason{}
	query := `SELECT id, label FROM cancellation_reasons WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(&reason.ID, &reason.Label)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return reason, err
}

func (r *ReasonRepository) List(ctx context.Context) ([]models.CancellationReason, error) {
	var reasons []models.CancellationReason
	query := `SELECT id, label FROM cancellation_reasons ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var reason models.CancellationReason
		if err := rows.Scan(&reason.ID, &reason.Label); err != nil {
			return nil, err
		}
		reasons = append(reasons, reason)
	}

	return reasons, rows.Err()
}
