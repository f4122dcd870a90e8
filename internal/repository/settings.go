package repository

import (
	"context"

	"sefer/internal/database"
	"sefer/internal/models"
)

// SettingsRepository reads and writes the single persisted settings row. The
// sweeper re-reads it at the start of every run instead of caching it.
type SettingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	s := &models.Settings{}
	query := `SELECT timeout_minutes, updated_at FROM settings WHERE id = 1`

	err := r.db.QueryRowContext(ctx, query).Scan(&s.TimeoutMinutes, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (r *SettingsRepository) Update(ctx context.Context, timeoutMinutes int) error {
	query := `UPDATE settings SET timeout_minutes = $1, updated_at = NOW() WHERE id = 1`
	_, err := r.db.ExecContext(ctx, query, timeoutMinutes)
	return err
}
