package repository

import (
	"context"
	"database/sql"

	"sefer/internal/database"
	"sefer/internal/models"
)

type AuditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// AppendTx writes an audit entry inside the caller's transaction so the entry
// commits or rolls back together with the state change it records.
func (r *AuditRepository) AppendTx(ctx context.Context, tx *sql.Tx, entry *models.AuditLogEntry) error {
	query := `
		INSERT INTO audit_log (entity_id, action, detail, actor)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return tx.QueryRowContext(ctx, query,
		entry.EntityID,
		entry.Action,
		entry.Detail,
		entry.Actor,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// List returns audit entries newest first, optionally filtered by entity id.
// Read-only surface for admin reporting; entries are never mutated.
func (r *AuditRepository) List(ctx context.Context, entityID *int64, limit int) ([]models.AuditLogEntry, error) {
	query := `
		SELECT id, entity_id, action, detail, actor, created_at
		FROM audit_log`
	args := []interface{}{}

	if entityID != nil {
		query += ` WHERE entity_id = $1`
		args = append(args, *entityID)
	}

	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		if entityID != nil {
			query += ` LIMIT $2`
		} else {
			query += ` LIMIT $1`
		}
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditLogEntry
	for rows.Next() {
		var entry models.AuditLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.EntityID,
			&entry.Action,
			&entry.Detail,
			&entry.Actor,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
