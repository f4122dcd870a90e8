package service

import (
	"context"
	"fmt"

	"sefer/internal/models"
	"sefer/internal/repository"
)

// AuditService is the read-only surface over the audit log for admin
// reporting collaborators. Writes happen only inside the mutating
// transactions of the other services.
type AuditService struct {
	auditRepo *repository.AuditRepository
}

func NewAuditService(auditRepo *repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

func (s *AuditService) List(ctx context.Context, entityID *int64, limit int) ([]models.AuditLogEntry, error) {
	entries, err := s.auditRepo.List(ctx, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
