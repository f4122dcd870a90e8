package service

import (
	"context"
	"fmt"

	"sefer/internal/errors"
	"sefer/internal/models"
	"sefer/internal/repository"
)

// SettingsService exposes the persisted sweeper timeout. No ambient global:
// readers load it explicitly, the sweeper once per run.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
}

func NewSettingsService(settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, timeoutMinutes int) error {
	if timeoutMinutes < 1 || timeoutMinutes > 1440 {
		return errors.ErrInvalidTimeout
	}

	if err := s.settingsRepo.Update(ctx, timeoutMinutes); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	return nil
}
