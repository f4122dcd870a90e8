package service

import (
	"context"
	"testing"

	"sefer/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSettings(t *testing.T) {
	services, mock := newTestServices(t)

	mock.ExpectExec(`UPDATE settings SET timeout_minutes = \$1`).
		WithArgs(45).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := services.Settings.Update(context.Background(), 45)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSettingsRejectsOutOfRange(t *testing.T) {
	services, _ := newTestServices(t)

	assert.ErrorIs(t, services.Settings.Update(context.Background(), 0), errors.ErrInvalidTimeout)
	assert.ErrorIs(t, services.Settings.Update(context.Background(), -5), errors.ErrInvalidTimeout)
	assert.ErrorIs(t, services.Settings.Update(context.Background(), 1441), errors.ErrInvalidTimeout)
}

func TestGetSettings(t *testing.T) {
	services, mock := newTestServices(t)

	mock.ExpectQuery(`SELECT timeout_minutes, updated_at FROM settings`).
		WillReturnRows(settingsRow(30))

	settings, err := services.Settings.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 30, settings.TimeoutMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
