package service

import (
	"context"
	"testing"
	"time"

	"sefer/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsRow(timeoutMinutes int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"timeout_minutes", "updated_at"}).
		AddRow(timeoutMinutes, time.Now())
}

func TestProcessTimeoutsNoCandidates(t *testing.T) {
	services, mock := newTestServices(t)

	mock.ExpectQuery(`SELECT timeout_minutes, updated_at FROM settings`).
		WillReturnRows(settingsRow(30))
	mock.ExpectQuery(`FROM reservations\s+WHERE status = 'RESERVED'`).
		WillReturnRows(sqlmock.NewRows(reservationCols))

	cancelled, err := services.Sweeper.ProcessTimeouts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, cancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessTimeoutsExpiresPending(t *testing.T) {
	services, mock := newTestServices(t)

	stale := models.Reservation{
		ID: 7, UserID: 42, TripID: 1, SeatID: 12, PriceCents: 450000,
		Status:        models.ReservationStatusReserved,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     time.Now().Add(-2 * time.Hour),
		UpdatedAt:     time.Now().Add(-2 * time.Hour),
	}

	mock.ExpectQuery(`SELECT timeout_minutes, updated_at FROM settings`).
		WillReturnRows(settingsRow(30))
	mock.ExpectQuery(`FROM reservations\s+WHERE status = 'RESERVED'`).
		WillReturnRows(reservationRow(stale))

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(reservationRow(stale))
	mock.ExpectExec(`UPDATE reservations\s+SET status = 'CANCELLED'`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE seats SET occupied = FALSE`).
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO audit_log`).
		WillReturnRows(insertedRow(1))
	mock.ExpectQuery(`INSERT INTO auto_cancellation_log`).
		WillReturnRows(insertedRow(1))
	mock.ExpectQuery(`INSERT INTO notification_queue`).
		WillReturnRows(insertedRow(1))
	mock.ExpectCommit()

	cancelled, err := services.Sweeper.ProcessTimeouts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, cancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Кандидат, успевший оплатиться между сканом и блокировкой, пропускается.
func TestProcessTimeoutsSkipsPaidUnderLock(t *testing.T) {
	services, mock := newTestServices(t)

	stale := models.Reservation{
		ID: 7, UserID: 42, TripID: 1, SeatID: 12, PriceCents: 450000,
		Status:        models.ReservationStatusReserved,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     time.Now().Add(-2 * time.Hour),
		UpdatedAt:     time.Now().Add(-2 * time.Hour),
	}
	paidMeanwhile := stale
	paidMeanwhile.PaymentStatus = models.PaymentStatusPaid

	mock.ExpectQuery(`SELECT timeout_minutes, updated_at FROM settings`).
		WillReturnRows(settingsRow(30))
	mock.ExpectQuery(`FROM reservations\s+WHERE status = 'RESERVED'`).
		WillReturnRows(reservationRow(stale))

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(reservationRow(paidMeanwhile))
	mock.ExpectRollback()

	cancelled, err := services.Sweeper.ProcessTimeouts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, cancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Сбой на одной брони не останавливает обработку остальных.
func TestProcessTimeoutsContinuesAfterFailure(t *testing.T) {
	services, mock := newTestServices(t)

	first := models.Reservation{
		ID: 7, UserID: 42, TripID: 1, SeatID: 12, PriceCents: 450000,
		Status:        models.ReservationStatusReserved,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     time.Now().Add(-2 * time.Hour),
		UpdatedAt:     time.Now().Add(-2 * time.Hour),
	}
	second := first
	second.ID = 8
	second.SeatID = 13

	candidates := reservationRow(first)
	candidates.AddRow(
		second.ID, second.UserID, second.TripID, second.SeatID, second.PriceCents,
		second.Status, second.PaymentStatus, second.ReasonID, second.ReasonNote,
		second.CreatedAt, second.UpdatedAt,
	)

	mock.ExpectQuery(`SELECT timeout_minutes, updated_at FROM settings`).
		WillReturnRows(settingsRow(30))
	mock.ExpectQuery(`FROM reservations\s+WHERE status = 'RESERVED'`).
		WillReturnRows(candidates)

	// Первая бронь падает на блокировке строки
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	// Вторая обрабатывается полностью
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(8)).
		WillReturnRows(reservationRow(second))
	mock.ExpectExec(`UPDATE reservations\s+SET status = 'CANCELLED'`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE seats SET occupied = FALSE`).
		WithArgs(int64(13)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO audit_log`).
		WillReturnRows(insertedRow(1))
	mock.ExpectQuery(`INSERT INTO auto_cancellation_log`).
		WillReturnRows(insertedRow(1))
	mock.ExpectQuery(`INSERT INTO notification_queue`).
		WillReturnRows(insertedRow(1))
	mock.ExpectCommit()

	cancelled, err := services.Sweeper.ProcessTimeouts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, cancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}
