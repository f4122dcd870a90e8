package repository

import (
	"context"
	"testing"
	"time"

	"sefer/internal/database"
	"sefer/internal/errors"
	"sefer/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*ReservationRepository, *database.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := &database.DB{DB: mockDB}
	return NewReservationRepository(db), db, mock
}

// Частичный уникальный индекс по (trip_id, seat_id) ловит двойное
// бронирование, проскочившее мимо блокировки места.
func TestInsertTxUniqueViolation(t *testing.T) {
	repo, db, mock := newTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO reservations`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.InsertTx(context.Background(), tx, &models.Reservation{
		UserID: 42, TripID: 1, SeatID: 12, PriceCents: 450000,
		Status:        models.ReservationStatusReserved,
		PaymentStatus: models.PaymentStatusPending,
	})

	assert.ErrorIs(t, err, errors.ErrSeatUnavailable)
}

func TestGetByIDNoRows(t *testing.T) {
	repo, _, mock := newTestRepo(t)

	mock.ExpectQuery(`FROM reservations WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "trip_id", "seat_id", "price_cents", "status", "payment_status",
			"reason_id", "reason_note", "created_at", "updated_at",
		}))

	res, err := repo.GetByID(context.Background(), 404)

	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestListExpiredFiltersByCutoff(t *testing.T) {
	repo, _, mock := newTestRepo(t)

	cutoff := time.Now().Add(-30 * time.Minute)

	mock.ExpectQuery(`WHERE status = 'RESERVED'\s+AND payment_status = 'PENDING'\s+AND created_at < \$1`).
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "trip_id", "seat_id", "price_cents", "status", "payment_status",
			"reason_id", "reason_note", "created_at", "updated_at",
		}).AddRow(7, 42, 1, 12, 450000, models.ReservationStatusReserved, models.PaymentStatusPending,
			nil, nil, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour)))

	expired, err := repo.ListExpired(context.Background(), cutoff)

	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, int64(7), expired[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
