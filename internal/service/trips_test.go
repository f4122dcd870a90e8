package service

import (
	"context"
	"testing"
	"time"

	"sefer/internal/errors"
	"sefer/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTripProvisionsSeats(t *testing.T) {
	services, mock := newTestServices(t)

	mock.ExpectQuery(`INSERT INTO trips`).
		WithArgs("Almaty", "Astana", sqlmock.AnyArg(), int64(450000), models.TripStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(1, time.Now(), time.Now()))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO seats`).
		WithArgs(int64(1), 1, 1, "1-1").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec(`INSERT INTO seats`).
		WithArgs(int64(1), 1, 2, "1-2").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec(`INSERT INTO seats`).
		WithArgs(int64(1), 2, 1, "2-1").
		WillReturnResult(sqlmock.NewResult(13, 1))
	mock.ExpectExec(`INSERT INTO seats`).
		WithArgs(int64(1), 2, 2, "2-2").
		WillReturnResult(sqlmock.NewResult(14, 1))
	mock.ExpectCommit()

	trip := &models.Trip{
		Origin:      "Almaty",
		Destination: "Astana",
		DepartureAt: time.Now().Add(24 * time.Hour),
		PriceCents:  450000,
	}
	err := services.Trips.Create(context.Background(), trip, 2, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(1), trip.ID)
	assert.Equal(t, models.TripStatusActive, trip.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTripWithoutCache(t *testing.T) {
	services, mock := newTestServices(t)

	mock.ExpectQuery(`FROM trips\s+WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(tripRow(activeTrip()))

	trip, err := services.Trips.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Almaty", trip.Origin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTripNotFound(t *testing.T) {
	services, mock := newTestServices(t)

	mock.ExpectQuery(`FROM trips\s+WHERE id = \$1`).
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows(tripCols))

	_, err := services.Trips.Get(context.Background(), 77)

	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
