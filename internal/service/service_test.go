package service

import (
	"testing"
	"time"

	"sefer/internal/database"
	"sefer/internal/messaging"
	"sefer/internal/models"
	"sefer/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// newTestServices wires the service layer over a sqlmock connection. The
// NATS client has no live connection, so event publishes fail and are
// logged, same as when the broker is down.
func newTestServices(t *testing.T) (*Services, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := &database.DB{DB: mockDB}
	repos := repository.NewRepositories(db)
	services := NewServices(db, repos, &messaging.NATSClient{}, nil)

	return services, mock
}

var reservationCols = []string{
	"id", "user_id", "trip_id", "seat_id", "price_cents", "status", "payment_status",
	"reason_id", "reason_note", "created_at", "updated_at",
}

func reservationRow(res models.Reservation) *sqlmock.Rows {
	return sqlmock.NewRows(reservationCols).AddRow(
		res.ID, res.UserID, res.TripID, res.SeatID, res.PriceCents,
		res.Status, res.PaymentStatus, res.ReasonID, res.ReasonNote,
		res.CreatedAt, res.UpdatedAt,
	)
}

var tripCols = []string{
	"id", "origin", "destination", "departure_at", "price_cents", "status",
	"created_at", "updated_at",
}

func tripRow(trip models.Trip) *sqlmock.Rows {
	return sqlmock.NewRows(tripCols).AddRow(
		trip.ID, trip.Origin, trip.Destination, trip.DepartureAt,
		trip.PriceCents, trip.Status, trip.CreatedAt, trip.UpdatedAt,
	)
}

func activeTrip() models.Trip {
	return models.Trip{
		ID:          1,
		Origin:      "Almaty",
		Destination: "Astana",
		DepartureAt: time.Now().Add(24 * time.Hour),
		PriceCents:  450000,
		Status:      models.TripStatusActive,
		CreatedAt:   time.Now().Add(-time.Hour),
		UpdatedAt:   time.Now().Add(-time.Hour),
	}
}

func insertedRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id, time.Now())
}
