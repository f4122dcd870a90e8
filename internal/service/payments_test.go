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

func pendingReservation() models.Reservation {
	return models.Reservation{
		ID: 7, UserID: 42, TripID: 1, SeatID: 12, PriceCents: 450000,
		Status:        models.ReservationStatusReserved,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     time.Now(), UpdatedAt: time.Now(),
	}
}

func TestCompletePayment(t *testing.T) {
	services, mock := newTestServices(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(reservationRow(pendingReservation()))
	mock.ExpectQuery(`INSERT INTO payments`).
		WillReturnRows(insertedRow(3))
	mock.ExpectExec(`UPDATE reservations SET payment_status = \$1`).
		WithArgs(models.PaymentStatusPaid, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO audit_log`).
		WillReturnRows(insertedRow(4))
	mock.ExpectCommit()

	payment, err := services.Payments.Complete(context.Background(), &models.CompletePaymentRequest{
		ReservationID: 7,
		AmountCents:   450000,
		Method:        "card",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), payment.ID)
	assert.Equal(t, models.PaymentOutcomeSuccess, payment.Outcome)
	assert.NotEmpty(t, payment.Reference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletePaymentPriceMismatch(t *testing.T) {
	services, mock := newTestServices(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(reservationRow(pendingReservation()))
	mock.ExpectRollback()
	// Запись неудачной попытки вне откатившейся транзакции
	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(int64(7), "card", int64(100), models.PaymentOutcomeFailure, sqlmock.AnyArg()).
		WillReturnRows(insertedRow(5))

	_, err := services.Payments.Complete(context.Background(), &models.CompletePaymentRequest{
		ReservationID: 7,
		AmountCents:   100,
		Method:        "card",
	})

	assert.ErrorIs(t, err, errors.ErrPriceMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletePaymentAlreadyPaid(t *testing.T) {
	services, mock := newTestServices(t)

	paid := pendingReservation()
	paid.PaymentStatus = models.PaymentStatusPaid

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(reservationRow(paid))
	mock.ExpectRollback()
	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(int64(7), "card", int64(450000), models.PaymentOutcomeFailure, sqlmock.AnyArg()).
		WillReturnRows(insertedRow(5))

	_, err := services.Payments.Complete(context.Background(), &models.CompletePaymentRequest{
		ReservationID: 7,
		AmountCents:   450000,
		Method:        "card",
	})

	assert.ErrorIs(t, err, errors.ErrAlreadyPaid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletePaymentCancelledReservation(t *testing.T) {
	services, mock := newTestServices(t)

	cancelled := pendingReservation()
	cancelled.Status = models.ReservationStatusCancelled

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(reservationRow(cancelled))
	mock.ExpectRollback()
	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(int64(7), "card", int64(450000), models.PaymentOutcomeFailure, sqlmock.AnyArg()).
		WillReturnRows(insertedRow(5))

	_, err := services.Payments.Complete(context.Background(), &models.CompletePaymentRequest{
		ReservationID: 7,
		AmountCents:   450000,
		Method:        "card",
	})

	assert.ErrorIs(t, err, errors.ErrAlreadyCancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletePaymentNotFound(t *testing.T) {
	services, mock := newTestServices(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(reservationCols))
	mock.ExpectRollback()

	_, err := services.Payments.Complete(context.Background(), &models.CompletePaymentRequest{
		ReservationID: 404,
		AmountCents:   450000,
		Method:        "card",
	})

	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
