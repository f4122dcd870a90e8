package service

import (
	"context"
	"fmt"
	"time"

	"sefer/internal/database"
	"sefer/internal/errors"
	"sefer/internal/logger"
	"sefer/internal/messaging"
	"sefer/internal/metrics"
	"sefer/internal/models"
	"sefer/internal/repository"

	"github.com/google/uuid"
)

// PaymentService drives the payment sub-ledger: append-only attempts tied to
// a reservation, with at most one successful attempt flipping the
// reservation's payment status.
type PaymentService struct {
	db              *database.DB
	reservationRepo *repository.ReservationRepository
	paymentRepo     *repository.PaymentRepository
	auditRepo       *repository.AuditRepository
	natsClient      *messaging.NATSClient
}

func NewPaymentService(db *database.DB, repos *repository.Repositories, natsClient *messaging.NATSClient) *PaymentService {
	return &PaymentService{
		db:              db,
		reservationRepo: repos.Reservations,
		paymentRepo:     repos.Payments,
		auditRepo:       repos.Audit,
		natsClient:      natsClient,
	}
}

// Complete records a successful payment for a pending reservation. Guards:
// cancelled reservations cannot be paid, a second payment is rejected, and
// the amount must match the snapshotted price so a tampered client total is
// refused rather than accepted. A rejected attempt still leaves a FAILURE
// payment row behind, recorded after the transaction rolls back.
func (s *PaymentService) Complete(ctx context.Context, req *models.CompletePaymentRequest) (*models.Payment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	reservation, err := s.reservationRepo.GetForUpdateTx(ctx, tx, req.ReservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %d: %w", req.ReservationID, errors.ErrNotFound)
	}

	if reservation.Status == models.ReservationStatusCancelled {
		tx.Rollback()
		s.recordFailure(ctx, req, "cancelled", "reservation is cancelled")
		return nil, errors.ErrAlreadyCancelled
	}
	if reservation.PaymentStatus == models.PaymentStatusPaid {
		tx.Rollback()
		s.recordFailure(ctx, req, "already_paid", "reservation is already paid")
		return nil, errors.ErrAlreadyPaid
	}
	if reservation.PriceCents != req.AmountCents {
		tx.Rollback()
		s.recordFailure(ctx, req, "price_mismatch",
			fmt.Sprintf("amount %d does not match price %d", req.AmountCents, reservation.PriceCents))
		return nil, errors.ErrPriceMismatch
	}

	payment := &models.Payment{
		ReservationID: reservation.ID,
		Method:        req.Method,
		AmountCents:   req.AmountCents,
		Outcome:       models.PaymentOutcomeSuccess,
		Reference:     uuid.New().String(),
	}
	if err := s.paymentRepo.InsertTx(ctx, tx, payment); err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	if err := s.reservationRepo.SetPaymentStatusTx(ctx, tx, reservation.ID, models.PaymentStatusPaid); err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	audit := &models.AuditLogEntry{
		EntityID: reservation.ID,
		Action:   models.ActionPaymentCompleted,
		Detail:   fmt.Sprintf("paid %d cents via %s (ref %s)", req.AmountCents, req.Method, payment.Reference),
		Actor:    fmt.Sprintf("user:%d", reservation.UserID),
	}
	if err := s.auditRepo.AppendTx(ctx, tx, audit); err != nil {
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	metrics.PaymentsCompleted.Inc()

	event := models.PaymentCompletedEvent{
		ReservationID: reservation.ID,
		AmountCents:   req.AmountCents,
		Method:        req.Method,
		Reference:     payment.Reference,
		Timestamp:     time.Now(),
	}
	if err := s.natsClient.Publish(models.EventPaymentCompleted, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish payment completed event",
			"error", err,
			"reservation_id", reservation.ID,
			"event_type", models.EventPaymentCompleted)
	}

	return payment, nil
}

// recordFailure appends a FAILURE payment row outside the rolled-back
// transaction so the attempt stays visible for audit and debugging. A write
// failure here is logged, never surfaced: the caller's typed rejection is
// the primary outcome.
func (s *PaymentService) recordFailure(ctx context.Context, req *models.CompletePaymentRequest, code, detail string) {
	payment := &models.Payment{
		ReservationID: req.ReservationID,
		Method:        req.Method,
		AmountCents:   req.AmountCents,
		Outcome:       models.PaymentOutcomeFailure,
		Reference:     uuid.New().String(),
	}
	if err := s.paymentRepo.Insert(ctx, payment); err != nil {
		logger.WithContext(ctx).Error("Failed to record rejected payment attempt",
			"error", err,
			"reservation_id", req.ReservationID,
			"reason", detail)
	}

	metrics.PaymentsRejected.WithLabelValues(code).Inc()

	event := models.PaymentFailedEvent{
		ReservationID: req.ReservationID,
		AmountCents:   req.AmountCents,
		Method:        req.Method,
		Reason:        detail,
		Timestamp:     time.Now(),
	}
	if err := s.natsClient.Publish(models.EventPaymentFailed, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish payment failed event",
			"error", err,
			"reservation_id", req.ReservationID,
			"event_type", models.EventPaymentFailed)
	}
}

// ListForReservation returns the append-only attempt history.
func (s *PaymentService) ListForReservation(ctx context.Context, reservationID int64) ([]models.Payment, error) {
	payments, err := s.paymentRepo.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
