package service

import (
	"context"
	"fmt"
	"time"

	"sefer/internal/database"
	"sefer/internal/logger"
	"sefer/internal/messaging"
	"sefer/internal/metrics"
	"sefer/internal/models"
	"sefer/internal/repository"
)

// timeoutReasonID is the seeded "Payment timeout" cancellation reason.
const timeoutReasonID int64 = 5

const timeoutReasonText = "payment timeout"

// SweeperService cancels unpaid reservations older than the configured
// timeout. Each candidate is processed in its own transaction and
// re-validated under a row lock, so an interrupted sweep can simply be run
// again: already-cancelled or meanwhile-paid reservations are skipped.
type SweeperService struct {
	db               *database.DB
	reservationRepo  *repository.ReservationRepository
	seatRepo         *repository.SeatRepository
	auditRepo        *repository.AuditRepository
	autoCancelRepo   *repository.AutoCancellationRepository
	notificationRepo *repository.NotificationRepository
	settingsRepo     *repository.SettingsRepository
	natsClient       *messaging.NATSClient
}

func NewSweeperService(db *database.DB, repos *repository.Repositories, natsClient *messaging.NATSClient) *SweeperService {
	return &SweeperService{
		db:               db,
		reservationRepo:  repos.Reservations,
		seatRepo:         repos.Seats,
		auditRepo:        repos.Audit,
		autoCancelRepo:   repos.AutoCancellations,
		notificationRepo: repos.Notifications,
		settingsRepo:     repos.Settings,
		natsClient:       natsClient,
	}
}

// ProcessTimeouts runs one sweep and returns how many reservations it
// cancelled. The timeout is re-read from settings at the start of every
// sweep. A failure on one reservation is logged and the batch continues.
func (s *SweeperService) ProcessTimeouts(ctx context.Context) (int, error) {
	metrics.SweeperRuns.Inc()

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load settings: %w", err)
	}

	timeout := settings.TimeoutMinutes
	if timeout < 1 {
		timeout = 1
	}
	if timeout > 1440 {
		timeout = 1440
	}

	cutoff := time.Now().Add(-time.Duration(timeout) * time.Minute)

	candidates, err := s.reservationRepo.ListExpired(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired reservations: %w", err)
	}

	if len(candidates) == 0 {
		logger.WithContext(ctx).Debug("No expired reservations found", "timeout_minutes", timeout)
		return 0, nil
	}

	logger.WithContext(ctx).Info("Found expired reservations to process",
		"count", len(candidates), "timeout_minutes", timeout)

	cancelled := 0
	for _, candidate := range candidates {
		expired, err := s.expireReservation(ctx, candidate.ID)
		if err != nil {
			logger.WithContext(ctx).Error("Failed to expire reservation",
				"error", err,
				"reservation_id", candidate.ID,
				"created_at", candidate.CreatedAt)
			continue
		}
		if expired {
			cancelled++
		}
	}

	logger.WithContext(ctx).Info("Sweep completed",
		"cancelled", cancelled, "candidates", len(candidates))

	return cancelled, nil
}

// expireReservation cancels one timed-out reservation in its own
// transaction: status flip, seat release, audit entry, auto-cancellation log
// row and queued notification commit together. Returns false when the
// reservation was skipped.
func (s *SweeperService) expireReservation(ctx context.Context, reservationID int64) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	reservation, err := s.reservationRepo.GetForUpdateTx(ctx, tx, reservationID)
	if err != nil {
		return false, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return false, nil
	}

	// Re-check under the lock: the user may have paid or cancelled between
	// the candidate scan and this transaction.
	if reservation.Status != models.ReservationStatusReserved ||
		reservation.PaymentStatus != models.PaymentStatusPending {
		return false, nil
	}

	reasonID := timeoutReasonID
	note := timeoutReasonText
	if err := s.reservationRepo.CancelTx(ctx, tx, reservation.ID, &reasonID, &note); err != nil {
		return false, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	if err := s.seatRepo.ReleaseTx(ctx, tx, reservation.SeatID); err != nil {
		return false, fmt.Errorf("failed to release seat: %w", err)
	}

	audit := &models.AuditLogEntry{
		EntityID: reservation.ID,
		Action:   models.ActionReservationExpired,
		Detail: fmt.Sprintf("auto-cancelled after payment timeout, seat %d on trip %d released",
			reservation.SeatID, reservation.TripID),
		Actor: "system:sweeper",
	}
	if err := s.auditRepo.AppendTx(ctx, tx, audit); err != nil {
		return false, fmt.Errorf("failed to append audit entry: %w", err)
	}

	autoEntry := &models.AutoCancellationLogEntry{
		ReservationID: reservation.ID,
		TripID:        reservation.TripID,
		SeatID:        reservation.SeatID,
		Detail:        fmt.Sprintf("pending since %s", reservation.CreatedAt.UTC().Format(time.RFC3339)),
	}
	if err := s.autoCancelRepo.AppendTx(ctx, tx, autoEntry); err != nil {
		return false, fmt.Errorf("failed to append auto-cancellation entry: %w", err)
	}

	notification := &models.NotificationQueueEntry{
		UserID:        reservation.UserID,
		ReservationID: &reservation.ID,
		Message:       fmt.Sprintf("Your reservation %d expired because payment was not completed in time.", reservation.ID),
	}
	if err := s.notificationRepo.EnqueueTx(ctx, tx, notification); err != nil {
		return false, fmt.Errorf("failed to enqueue notification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit expiration: %w", err)
	}

	metrics.ReservationsCancelled.WithLabelValues("expired").Inc()

	event := models.ReservationExpiredEvent{
		ReservationID: reservation.ID,
		TripID:        reservation.TripID,
		SeatID:        reservation.SeatID,
		UserID:        reservation.UserID,
		Reason:        timeoutReasonText,
		Timestamp:     time.Now(),
	}
	if err := s.natsClient.Publish(models.EventReservationExpired, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish reservation expired event",
			"error", err,
			"reservation_id", reservation.ID,
			"event_type", models.EventReservationExpired)
	}

	logger.WithContext(ctx).Info("Reservation expired",
		"reservation_id", reservation.ID,
		"seat_id", reservation.SeatID,
		"pending_for", time.Since(reservation.CreatedAt).String())

	return true, nil
}

// AutoCancellationLogs returns the sweeper's specialized log for reporting.
func (s *SweeperService) AutoCancellationLogs(ctx context.Context, limit int) ([]models.AutoCancellationLogEntry, error) {
	entries, err := s.autoCancelRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-cancellation logs: %w", err)
	}
	return entries, nil
}
