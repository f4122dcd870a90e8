package service

import (
	"context"
	goerrors "errors"
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

// ReservationService owns the reservation lifecycle. Every mutating
// operation runs inside one transaction: seat claim, reservation write and
// audit append commit or roll back as a unit, so no partial state is ever
// observable.
type ReservationService struct {
	db               *database.DB
	tripRepo         *repository.TripRepository
	seatRepo         *repository.SeatRepository
	reservationRepo  *repository.ReservationRepository
	paymentRepo      *repository.PaymentRepository
	reasonRepo       *repository.ReasonRepository
	auditRepo        *repository.AuditRepository
	notificationRepo *repository.NotificationRepository
	natsClient       *messaging.NATSClient
}

func NewReservationService(db *database.DB, repos *repository.Repositories, natsClient *messaging.NATSClient) *ReservationService {
	return &ReservationService{
		db:               db,
		tripRepo:         repos.Trips,
		seatRepo:         repos.Seats,
		reservationRepo:  repos.Reservations,
		paymentRepo:      repos.Payments,
		reasonRepo:       repos.Reasons,
		auditRepo:        repos.Audit,
		notificationRepo: repos.Notifications,
		natsClient:       natsClient,
	}
}

// Create books one seat on one trip. Concurrent requests for the same seat
// serialize on the seat row lock; exactly one wins the claim, the rest get
// ErrSeatUnavailable.
func (s *ReservationService) Create(ctx context.Context, req *models.CreateReservationRequest) (*models.Reservation, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	trip, err := s.tripRepo.GetForShareTx(ctx, tx, req.TripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	if trip == nil {
		return nil, fmt.Errorf("trip %d: %w", req.TripID, errors.ErrNotFound)
	}
	if trip.Status != models.TripStatusActive || !trip.DepartureAt.After(time.Now()) {
		return nil, errors.ErrTripNotActive
	}

	if err := s.seatRepo.ClaimTx(ctx, tx, req.TripID, req.SeatID); err != nil {
		if goerrors.Is(err, errors.ErrSeatUnavailable) {
			metrics.SeatClaimConflicts.Inc()
			return nil, err
		}
		if goerrors.Is(err, errors.ErrInvalidSeat) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to claim seat: %w", err)
	}

	reservation := &models.Reservation{
		UserID:        req.UserID,
		TripID:        req.TripID,
		SeatID:        req.SeatID,
		PriceCents:    req.PriceCents,
		Status:        models.ReservationStatusReserved,
		PaymentStatus: models.PaymentStatusPending,
	}
	if req.PurchaseImmediately {
		reservation.PaymentStatus = models.PaymentStatusPaid
	}

	if err := s.reservationRepo.InsertTx(ctx, tx, reservation); err != nil {
		if goerrors.Is(err, errors.ErrSeatUnavailable) {
			metrics.SeatClaimConflicts.Inc()
			return nil, err
		}
		return nil, fmt.Errorf("failed to insert reservation: %w", err)
	}

	if req.PurchaseImmediately {
		// Simulated payment: the caller vouches for the charge, we record
		// the successful attempt in the same transaction.
		payment := &models.Payment{
			ReservationID: reservation.ID,
			Method:        req.PaymentMethod,
			AmountCents:   req.PriceCents,
			Outcome:       models.PaymentOutcomeSuccess,
			Reference:     uuid.New().String(),
		}
		if err := s.paymentRepo.InsertTx(ctx, tx, payment); err != nil {
			return nil, fmt.Errorf("failed to insert payment: %w", err)
		}
	}

	audit := &models.AuditLogEntry{
		EntityID: reservation.ID,
		Action:   models.ActionReservationCreated,
		Detail: fmt.Sprintf("reserved seat %d on trip %d at %d cents (payment %s)",
			req.SeatID, req.TripID, req.PriceCents, reservation.PaymentStatus),
		Actor: fmt.Sprintf("user:%d", req.UserID),
	}
	if err := s.auditRepo.AppendTx(ctx, tx, audit); err != nil {
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}

	notification := &models.NotificationQueueEntry{
		UserID:        req.UserID,
		ReservationID: &reservation.ID,
		Message: fmt.Sprintf("Your seat %d on trip %s - %s is reserved.",
			req.SeatID, trip.Origin, trip.Destination),
	}
	if err := s.notificationRepo.EnqueueTx(ctx, tx, notification); err != nil {
		return nil, fmt.Errorf("failed to enqueue notification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reservation: %w", err)
	}

	metrics.ReservationsCreated.Inc()

	event := models.ReservationCreatedEvent{
		ReservationID: reservation.ID,
		TripID:        reservation.TripID,
		SeatID:        reservation.SeatID,
		UserID:        reservation.UserID,
		PriceCents:    reservation.PriceCents,
		Timestamp:     time.Now(),
	}
	if err := s.natsClient.Publish(models.EventReservationCreated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish reservation created event",
			"error", err,
			"reservation_id", reservation.ID,
			"event_type", models.EventReservationCreated)
	}

	return reservation, nil
}

// Cancel flips a reservation to CANCELLED and releases its seat. Idempotent
// at the business level: a second cancel returns ErrAlreadyCancelled. The
// reason's display text is resolved now, not at read time.
func (s *ReservationService) Cancel(ctx context.Context, req *models.CancelReservationRequest) error {
	reasonText := "no reason given"
	if req.ReasonID != nil {
		reason, err := s.reasonRepo.GetByID(ctx, *req.ReasonID)
		if err != nil {
			return fmt.Errorf("failed to resolve cancellation reason: %w", err)
		}
		if reason == nil {
			return fmt.Errorf("cancellation reason %d: %w", *req.ReasonID, errors.ErrNotFound)
		}
		reasonText = reason.Label
	}
	if req.ReasonNote != nil && *req.ReasonNote != "" {
		reasonText = fmt.Sprintf("%s: %s", reasonText, *req.ReasonNote)
	}

	actor := req.Actor
	if actor == "" {
		actor = "user"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	reservation, err := s.reservationRepo.GetForUpdateTx(ctx, tx, req.ReservationID)
	if err != nil {
		return fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return fmt.Errorf("reservation %d: %w", req.ReservationID, errors.ErrNotFound)
	}
	if reservation.Status == models.ReservationStatusCancelled {
		return errors.ErrAlreadyCancelled
	}

	if err := s.reservationRepo.CancelTx(ctx, tx, reservation.ID, req.ReasonID, req.ReasonNote); err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	if err := s.seatRepo.ReleaseTx(ctx, tx, reservation.SeatID); err != nil {
		return fmt.Errorf("failed to release seat: %w", err)
	}

	audit := &models.AuditLogEntry{
		EntityID: reservation.ID,
		Action:   models.ActionReservationCancelled,
		Detail:   fmt.Sprintf("cancelled by %s, reason: %s", actor, reasonText),
		Actor:    actor,
	}
	if err := s.auditRepo.AppendTx(ctx, tx, audit); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	notification := &models.NotificationQueueEntry{
		UserID:        reservation.UserID,
		ReservationID: &reservation.ID,
		Message:       fmt.Sprintf("Your reservation %d was cancelled (%s).", reservation.ID, reasonText),
	}
	if err := s.notificationRepo.EnqueueTx(ctx, tx, notification); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cancellation: %w", err)
	}

	metrics.ReservationsCancelled.WithLabelValues("manual").Inc()

	event := models.ReservationCancelledEvent{
		ReservationID: reservation.ID,
		TripID:        reservation.TripID,
		SeatID:        reservation.SeatID,
		Reason:        reasonText,
		Actor:         actor,
		Timestamp:     time.Now(),
	}
	if err := s.natsClient.Publish(models.EventReservationCancelled, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish reservation cancelled event",
			"error", err,
			"reservation_id", reservation.ID,
			"event_type", models.EventReservationCancelled)
	}

	return nil
}

func (s *ReservationService) Get(ctx context.Context, id int64) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %d: %w", id, errors.ErrNotFound)
	}

	return reservation, nil
}

// ListForUser returns a user's reservations, by default hiding cancelled
// ones the way an upcoming-bookings view wants them.
func (s *ReservationService) ListForUser(ctx context.Context, userID int64, excludeCancelled bool) (models.ListReservationsResponse, error) {
	reservations, err := s.reservationRepo.ListByUser(ctx, userID, excludeCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	result := make(models.ListReservationsResponse, len(reservations))
	for i, res := range reservations {
		result[i] = models.ListReservationsResponseItem{
			ID:            res.ID,
			TripID:        res.TripID,
			SeatID:        res.SeatID,
			PriceCents:    res.PriceCents,
			Status:        res.Status,
			PaymentStatus: res.PaymentStatus,
		}
	}

	return result, nil
}
