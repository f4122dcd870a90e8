package models

import "time"

// NATS subjects for reservation lifecycle events.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationExpired   = "reservation.expired"
	EventPaymentCompleted     = "payment.completed"
	EventPaymentFailed        = "payment.failed"
)

// ReservationCreatedEvent is published after a reservation commits.
type ReservationCreatedEvent struct {
	ReservationID int64     `json:"reservation_id"`
	TripID        int64     `json:"trip_id"`
	SeatID        int64     `json:"seat_id"`
	UserID        int64     `json:"user_id"`
	PriceCents    int64     `json:"price_cents"`
	Timestamp     time.Time `json:"timestamp"`
}

// ReservationCancelledEvent is published after a cancellation commits.
type ReservationCancelledEvent struct {
	ReservationID int64     `json:"reservation_id"`
	TripID        int64     `json:"trip_id"`
	SeatID        int64     `json:"seat_id"`
	Reason        string    `json:"reason"`
	Actor         string    `json:"actor"`
	Timestamp     time.Time `json:"timestamp"`
}

// ReservationExpiredEvent is published by the sweeper for each timed-out
// reservation it cancels.
type ReservationExpiredEvent struct {
	ReservationID int64     `json:"reservation_id"`
	TripID        int64     `json:"trip_id"`
	SeatID        int64     `json:"seat_id"`
	UserID        int64     `json:"user_id"`
	Reason        string    `json:"reason"`
	Timestamp     time.Time `json:"timestamp"`
}

// PaymentCompletedEvent is published after a successful payment commits.
type PaymentCompletedEvent struct {
	ReservationID int64     `json:"reservation_id"`
	AmountCents   int64     `json:"amount_cents"`
	Method        string    `json:"method"`
	Reference     string    `json:"reference"`
	Timestamp     time.Time `json:"timestamp"`
}

// PaymentFailedEvent is published after a rejected payment attempt.
type PaymentFailedEvent struct {
	ReservationID int64     `json:"reservation_id"`
	AmountCents   int64     `json:"amount_cents"`
	Method        string    `json:"method"`
	Reason        string    `json:"reason"`
	Timestamp     time.Time `json:"timestamp"`
}
