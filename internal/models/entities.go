package models

import (
	"time"
)

// Reservation statuses. COMPLETED is set by an external trip-completion
// process, never by this engine.
const (
	ReservationStatusReserved  = "RESERVED"
	ReservationStatusCancelled = "CANCELLED"
	ReservationStatusCompleted = "COMPLETED"
)

// Payment statuses of a reservation.
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusRefunded = "REFUNDED"
)

// Payment attempt outcomes.
const (
	PaymentOutcomeSuccess = "SUCCESS"
	PaymentOutcomeFailure = "FAILURE"
)

// Trip statuses.
const (
	TripStatusActive    = "ACTIVE"
	TripStatusCancelled = "CANCELLED"
)

// Audit action tags.
const (
	ActionReservationCreated   = "reservation.created"
	ActionReservationCancelled = "reservation.cancelled"
	ActionReservationExpired   = "reservation.expired"
	ActionPaymentCompleted     = "payment.completed"
	ActionPaymentFailed        = "payment.failed"
	ActionSettingsUpdated      = "settings.updated"
)

// Trip represents one scheduled departure of a vehicle between two cities.
type Trip struct {
	ID          int64     `json:"id" db:"id"`
	Origin      string    `json:"origin" db:"origin"`
	Destination string    `json:"destination" db:"destination"`
	DepartureAt time.Time `json:"departure_at" db:"departure_at"`
	PriceCents  int64     `json:"price_cents" db:"price_cents"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Seat represents one bookable position on a trip's vehicle. Occupied is a
// materialized flag: it is only ever written inside the same transaction as
// the reservation row it mirrors.
type Seat struct {
	ID        int64     `json:"id" db:"id"`
	TripID    int64     `json:"trip_id" db:"trip_id"`
	Wagon     int       `json:"wagon" db:"wagon"`
	Number    int       `json:"number" db:"seat_number"`
	Label     string    `json:"label" db:"label"`
	Occupied  bool      `json:"occupied" db:"occupied"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Reservation is a user's claim on one seat of one trip. PriceCents is
// snapshotted at creation so later trip price changes do not affect it.
type Reservation struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	TripID        int64     `json:"trip_id" db:"trip_id"`
	SeatID        int64     `json:"seat_id" db:"seat_id"`
	PriceCents    int64     `json:"price_cents" db:"price_cents"`
	Status        string    `json:"status" db:"status"`
	PaymentStatus string    `json:"payment_status" db:"payment_status"`
	ReasonID      *int64    `json:"reason_id,omitempty" db:"reason_id"`
	ReasonNote    *string   `json:"reason_note,omitempty" db:"reason_note"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Payment is one append-only payment attempt tied to a reservation. A
// reservation may accumulate several attempts but at most one SUCCESS.
type Payment struct {
	ID            int64     `json:"id" db:"id"`
	ReservationID int64     `json:"reservation_id" db:"reservation_id"`
	Method        string    `json:"method" db:"method"`
	AmountCents   int64     `json:"amount_cents" db:"amount_cents"`
	Outcome       string    `json:"outcome" db:"outcome"`
	Reference     string    `json:"reference" db:"reference"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// CancellationReason is a canned reason referenced by cancelled reservations.
type CancellationReason struct {
	ID    int64  `json:"id" db:"id"`
	Label string `json:"label" db:"label"`
}

// AuditLogEntry is an immutable record of one state-changing operation.
type AuditLogEntry struct {
	ID        int64     `json:"id" db:"id"`
	EntityID  int64     `json:"entity_id" db:"entity_id"`
	Action    string    `json:"action" db:"action"`
	Detail    string    `json:"detail" db:"detail"`
	Actor     string    `json:"actor" db:"actor"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AutoCancellationLogEntry is the sweeper's specialized record, kept separate
// from the general audit log for automatic-cancellation reporting.
type AutoCancellationLogEntry struct {
	ID            int64     `json:"id" db:"id"`
	ReservationID int64     `json:"reservation_id" db:"reservation_id"`
	TripID        int64     `json:"trip_id" db:"trip_id"`
	SeatID        int64     `json:"seat_id" db:"seat_id"`
	Detail        string    `json:"detail" db:"detail"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// NotificationQueueEntry is a pending outbound message. The engine only ever
// inserts these; an external delivery worker consumes them and sets
// delivered_at.
type NotificationQueueEntry struct {
	ID            int64      `json:"id" db:"id"`
	UserID        int64      `json:"user_id" db:"user_id"`
	ReservationID *int64     `json:"reservation_id,omitempty" db:"reservation_id"`
	Message       string     `json:"message" db:"message"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty" db:"delivered_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// Settings holds the single persisted configuration row.
type Settings struct {
	TimeoutMinutes int       `json:"timeout_minutes" db:"timeout_minutes"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
