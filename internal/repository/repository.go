package repository

import (
	"sefer/internal/database"
)

type Repositories struct {
	Trips             *TripRepository
	Seats             *SeatRepository
	Reservations      *ReservationRepository
	Payments          *PaymentRepository
	Reasons           *ReasonRepository
	Audit             *AuditRepository
	AutoCancellations *AutoCancellationRepository
	Notifications     *NotificationRepository
	Settings          *SettingsRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Trips:             NewTripRepository(db),
		Seats:             NewSeatRepository(db),
		Reservations:      NewReservationRepository(db),
		Payments:          NewPaymentRepository(db),
		Reasons:           NewReasonRepository(db),
		Audit:             NewAuditRepository(db),
		AutoCancellations: NewAutoCancellationRepository(db),
		Notifications:     NewNotificationRepository(db),
		Settings:          NewSettingsRepository(db),
	}
}
