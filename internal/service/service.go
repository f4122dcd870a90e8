package service

import (
	"sefer/internal/cache"
	"sefer/internal/database"
	"sefer/internal/messaging"
	"sefer/internal/repository"
)

type Services struct {
	Trips        *TripService
	Reservations *ReservationService
	Payments     *PaymentService
	Sweeper      *SweeperService
	Settings     *SettingsService
	Audit        *AuditService
}

func NewServices(db *database.DB, repos *repository.Repositories, natsClient *messaging.NATSClient, tripCache *cache.TripCache) *Services {
	tripService := NewTripService(repos.Trips, repos.Seats, tripCache)
	reservationService := NewReservationService(db, repos, natsClient)
	paymentService := NewPaymentService(db, repos, natsClient)
	sweeperService := NewSweeperService(db, repos, natsClient)
	settingsService := NewSettingsService(repos.Settings)
	auditService := NewAuditService(repos.Audit)

	return &Services{
		Trips:        tripService,
		Reservations: reservationService,
		Payments:     paymentService,
		Sweeper:      sweeperService,
		Settings:     settingsService,
		Audit:        auditService,
	}
}
