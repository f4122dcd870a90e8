package service

import (
	"context"
	"fmt"

	"sefer/internal/cache"
	"sefer/internal/errors"
	"sefer/internal/logger"
	"sefer/internal/models"
	"sefer/internal/repository"
)

// TripService carries the minimal trip surface the engine needs: creating a
// trip with its fixed seat set, and the read path used by booking clients.
// Full trip CRUD lives with an external collaborator.
type TripService struct {
	tripRepo  *repository.TripRepository
	seatRepo  *repository.SeatRepository
	tripCache *cache.TripCache
}

func NewTripService(tripRepo *repository.TripRepository, seatRepo *repository.SeatRepository, tripCache *cache.TripCache) *TripService {
	return &TripService{
		tripRepo:  tripRepo,
		seatRepo:  seatRepo,
		tripCache: tripCache,
	}
}

// Create provisions a trip and its seats in one call. Seats exist once per
// trip for its lifetime; bookings only ever flip their occupied flag.
func (s *TripService) Create(ctx context.Context, trip *models.Trip, wagons, seatsPerWagon int) error {
	if trip.Status == "" {
		trip.Status = models.TripStatusActive
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}

	if err := s.seatRepo.CreateForTrip(ctx, trip.ID, wagons, seatsPerWagon); err != nil {
		return fmt.Errorf("failed to create seats: %w", err)
	}

	return nil
}

// Get reads a trip through the cache. Cache errors degrade to the store;
// seat occupancy is never cached, only the trip row itself.
func (s *TripService) Get(ctx context.Context, id int64) (*models.Trip, error) {
	if s.tripCache != nil {
		if trip, err := s.tripCache.GetTrip(ctx, id); err == nil {
			return trip, nil
		}
	}

	trip, err := s.tripRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	if trip == nil {
		return nil, fmt.Errorf("trip %d: %w", id, errors.ErrNotFound)
	}

	if s.tripCache != nil {
		if err := s.tripCache.SetTrip(ctx, trip); err != nil {
			logger.WithContext(ctx).Warn("Failed to cache trip", "error", err, "trip_id", id)
		}
	}

	return trip, nil
}

// ListAvailableSeats is the snapshot read backing seat pickers.
func (s *TripService) ListAvailableSeats(ctx context.Context, tripID int64) (models.ListSeatsResponse, error) {
	seats, err := s.seatRepo.ListAvailable(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}

	result := make(models.ListSeatsResponse, len(seats))
	for i, seat := range seats {
		result[i] = models.ListSeatsResponseItem{
			ID:     seat.ID,
			Wagon:  seat.Wagon,
			Number: seat.Number,
			Label:  seat.Label,
		}
	}

	return result, nil
}
