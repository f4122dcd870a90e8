package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sefer/internal/models"

	"github.com/redis/go-redis/v9"
)

// TripCache is a read-through cache for trip rows. Trips are read-mostly
// reference data; seat occupancy and reservations are never cached, every
// claim re-reads the store inside its transaction.
type TripCache struct {
	client *redis.Client
	ttl    time.Duration
}

type Config struct {
	Addr     string
	Password string
	TripTTL  time.Duration
}

func NewTripCache(cfg Config) (*TripCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &TripCache{client: rdb, ttl: cfg.TripTTL}, nil
}

func tripKey(tripID int64) string {
	return fmt.Sprintf("trip:%d", tripID)
}

func (c *TripCache) GetTrip(ctx context.Context, tripID int64) (*models.Trip, error) {
	raw, err := c.client.Get(ctx, tripKey(tripID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("trip %d not in cache", tripID)
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}

	var trip models.Trip
	if err := json.Unmarshal(raw, &trip); err != nil {
		return nil, fmt.Errorf("invalid trip in cache: %w", err)
	}

	return &trip, nil
}

func (c *TripCache) SetTrip(ctx context.Context, trip *models.Trip) error {
	raw, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("failed to marshal trip: %w", err)
	}

	return c.client.Set(ctx, tripKey(trip.ID), raw, c.ttl).Err()
}

// InvalidateTrip drops a cached trip after its row changes.
func (c *TripCache) InvalidateTrip(ctx context.Context, tripID int64) error {
	return c.client.Del(ctx, tripKey(tripID)).Err()
}

func (c *TripCache) Close() error {
	return c.client.Close()
}
