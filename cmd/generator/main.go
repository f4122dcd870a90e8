package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"sefer/internal/config"
	"sefer/internal/database"
	"sefer/internal/models"
	"sefer/internal/repository"
	"sefer/internal/service"
)

var (
	tripCount     = flag.Int("trips", 10, "Number of trips to generate")
	wagons        = flag.Int("wagons", 3, "Wagons per trip")
	seatsPerWagon = flag.Int("seats", 36, "Seats per wagon")
	daysAhead     = flag.Int("days", 14, "Spread departures over this many days")
)

var routes = [][2]string{
	{"Almaty", "Astana"},
	{"Astana", "Shymkent"},
	{"Almaty", "Taraz"},
	{"Shymkent", "Turkistan"},
	{"Astana", "Karaganda"},
}

func main() {
	flag.Parse()

	slog.Info("Starting trip generator...")

	cfg := config.Load()
	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	repos := repository.NewRepositories(db)
	trips := service.NewTripService(repos.Trips, repos.Seats, nil)

	ctx := context.Background()
	for i := 0; i < *tripCount; i++ {
		route := routes[rand.Intn(len(routes))]
		departure := time.Now().
			Add(time.Duration(rand.Intn(*daysAhead*24)) * time.Hour).
			Truncate(time.Hour)

		trip := &models.Trip{
			Origin:      route[0],
			Destination: route[1],
			DepartureAt: departure,
			PriceCents:  int64(250000 + rand.Intn(50)*10000),
			Status:      models.TripStatusActive,
		}

		if err := trips.Create(ctx, trip, *wagons, *seatsPerWagon); err != nil {
			slog.Error("Failed to generate trip", "error", err,
				"origin", trip.Origin, "destination", trip.Destination)
			os.Exit(1)
		}

		slog.Info("Generated trip",
			"trip_id", trip.ID,
			"origin", trip.Origin,
			"destination", trip.Destination,
			"departure_at", trip.DepartureAt,
			"seats", (*wagons)*(*seatsPerWagon))
	}

	slog.Info("Trip generation completed successfully!", "trips", *tripCount)
}
