package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sefer/internal/config"
	"sefer/internal/database"
	"sefer/internal/logger"
	"sefer/internal/messaging"
	"sefer/internal/repository"
	"sefer/internal/service"
)

func main() {
	log.Println("Starting expiration sweeper...")

	// Загружаем конфигурацию
	cfg := config.Load()

	// Override NATS client ID for the sweeper
	cfg.NATS.ClientID = "sefer-sweeper"

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, natsClient, nil)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()

		// Первый проход сразу при старте
		runSweep(ctx, services)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runSweep(ctx, services)
			}
		}
	}()

	log.Printf("Sweeper started, interval %s", cfg.SweepInterval)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down sweeper...")
	cancel()

	if err := natsClient.Close(); err != nil {
		log.Printf("Error closing NATS connection: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}

	log.Println("Sweeper stopped")
}

func runSweep(ctx context.Context, services *service.Services) {
	runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	cancelled, err := services.Sweeper.ProcessTimeouts(runCtx)
	if err != nil {
		slog.Error("Sweep pass failed", "error", err)
		return
	}

	if cancelled > 0 {
		slog.Info("Sweep pass completed", "cancelled", cancelled)
	}
}
