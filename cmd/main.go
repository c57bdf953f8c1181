// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibridshopp01/booking-backend/internal/config"
	"github.com/hibridshopp01/booking-backend/internal/database"
	"github.com/hibridshopp01/booking-backend/internal/events"
	"github.com/hibridshopp01/booking-backend/internal/handler"
	"github.com/hibridshopp01/booking-backend/internal/logger"
	"github.com/hibridshopp01/booking-backend/internal/repository"
	"github.com/hibridshopp01/booking-backend/internal/service"
)

// store is what the service and the health check need from a backend.
type store interface {
	service.BookingStore
	handler.Pinger
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "booking-backend",
	})

	// ── 1. Storage ───────────────────────────────────────────────────────
	var bookings store
	switch cfg.Storage {
	case config.StorageMemory:
		bookings = repository.NewMemoryRepository()
		log.Warn("using in-memory storage, bookings will not survive a restart")
	default:
		pool, err := database.NewPool(ctx, cfg.DB, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		log.Info("connected to postgres", "host", cfg.DB.Host, "db", cfg.DB.Name)
		bookings = repository.NewBookingRepository(pool)
	}

	// ── 2. Event publishing ──────────────────────────────────────────────
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		kp, err := events.NewKafkaPublisher(cfg.Kafka, log)
		if err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
		publisher = kp
		log.Info("publishing booking events", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("close event publisher", "error", err)
		}
	}()

	// ── 3. Wire up layers ────────────────────────────────────────────────
	bookingSvc := service.NewBookingService(bookings, publisher, log)
	bookingHandler := handler.NewBookingHandler(bookingSvc, log)
	router := handler.NewRouter(bookingHandler, bookings, log)

	// ── 4. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case sig := <-quit:
		log.Info("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
