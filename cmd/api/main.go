// Package main is the API entry point: it wires configuration, the database,
// services, and the HTTP server together.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventsystem/config"
	_ "eventsystem/docs"
	"eventsystem/internal/adapters/auth"
	delivery "eventsystem/internal/delivery/http"
	"eventsystem/internal/delivery/http/controllers"
	"eventsystem/internal/delivery/http/middleware"
	"eventsystem/internal/repository/postgres"
	"eventsystem/internal/services"
)

// @title Event System API
// @version 1.0
// @description Event publication and registration service: venues, categories, tags, events, and capacity-managed registrations.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a JWT token.
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		logger.Error("opening database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("running migrations", "err", err)
		os.Exit(1)
	}
	if err := postgres.Seed(ctx, db); err != nil {
		logger.Error("seeding reference data", "err", err)
		os.Exit(1)
	}

	venueRepo := postgres.NewVenueRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	lookupSvc := services.NewLookupService(venueRepo, categoryRepo, tagRepo)
	eventSvc := services.NewEventService(eventRepo, venueRepo, categoryRepo, tagRepo)
	registrationSvc := services.NewRegistrationService(registrationRepo, eventRepo)
	statsSvc := services.NewStatsService(statsRepo)

	verifier := auth.NewTokenVerifier(cfg.JWTSecret)

	mux := delivery.NewRouter(
		verifier,
		controllers.NewEventController(logger, eventSvc),
		controllers.NewRegistrationController(logger, registrationSvc),
		controllers.NewLookupController(logger, lookupSvc),
		controllers.NewStatsController(logger, statsSvc),
	)

	var handler http.Handler = mux
	handler = middleware.Logging(logger)(handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins)(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
