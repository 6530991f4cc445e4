// Package main initializes and starts the goal-tracking API server, setting
// up configuration, logging, the database connection, repositories, services,
// the session authenticator, and HTTP handlers.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/califeryan/goutte-server/internal/auth"
	"github.com/califeryan/goutte-server/internal/clock"
	"github.com/califeryan/goutte-server/internal/config"
	"github.com/califeryan/goutte-server/internal/db"
	"github.com/califeryan/goutte-server/internal/logger"
	"github.com/califeryan/goutte-server/internal/mailer"
	"github.com/califeryan/goutte-server/internal/repository"
	"github.com/califeryan/goutte-server/internal/server/handler/http"
	"github.com/califeryan/goutte-server/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL, create the schema, and seed the id counter.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	clk := clock.New()
	hasher := auth.BcryptHasher{}

	// Initialize repositories for the four collections.
	playerRepo := repository.NewPostgresPlayerRepository(postgresDB)
	goalRepo := repository.NewPostgresGoalRepository(postgresDB)
	adminRepo := repository.NewPostgresAdminRepository(postgresDB)
	sequenceRepo := repository.NewPostgresSequenceRepository(postgresDB)

	// Initialize business-logic services.
	playerService := service.NewPlayerService(playerRepo, sequenceRepo, hasher, clk)
	goalService := service.NewGoalService(goalRepo)
	adminService := service.NewAdminService(adminRepo, hasher)

	// Seed the bootstrap administrator if the store is empty.
	if options.AdminPassword != "" {
		if err := adminService.Bootstrap(context.Background(), options.AdminPseudonyme, options.AdminPassword); err != nil {
			zapLogger.Fatal("cannot seed administrator", zap.Error(err))
		}
	}

	// Session authentication: the one strategy for this deployment.
	sessions := auth.NewService(playerRepo, adminRepo, clk, options.AdminToken, options.SessionTTL)

	// Outgoing mail transport for registration and warning emails.
	sender := mailer.NewSMTPSender(
		options.SMTPHost, options.SMTPPort,
		options.SMTPUser, options.SMTPPassword, options.FromEmail,
	)

	// Periodically warn players who stopped validating goals.
	db.StartInactivityWarner(context.Background(), postgresDB, playerService, sender,
		options.WarningInterval, options.WarningThreshold, zapLogger)

	// Create HTTP handlers.
	playerHandler := &http.PlayerHandler{
		PlayerService: playerService,
		Sender:        sender,
		AdminToken:    options.AdminToken,
		Logger:        zapLogger,
	}
	goalHandler := &http.GoalHandler{GoalService: goalService}
	adminHandler := &http.AdminHandler{AdminService: adminService, AdminToken: options.AdminToken}
	sessionHandler := &http.SessionHandler{Sessions: sessions, Players: playerService}

	// Build the router with middleware and routes.
	router := http.NewRouter(playerHandler, goalHandler, adminHandler, sessionHandler, sessions, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
