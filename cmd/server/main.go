// Package main initializes and starts the EchoPlay account server,
// setting up configuration, logging, database connections, repositories,
// services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/echoplay/echoplay/internal/config"
	"github.com/echoplay/echoplay/internal/db"
	"github.com/echoplay/echoplay/internal/logger"
	"github.com/echoplay/echoplay/internal/repository"
	"github.com/echoplay/echoplay/internal/server/handler/http"
	"github.com/echoplay/echoplay/internal/service"
	"go.uber.org/zap"
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
	addr := options.Port
	dbName := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(dbName)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Periodically drop expired sessions.
	db.StartSessionCleaner(context.Background(), postgresDB,
		time.Hour, // interval
		zapLogger,
	)

	// Initialize repositories for authentication and profiles.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	profileRepo := repository.NewPostgresProfileRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo)
	profileService := service.NewProfileService(profileRepo)

	// Create HTTP handlers for auth and profile endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	profileHandler := &http.ProfileHandler{ProfileService: profileService}

	// Build the router with middleware and routes. The auth repository
	// doubles as the session resolver for the token middleware.
	router := http.NewRouter(authHandler, profileHandler, authRepo, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting account server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start account server", zap.Error(err))
	}
}
