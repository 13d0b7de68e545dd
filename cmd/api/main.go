// Package main is the entry point for the Tripbook API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/mkoval/tripbook/backend/internal/auth"
	"github.com/mkoval/tripbook/backend/internal/config"
	"github.com/mkoval/tripbook/backend/internal/handler"
	"github.com/mkoval/tripbook/backend/internal/middleware"
	"github.com/mkoval/tripbook/backend/internal/repo"
	"github.com/mkoval/tripbook/backend/internal/service"
	"github.com/mkoval/tripbook/backend/internal/store"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file is a convenience for local development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	// The flat-file store loads both collections once at startup; every
	// mutating request flushes a full snapshot back before responding.
	fileStore, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		slog.Error("failed to open data directory", "error", err)
		os.Exit(1)
	}
	loadedUsers, loadedTrips, err := fileStore.Load()
	if err != nil {
		slog.Error("failed to load data files", "error", err)
		os.Exit(1)
	}
	slog.Info("data loaded", "users", len(loadedUsers), "trips", len(loadedTrips))

	users := repo.NewUsers(loadedUsers)
	trips := repo.NewTrips(loadedTrips)

	// --- Services ---------------------------------------------------------
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	db := service.NewDB(users, trips, fileStore)
	authService := service.NewAuthService(db, tokens)
	tripService := service.NewTripService(db)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit. RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a
	// proxy). SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srv := handler.NewServer(authService, tripService)
	r.Mount("/", srv.Routes(middleware.NewAuthHandler(tokens)))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
