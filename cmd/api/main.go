package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/goldguard-app/backend/internal/infra/postgres"
	infraredis "github.com/goldguard-app/backend/internal/infra/redis"
	"github.com/goldguard-app/backend/internal/ledger"
	"github.com/goldguard-app/backend/internal/platform/session"
	"github.com/goldguard-app/backend/internal/platform/user"
	"github.com/goldguard-app/backend/internal/transport/httpapi"
	"github.com/goldguard-app/backend/internal/transport/httpapi/handler"
	"github.com/goldguard-app/backend/internal/transport/httpapi/middleware"
	"github.com/goldguard-app/backend/pkg/config"
	"github.com/goldguard-app/backend/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env when present; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewDefault(cfg.Env)
	log.Info("Starting GoldGuard API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"ledger_backend", cfg.LedgerBackend,
	)

	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	log.Info("Database migrations applied")

	db, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("Database connection established")

	// The ledger backing is a composition decision: user accounts always
	// live in PostgreSQL, transactions and profiles go wherever
	// LEDGER_BACKEND points.
	var store ledger.Store
	var storePinger handler.Pinger
	switch cfg.LedgerBackend {
	case config.BackendRedis:
		client, err := infraredis.NewClient(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			log.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		log.Info("Redis connection established")

		redisStore := infraredis.NewStore(client)
		store = redisStore
		storePinger = redisStore
	default:
		store = postgres.NewLedgerRepository(db.Pool)
		storePinger = db
	}

	userRepo := postgres.NewUserRepository(db.Pool)
	userSvc := user.NewService(userRepo, log)
	tokenSvc := session.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	ledgerSvc := ledger.NewService(store)

	allowedOrigins := []string{"http://localhost:5173", "http://localhost:8081"}
	if cfg.IsProduction() {
		if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
			allowedOrigins = []string{origins}
		}
	}

	r := httpapi.NewRouter(httpapi.Config{
		Logger:             log,
		AllowedOrigins:     allowedOrigins,
		AuthHandler:        handler.NewAuthHandler(userSvc, tokenSvc, ledgerSvc, log),
		TransactionHandler: handler.NewTransactionHandler(ledgerSvc),
		ProfileHandler:     handler.NewProfileHandler(ledgerSvc),
		HealthHandler:      handler.NewHealthHandler(storePinger),
		AuthMiddleware:     middleware.Auth(tokenSvc),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}
