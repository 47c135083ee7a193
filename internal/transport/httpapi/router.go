// Package httpapi wires the HTTP surface: the chi router, its middleware
// stack and the route table.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/goldguard-app/backend/internal/transport/httpapi/handler"
	"github.com/goldguard-app/backend/internal/transport/httpapi/middleware"
	"github.com/goldguard-app/backend/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger             *logger.Logger
	AllowedOrigins     []string
	AuthHandler        *handler.AuthHandler
	TransactionHandler *handler.TransactionHandler
	ProfileHandler     *handler.ProfileHandler
	HealthHandler      *handler.HealthHandler
	AuthMiddleware     func(http.Handler) http.Handler
}

// NewRouter creates the HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit())

	// Health endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public)
		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes
		if cfg.AuthMiddleware != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.AuthMiddleware)

				if cfg.TransactionHandler != nil {
					r.Post("/transactions", cfg.TransactionHandler.CreateTransaction)
					r.Get("/transactions", cfg.TransactionHandler.GetTransactions)
					r.Delete("/transactions/{id}", cfg.TransactionHandler.DeleteTransaction)
				}

				if cfg.ProfileHandler != nil {
					r.Get("/profile", cfg.ProfileHandler.GetProfile)
					r.Put("/profile", cfg.ProfileHandler.UpdateProfile)
					r.Get("/avatars", cfg.ProfileHandler.GetAvatars)
				}

				r.Get("/help", handler.GetHelp)
			})
		}
	})

	return r
}
