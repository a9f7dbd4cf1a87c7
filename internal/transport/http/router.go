package http

import (
	"github.com/yourhostel/stat-syncer/internal/transport/http/handler"
	"github.com/yourhostel/stat-syncer/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router. The auth gate runs
// on every request; only the signup/login and health routes skip the
// RequireAuth check.
func NewRouter(h *handler.Handler, authHandler *handler.AuthHandler, reportHandler *handler.ReportHandler, gate *middleware.AuthGate) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure for production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Bearer-token authentication (resolves a principal when present)
	r.Use(gate.Handler)

	// Health check endpoints (no auth required)
	r.Get("/api/v1/health", h.Health)
	r.Get("/api/v1/ready", h.Ready)

	// Auth endpoints (always reachable without a principal)
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
	})

	// Statistic endpoints (principal required)
	r.Route("/api/statistic", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/date", reportHandler.FindByDateRange)
		r.Get("/asin", reportHandler.FindByAsins)
		r.Get("/total/units", reportHandler.UnitsAndSalesTotal)
		r.Get("/total/date", reportHandler.TotalsByDate)
		r.Get("/total/asin", reportHandler.TotalsByAsin)
	})

	return r
}
