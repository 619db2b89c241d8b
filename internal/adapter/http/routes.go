package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/sagecrest/pulsedash/internal/config"
	"github.com/sagecrest/pulsedash/internal/middleware"
)

// Limiters groups the per-surface rate limiters. Auth and contact get
// tight budgets; the admin limiter covers everything behind the password.
type Limiters struct {
	Auth    *middleware.RateLimiter
	Contact *middleware.RateLimiter
	Admin   *middleware.RateLimiter
}

// NewLimiters builds the three limiters from config.
func NewLimiters(cfg config.Rate) *Limiters {
	return &Limiters{
		Auth:    middleware.NewRateLimiter(cfg.AuthAttempts, cfg.AuthWindow),
		Contact: middleware.NewRateLimiter(cfg.ContactSubmissions, cfg.ContactWindow),
		Admin:   middleware.NewRateLimiter(cfg.AdminRequests, cfg.AdminWindow),
	}
}

// MountRoutes registers all API routes on the given chi router. The
// middleware chain outside (security headers, CORS, logging, tracing) is
// assembled once by the caller; this only wires per-route auth and rate
// limits.
func MountRoutes(r chi.Router, s *Server, lim *Limiters, apiKey string) {
	r.Get("/health", s.handleHealth)

	if s.hub != nil {
		r.Get("/ws", s.hub.HandleWS)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public surface: password check and the contact form, each with
		// its own tight limit.
		r.With(lim.Auth.Handler).Post("/auth/verify", s.handleVerify)
		r.With(lim.Contact.Handler).Post("/contact", s.handleSubmitContact)

		// Everything else requires the shared password. The limiter sits
		// in front of the password check so failed guesses burn the IP's
		// budget instead of unlimited bcrypt comparisons.
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKey(apiKey))
			r.Use(lim.Admin.Handler)
			r.Use(middleware.AdminAuth(s.auth))

			r.Get("/metrics", s.handleGetMetrics)
			r.Get("/metrics/overrides", s.handleListOverrides)
			r.Put("/metrics/overrides", s.handlePutOverride)
			r.Delete("/metrics/overrides", s.handleDeleteOverride)

			r.Get("/monthly-logs/{company}", s.handleListMonthlyLogs)
			r.Post("/monthly-logs/{company}", s.handleUpsertMonthlyLog)

			r.Get("/goals", s.handleListGoals)
			r.Post("/goals", s.handleCreateGoal)
			r.Put("/goals/{id}", s.handleUpdateGoal)
			r.Delete("/goals/{id}", s.handleDeleteGoal)

			r.Get("/contact", s.handleListContact)
			r.Patch("/contact/{id}", s.handleUpdateContact)

			r.Get("/entities", s.handleListTables)
			r.Post("/entities/{table}", s.handleManageEntity)
		})
	})
}
