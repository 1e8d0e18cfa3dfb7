package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abr-dev/interview-coach/internal/config"
	"github.com/abr-dev/interview-coach/internal/metrics"
	"github.com/abr-dev/interview-coach/internal/server/handler"
	"github.com/abr-dev/interview-coach/internal/session"
)

// NewRouter creates and configures a new HTTP router with middleware and API
// routes. Everything under /api/v1 sits behind the application password gate.
func NewRouter(cfg *config.Config, sessions *session.Service, m *metrics.Metrics, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Configure middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(3 * time.Minute))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(handler.PasswordGate(cfg.Auth.AppPassword, logger))

		sessionHandler := handler.NewSessionHandler(sessions, logger)
		r.Post("/sessions", sessionHandler.Start)
		r.Get("/sessions/{id}", sessionHandler.Get)
		r.Post("/sessions/{id}/answer", sessionHandler.Answer)
		r.Get("/sessions/{id}/summary", sessionHandler.Summary)
		r.Delete("/sessions/{id}", sessionHandler.Reset)

		metricsHandler := handler.NewMetricsHandler(m)
		r.Get("/metrics", metricsHandler.Get)
	})

	return r
}
