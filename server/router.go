// Package server exposes the orchestrator over HTTP: one streaming endpoint
// speaking the event protocol plus non-streaming convenience and
// classification endpoints.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pyaichatbot/adk-demo/logging"
	"github.com/pyaichatbot/adk-demo/orchestrator"
)

// NewRouter builds the HTTP handler tree around an orchestrator.
func NewRouter(orc *orchestrator.Orchestrator, logger logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	h := newHandler(orc, logger)

	// Health probes
	r.Get("/live", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(api chi.Router) {
		api.Post("/agui/run", h.streamRun)
		api.Post("/run/sequential", h.runSequential)
		api.Post("/run/collab", h.runCollab)
		api.Post("/classify", h.classify)
	})

	return r
}
