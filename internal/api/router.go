package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a Chi router exposing the introspection API for a
// handler.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/providers", h.Providers)
		r.Get("/algorithms", h.Algorithms)
		r.Post("/fetch", h.Fetch)
	})

	return r
}
