package benchmark

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers benchmark routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/benchmark", func(r chi.Router) {
		r.Post("/evaluate", h.Evaluate)
	})
}
