package query

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers query routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/query", func(r chi.Router) {
		r.Post("/", h.Ask)
		r.Post("/self", h.AskSelfQuery)
		r.Post("/rerank", h.AskRerank)
	})
}
