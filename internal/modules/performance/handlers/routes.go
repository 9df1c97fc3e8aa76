package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all performance routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/performance-data", h.HandlePerformanceData)
	r.Post("/scores", h.HandleScores)
}
