package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Put("/update-holdings", h.HandleUpdateHoldings)
	r.Post("/normalize-weights", h.HandleNormalizeWeights)
	r.Post("/benchmark", h.HandleBenchmark)
}
