package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/idea2index/engine/internal/modules/rebalancing"
)

// RegisterRoutes registers all rebalancing routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/rebalancing", func(r chi.Router) {
		r.Post("/sessions", h.HandleBeginEdit)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Post("/weights", h.withSession(h.HandleStageWeight))
			r.Post("/commit", h.withSession(h.HandleCommit))
			r.Post("/cancel", h.withSession(h.HandleCancel))
		})
	})
}

// withSession resolves the session from the URL and 404s if it is gone
func (h *Handler) withSession(fn func(http.ResponseWriter, *http.Request, *rebalancing.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		session := h.service.Session(id)
		if session == nil {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		fn(w, r, session)
	}
}
