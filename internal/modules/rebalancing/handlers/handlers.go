// Package handlers provides HTTP handlers for interactive weight editing.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/idea2index/engine/internal/domain"
	"github.com/idea2index/engine/internal/modules/rebalancing"
)

// Handler handles rebalancing HTTP requests
type Handler struct {
	service *rebalancing.Service
	log     zerolog.Logger
}

// NewHandler creates a new rebalancing handler
func NewHandler(service *rebalancing.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "rebalancing").Logger(),
	}
}

// HandleBeginEdit handles POST /api/rebalancing/sessions
func (h *Handler) HandleBeginEdit(w http.ResponseWriter, r *http.Request) {
	var holdings []domain.Holding
	if err := json.NewDecoder(r.Body).Decode(&holdings); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session := h.service.BeginEdit(holdings)

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id":   session.ID,
		"total_staged": session.TotalStaged(),
	})
}

type stageWeightRequest struct {
	Ticker string  `json:"ticker"`
	Weight float64 `json:"weight"`
}

// HandleStageWeight handles POST /api/rebalancing/sessions/{id}/weights
func (h *Handler) HandleStageWeight(w http.ResponseWriter, r *http.Request, session *rebalancing.Session) {
	var req stageWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := session.Stage(req.Ticker, req.Weight); err != nil {
		var invalidWeight *rebalancing.InvalidWeightError
		var unknownTicker *rebalancing.UnknownTickerError
		switch {
		case errors.As(err, &invalidWeight), errors.As(err, &unknownTicker):
			h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		default:
			h.log.Error().Err(err).Str("session_id", session.ID).Msg("Failed to stage weight")
			http.Error(w, "Failed to stage weight", http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_staged": session.TotalStaged(),
	})
}

// HandleCommit handles POST /api/rebalancing/sessions/{id}/commit
func (h *Handler) HandleCommit(w http.ResponseWriter, r *http.Request, session *rebalancing.Session) {
	holdings, err := session.Commit()
	if err != nil {
		var mismatch *rebalancing.WeightSumMismatchError
		if errors.As(err, &mismatch) {
			h.writeJSON(w, http.StatusConflict, map[string]interface{}{
				"error": err.Error(),
				"sum":   mismatch.Sum,
			})
			return
		}
		h.log.Error().Err(err).Str("session_id", session.ID).Msg("Failed to commit session")
		http.Error(w, "Failed to commit session", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Holdings rebalanced successfully",
		"holdings": holdings,
	})
}

// HandleCancel handles POST /api/rebalancing/sessions/{id}/cancel
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request, session *rebalancing.Session) {
	session.Cancel()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Edit session cancelled",
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
