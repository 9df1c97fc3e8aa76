// Package handlers provides HTTP handlers for portfolio operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/idea2index/engine/internal/domain"
	"github.com/idea2index/engine/internal/modules/benchmark"
	"github.com/idea2index/engine/internal/modules/portfolio"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	service  *portfolio.Service
	selector *benchmark.Service
	log      zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *portfolio.Service, selector *benchmark.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service:  service,
		selector: selector,
		log:      log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleUpdateHoldings handles PUT /api/update-holdings.
// The body is a JSON array of holdings. Validation failures come back as a
// 400 with every problem listed, not just the first.
func (h *Handler) HandleUpdateHoldings(w http.ResponseWriter, r *http.Request) {
	var holdings []domain.Holding
	if err := json.NewDecoder(r.Body).Decode(&holdings); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ValidateHoldings(holdings); err != nil {
		var vErr *portfolio.ValidationError
		if errors.As(err, &vErr) {
			h.log.Warn().Strs("problems", vErr.Problems).Msg("Holdings update rejected")
			h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":    "validation failed",
				"problems": vErr.Problems,
			})
			return
		}
		http.Error(w, "Failed to validate holdings", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Holdings updated successfully",
		"holdings": holdings,
	})
}

// HandleNormalizeWeights handles POST /api/normalize-weights
func (h *Handler) HandleNormalizeWeights(w http.ResponseWriter, r *http.Request) {
	var holdings []domain.Holding
	if err := json.NewDecoder(r.Body).Decode(&holdings); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	normalized := h.service.NormalizeWeights(holdings)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"holdings": normalized,
	})
}

// HandleBenchmark handles POST /api/benchmark
func (h *Handler) HandleBenchmark(w http.ResponseWriter, r *http.Request) {
	var holdings []domain.Holding
	if err := json.NewDecoder(r.Body).Decode(&holdings); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	bench := h.selector.Select(holdings)

	response := map[string]interface{}{
		"data": bench,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
