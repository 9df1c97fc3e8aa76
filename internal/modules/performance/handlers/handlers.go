// Package handlers provides HTTP handlers for performance data operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/idea2index/engine/internal/domain"
	"github.com/idea2index/engine/internal/modules/performance"
	"github.com/idea2index/engine/internal/modules/scoring"
)

// Handler handles performance HTTP requests
type Handler struct {
	service          *performance.Service
	scoring          *scoring.Service
	syntheticEnabled bool
	log              zerolog.Logger
}

// NewHandler creates a new performance handler. syntheticEnabled gates the
// fallback generator; with it off, performance requests are refused rather
// than answered with synthetic data.
func NewHandler(service *performance.Service, scoringService *scoring.Service, syntheticEnabled bool, log zerolog.Logger) *Handler {
	return &Handler{
		service:          service,
		scoring:          scoringService,
		syntheticEnabled: syntheticEnabled,
		log:              log.With().Str("handler", "performance").Logger(),
	}
}

type performanceDataRequest struct {
	Holdings []domain.Holding `json:"holdings"`
	Months   int              `json:"months"`
}

// HandlePerformanceData handles POST /api/performance-data
func (h *Handler) HandlePerformanceData(w http.ResponseWriter, r *http.Request) {
	if !h.syntheticEnabled {
		http.Error(w, "Synthetic data generation is disabled", http.StatusServiceUnavailable)
		return
	}

	var req performanceDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Months == 0 {
		req.Months = 12
	}
	if req.Months < 1 || req.Months > 120 {
		http.Error(w, "months must be between 1 and 120", http.StatusBadRequest)
		return
	}

	report, err := h.service.GenerateReport(req.Months, req.Holdings)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate performance report")
		http.Error(w, "Failed to generate performance data", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"data": report,
		"metadata": map[string]interface{}{
			"months":    req.Months,
			"source":    report.Series.Source,
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleScores handles POST /api/scores
func (h *Handler) HandleScores(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"data": h.scoring.Generate(),
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
