package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/idea2index/engine/internal/domain"
	"github.com/idea2index/engine/internal/modules/rebalancing"
	"github.com/idea2index/engine/pkg/logger"
)

func newTestRouter() *chi.Mux {
	log := logger.NewSilent()
	handler := NewHandler(rebalancing.NewService(log), log)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func beginSession(t *testing.T, router *chi.Mux) string {
	t.Helper()

	holdings := []domain.Holding{
		{Ticker: "AAPL", Weight: 60.0},
		{Ticker: "MSFT", Weight: 40.0},
	}
	rec := doJSON(t, router, http.MethodPost, "/rebalancing/sessions", holdings)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		SessionID   string  `json:"session_id"`
		TotalStaged float64 `json:"total_staged"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.SessionID == "" {
		t.Fatal("Expected a session ID")
	}
	if response.TotalStaged != 100.0 {
		t.Fatalf("Expected initial total 100.00, got %.2f", response.TotalStaged)
	}
	return response.SessionID
}

func TestEditWorkflow(t *testing.T) {
	router := newTestRouter()
	id := beginSession(t, router)

	// Stage a valid weight change
	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/rebalancing/sessions/%s/weights", id),
		map[string]interface{}{"ticker": "AAPL", "weight": 70.0})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var staged struct {
		TotalStaged float64 `json:"total_staged"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &staged); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if staged.TotalStaged != 110.0 {
		t.Errorf("Expected total 110.00, got %.2f", staged.TotalStaged)
	}

	// Commit fails while the sum is off, and reports the actual sum
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/rebalancing/sessions/%s/commit", id), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected 409 for sum mismatch, got %d", rec.Code)
	}
	var mismatch struct {
		Error string  `json:"error"`
		Sum   float64 `json:"sum"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &mismatch); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if mismatch.Sum != 110.0 {
		t.Errorf("Expected sum 110.00 in mismatch response, got %.2f", mismatch.Sum)
	}

	// Fix the other leg and commit
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/rebalancing/sessions/%s/weights", id),
		map[string]interface{}{"ticker": "MSFT", "weight": 30.0})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/rebalancing/sessions/%s/commit", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 on commit, got %d: %s", rec.Code, rec.Body.String())
	}

	var committed struct {
		Holdings []domain.Holding `json:"holdings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &committed); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if committed.Holdings[0].Weight != 70.0 || committed.Holdings[1].Weight != 30.0 {
		t.Errorf("Expected committed weights 70/30, got %.2f/%.2f",
			committed.Holdings[0].Weight, committed.Holdings[1].Weight)
	}

	// The session is gone after commit
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/rebalancing/sessions/%s/commit", id), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after commit, got %d", rec.Code)
	}
}

func TestStageInvalidWeight(t *testing.T) {
	router := newTestRouter()
	id := beginSession(t, router)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/rebalancing/sessions/%s/weights", id),
		map[string]interface{}{"ticker": "AAPL", "weight": 150.0})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out-of-range weight, got %d", rec.Code)
	}
}

func TestStageUnknownTicker(t *testing.T) {
	router := newTestRouter()
	id := beginSession(t, router)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/rebalancing/sessions/%s/weights", id),
		map[string]interface{}{"ticker": "GOOG", "weight": 10.0})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown ticker, got %d", rec.Code)
	}
}

func TestCancelSession(t *testing.T) {
	router := newTestRouter()
	id := beginSession(t, router)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/rebalancing/sessions/%s/cancel", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/rebalancing/sessions/%s/weights", id),
		map[string]interface{}{"ticker": "AAPL", "weight": 50.0})
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after cancel, got %d", rec.Code)
	}
}

func TestUnknownSession(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/rebalancing/sessions/no-such-id/commit", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", rec.Code)
	}
}
