// Package rebalancing implements the interactive weight editing workflow.
// Edits are staged against a snapshot of the holdings and only become
// visible when committed with weights summing to exactly 100.00.
package rebalancing

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/idea2index/engine/internal/domain"
)

// sessionTTL bounds how long an abandoned session stays in the registry.
// Stale sessions are purged whenever a new session is created.
const sessionTTL = 30 * time.Minute

// Service creates and tracks edit sessions
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
	log      zerolog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the time source used for session expiry
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new rebalancing service
func NewService(log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		sessions: make(map[string]*Session),
		now:      time.Now,
		log:      log.With().Str("service", "rebalancing").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BeginEdit opens an edit session over a snapshot of the given holdings.
// Later changes to the caller's slice do not affect the session.
func (s *Service) BeginEdit(holdings []domain.Holding) *Session {
	snapshot := make([]domain.Holding, len(holdings))
	copy(snapshot, holdings)

	session := &Session{
		ID:        uuid.New().String(),
		original:  snapshot,
		staged:    make(map[string]float64),
		editing:   true,
		createdAt: s.now(),
		svc:       s,
	}

	s.mu.Lock()
	s.purgeStale()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.log.Debug().Str("session_id", session.ID).Int("holdings", len(snapshot)).Msg("Edit session started")
	return session
}

// Session returns an active session by ID, or nil if it does not exist,
// has already been committed or cancelled, or has expired.
func (s *Service) Session(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.sessions[id]
	if session != nil && s.now().Sub(session.createdAt) > sessionTTL {
		session.editing = false
		delete(s.sessions, id)
		return nil
	}
	return session
}

// purgeStale drops sessions past the TTL. Caller must hold mu.
func (s *Service) purgeStale() {
	cutoff := s.now().Add(-sessionTTL)
	for id, session := range s.sessions {
		if session.createdAt.Before(cutoff) {
			session.editing = false
			delete(s.sessions, id)
			s.log.Debug().Str("session_id", id).Msg("Purged expired edit session")
		}
	}
}

// release drops a finished session from the registry
func (s *Service) release(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Session is a single in-flight weight edit. It snapshots the holdings at
// BeginEdit time and accumulates per-ticker overrides until Commit or Cancel.
//
// A session is not safe for concurrent use; each editor owns its session.
type Session struct {
	ID        string
	original  []domain.Holding
	staged    map[string]float64
	editing   bool
	createdAt time.Time
	svc       *Service
}

// Stage records a new weight for ticker. Weights outside [0, 100] are
// rejected with InvalidWeightError and leave the staged state unchanged, so
// an editor can correct a typo without losing prior edits.
func (s *Session) Stage(ticker string, weight float64) error {
	if !s.editing {
		return ErrNotEditing
	}
	if weight < 0 || weight > 100 {
		return &InvalidWeightError{Ticker: ticker, Weight: weight}
	}
	if !s.hasTicker(ticker) {
		return &UnknownTickerError{Ticker: ticker}
	}
	s.staged[ticker] = weight
	return nil
}

// TotalStaged returns the sum of the effective weights, rounded to 2 decimal
// places. Holdings without a staged override contribute their original weight.
func (s *Session) TotalStaged() float64 {
	total := decimal.Zero
	for _, h := range s.original {
		total = total.Add(decimal.NewFromFloat(s.effectiveWeight(h)))
	}
	v, _ := total.Round(2).Float64()
	return v
}

// Commit finalizes the edit. The effective weights must sum to exactly
// 100.00 at 2 decimal places; otherwise a WeightSumMismatchError carrying
// the actual sum is returned and the session stays open for correction.
// On success the session is closed and the rebalanced holdings are returned.
func (s *Session) Commit() ([]domain.Holding, error) {
	if !s.editing {
		return nil, ErrNotEditing
	}

	total := s.TotalStaged()
	if total != 100.00 {
		return nil, &WeightSumMismatchError{Sum: total}
	}

	result := make([]domain.Holding, len(s.original))
	for i, h := range s.original {
		h.Weight = s.effectiveWeight(h)
		result[i] = h
	}

	s.close()
	return result, nil
}

// Cancel discards all staged changes and closes the session
func (s *Session) Cancel() {
	if !s.editing {
		return
	}
	s.staged = make(map[string]float64)
	s.close()
}

// Editing reports whether the session is still open
func (s *Session) Editing() bool {
	return s.editing
}

func (s *Session) effectiveWeight(h domain.Holding) float64 {
	if w, ok := s.staged[h.Ticker]; ok {
		return w
	}
	return h.Weight
}

func (s *Session) hasTicker(ticker string) bool {
	for _, h := range s.original {
		if h.Ticker == ticker {
			return true
		}
	}
	return false
}

func (s *Session) close() {
	s.editing = false
	if s.svc != nil {
		s.svc.release(s.ID)
	}
}
