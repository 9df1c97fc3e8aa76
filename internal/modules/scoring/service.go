// Package scoring produces the qualitative scorecards shown alongside an
// index. Scores are currently drawn from calibrated placeholder ranges.
// TODO: derive returns_score and stability_score from the computed statistics
// once the synthetic and live paths share a stats history.
package scoring

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/idea2index/engine/internal/domain"
)

// Score keys, fixed across the API surface
const (
	KeyAsset           = "asset_score"
	KeyReturns         = "returns_score"
	KeyStability       = "stability_score"
	KeyDiversification = "diversification_score"
)

type scoreRange struct {
	min, max    int
	description string
}

// Placeholder ranges lean optimistic for asset quality and stability and
// more conservative for diversification, matching how concentrated thematic
// baskets tend to score.
var scoreRanges = map[string]scoreRange{
	KeyAsset:           {7, 9, "Quality and fundamentals of underlying assets"},
	KeyReturns:         {6, 8, "Historical and expected return performance"},
	KeyStability:       {7, 9, "Volatility and downside risk management"},
	KeyDiversification: {5, 7, "Portfolio concentration and correlation analysis"},
}

// Service generates index scorecards
type Service struct {
	rng *rand.Rand
	log zerolog.Logger
}

// Option customizes a Service
type Option func(*Service)

// WithRand injects a deterministic random source
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// NewService creates a new scoring service
func NewService(log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		log: log.With().Str("service", "scoring").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate returns a scorecard for each score key. Every card carries a
// max score of 10 and a stable description.
func (s *Service) Generate() map[string]domain.ScoreCard {
	cards := make(map[string]domain.ScoreCard, len(scoreRanges))
	for key, r := range scoreRanges {
		cards[key] = domain.ScoreCard{
			Score:       r.min + s.rng.Intn(r.max-r.min+1),
			MaxScore:    10,
			Description: r.description,
		}
	}
	return cards
}

// Metadata returns the static description and max score for a score key,
// without drawing a score. Returns false for unknown keys.
func Metadata(key string) (domain.ScoreCard, bool) {
	r, ok := scoreRanges[key]
	if !ok {
		return domain.ScoreCard{}, false
	}
	return domain.ScoreCard{MaxScore: 10, Description: r.description}, true
}
