// Package portfolio holds the basket-level operations: weight normalization
// and holdings validation.
package portfolio

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/idea2index/engine/internal/domain"
)

// SumTolerance is the acceptable deviation from 100.00 for an incoming
// holdings update. Looser than the commit check on purpose: clients round
// independently and accumulate cent-level float noise.
const SumTolerance = 0.01

// Service provides portfolio-level holdings operations
type Service struct {
	maxHoldings int
	log         zerolog.Logger
}

// NewService creates a new portfolio service
func NewService(maxHoldings int, log zerolog.Logger) *Service {
	return &Service{
		maxHoldings: maxHoldings,
		log:         log.With().Str("service", "portfolio").Logger(),
	}
}

// NormalizeWeights scales the holdings so their weights sum to exactly
// 100.00 at 2 decimal places. Already-exact baskets pass through unchanged.
// A basket with no meaningful weight (total below 0.01) is equal-weighted.
// Any rounding residue left after scaling is folded into the largest holding,
// where a cent-level nudge is least visible.
//
// The input slice is not modified.
func (s *Service) NormalizeWeights(holdings []domain.Holding) []domain.Holding {
	if len(holdings) == 0 {
		return nil
	}

	out := make([]domain.Holding, len(holdings))
	copy(out, holdings)

	total := 0.0
	for _, h := range out {
		total += h.Weight
	}

	if total == 100.0 {
		return out
	}

	if total < 0.01 {
		equal := math.Round(100.0/float64(len(out))*100) / 100
		for i := range out {
			out[i].Weight = equal
		}
	} else {
		for i := range out {
			out[i].Weight = math.Round(out[i].Weight*100.0/total*100) / 100
		}
	}

	s.forceExactSum(out)
	return out
}

// forceExactSum absorbs the rounding residue into the largest holding so the
// weights sum to exactly 100.00
func (s *Service) forceExactSum(holdings []domain.Holding) {
	sum := decimal.Zero
	largest := 0
	for i, h := range holdings {
		sum = sum.Add(decimal.NewFromFloat(h.Weight))
		if h.Weight > holdings[largest].Weight {
			largest = i
		}
	}

	diff := decimal.NewFromInt(100).Sub(sum.Round(2))
	if diff.IsZero() {
		return
	}

	adjusted, _ := decimal.NewFromFloat(holdings[largest].Weight).Add(diff).Round(2).Float64()
	holdings[largest].Weight = adjusted

	s.log.Debug().
		Str("ticker", holdings[largest].Ticker).
		Str("residue", diff.String()).
		Msg("Absorbed rounding residue into largest holding")
}

// ValidationError reports why a holdings update was rejected
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid holdings: %s", strings.Join(e.Problems, "; "))
}

// ValidateHoldings checks an incoming holdings basket: it must be non-empty,
// within the holdings limit, carry a ticker, a security name, and an in-range
// weight on every position, and sum to 100 within SumTolerance. All problems are collected
// into a single ValidationError rather than failing on the first.
func (s *Service) ValidateHoldings(holdings []domain.Holding) error {
	var problems []string

	if len(holdings) == 0 {
		problems = append(problems, "holdings must not be empty")
	}
	if s.maxHoldings > 0 && len(holdings) > s.maxHoldings {
		problems = append(problems, fmt.Sprintf("too many holdings: %d exceeds limit of %d", len(holdings), s.maxHoldings))
	}

	total := 0.0
	seen := make(map[string]bool)
	for i, h := range holdings {
		ticker := strings.TrimSpace(h.Ticker)
		if ticker == "" {
			problems = append(problems, fmt.Sprintf("holding %d has no ticker", i+1))
		} else if seen[ticker] {
			problems = append(problems, fmt.Sprintf("duplicate ticker %s", ticker))
		}
		seen[ticker] = true

		if strings.TrimSpace(h.SecurityName) == "" {
			problems = append(problems, fmt.Sprintf("holding %d has no security name", i+1))
		}

		if h.Weight < 0 || h.Weight > 100 {
			problems = append(problems, fmt.Sprintf("weight %.2f for %s is outside 0-100", h.Weight, ticker))
		}
		total += h.Weight
	}

	if len(holdings) > 0 && math.Abs(total-100.0) > SumTolerance {
		problems = append(problems, fmt.Sprintf("weights sum to %.2f, expected 100.00", total))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
