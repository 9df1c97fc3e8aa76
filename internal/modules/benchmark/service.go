// Package benchmark maps a basket's countries to a national market benchmark.
package benchmark

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/idea2index/engine/internal/domain"
)

// Service selects the comparison benchmark for a holdings basket
type Service struct {
	log zerolog.Logger
}

// NewService creates a new benchmark selection service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("service", "benchmark").Logger(),
	}
}

// Select determines the appropriate benchmark for a basket of holdings.
//
// Policy (never errors, silent degrade-to-default):
//   - empty basket: US default (S&P 500)
//   - all holdings resolve to one supported country code: that country's benchmark
//   - multiple countries, or no resolvable code: US default
//
// A country value longer than 2 characters is a full country name the engine
// does not resolve; it degrades to "US" for that holding. This is a documented
// limitation carried over for compatibility, not a geographic inference.
func (s *Service) Select(holdings []domain.Holding) domain.Benchmark {
	if len(holdings) == 0 {
		return DefaultBenchmark()
	}

	countries := make(map[string]bool)
	for _, h := range holdings {
		countries[resolveCountryCode(h.Country)] = true
	}

	if len(countries) == 1 {
		for code := range countries {
			if b, ok := Lookup(code); ok {
				return b
			}
			s.log.Debug().Str("country", code).Msg("No benchmark configured for country, using default")
		}
	}

	// Multi-country baskets use the US default. A weight-based selection
	// would be possible here but would change observable behavior.
	return DefaultBenchmark()
}

// resolveCountryCode normalizes a holding's country field to a 2-letter
// upper-case code. Anything longer than 2 characters, including a padded
// code or a full country name, is unresolved and degrades to US.
func resolveCountryCode(country string) string {
	if len(country) > 2 || country == "" {
		return DefaultCountryCode
	}
	return strings.ToUpper(country)
}
