// Package performance generates performance series and orchestrates the
// analytics pipeline for a holdings basket.
package performance

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/idea2index/engine/internal/domain"
	"github.com/idea2index/engine/internal/modules/benchmark"
	"github.com/idea2index/engine/internal/modules/statistics"
)

// Daily return bounds for the synthetic generator. The index moves with a
// slightly larger magnitude and a slightly stronger positive bias than its
// benchmark, so synthetic charts resemble a thematic basket tracked against
// a broad market index.
const (
	indexReturnSpan  = 0.04    // uniform span, roughly +/-2% daily
	indexReturnMin   = -0.019  // mean +0.1% daily
	benchReturnSpan  = 0.03    // uniform span, roughly +/-1.5% daily
	benchReturnMin   = -0.0145 // mean +0.05% daily
)

// Report bundles a performance series with the statistics derived from it
type Report struct {
	Series         domain.PerformanceSeries `json:"series"`
	Stats          domain.ExtendedStats     `json:"stats"`
	BenchmarkStats domain.ExtendedStats     `json:"benchmark_stats"`
}

// Service generates performance data for holdings baskets.
//
// The synthetic path exists purely as a presentation fallback for when the
// authoritative performance backend is unreachable. Every series it produces
// is tagged domain.SourceSynthetic so it can never be mistaken for market
// data downstream.
type Service struct {
	selector     *benchmark.Service
	riskFreeRate float64
	rng          *rand.Rand
	now          func() time.Time
	log          zerolog.Logger
}

// Option customizes a Service. Used by tests to make output reproducible.
type Option func(*Service)

// WithRand injects a deterministic random source
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithClock injects a fake clock
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new performance service. riskFreeRate is annual, as a
// decimal (e.g. 0.02 for 2%), and only affects the extended statistics.
func NewService(selector *benchmark.Service, riskFreeRate float64, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		selector:     selector,
		riskFreeRate: riskFreeRate,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		now:          time.Now,
		log:          log.With().Str("service", "performance").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateSeries produces a synthetic business-day performance series for the
// given horizon. The series spans the calendar months leading up to now,
// excludes Saturdays and Sundays, and normalizes both value series to 100.0
// at the first business day.
//
// months must be >= 1; any positive integer is accepted, not just the menu
// values the UI offers.
func (s *Service) GenerateSeries(months int, holdings []domain.Holding) (domain.PerformanceSeries, error) {
	if months < 1 {
		return domain.PerformanceSeries{}, fmt.Errorf("months must be >= 1, got %d", months)
	}

	bench := s.selector.Select(holdings)

	end := s.now()
	start := end.AddDate(0, -months, 0)

	series := domain.PerformanceSeries{
		BenchmarkName:   bench.Name,
		BenchmarkTicker: bench.Ticker,
		Source:          domain.SourceSynthetic,
	}

	indexValue := 100.0
	benchValue := 100.0
	first := true

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}

		if !first {
			// Two independent draws, applied multiplicatively. The running
			// values keep full precision; only stored values are rounded.
			indexValue *= 1 + (s.rng.Float64()*indexReturnSpan + indexReturnMin)
			benchValue *= 1 + (s.rng.Float64()*benchReturnSpan + benchReturnMin)
		}
		first = false

		series.Dates = append(series.Dates, d.Format("2006-01-02"))
		series.IndexValues = append(series.IndexValues, round2(indexValue))
		series.BenchmarkValues = append(series.BenchmarkValues, round2(benchValue))
	}

	s.log.Info().
		Int("months", months).
		Int("points", len(series.Dates)).
		Str("benchmark", bench.Ticker).
		Msg("Generated synthetic performance series")

	return series, nil
}

// GenerateReport runs the full fallback analytics pipeline: benchmark
// selection, synthetic series generation, and statistics for both the index
// and its benchmark.
func (s *Service) GenerateReport(months int, holdings []domain.Holding) (*Report, error) {
	series, err := s.GenerateSeries(months, holdings)
	if err != nil {
		return nil, fmt.Errorf("failed to generate series: %w", err)
	}

	return &Report{
		Series:         series,
		Stats:          statistics.ComputeExtended(series.IndexValues, series.BenchmarkValues, s.riskFreeRate),
		BenchmarkStats: statistics.ComputeExtended(series.BenchmarkValues, nil, s.riskFreeRate),
	}, nil
}

// ReportFromSeries derives statistics for an externally supplied series.
// Authoritative data takes precedence over the synthetic path; this lets the
// caller reuse the same statistics pipeline for both, with provenance
// preserved on the series itself.
func (s *Service) ReportFromSeries(series domain.PerformanceSeries) *Report {
	return &Report{
		Series:         series,
		Stats:          statistics.ComputeExtended(series.IndexValues, series.BenchmarkValues, s.riskFreeRate),
		BenchmarkStats: statistics.ComputeExtended(series.BenchmarkValues, nil, s.riskFreeRate),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
