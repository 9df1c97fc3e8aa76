// Package statistics derives risk/return statistics from normalized value series.
package statistics

import (
	"math"

	"github.com/idea2index/engine/internal/domain"
	"github.com/idea2index/engine/pkg/formulas"
)

// Compute calculates the core statistics for a value series normalized to
// start at 100.0. It is pure and stateless: identical input always yields
// identical output.
//
// Degenerate inputs (fewer than 2 points, or zero return volatility) never
// produce NaN or Inf; the affected metrics report 0.0 and the Degenerate
// flag is set.
func Compute(values []float64) domain.Stats {
	if len(values) < 2 {
		return domain.Stats{Degenerate: true}
	}

	// Total return relies on the series being normalized to 100.0 at the
	// first point. This is not a general range-based return.
	totalReturn := round1((values[len(values)-1] - 100) / 100 * 100)

	maxDrawdown := round1(formulas.MaxDrawdownPct(values))

	// Per-step simple returns; the leading placeholder zero for the first
	// point is excluded, so mean and volatility run over n-1 samples.
	returns := formulas.SimpleReturns(values)

	sharpe, ok := formulas.SharpeRatio(returns, formulas.TradingDaysPerYear)
	stats := domain.Stats{
		TotalReturn: totalReturn,
		MaxDrawdown: maxDrawdown,
		SharpeRatio: round2(sharpe),
	}
	if !ok {
		// Zero-volatility series: Sharpe is undefined, report 0.0 rather
		// than propagating a division by zero.
		stats.SharpeRatio = 0.0
		stats.Degenerate = true
	}

	return stats
}

// ComputeExtended calculates the full analytics set for a value series,
// optionally against a benchmark series of equal length. riskFreeRate is
// annual, as a decimal (e.g. 0.02 for 2%).
func ComputeExtended(values, benchmark []float64, riskFreeRate float64) domain.ExtendedStats {
	ext := domain.ExtendedStats{Stats: Compute(values)}
	if len(values) < 2 {
		return ext
	}

	returns := formulas.SimpleReturns(values)

	// Annualized return assumes daily data
	years := float64(len(values)) / formulas.TradingDaysPerYear
	if years > 0 && values[0] > 0 {
		ext.AnnualizedReturn = round2((math.Pow(values[len(values)-1]/values[0], 1/years) - 1) * 100)
	} else {
		ext.AnnualizedReturn = ext.TotalReturn
	}

	ext.Volatility = round2(formulas.AnnualizedVolatility(returns) * 100)

	if sortino := formulas.SortinoRatio(returns, riskFreeRate, formulas.TradingDaysPerYear); sortino != nil {
		ext.SortinoRatio = round2(*sortino)
	}

	// Benchmark-relative metrics need an aligned series
	if len(benchmark) != len(values) || len(benchmark) < 2 {
		return ext
	}

	benchReturns := formulas.SimpleReturns(benchmark)
	benchVariance := popVariance(benchReturns)
	if benchVariance == 0 {
		return ext
	}

	beta := popCovariance(returns, benchReturns) / benchVariance
	betaRounded := round2(beta)
	ext.Beta = &betaRounded

	// Jensen's alpha against the benchmark's annualized return
	var benchAnnualized float64
	if years > 0 && benchmark[0] > 0 {
		benchAnnualized = (math.Pow(benchmark[len(benchmark)-1]/benchmark[0], 1/years) - 1) * 100
	}
	alpha := round2(ext.AnnualizedReturn - (riskFreeRate*100 + beta*(benchAnnualized-riskFreeRate*100)))
	ext.Alpha = &alpha

	corr := round2(formulas.Correlation(returns, benchReturns))
	ext.Correlation = &corr

	return ext
}

// popVariance is the population variance (divisor n)
func popVariance(data []float64) float64 {
	sd := formulas.PopStdDev(data)
	return sd * sd
}

// popCovariance is the population covariance of two equal-length datasets
func popCovariance(x, y []float64) float64 {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0
	}

	meanX := formulas.Mean(x)
	meanY := formulas.Mean(y)
	var sum float64
	for i := range x {
		sum += (x[i] - meanX) * (y[i] - meanY)
	}
	return sum / float64(n)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
