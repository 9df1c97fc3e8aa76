package formulas

import (
	"math"
)

// SharpeRatio calculates the annualized Sharpe ratio of a periodic return
// series without a risk-free adjustment:
//
//	Sharpe = mean(returns) / popstddev(returns) x sqrt(periodsPerYear)
//
// Returns 0 and false when the series is degenerate (fewer than 1 sample, or
// zero volatility), so callers never see NaN or Inf.
func SharpeRatio(returns []float64, periodsPerYear int) (float64, bool) {
	if len(returns) < 1 {
		return 0, false
	}

	stdDev := PopStdDev(returns)
	if stdDev == 0 {
		return 0, false
	}

	sharpe := Mean(returns) / stdDev
	return sharpe * math.Sqrt(float64(periodsPerYear)), true
}

// SharpeRatioExcess calculates the annualized Sharpe ratio of periodic
// returns in excess of a risk-free rate.
//
// Args:
//
//	returns: Array of periodic returns (daily, monthly, etc.)
//	riskFreeRate: Risk-free rate (annual, as decimal, e.g. 0.02 for 2%)
//	periodsPerYear: Number of periods per year (252 for daily, 12 for monthly)
//
// Returns:
//
//	Sharpe ratio, or nil if there is insufficient data or zero volatility
func SharpeRatioExcess(returns []float64, riskFreeRate float64, periodsPerYear int) *float64 {
	if len(returns) < 2 {
		return nil
	}

	stdDev := PopStdDev(returns)
	if stdDev == 0 {
		return nil
	}

	periodicRiskFree := riskFreeRate / float64(periodsPerYear)
	sharpe := (Mean(returns) - periodicRiskFree) / stdDev
	annualized := sharpe * math.Sqrt(float64(periodsPerYear))

	return &annualized
}

// SortinoRatio calculates the annualized Sortino ratio (downside-deviation
// version of Sharpe). Only returns below the periodic risk-free rate count
// toward volatility.
//
// Returns nil if there is insufficient data or no downside deviation.
func SortinoRatio(returns []float64, riskFreeRate float64, periodsPerYear int) *float64 {
	if len(returns) < 2 {
		return nil
	}

	periodicRiskFree := riskFreeRate / float64(periodsPerYear)

	var downsideSquaredSum float64
	downsideCount := 0
	for _, ret := range returns {
		if ret < periodicRiskFree {
			deviation := ret - periodicRiskFree
			downsideSquaredSum += deviation * deviation
			downsideCount++
		}
	}

	if downsideCount == 0 {
		return nil
	}

	downsideDeviation := math.Sqrt(downsideSquaredSum / float64(downsideCount))
	if downsideDeviation == 0 {
		return nil
	}

	sortino := (Mean(returns) - periodicRiskFree) / downsideDeviation
	annualized := sortino * math.Sqrt(float64(periodsPerYear))

	return &annualized
}
