package formulas

// MaxDrawdownPct calculates the maximum drawdown of a value series as a
// signed percentage.
//
// Drawdown at each step is measured against the running peak:
//
//	Drawdown = (Value - Peak) / Peak x 100
//
// The result is the most negative drawdown observed, always <= 0. A
// monotonically non-decreasing series yields 0. Series with fewer than 2
// points yield 0.
func MaxDrawdownPct(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	maxDrawdown := 0.0
	peak := values[0]

	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			drawdown := (v - peak) / peak * 100
			if drawdown < maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return maxDrawdown
}

// DrawdownSeries returns the per-step drawdown (signed percentage from the
// running peak) for a value series. Used for charting drawdown curves.
func DrawdownSeries(values []float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}

	out := make([]float64, len(values))
	peak := values[0]
	for i, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			out[i] = (v - peak) / peak * 100
		}
	}
	return out
}
