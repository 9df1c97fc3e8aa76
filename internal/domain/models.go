// Package domain provides core domain models and types.
package domain

// DataSource identifies the provenance of a performance series.
// Callers must propagate this to the presentation layer so synthetic
// data is never mistaken for real market data.
type DataSource string

const (
	// SourceLive marks data supplied by an authoritative market data backend
	SourceLive DataSource = "live"
	// SourceSynthetic marks locally generated fallback data
	SourceSynthetic DataSource = "synthetic"
)

// MarketCap represents a market capitalization category
type MarketCap string

const (
	MarketCapLarge MarketCap = "Large Cap"
	MarketCapMid   MarketCap = "Mid Cap"
	MarketCapSmall MarketCap = "Small Cap"
)

// Holding represents a single basket constituent of a generated index
type Holding struct {
	Ticker             string  `json:"ticker"`
	SecurityName       string  `json:"security_name"`
	Country            string  `json:"country"` // ISO-3166 alpha-2 code, or a full name (degrades to US)
	Sector             string  `json:"sector"`
	MarketCap          string  `json:"market_cap"`
	SelectionRationale string  `json:"selection_rationale"`
	Weight             float64 `json:"weight"` // percentage, 0-100, 2-decimal precision
}

// Benchmark represents a national market index used for comparison.
// It is derived from a basket's countries at analytics time, never stored.
type Benchmark struct {
	Name   string `json:"name"`   // e.g. "S&P 500"
	Ticker string `json:"ticker"` // e.g. "^GSPC"
}

// PerformanceSeries holds aligned index and benchmark value series over
// business days. Both value series are independently normalized to 100.0
// at the first date.
type PerformanceSeries struct {
	Dates           []string   `json:"dates"` // YYYY-MM-DD, strictly increasing, weekends excluded
	IndexValues     []float64  `json:"index_values"`
	BenchmarkValues []float64  `json:"benchmark_values"`
	BenchmarkName   string     `json:"benchmark_name"`
	BenchmarkTicker string     `json:"benchmark_ticker"`
	Source          DataSource `json:"source"`
}

// Stats holds the core risk/return statistics for one value series.
// Lifecycle is purely derived: recomputed on demand, never persisted.
type Stats struct {
	TotalReturn float64 `json:"total_return"` // %, 1 decimal
	MaxDrawdown float64 `json:"max_drawdown"` // %, <= 0, 1 decimal
	SharpeRatio float64 `json:"sharpe_ratio"` // annualized, 2 decimals
	// Degenerate is set when the series had fewer than 2 points or zero
	// return volatility; affected metrics report 0.0 instead of NaN/Inf.
	Degenerate bool `json:"degenerate,omitempty"`
}

// ExtendedStats holds the richer analytics computed alongside the core Stats.
// Beta, Alpha and Correlation are only present when a benchmark series of
// matching length was available.
type ExtendedStats struct {
	Stats
	AnnualizedReturn float64  `json:"annualized_return"` // %, 2 decimals
	Volatility       float64  `json:"volatility"`        // %, annualized, 2 decimals
	SortinoRatio     float64  `json:"sortino_ratio"`     // annualized, 2 decimals
	Beta             *float64 `json:"beta,omitempty"`
	Alpha            *float64 `json:"alpha,omitempty"`
	Correlation      *float64 `json:"correlation,omitempty"`
}

// ScoreCard represents one qualitative score shown alongside an index
type ScoreCard struct {
	Score       int    `json:"score"`
	MaxScore    int    `json:"max_score"`
	Description string `json:"description"`
}
