package performance

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idea2index/engine/internal/domain"
	"github.com/idea2index/engine/internal/modules/benchmark"
	"github.com/idea2index/engine/pkg/logger"
)

func fixedClock() func() time.Time {
	// A Wednesday, so the horizon boundaries are business days
	return func() time.Time {
		return time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	}
}

func newTestService(seed int64) *Service {
	selector := benchmark.NewService(logger.NewSilent())
	return NewService(selector, 0.02, logger.NewSilent(),
		WithRand(rand.New(rand.NewSource(seed))),
		WithClock(fixedClock()),
	)
}

func usHoldings() []domain.Holding {
	return []domain.Holding{
		{Ticker: "AAPL", Country: "US", Weight: 60.0},
		{Ticker: "MSFT", Country: "US", Weight: 40.0},
	}
}

func TestGenerateSeries_Shape(t *testing.T) {
	service := newTestService(1)

	series, err := service.GenerateSeries(12, usHoldings())
	require.NoError(t, err)

	// A 12-month window has roughly 252 business days
	assert.GreaterOrEqual(t, len(series.Dates), 250)
	assert.LessOrEqual(t, len(series.Dates), 265)

	assert.Len(t, series.IndexValues, len(series.Dates))
	assert.Len(t, series.BenchmarkValues, len(series.Dates))
	assert.Equal(t, domain.SourceSynthetic, series.Source)
}

func TestGenerateSeries_StartsAtHundred(t *testing.T) {
	service := newTestService(7)

	series, err := service.GenerateSeries(6, usHoldings())
	require.NoError(t, err)
	require.NotEmpty(t, series.IndexValues)

	assert.Equal(t, 100.0, series.IndexValues[0])
	assert.Equal(t, 100.0, series.BenchmarkValues[0])
}

func TestGenerateSeries_SkipsWeekends(t *testing.T) {
	service := newTestService(3)

	series, err := service.GenerateSeries(3, usHoldings())
	require.NoError(t, err)

	for _, d := range series.Dates {
		day, err := time.Parse("2006-01-02", d)
		require.NoError(t, err)
		assert.NotEqual(t, time.Saturday, day.Weekday(), "found Saturday %s", d)
		assert.NotEqual(t, time.Sunday, day.Weekday(), "found Sunday %s", d)
	}
}

func TestGenerateSeries_DatesAscending(t *testing.T) {
	service := newTestService(5)

	series, err := service.GenerateSeries(2, usHoldings())
	require.NoError(t, err)

	for i := 1; i < len(series.Dates); i++ {
		assert.Less(t, series.Dates[i-1], series.Dates[i])
	}
}

func TestGenerateSeries_ValuesRoundedToCents(t *testing.T) {
	service := newTestService(11)

	series, err := service.GenerateSeries(4, usHoldings())
	require.NoError(t, err)

	for i := range series.IndexValues {
		assert.Equal(t, math.Round(series.IndexValues[i]*100)/100, series.IndexValues[i])
		assert.Equal(t, math.Round(series.BenchmarkValues[i]*100)/100, series.BenchmarkValues[i])
	}
}

func TestGenerateSeries_ReturnsWithinBounds(t *testing.T) {
	service := newTestService(13)

	series, err := service.GenerateSeries(12, usHoldings())
	require.NoError(t, err)

	// Allow a small epsilon for the cent rounding of stored values
	const eps = 0.001
	for i := 1; i < len(series.IndexValues); i++ {
		r := series.IndexValues[i]/series.IndexValues[i-1] - 1
		assert.GreaterOrEqual(t, r, -0.019-eps)
		assert.LessOrEqual(t, r, 0.021+eps)
	}
	for i := 1; i < len(series.BenchmarkValues); i++ {
		r := series.BenchmarkValues[i]/series.BenchmarkValues[i-1] - 1
		assert.GreaterOrEqual(t, r, -0.0145-eps)
		assert.LessOrEqual(t, r, 0.0155+eps)
	}
}

func TestGenerateSeries_Deterministic(t *testing.T) {
	first, err := newTestService(42).GenerateSeries(6, usHoldings())
	require.NoError(t, err)
	second, err := newTestService(42).GenerateSeries(6, usHoldings())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSeries_BenchmarkSelection(t *testing.T) {
	service := newTestService(1)

	t.Run("US basket", func(t *testing.T) {
		series, err := service.GenerateSeries(1, usHoldings())
		require.NoError(t, err)
		assert.Equal(t, "^GSPC", series.BenchmarkTicker)
		assert.Equal(t, "S&P 500", series.BenchmarkName)
	})

	t.Run("German basket", func(t *testing.T) {
		series, err := service.GenerateSeries(1, []domain.Holding{
			{Ticker: "SAP", Country: "DE", Weight: 100.0},
		})
		require.NoError(t, err)
		assert.Equal(t, "^GDAXI", series.BenchmarkTicker)
	})

	t.Run("mixed basket falls back to US", func(t *testing.T) {
		series, err := service.GenerateSeries(1, []domain.Holding{
			{Ticker: "SAP", Country: "DE", Weight: 50.0},
			{Ticker: "AAPL", Country: "US", Weight: 50.0},
		})
		require.NoError(t, err)
		assert.Equal(t, "^GSPC", series.BenchmarkTicker)
	})
}

func TestGenerateSeries_InvalidMonths(t *testing.T) {
	service := newTestService(1)

	for _, months := range []int{0, -1, -12} {
		_, err := service.GenerateSeries(months, usHoldings())
		assert.Error(t, err, "months=%d", months)
	}
}

func TestGenerateSeries_LongHorizon(t *testing.T) {
	service := newTestService(9)

	series, err := service.GenerateSeries(120, usHoldings())
	require.NoError(t, err)

	// 10 years of business days
	assert.Greater(t, len(series.Dates), 2500)
	assert.Equal(t, 100.0, series.IndexValues[0])
	for _, v := range series.IndexValues {
		assert.Greater(t, v, 0.0)
	}
}

func TestGenerateReport(t *testing.T) {
	service := newTestService(21)

	report, err := service.GenerateReport(12, usHoldings())
	require.NoError(t, err)

	assert.Equal(t, domain.SourceSynthetic, report.Series.Source)
	assert.False(t, report.Stats.Degenerate)
	assert.False(t, report.BenchmarkStats.Degenerate)
	assert.Greater(t, report.Stats.Volatility, 0.0)
	assert.LessOrEqual(t, report.Stats.MaxDrawdown, 0.0)

	// Index stats are measured against the benchmark series
	require.NotNil(t, report.Stats.Beta)
	require.NotNil(t, report.Stats.Correlation)

	// Benchmark stats have no reference series of their own
	assert.Nil(t, report.BenchmarkStats.Beta)
}

func TestGenerateReport_InvalidMonths(t *testing.T) {
	service := newTestService(1)

	_, err := service.GenerateReport(0, usHoldings())
	assert.Error(t, err)
}

func TestReportFromSeries(t *testing.T) {
	service := newTestService(1)

	series := domain.PerformanceSeries{
		Dates:           []string{"2025-01-01", "2025-01-02", "2025-01-03"},
		IndexValues:     []float64{100, 102, 101},
		BenchmarkValues: []float64{100, 101, 100.5},
		BenchmarkName:   "S&P 500",
		BenchmarkTicker: "^GSPC",
		Source:          domain.SourceLive,
	}

	report := service.ReportFromSeries(series)

	assert.Equal(t, domain.SourceLive, report.Series.Source)
	assert.Equal(t, 1.0, report.Stats.TotalReturn)
	assert.Equal(t, 0.5, report.BenchmarkStats.TotalReturn)
}
