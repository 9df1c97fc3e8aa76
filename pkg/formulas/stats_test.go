package formulas

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"simple average", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single value", []float64{7}, 7.0},
		{"negative values", []float64{-2, 2}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.data); !almostEqual(got, tt.expected) {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestPopStdDev(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		// Population std dev of {2,4,4,4,5,5,7,9} is exactly 2
		{"known population", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2.0},
		{"constant series", []float64{5, 5, 5}, 0.0},
		{"single value", []float64{42}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PopStdDev(tt.data); !almostEqual(got, tt.expected) {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestPopStdDevSmallerThanSample(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	pop := PopStdDev(data)
	sample := StdDev(data)
	if pop >= sample {
		t.Errorf("Population std dev %f should be smaller than sample std dev %f", pop, sample)
	}
}

func TestSimpleReturns(t *testing.T) {
	returns := SimpleReturns([]float64{100, 110, 99})
	if len(returns) != 2 {
		t.Fatalf("Expected 2 returns, got %d", len(returns))
	}
	if !almostEqual(returns[0], 0.10) {
		t.Errorf("Expected 0.10, got %f", returns[0])
	}
	if !almostEqual(returns[1], -0.10) {
		t.Errorf("Expected -0.10, got %f", returns[1])
	}
}

func TestSimpleReturnsShortInput(t *testing.T) {
	if got := SimpleReturns([]float64{100}); len(got) != 0 {
		t.Errorf("Expected no returns for a single point, got %v", got)
	}
	if got := SimpleReturns(nil); len(got) != 0 {
		t.Errorf("Expected no returns for nil input, got %v", got)
	}
}

func TestAnnualizedVolatility(t *testing.T) {
	// Alternating +1%/-1% has population std dev of exactly 0.01
	returns := []float64{0.01, -0.01, 0.01, -0.01}
	expected := 0.01 * math.Sqrt(252)

	if got := AnnualizedVolatility(returns); !almostEqual(got, expected) {
		t.Errorf("Expected %f, got %f", expected, got)
	}
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}
	if got := Correlation(x, y); !almostEqual(got, 1.0) {
		t.Errorf("Expected perfect correlation, got %f", got)
	}

	inverted := []float64{10, 8, 6, 4, 2}
	if got := Correlation(x, inverted); !almostEqual(got, -1.0) {
		t.Errorf("Expected perfect inverse correlation, got %f", got)
	}

	if got := Correlation(x, []float64{1, 2}); got != 0 {
		t.Errorf("Expected 0 for mismatched lengths, got %f", got)
	}
}
