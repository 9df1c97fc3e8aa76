package rebalancing

import "fmt"

// ErrNotEditing is returned by staging operations outside an edit session
var ErrNotEditing = fmt.Errorf("no edit session in progress")

// InvalidWeightError reports a staged weight outside the valid range.
// The session is left untouched when this is returned.
type InvalidWeightError struct {
	Ticker string
	Weight float64
}

func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("invalid weight %.2f for %s: must be between 0 and 100", e.Weight, e.Ticker)
}

// UnknownTickerError reports an attempt to stage a weight for a ticker that
// is not part of the holdings under edit.
type UnknownTickerError struct {
	Ticker string
}

func (e *UnknownTickerError) Error() string {
	return fmt.Sprintf("ticker %s is not in the current holdings", e.Ticker)
}

// WeightSumMismatchError reports a commit attempt whose effective weights do
// not sum to exactly 100.00. Sum carries the actual total so callers can show
// the user how far off they are.
type WeightSumMismatchError struct {
	Sum float64
}

func (e *WeightSumMismatchError) Error() string {
	return fmt.Sprintf("weights must sum to exactly 100.00, got %.2f", e.Sum)
}
