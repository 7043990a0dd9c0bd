package model

import "math"

// PriceSeries holds close prices, oldest first.
type PriceSeries []float64

// NewFlatSeries builds a series of n points that all equal rate.
// It stands in for a real price history: only one live quote is polled per
// cycle, so variance-based indicators degenerate on the result.
func NewFlatSeries(rate float64, n int) (PriceSeries, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return nil, &InvalidRateError{Rate: rate}
	}
	if n < 1 {
		return nil, &InvalidRateError{Rate: rate, Reason: "series length must be positive"}
	}
	s := make(PriceSeries, n)
	for i := range s {
		s[i] = rate
	}
	return s, nil
}

// Latest returns the most recent close. The caller must ensure the series is non-empty.
func (s PriceSeries) Latest() float64 {
	return s[len(s)-1]
}
