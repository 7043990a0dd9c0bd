package model

import (
	"errors"
	"fmt"
)

// ErrEmptySeries is returned when an operation needs at least one close.
var ErrEmptySeries = errors.New("price series is empty")

// RateUnavailableError means the price source answered without a usable rate.
type RateUnavailableError struct {
	Pair   string
	Reason string
}

func (e *RateUnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("rate unavailable for %s", e.Pair)
	}
	return fmt.Sprintf("rate unavailable for %s: %s", e.Pair, e.Reason)
}

// InvalidRateError means a rate was present but is not a positive finite number.
type InvalidRateError struct {
	Rate   float64
	Raw    string
	Reason string
}

func (e *InvalidRateError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("invalid rate %v: %s", e.Rate, e.Reason)
	case e.Raw != "":
		return fmt.Sprintf("invalid rate %q: not a number", e.Raw)
	default:
		return fmt.Sprintf("invalid rate %v: must be positive and finite", e.Rate)
	}
}

// IndicatorNotReadyError means the series is too short for an indicator's warm-up window.
type IndicatorNotReadyError struct {
	Indicator IndicatorName
	Points    int
}

func (e *IndicatorNotReadyError) Error() string {
	return fmt.Sprintf("indicator %s has no value for a %d-point series", e.Indicator, e.Points)
}
