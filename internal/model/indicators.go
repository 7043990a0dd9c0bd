package model

import "math"

// IndicatorName identifies one computed indicator series.
type IndicatorName string

const (
	IndicatorRSI           IndicatorName = "RSI"
	IndicatorMACD          IndicatorName = "MACD"
	IndicatorBollingerHigh IndicatorName = "BollingerHigh"
	IndicatorBollingerLow  IndicatorName = "BollingerLow"
	IndicatorSMA20         IndicatorName = "SMA20"
	IndicatorEMA20         IndicatorName = "EMA20"
)

// IndicatorNames lists every indicator in display order.
var IndicatorNames = []IndicatorName{
	IndicatorRSI,
	IndicatorMACD,
	IndicatorBollingerHigh,
	IndicatorBollingerLow,
	IndicatorSMA20,
	IndicatorEMA20,
}

// IndicatorSet maps each indicator to a series aligned index-for-index with
// the PriceSeries it was computed from. Warm-up positions hold NaN.
type IndicatorSet map[IndicatorName][]float64

// Latest returns the last value of the named series and whether it is defined.
func (s IndicatorSet) Latest(name IndicatorName) (float64, bool) {
	values, ok := s[name]
	if !ok || len(values) == 0 {
		return 0, false
	}
	v := values[len(values)-1]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
