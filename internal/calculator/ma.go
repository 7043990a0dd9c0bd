package calculator

import (
	"github.com/markcheno/go-talib"
)

// SMA returns the simple moving average of closes over period using ta-lib.
// Positions inside the warm-up window are NaN.
func SMA(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < period {
		return undefined(len(closes))
	}
	return maskLookback(talib.Sma(closes, period), period-1)
}

// EMA returns the exponential moving average of closes over period using
// ta-lib, which seeds the average with the SMA of the first period closes.
func EMA(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < period {
		return undefined(len(closes))
	}
	return maskLookback(talib.Ema(closes, period), period-1)
}

// seededEMA is an EMA seeded with the first close and advanced as
// ema += alpha*(x-ema). A flat input stays exactly flat.
func seededEMA(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	if len(closes) == 0 {
		return out
	}
	alpha := 2.0 / float64(period+1)
	ema := closes[0]
	out[0] = ema
	for i := 1; i < len(closes); i++ {
		ema += alpha * (closes[i] - ema)
		out[i] = ema
	}
	return out
}

// rollingMean returns the mean of closes[end-period+1 : end+1] computed as a
// running mean, which is exact for a window of identical values.
func rollingMean(closes []float64, end, period int) float64 {
	mean := 0.0
	k := 0.0
	for i := end - period + 1; i <= end; i++ {
		k++
		mean += (closes[i] - mean) / k
	}
	return mean
}

// ta-lib fills the lookback positions with zero.
func maskLookback(values []float64, lookback int) []float64 {
	out := undefined(len(values))
	for i := lookback; i < len(values); i++ {
		out[i] = values[i]
	}
	return out
}
