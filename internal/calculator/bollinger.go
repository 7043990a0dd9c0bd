package calculator

import "math"

// BollingerBands returns the upper and lower bands: SMA(period) plus/minus
// k population standard deviations over the same window. Positions before
// index period-1 are NaN. On a window of identical closes both bands equal
// the close exactly.
func BollingerBands(closes []float64, period int, k float64) (upper, lower []float64) {
	upper = undefined(len(closes))
	lower = undefined(len(closes))
	if period <= 0 || len(closes) < period {
		return upper, lower
	}
	for end := period - 1; end < len(closes); end++ {
		mean := rollingMean(closes, end, period)
		var sq float64
		for i := end - period + 1; i <= end; i++ {
			d := closes[i] - mean
			sq += d * d
		}
		width := k * math.Sqrt(sq/float64(period))
		upper[end] = mean + width
		lower[end] = mean - width
	}
	return upper, lower
}
