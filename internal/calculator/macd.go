package calculator

// MACD returns the MACD line, EMA(fast) - EMA(slow), for every position of
// closes. Both averages are seeded with the first close, so the line is
// defined once the fast window has filled (index fast-1). A flat series gives
// exactly zero.
func MACD(closes []float64, fast, slow int) []float64 {
	out := undefined(len(closes))
	if fast <= 0 || slow <= 0 || len(closes) < fast {
		return out
	}
	fastEMA := seededEMA(closes, fast)
	slowEMA := seededEMA(closes, slow)
	for i := fast - 1; i < len(closes); i++ {
		out[i] = fastEMA[i] - slowEMA[i]
	}
	return out
}
