package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxsentinel/internal/model"
)

func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestRSI_WarmUp(t *testing.T) {
	rsi := RSI(ramp(30, 1, 1), 14)
	require.Len(t, rsi, 30)
	for i := 0; i < 14; i++ {
		assert.True(t, math.IsNaN(rsi[i]), "index %d should be undefined", i)
	}
	assert.False(t, math.IsNaN(rsi[14]))
}

func TestRSI_Extremes(t *testing.T) {
	up := RSI(ramp(30, 1, 1), 14)
	assert.Equal(t, 100.0, up[len(up)-1], "only gains reads 100")

	down := RSI(ramp(30, 100, -1), 14)
	assert.Equal(t, 0.0, down[len(down)-1], "only losses reads 0")

	same := RSI(flat(30, 1.08), 14)
	assert.Equal(t, 100.0, same[len(same)-1], "flat series reads 100")
}

func TestRSI_Balanced(t *testing.T) {
	// Alternating +1/-1 moves keep gains and losses equal.
	closes := make([]float64, 31)
	closes[0] = 10
	for i := 1; i < len(closes); i++ {
		if i%2 == 1 {
			closes[i] = closes[i-1] + 1
		} else {
			closes[i] = closes[i-1] - 1
		}
	}
	rsi := RSI(closes, 14)
	assert.InDelta(t, 50.0, rsi[14], 1e-9)
	assert.InDelta(t, 50.0, rsi[len(rsi)-1], 5.0)
}

func TestRSI_ShortSeries(t *testing.T) {
	rsi := RSI(flat(14, 1), 14)
	for _, v := range rsi {
		assert.True(t, math.IsNaN(v))
	}
	assert.Len(t, RSI(nil, 14), 0)
}

func TestMACD(t *testing.T) {
	same := MACD(flat(25, 1.08), 12, 26)
	assert.True(t, math.IsNaN(same[10]))
	for i := 11; i < 25; i++ {
		assert.Equal(t, 0.0, same[i], "flat series must give exactly zero at %d", i)
	}

	up := MACD(ramp(40, 1, 0.5), 12, 26)
	assert.Greater(t, up[len(up)-1], 0.0, "rising prices give a bullish line")

	down := MACD(ramp(40, 50, -0.5), 12, 26)
	assert.Less(t, down[len(down)-1], 0.0, "falling prices give a bearish line")

	short := MACD(flat(11, 1), 12, 26)
	for _, v := range short {
		assert.True(t, math.IsNaN(v))
	}
}

func TestBollingerBands(t *testing.T) {
	upper, lower := BollingerBands(flat(25, 1.08), 20, 2)
	assert.True(t, math.IsNaN(upper[18]))
	assert.Equal(t, 1.08, upper[24])
	assert.Equal(t, 1.08, lower[24])

	upper, lower = BollingerBands(ramp(20, 1, 1), 20, 2)
	sd := math.Sqrt(399.0 / 12.0)
	assert.InDelta(t, 10.5+2*sd, upper[19], 1e-9)
	assert.InDelta(t, 10.5-2*sd, lower[19], 1e-9)
}

func TestSMAAndEMA(t *testing.T) {
	closes := ramp(25, 1, 1)

	sma := SMA(closes, 20)
	assert.True(t, math.IsNaN(sma[18]))
	assert.InDelta(t, 10.5, sma[19], 1e-9)
	assert.InDelta(t, 15.5, sma[24], 1e-9)

	ema := EMA(closes, 20)
	assert.True(t, math.IsNaN(ema[18]))
	assert.InDelta(t, 10.5, ema[19], 1e-9, "seeded with the first SMA")
	assert.InDelta(t, 11.5, ema[20], 1e-9)

	for _, v := range SMA(flat(5, 1), 20) {
		assert.True(t, math.IsNaN(v))
	}
	for _, v := range EMA(flat(5, 1), 20) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestCompute(t *testing.T) {
	series, err := model.NewFlatSeries(1.08, 25)
	require.NoError(t, err)

	set := Compute(series)
	require.Len(t, set, len(model.IndicatorNames))
	for _, name := range model.IndicatorNames {
		require.Len(t, set[name], 25, name)
		_, ok := set.Latest(name)
		assert.True(t, ok, "%s should be ready on 25 points", name)
	}

	rsi, _ := set.Latest(model.IndicatorRSI)
	assert.Equal(t, 100.0, rsi)
	macd, _ := set.Latest(model.IndicatorMACD)
	assert.Equal(t, 0.0, macd)
	hi, _ := set.Latest(model.IndicatorBollingerHigh)
	lo, _ := set.Latest(model.IndicatorBollingerLow)
	assert.Equal(t, 1.08, hi)
	assert.Equal(t, 1.08, lo)
}

func TestCompute_ShortSeries(t *testing.T) {
	series, err := model.NewFlatSeries(1.08, 10)
	require.NoError(t, err)

	set := Compute(series)
	for _, name := range model.IndicatorNames {
		_, ok := set.Latest(name)
		assert.False(t, ok, "%s should not be ready on 10 points", name)
	}
}
