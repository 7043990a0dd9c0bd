package calculator

import "fxsentinel/internal/model"

// Standard windows used by Compute.
const (
	RSIPeriod       = 14
	MACDFast        = 12
	MACDSlow        = 26
	BollingerPeriod = 20
	BollingerK      = 2.0
	MAPeriod        = 20
)

// Compute derives all six indicator series from the price series.
func Compute(series model.PriceSeries) model.IndicatorSet {
	closes := []float64(series)
	upper, lower := BollingerBands(closes, BollingerPeriod, BollingerK)
	return model.IndicatorSet{
		model.IndicatorRSI:           RSI(closes, RSIPeriod),
		model.IndicatorMACD:          MACD(closes, MACDFast, MACDSlow),
		model.IndicatorBollingerHigh: upper,
		model.IndicatorBollingerLow:  lower,
		model.IndicatorSMA20:         SMA(closes, MAPeriod),
		model.IndicatorEMA20:         EMA(closes, MAPeriod),
	}
}
