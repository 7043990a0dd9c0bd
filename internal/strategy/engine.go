package strategy

import (
	"fmt"

	"fxsentinel/internal/calculator"
	"fxsentinel/internal/model"
)

// RSI thresholds.
const (
	RSIOversold   = 30.0
	RSIOverbought = 70.0
)

// Signal texts, one per rule outcome.
const (
	TextRSIOversold    = "RSI indicates BUY (oversold)"
	TextRSIOverbought  = "RSI indicates SELL (overbought)"
	TextMACDBullish    = "MACD indicates BUY (bullish momentum)"
	TextMACDBearish    = "MACD indicates SELL (bearish momentum)"
	TextBelowBollinger = "Price is below Bollinger Bands, potential BUY signal"
	TextAboveBollinger = "Price is above Bollinger Bands, potential SELL signal"
)

// Analyze maps the latest close and indicator readings to signals and an
// aggregate decision. Rules run in a fixed order: RSI, MACD, Bollinger.
func Analyze(series model.PriceSeries, ind model.IndicatorSet) (model.SignalReport, error) {
	if len(series) == 0 {
		return model.SignalReport{}, model.ErrEmptySeries
	}
	latest := func(name model.IndicatorName) (float64, error) {
		v, ok := ind.Latest(name)
		if !ok {
			return 0, &model.IndicatorNotReadyError{Indicator: name, Points: len(series)}
		}
		return v, nil
	}

	rsi, err := latest(model.IndicatorRSI)
	if err != nil {
		return model.SignalReport{}, err
	}
	macd, err := latest(model.IndicatorMACD)
	if err != nil {
		return model.SignalReport{}, err
	}
	upper, err := latest(model.IndicatorBollingerHigh)
	if err != nil {
		return model.SignalReport{}, err
	}
	lower, err := latest(model.IndicatorBollingerLow)
	if err != nil {
		return model.SignalReport{}, err
	}
	last := series.Latest()

	var signals []model.Signal
	if s, ok := rsiRule(rsi); ok {
		signals = append(signals, s)
	}
	signals = append(signals, macdRule(macd))
	if s, ok := bollingerRule(last, upper, lower); ok {
		signals = append(signals, s)
	}

	return model.SignalReport{Signals: signals, Decision: aggregate(signals)}, nil
}

func rsiRule(rsi float64) (model.Signal, bool) {
	switch {
	case rsi < RSIOversold:
		return model.Signal{Kind: model.SignalBuy, Text: TextRSIOversold}, true
	case rsi > RSIOverbought:
		return model.Signal{Kind: model.SignalSell, Text: TextRSIOverbought}, true
	default:
		return model.Signal{}, false
	}
}

// macdRule always fires; zero counts as bearish.
func macdRule(macd float64) model.Signal {
	if macd > 0 {
		return model.Signal{Kind: model.SignalBuy, Text: TextMACDBullish}
	}
	return model.Signal{Kind: model.SignalSell, Text: TextMACDBearish}
}

func bollingerRule(last, upper, lower float64) (model.Signal, bool) {
	switch {
	case last < lower:
		return model.Signal{Kind: model.SignalBuy, Text: TextBelowBollinger}, true
	case last > upper:
		return model.Signal{Kind: model.SignalSell, Text: TextAboveBollinger}, true
	default:
		return model.Signal{}, false
	}
}

// aggregate returns BUY if any signal is BUY, else SELL if any is SELL, else HOLD.
func aggregate(signals []model.Signal) model.Decision {
	var sell bool
	for _, s := range signals {
		switch s.Kind {
		case model.SignalBuy:
			return model.DecisionBuy
		case model.SignalSell:
			sell = true
		}
	}
	if sell {
		return model.DecisionSell
	}
	return model.DecisionHold
}

// Evaluate runs the pure compute phase for one polled rate: flat series,
// indicators, signals and risk levels. It performs no I/O.
func Evaluate(rate float64, points int) (*model.Evaluation, error) {
	series, err := model.NewFlatSeries(rate, points)
	if err != nil {
		return nil, fmt.Errorf("build series: %w", err)
	}
	ind := calculator.Compute(series)
	report, err := Analyze(series, ind)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	return &model.Evaluation{
		Rate:       rate,
		Series:     series,
		Indicators: ind,
		Report:     report,
		Risk:       ComputeRisk(series.Latest()),
	}, nil
}
