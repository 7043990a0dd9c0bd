package model

// Decision is the aggregate trade recommendation.
type Decision string

const (
	DecisionBuy  Decision = "BUY"
	DecisionSell Decision = "SELL"
	DecisionHold Decision = "HOLD"
)

// SignalKind classifies a single signal line.
type SignalKind string

const (
	SignalBuy  SignalKind = "BUY"
	SignalSell SignalKind = "SELL"
	SignalNone SignalKind = "NONE"
)

// Signal is one human-readable indicator reading.
type Signal struct {
	Kind SignalKind
	Text string
}

// SignalReport is the output of one analysis.
type SignalReport struct {
	Signals  []Signal
	Decision Decision
}

// Lines returns the signal texts in rule order.
func (r SignalReport) Lines() []string {
	lines := make([]string, len(r.Signals))
	for i, s := range r.Signals {
		lines[i] = s.Text
	}
	return lines
}

// RiskLevels holds the exit levels derived from the latest close.
type RiskLevels struct {
	StopLoss   float64
	TakeProfit float64
}

// Evaluation bundles everything the pure compute phase produces for one cycle.
type Evaluation struct {
	Rate       float64
	Series     PriceSeries
	Indicators IndicatorSet
	Report     SignalReport
	Risk       RiskLevels
}
