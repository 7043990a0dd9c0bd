package notifier

import (
	"fmt"
	"strings"
	"time"

	"fxsentinel/internal/model"
)

// FormatAlertSubject returns the email subject for a decision.
func FormatAlertSubject(decision model.Decision) string {
	return fmt.Sprintf("Forex Trade Alert - %s", decision)
}

// FormatAlertBody returns the plain-text email body.
func FormatAlertBody(report model.SignalReport, latestClose float64, risk model.RiskLevels) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trade Signal: %s\n", report.Decision)
	fmt.Fprintf(&b, "Latest Price: %.6f\n", latestClose)
	fmt.Fprintf(&b, "Take Profit: %.6f\n", risk.TakeProfit)
	fmt.Fprintf(&b, "Stop Loss: %.6f\n\n", risk.StopLoss)
	b.WriteString("Indicators:\n")
	b.WriteString(strings.Join(report.Lines(), "\n"))
	return b.String()
}

// FormatConsoleReport renders one evaluated cycle for the terminal.
func FormatConsoleReport(pair string, ev *model.Evaluation, at time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "== Forex Trading Signals for %s | %s ==\n\n", pair, at.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "Live rate: %.6f (%d points)\n\n", ev.Rate, len(ev.Series))

	b.WriteString("Indicators:\n")
	for _, name := range model.IndicatorNames {
		if v, ok := ev.Indicators.Latest(name); ok {
			fmt.Fprintf(&b, "  %-14s %.6f\n", name, v)
		} else {
			fmt.Fprintf(&b, "  %-14s n/a\n", name)
		}
	}

	b.WriteString("\nTrading Signals:\n")
	for _, line := range ev.Report.Lines() {
		fmt.Fprintf(&b, "  - %s\n", line)
	}

	fmt.Fprintf(&b, "\nTrade Recommendation: %s\n", ev.Report.Decision)

	b.WriteString("\nRisk Management:\n")
	fmt.Fprintf(&b, "  Stop Loss:   %.6f\n", ev.Risk.StopLoss)
	fmt.Fprintf(&b, "  Take Profit: %.6f\n", ev.Risk.TakeProfit)

	return b.String()
}

// FormatCycleError renders a failed cycle for the terminal.
func FormatCycleError(pair string, err error, at time.Time) string {
	return fmt.Sprintf("== Forex Trading Signals for %s | %s ==\n\nNo data available: %v\n",
		pair, at.Format("2006-01-02 15:04:05"), err)
}
