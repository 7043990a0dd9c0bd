package strategy

import "fxsentinel/internal/model"

// Fixed exit multipliers applied to the latest close.
const (
	takeProfitFactor = 0.99
	stopLossFactor   = 1.01
)

// ComputeRisk derives exit levels from the latest close. Take-profit sits
// below the close and stop-loss above it.
func ComputeRisk(latestClose float64) model.RiskLevels {
	return model.RiskLevels{
		StopLoss:   latestClose * stopLossFactor,
		TakeProfit: latestClose * takeProfitFactor,
	}
}
