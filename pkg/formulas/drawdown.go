package formulas

// CalculateMaxDrawdown calculates the maximum drawdown of a cumulative value
// series built from periodic returns.
//
// Drawdown Formula:
//
//	Drawdown = (Current Value - Peak Value) / Peak Value
//	Max Drawdown = most negative drawdown observed
//
// The result is negative or zero (e.g. -0.25 = 25% loss from peak).
func CalculateMaxDrawdown(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	cumulative := 1.0
	peak := 1.0
	maxDrawdown := 0.0

	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		if peak > 0 {
			drawdown := (cumulative - peak) / peak
			if drawdown < maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return maxDrawdown
}
