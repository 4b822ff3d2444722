package formulas

// CalculateRSI calculates the Relative Strength Index over the last `length`
// price changes.
//
// RSI Formula:
//
//	RSI = 100 - (100 / (1 + RS))
//	where RS = Average Gain / Average Loss over N periods
//
// When the average loss over the window is exactly zero the ratio is
// undefined; the function returns 50 (neutral momentum) instead of dividing
// by zero. The result is always within [0, 100].
//
// Returns nil if there are fewer than length+1 prices.
func CalculateRSI(closes []float64, length int) *float64 {
	if length <= 0 || len(closes) < length+1 {
		return nil
	}

	var gainSum, lossSum float64
	start := len(closes) - length
	for i := start; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum += -delta
		}
	}

	avgGain := gainSum / float64(length)
	avgLoss := lossSum / float64(length)

	if avgLoss == 0 {
		neutral := 50.0
		return &neutral
	}

	rs := avgGain / avgLoss
	rsi := 100 - 100/(1+rs)
	return &rsi
}
