package formulas

import (
	"github.com/markcheno/go-talib"
)

// CalculateSMA calculates the simple moving average over the given window and
// returns the most recent value, or nil if there is insufficient data.
func CalculateSMA(closes []float64, window int) *float64 {
	if window <= 0 || len(closes) < window {
		return nil
	}

	sma := talib.Sma(closes, window)
	if len(sma) == 0 {
		return nil
	}

	last := sma[len(sma)-1]
	if !IsFinite(last) {
		return nil
	}
	return &last
}
