package formulas

// SharpeRatio calculates the risk-adjusted return of an annualized
// return/volatility pair: (return - riskFreeRate) / volatility.
// Returns 0 when volatility is zero rather than dividing by zero.
func SharpeRatio(annualReturn, annualVolatility, riskFreeRate float64) float64 {
	if annualVolatility == 0 {
		return 0
	}
	return (annualReturn - riskFreeRate) / annualVolatility
}

// PeriodSharpe calculates the non-annualized Sharpe ratio of a periodic
// return series: (mean - periodicRiskFree) / stdev.
// Returns nil when the series is too short or has zero deviation, so callers
// can skip degenerate windows instead of propagating NaN.
func PeriodSharpe(returns []float64, periodicRiskFree float64) *float64 {
	if len(returns) < 2 {
		return nil
	}

	stdDev := StdDev(returns)
	if stdDev == 0 {
		return nil
	}

	sharpe := (Mean(returns) - periodicRiskFree) / stdDev
	return &sharpe
}
