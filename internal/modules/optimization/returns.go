package optimization

import (
	"fmt"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
	"github.com/suyash242004/decentralfund-dao/pkg/formulas"
)

// Estimator derives annualized expected returns and a covariance matrix from
// aligned daily price series. Degenerate series (too short, non-finite
// statistics) are reported as errors so the caller can fall back instead of
// letting NaN propagate into results.
type Estimator struct {
	periodsPerYear int
}

// NewEstimator creates an estimator annualizing by the given trading-period
// count (252 for daily series).
func NewEstimator(periodsPerYear int) *Estimator {
	return &Estimator{periodsPerYear: periodsPerYear}
}

// ExpectedReturns estimates each symbol's annualized mean historical return.
// When override is supplied it is used verbatim for every symbol it covers.
func (e *Estimator) ExpectedReturns(symbols []string, series map[string]domain.AssetSeries, override map[string]float64) (map[string]float64, error) {
	mu := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		if override != nil {
			if ret, ok := override[symbol]; ok {
				mu[symbol] = ret
				continue
			}
		}

		s, ok := series[symbol]
		if !ok || s.Len() < 2 {
			return nil, fmt.Errorf("no usable series for %s", symbol)
		}

		dailyReturns := formulas.CalculateReturns(s.Prices())
		annualized := formulas.Mean(dailyReturns) * float64(e.periodsPerYear)
		if !formulas.IsFinite(annualized) {
			return nil, fmt.Errorf("expected return for %s is not finite", symbol)
		}
		mu[symbol] = annualized
	}
	return mu, nil
}

// Covariance estimates the annualized sample covariance matrix of daily
// returns, ordered by symbols.
func (e *Estimator) Covariance(symbols []string, series map[string]domain.AssetSeries) ([][]float64, error) {
	returns := make([][]float64, len(symbols))
	for i, symbol := range symbols {
		s, ok := series[symbol]
		if !ok || s.Len() < 3 {
			return nil, fmt.Errorf("no usable series for %s", symbol)
		}
		returns[i] = formulas.CalculateReturns(s.Prices())
		if i > 0 && len(returns[i]) != len(returns[0]) {
			return nil, fmt.Errorf("series for %s is not aligned", symbol)
		}
	}

	n := len(symbols)
	cov := make([][]float64, n)
	for i := 0; i < n; i++ {
		cov[i] = make([]float64, n)
		for j := 0; j <= i; j++ {
			v := formulas.Covariance(returns[i], returns[j]) * float64(e.periodsPerYear)
			if !formulas.IsFinite(v) {
				return nil, fmt.Errorf("covariance between %s and %s is not finite", symbols[i], symbols[j])
			}
			cov[i][j] = v
			cov[j][i] = v
		}
	}

	// A zero-variance asset makes the problem degenerate.
	for i := 0; i < n; i++ {
		if cov[i][i] <= 0 {
			return nil, fmt.Errorf("series for %s has no variance", symbols[i])
		}
	}
	return cov, nil
}
