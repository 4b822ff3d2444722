// Package scoring evaluates the statistical robustness of a target
// allocation by replaying it over rolling historical windows.
package scoring

import (
	"github.com/rs/zerolog"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
	"github.com/suyash242004/decentralfund-dao/pkg/formulas"
)

// NeutralConfidence is returned when there is not enough history to judge a
// recommendation either way.
const NeutralConfidence = 0.5

// ConfidenceScorer rates an allocation in [0.05, 0.95] from the consistency
// of its rolling-window Sharpe ratios. It never fails: any degenerate input
// yields the neutral default.
type ConfidenceScorer struct {
	riskFreeRate float64
	window       int
	log          zerolog.Logger
}

// NewConfidenceScorer creates a scorer with the given rolling window size.
func NewConfidenceScorer(riskFreeRate float64, window int, log zerolog.Logger) *ConfidenceScorer {
	return &ConfidenceScorer{
		riskFreeRate: riskFreeRate,
		window:       window,
		log:          log.With().Str("component", "confidence").Logger(),
	}
}

// Score replays the weighted portfolio over each rolling window of daily
// returns and scores the consistency and level of the resulting Sharpe
// ratios. Windows with zero deviation are skipped. Returns 0.5 when fewer
// than one full window is available.
func (cs *ConfidenceScorer) Score(weights domain.Allocation, series map[string]domain.AssetSeries) float64 {
	portfolioReturns := portfolioReturnSeries(weights, series)
	if len(portfolioReturns) < cs.window {
		return NeutralConfidence
	}

	periodicRiskFree := cs.riskFreeRate / formulas.TradingDaysPerYear

	var rollingSharpes []float64
	for i := cs.window; i <= len(portfolioReturns); i++ {
		window := portfolioReturns[i-cs.window : i]
		if sharpe := formulas.PeriodSharpe(window, periodicRiskFree); sharpe != nil {
			rollingSharpes = append(rollingSharpes, *sharpe)
		}
	}

	if len(rollingSharpes) == 0 {
		return NeutralConfidence
	}

	sharpeMean := formulas.Mean(rollingSharpes)
	sharpeStd := formulas.StdDev(rollingSharpes)
	if !formulas.IsFinite(sharpeMean) || !formulas.IsFinite(sharpeStd) {
		return NeutralConfidence
	}

	consistency := 1 / (1 + sharpeStd)
	performance := clamp((sharpeMean+1)/2, 0, 1)

	confidence := clamp((consistency+performance)/2, 0.05, 0.95)
	cs.log.Debug().
		Float64("consistency", consistency).
		Float64("performance", performance).
		Float64("confidence", confidence).
		Int("windows", len(rollingSharpes)).
		Msg("Scored allocation confidence")
	return confidence
}

// portfolioReturnSeries builds the weighted daily return series of the
// portfolio. Series are assumed row-aligned (the price cache guarantees it);
// symbols without history contribute nothing.
func portfolioReturnSeries(weights domain.Allocation, series map[string]domain.AssetSeries) []float64 {
	var length int
	for symbol, s := range series {
		if _, ok := weights[symbol]; !ok {
			continue
		}
		if n := len(formulas.CalculateReturns(s.Prices())); n > length {
			length = n
		}
	}
	if length == 0 {
		return nil
	}

	portfolio := make([]float64, length)
	for symbol, weight := range weights {
		s, ok := series[symbol]
		if !ok || weight == 0 {
			continue
		}
		returns := formulas.CalculateReturns(s.Prices())
		for i, r := range returns {
			portfolio[i] += weight * r
		}
	}
	return portfolio
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
