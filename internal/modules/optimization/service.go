// Package optimization produces target allocations for a risk profile from
// historical price statistics, with a static-table fallback when no usable
// data or optimizer backend is available.
package optimization

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
	"github.com/suyash242004/decentralfund-dao/internal/modules/scoring"
	"github.com/suyash242004/decentralfund-dao/pkg/formulas"
)

// Service orchestrates portfolio optimization: series fetch, statistics,
// backend selection, rebalancing trades and confidence scoring.
//
// Every failure past input validation degrades to a deterministic fallback
// recommendation; the caller always receives a well-formed result.
type Service struct {
	series          SeriesSource
	backend         Backend // statistical optimizer, may be nil
	fallback        Backend // static tables
	planner         TradePlanner
	scorer          ConfidenceScorer
	riskFreeRate    float64
	lookbackPeriods int // annualization factor for the return statistics
	log             zerolog.Logger
}

// NewService creates an optimization service. backend may be nil, in which
// case every request is served by the fallback tables.
func NewService(
	series SeriesSource,
	backend Backend,
	fallback Backend,
	planner TradePlanner,
	scorer ConfidenceScorer,
	riskFreeRate float64,
	lookbackPeriods int,
	log zerolog.Logger,
) *Service {
	if lookbackPeriods <= 0 {
		lookbackPeriods = formulas.TradingDaysPerYear
	}
	return &Service{
		series:          series,
		backend:         backend,
		fallback:        fallback,
		planner:         planner,
		scorer:          scorer,
		riskFreeRate:    riskFreeRate,
		lookbackPeriods: lookbackPeriods,
		log:             log.With().Str("service", "optimization").Logger(),
	}
}

// Optimize computes a target allocation for the current holdings and risk
// profile. horizonMonths is accepted for API compatibility and logged but
// does not alter the optimization. An error is returned only for invalid
// input; data problems and numeric degeneracy degrade to fallback results.
func (s *Service) Optimize(
	ctx context.Context,
	current domain.Allocation,
	profile domain.RiskProfile,
	horizonMonths int,
	overrideReturns map[string]float64,
) (result *domain.OptimizationResult, err error) {
	if err := current.Validate(); err != nil {
		return nil, fmt.Errorf("invalid allocation: %w", err)
	}
	if _, err := domain.ParseRiskProfile(string(profile)); err != nil {
		return nil, err
	}
	for symbol, ret := range overrideReturns {
		if math.IsNaN(ret) || math.IsInf(ret, 0) {
			return nil, fmt.Errorf("override return for %s is not finite", symbol)
		}
		if _, ok := current[symbol]; !ok {
			return nil, fmt.Errorf("override return for %s references an asset not in the portfolio", symbol)
		}
	}

	// Past validation the contract guarantees a well-formed result; an
	// unexpected panic in the math degrades to the equal-weight fallback.
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("Optimization panicked, returning equal-weight fallback")
			result = s.equalWeightResult(current)
			err = nil
		}
	}()

	s.log.Info().
		Str("profile", string(profile)).
		Int("horizon_months", horizonMonths).
		Int("assets", len(current)).
		Msg("Optimizing portfolio")

	symbols := current.Symbols()

	// Single asset: nothing to optimize.
	if len(symbols) == 1 {
		return s.singleAssetResult(ctx, symbols[0], current), nil
	}

	series := s.series.GetSeries(ctx, symbols, domain.Period1Year)
	if len(series) == 0 {
		s.log.Warn().Msg("No price data available, using static fallback tables")
		return s.fallbackResult(current, profile, series), nil
	}

	weights, perf, ok := s.optimizeStatistical(symbols, series, profile, overrideReturns)
	if !ok {
		return s.fallbackResult(current, profile, series), nil
	}

	result = &domain.OptimizationResult{
		Allocation:     weights,
		ExpectedReturn: perf.expectedReturn,
		Volatility:     perf.volatility,
		SharpeRatio:    perf.sharpe,
		Trades:         s.planner.Plan(current, weights),
		Confidence:     s.scorer.Score(weights, series),
	}

	s.log.Info().
		Float64("expected_return", result.ExpectedReturn).
		Float64("volatility", result.Volatility).
		Float64("sharpe", result.SharpeRatio).
		Float64("confidence", result.Confidence).
		Msg("Portfolio optimized")
	return result, nil
}

type performance struct {
	expectedReturn float64
	volatility     float64
	sharpe         float64
}

// optimizeStatistical runs the statistical backend and reconstructs the
// realized performance of the final weight vector. ok is false when the data
// is degenerate or the backend fails.
func (s *Service) optimizeStatistical(
	symbols []string,
	series map[string]domain.AssetSeries,
	profile domain.RiskProfile,
	overrideReturns map[string]float64,
) (domain.Allocation, performance, bool) {
	if s.backend == nil {
		return nil, performance{}, false
	}

	estimator := NewEstimator(s.lookbackPeriods)
	mu, err := estimator.ExpectedReturns(symbols, series, overrideReturns)
	if err != nil {
		s.log.Warn().Err(err).Msg("Expected-return estimation failed")
		return nil, performance{}, false
	}
	cov, err := estimator.Covariance(symbols, series)
	if err != nil {
		s.log.Warn().Err(err).Msg("Covariance estimation failed")
		return nil, performance{}, false
	}

	weights, err := s.backend.Optimize(Request{
		Symbols:         symbols,
		ExpectedReturns: mu,
		Covariance:      cov,
		Profile:         profile,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("Optimizer backend failed")
		return nil, performance{}, false
	}

	// Reconstruct performance of the final (possibly blended) weights,
	// not of the unblended sub-solutions.
	var expectedReturn, variance float64
	for i, si := range symbols {
		expectedReturn += weights[si] * mu[si]
		for j, sj := range symbols {
			variance += weights[si] * weights[sj] * cov[i][j]
		}
	}
	volatility := math.Sqrt(math.Max(variance, 0))

	perf := performance{
		expectedReturn: expectedReturn,
		volatility:     volatility,
		sharpe:         formulas.SharpeRatio(expectedReturn, volatility, s.riskFreeRate),
	}
	if !formulas.IsFinite(perf.expectedReturn) || !formulas.IsFinite(perf.volatility) || !formulas.IsFinite(perf.sharpe) {
		s.log.Warn().Msg("Optimizer produced non-finite performance")
		return nil, performance{}, false
	}
	return weights, perf, true
}

// fallbackResult serves the static profile tables with placeholder
// performance constants.
func (s *Service) fallbackResult(current domain.Allocation, profile domain.RiskProfile, series map[string]domain.AssetSeries) *domain.OptimizationResult {
	weights, err := s.fallback.Optimize(Request{
		Symbols: current.Symbols(),
		Profile: profile,
	})
	if err != nil {
		return s.equalWeightResult(current)
	}

	return &domain.OptimizationResult{
		Allocation:     weights,
		ExpectedReturn: FallbackExpectedReturn,
		Volatility:     FallbackVolatility,
		SharpeRatio:    FallbackSharpeRatio,
		Trades:         s.planner.Plan(current, weights),
		Confidence:     s.scorer.Score(weights, series),
	}
}

// equalWeightResult is the last-resort recommendation when everything else
// has failed.
func (s *Service) equalWeightResult(current domain.Allocation) *domain.OptimizationResult {
	symbols := current.Symbols()
	weights := make(domain.Allocation, len(symbols))
	equal := 1.0 / float64(len(symbols))
	for _, symbol := range symbols {
		weights[symbol] = equal
	}

	return &domain.OptimizationResult{
		Allocation:     weights,
		ExpectedReturn: FallbackExpectedReturn,
		Volatility:     FallbackVolatility,
		SharpeRatio:    FallbackSharpeRatio,
		Trades:         s.planner.Plan(current, weights),
		Confidence:     scoring.NeutralConfidence,
	}
}

// singleAssetResult returns the trivial full-weight allocation, with
// performance computed from history when available.
func (s *Service) singleAssetResult(ctx context.Context, symbol string, current domain.Allocation) *domain.OptimizationResult {
	weights := domain.Allocation{symbol: 1.0}
	series := s.series.GetSeries(ctx, []string{symbol}, domain.Period1Year)

	expectedReturn := FallbackExpectedReturn
	volatility := FallbackVolatility
	if asset, ok := series[symbol]; ok && asset.Len() >= 2 {
		dailyReturns := formulas.CalculateReturns(asset.Prices())
		annualReturn := formulas.AnnualizedMeanReturn(dailyReturns)
		annualVol := formulas.AnnualizedVolatility(dailyReturns)
		if formulas.IsFinite(annualReturn) && formulas.IsFinite(annualVol) {
			expectedReturn = annualReturn
			volatility = annualVol
		}
	}

	return &domain.OptimizationResult{
		Allocation:     weights,
		ExpectedReturn: expectedReturn,
		Volatility:     volatility,
		SharpeRatio:    formulas.SharpeRatio(expectedReturn, volatility, s.riskFreeRate),
		Trades:         s.planner.Plan(current, weights),
		Confidence:     s.scorer.Score(weights, series),
	}
}
