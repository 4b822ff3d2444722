package optimization

import (
	"context"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
)

// Request carries the inputs a backend needs to compute target weights.
// Symbols fixes the row/column order of Covariance. ExpectedReturns and
// Covariance may be nil for backends that do not use statistics.
type Request struct {
	Symbols         []string
	ExpectedReturns map[string]float64
	Covariance      [][]float64
	Profile         domain.RiskProfile
}

// Backend computes target weights for a risk profile. The statistical
// optimizer and the static table fallback are interchangeable
// implementations selected at construction time.
type Backend interface {
	Optimize(req Request) (domain.Allocation, error)
}

// SeriesSource supplies aligned price series. Implemented by the price cache.
type SeriesSource interface {
	GetSeries(ctx context.Context, symbols []string, period domain.Period) map[string]domain.AssetSeries
}

// TradePlanner diffs current vs target weights into trades.
// Implemented by the rebalancing planner.
type TradePlanner interface {
	Plan(current, target domain.Allocation) []domain.RebalancingTrade
}

// ConfidenceScorer rates how robust a target allocation looks historically.
type ConfidenceScorer interface {
	Score(weights domain.Allocation, series map[string]domain.AssetSeries) float64
}
