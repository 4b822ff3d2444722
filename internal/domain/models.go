// Package domain defines the core types shared across the analytics modules.
// It is pure: no infrastructure dependencies, no I/O.
package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// RiskProfile determines which optimization strategy is applied.
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskModerate     RiskProfile = "moderate"
	RiskAggressive   RiskProfile = "aggressive"
)

// ParseRiskProfile validates a risk profile string. Unknown values are a
// request error, never silently defaulted.
func ParseRiskProfile(s string) (RiskProfile, error) {
	switch RiskProfile(s) {
	case RiskConservative, RiskModerate, RiskAggressive:
		return RiskProfile(s), nil
	default:
		return "", fmt.Errorf("unknown risk profile %q", s)
	}
}

// Period is a price-history lookback window understood by the price provider.
type Period string

const (
	Period3Months Period = "3mo"
	Period1Year   Period = "1y"
)

// PricePoint is a single (timestamp, adjusted close) observation.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// AssetSeries is an ordered adjusted-close series for one symbol.
// Timestamps are ascending with no duplicates. Immutable once built;
// a cache entry owns it exclusively until expiry.
type AssetSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Prices returns the raw price values in time order.
func (s AssetSeries) Prices() []float64 {
	prices := make([]float64, len(s.Points))
	for i, p := range s.Points {
		prices[i] = p.Price
	}
	return prices
}

// Len returns the number of observations.
func (s AssetSeries) Len() int { return len(s.Points) }

// Allocation maps asset symbols to portfolio weights. Input allocations need
// not sum to 1; optimizer outputs must sum to 1 within 1e-6.
type Allocation map[string]float64

// Symbols returns the allocation's asset symbols in sorted order.
func (a Allocation) Symbols() []string {
	symbols := make([]string, 0, len(a))
	for symbol := range a {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Validate checks that every weight is finite and non-negative. Leverage and
// short positions are not modeled.
func (a Allocation) Validate() error {
	if len(a) == 0 {
		return fmt.Errorf("allocation is empty")
	}
	for symbol, weight := range a {
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			return fmt.Errorf("weight for %s is not finite", symbol)
		}
		if weight < 0 {
			return fmt.Errorf("weight for %s is negative", symbol)
		}
	}
	return nil
}

// TradeAction is the direction of a rebalancing trade.
type TradeAction string

const (
	ActionBuy  TradeAction = "buy"
	ActionSell TradeAction = "sell"
)

// RebalancingTrade is one buy/sell action closing the gap between current and
// target weights. Computed fresh on every optimization call, never persisted.
type RebalancingTrade struct {
	Symbol        string      `json:"asset"`
	Action        TradeAction `json:"action"`
	WeightChange  float64     `json:"weight_change"`
	CurrentWeight float64     `json:"current_weight"`
	TargetWeight  float64     `json:"target_weight"`
}

// OptimizationResult is the full recommendation returned by the optimizer.
type OptimizationResult struct {
	Allocation     Allocation         `json:"recommended_allocation"`
	ExpectedReturn float64            `json:"expected_return"`
	Volatility     float64            `json:"volatility"`
	SharpeRatio    float64            `json:"sharpe_ratio"`
	Trades         []RebalancingTrade `json:"rebalancing_trades"`
	Confidence     float64            `json:"confidence"`
}

// InsightImpact classifies an insight's expected market effect.
type InsightImpact string

const (
	ImpactPositive InsightImpact = "positive"
	ImpactNegative InsightImpact = "negative"
	ImpactNeutral  InsightImpact = "neutral"
)

// Insight is a short technical-analysis observation about one or more assets.
type Insight struct {
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Confidence     float64       `json:"confidence"`
	Impact         InsightImpact `json:"impact"`
	AffectedAssets []string      `json:"affected_assets"`
	Timeframe      string        `json:"timeframe"`
}

// SentimentLabel is the discrete sentiment classification.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// SentimentResult combines the individual scorer outputs into one verdict.
type SentimentResult struct {
	Sentiment     SentimentLabel     `json:"sentiment"`
	Confidence    float64            `json:"confidence"`
	CompoundScore float64            `json:"compound_score"`
	Details       map[string]float64 `json:"details"`
}
