package optimization

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
	"github.com/suyash242004/decentralfund-dao/internal/modules/rebalancing"
	"github.com/suyash242004/decentralfund-dao/internal/modules/scoring"
)

// fakeSeriesSource serves a fixed frame regardless of period.
type fakeSeriesSource struct {
	frame map[string]domain.AssetSeries
}

func (f *fakeSeriesSource) GetSeries(_ context.Context, symbols []string, _ domain.Period) map[string]domain.AssetSeries {
	if f.frame == nil {
		return map[string]domain.AssetSeries{}
	}
	result := make(map[string]domain.AssetSeries)
	for _, s := range symbols {
		if series, ok := f.frame[s]; ok {
			result[s] = series
		}
	}
	if len(result) < len(symbols) {
		return map[string]domain.AssetSeries{}
	}
	return result
}

func trendingSeries(symbol string, days int, base, drift, wobble float64) domain.AssetSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]domain.PricePoint, days)
	for i := range points {
		points[i] = domain.PricePoint{
			Time:  start.AddDate(0, 0, i),
			Price: base + drift*float64(i) + wobble*math.Sin(float64(i)/3),
		}
	}
	return domain.AssetSeries{Symbol: symbol, Points: points}
}

func newService(source SeriesSource) *Service {
	log := zerolog.Nop()
	return NewService(
		source,
		NewMVBackend(0.02),
		NewStaticBackend(),
		rebalancing.NewPlanner(rebalancing.DefaultThreshold, log),
		scoring.NewConfidenceScorer(0.02, 60, log),
		0.02,
		252,
		log,
	)
}

func TestOptimize_InvalidInput(t *testing.T) {
	svc := newService(&fakeSeriesSource{})

	_, err := svc.Optimize(context.Background(), domain.Allocation{}, domain.RiskModerate, 12, nil)
	assert.Error(t, err, "empty allocation")

	_, err = svc.Optimize(context.Background(), domain.Allocation{"SPY": 1}, domain.RiskProfile("extreme"), 12, nil)
	assert.Error(t, err, "unknown profile")

	_, err = svc.Optimize(context.Background(), domain.Allocation{"SPY": -0.2}, domain.RiskModerate, 12, nil)
	assert.Error(t, err, "negative weight")

	_, err = svc.Optimize(context.Background(), domain.Allocation{"SPY": 1}, domain.RiskModerate, 12,
		map[string]float64{"SPY": math.NaN()})
	assert.Error(t, err, "non-finite override")

	_, err = svc.Optimize(context.Background(), domain.Allocation{"SPY": 1}, domain.RiskModerate, 12,
		map[string]float64{"GLD": 0.08})
	assert.Error(t, err, "override for unknown asset")
}

func TestOptimize_WeightsSumToOne(t *testing.T) {
	source := &fakeSeriesSource{frame: map[string]domain.AssetSeries{
		"SPY": trendingSeries("SPY", 252, 100, 0.10, 1.5),
		"GLD": trendingSeries("GLD", 252, 180, 0.03, 0.8),
		"TLT": trendingSeries("TLT", 252, 90, -0.01, 0.5),
	}}
	svc := newService(source)

	current := domain.Allocation{"SPY": 0.5, "GLD": 0.3, "TLT": 0.2}
	for _, profile := range []domain.RiskProfile{domain.RiskConservative, domain.RiskModerate, domain.RiskAggressive} {
		result, err := svc.Optimize(context.Background(), current, profile, 12, nil)
		require.NoError(t, err)

		sum := 0.0
		for _, w := range result.Allocation {
			assert.GreaterOrEqual(t, w, 0.0)
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
		assert.GreaterOrEqual(t, result.Volatility, 0.0)
		assert.GreaterOrEqual(t, result.Confidence, 0.05)
		assert.LessOrEqual(t, result.Confidence, 0.95)
	}
}

func TestOptimize_NoDataFallsBackToStaticTable(t *testing.T) {
	svc := newService(&fakeSeriesSource{})

	current := domain.Allocation{"BTC": 0.5, "SPY": 0.5}
	result, err := svc.Optimize(context.Background(), current, domain.RiskConservative, 12, nil)
	require.NoError(t, err)

	// Conservative table restricted to {BTC, SPY}, renormalized.
	assert.InDelta(t, 0.05/0.35, result.Allocation["BTC"], 1e-9)
	assert.InDelta(t, 0.30/0.35, result.Allocation["SPY"], 1e-9)

	assert.InDelta(t, FallbackExpectedReturn, result.ExpectedReturn, 1e-9)
	assert.InDelta(t, FallbackVolatility, result.Volatility, 1e-9)
	assert.InDelta(t, FallbackSharpeRatio, result.SharpeRatio, 1e-9)
	assert.InDelta(t, scoring.NeutralConfidence, result.Confidence, 1e-9)
}

func TestOptimize_ZeroVarianceSeriesFallsBack(t *testing.T) {
	source := &fakeSeriesSource{frame: map[string]domain.AssetSeries{
		"SPY": trendingSeries("SPY", 252, 100, 0, 0), // constant prices
		"GLD": trendingSeries("GLD", 252, 180, 0.03, 0.8),
	}}
	svc := newService(source)

	result, err := svc.Optimize(context.Background(), domain.Allocation{"SPY": 0.5, "GLD": 0.5}, domain.RiskModerate, 12, nil)
	require.NoError(t, err)

	// Degenerate statistics: placeholder metrics from the fallback path.
	assert.InDelta(t, FallbackExpectedReturn, result.ExpectedReturn, 1e-9)
	assert.InDelta(t, FallbackVolatility, result.Volatility, 1e-9)
}

func TestOptimize_SingleAsset(t *testing.T) {
	source := &fakeSeriesSource{frame: map[string]domain.AssetSeries{
		"SPY": trendingSeries("SPY", 252, 100, 0.10, 1.5),
	}}
	svc := newService(source)

	result, err := svc.Optimize(context.Background(), domain.Allocation{"SPY": 1}, domain.RiskAggressive, 12, nil)
	require.NoError(t, err)
	require.Len(t, result.Allocation, 1)
	assert.InDelta(t, 1.0, result.Allocation["SPY"], 1e-9)
	assert.Empty(t, result.Trades)
}

func TestOptimize_OverrideReturnsUsedVerbatim(t *testing.T) {
	source := &fakeSeriesSource{frame: map[string]domain.AssetSeries{
		"SPY": trendingSeries("SPY", 252, 100, 0.05, 1.0),
		"GLD": trendingSeries("GLD", 252, 180, 0.05, 1.0),
	}}
	svc := newService(source)
	current := domain.Allocation{"SPY": 0.5, "GLD": 0.5}

	// A huge override return on GLD should push the aggressive portfolio
	// toward it.
	override := map[string]float64{"SPY": 0.01, "GLD": 0.50}
	result, err := svc.Optimize(context.Background(), current, domain.RiskAggressive, 12, override)
	require.NoError(t, err)
	assert.Greater(t, result.Allocation["GLD"], result.Allocation["SPY"])
}

func TestOptimize_TradesOrderedAndMaterial(t *testing.T) {
	source := &fakeSeriesSource{frame: map[string]domain.AssetSeries{
		"SPY": trendingSeries("SPY", 252, 100, 0.10, 1.5),
		"GLD": trendingSeries("GLD", 252, 180, 0.03, 0.8),
		"TLT": trendingSeries("TLT", 252, 90, -0.01, 0.5),
	}}
	svc := newService(source)

	current := domain.Allocation{"SPY": 0.90, "GLD": 0.05, "TLT": 0.05}
	result, err := svc.Optimize(context.Background(), current, domain.RiskConservative, 12, nil)
	require.NoError(t, err)

	for i, trade := range result.Trades {
		assert.Greater(t, trade.WeightChange, 0.01)
		if i > 0 {
			assert.GreaterOrEqual(t, result.Trades[i-1].WeightChange, trade.WeightChange)
		}
	}
}
