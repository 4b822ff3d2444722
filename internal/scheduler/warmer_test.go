package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
	"github.com/suyash242004/decentralfund-dao/internal/modules/prices"
)

type recordingSource struct {
	calls   [][]string
	periods []domain.Period
	empty   bool
}

func (r *recordingSource) GetSeries(_ context.Context, symbols []string, period domain.Period) map[string]domain.AssetSeries {
	r.calls = append(r.calls, symbols)
	r.periods = append(r.periods, period)
	if r.empty {
		return map[string]domain.AssetSeries{}
	}
	frame := make(map[string]domain.AssetSeries)
	for _, s := range symbols {
		frame[s] = domain.AssetSeries{Symbol: s, Points: []domain.PricePoint{
			{Time: time.Now(), Price: 100},
		}}
	}
	return frame
}

type countingProvider struct {
	fetches int
}

func (p *countingProvider) FetchAdjustedClose(_ context.Context, symbols []string, _ domain.Period) (map[string]domain.AssetSeries, error) {
	p.fetches++
	out := make(map[string]domain.AssetSeries)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range symbols {
		points := make([]domain.PricePoint, 5)
		for i := range points {
			points[i] = domain.PricePoint{Time: base.AddDate(0, 0, i), Price: 100 + float64(i)}
		}
		out[s] = domain.AssetSeries{Symbol: s, Points: points}
	}
	return out, nil
}

func TestCacheWarmer_WarmsBothPeriods(t *testing.T) {
	source := &recordingSource{}
	warmer := NewCacheWarmer(source, [][]string{{"BTC-USD", "SPY"}}, zerolog.Nop())

	require.NoError(t, warmer.Run(context.Background()))
	require.Len(t, source.periods, 2)
	assert.Contains(t, source.periods, domain.Period1Year)
	assert.Contains(t, source.periods, domain.Period3Months)
	assert.Equal(t, []string{"BTC-USD", "SPY"}, source.calls[0])
}

func TestCacheWarmer_DefaultRosters(t *testing.T) {
	source := &recordingSource{}
	warmer := NewCacheWarmer(source, nil, zerolog.Nop())

	require.NoError(t, warmer.Run(context.Background()))
	require.Len(t, source.calls, 4)
	assert.Equal(t, domain.CoreAssets, source.calls[0])
	assert.Equal(t, domain.SupportedSymbols(), source.calls[2])
}

// A warmed cache must serve the default market report roster without
// another provider round trip. The cache keys on the exact symbol set, so
// this breaks whenever the warmer's rosters drift from the request paths.
func TestCacheWarmer_DefaultRequestHitsWarmedCache(t *testing.T) {
	provider := &countingProvider{}
	cache := prices.New(provider, nil, time.Hour, zerolog.Nop())
	warmer := NewCacheWarmer(cache, nil, zerolog.Nop())

	require.NoError(t, warmer.Run(context.Background()))
	warmFetches := provider.fetches
	require.Equal(t, 4, warmFetches)

	frame := cache.GetSeries(context.Background(), domain.CoreAssets, domain.Period3Months)
	require.NotEmpty(t, frame)
	assert.Equal(t, warmFetches, provider.fetches, "core asset report should be a cache hit")

	frame = cache.GetSeries(context.Background(), domain.SupportedSymbols(), domain.Period1Year)
	require.NotEmpty(t, frame)
	assert.Equal(t, warmFetches, provider.fetches, "full roster optimization should be a cache hit")
}

func TestCacheWarmer_EmptyFrameFails(t *testing.T) {
	source := &recordingSource{empty: true}
	warmer := NewCacheWarmer(source, [][]string{{"BTC-USD"}}, zerolog.Nop())
	assert.Error(t, warmer.Run(context.Background()))
}

func TestScheduler_RunNow(t *testing.T) {
	source := &recordingSource{}
	warmer := NewCacheWarmer(source, [][]string{{"SPY"}}, zerolog.Nop())

	s := New(zerolog.Nop())
	require.NoError(t, s.RunNow(warmer))
	assert.NotEmpty(t, source.calls)
}

func TestScheduler_RejectsBadSchedule(t *testing.T) {
	s := New(zerolog.Nop())
	warmer := NewCacheWarmer(&recordingSource{}, [][]string{{"SPY"}}, zerolog.Nop())
	assert.Error(t, s.AddJob("not a schedule", warmer))
	assert.NoError(t, s.AddJob("@hourly", warmer))
}
