package scheduler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
)

// SeriesSource provides aligned price history for a set of symbols.
type SeriesSource interface {
	GetSeries(ctx context.Context, symbols []string, period domain.Period) map[string]domain.AssetSeries
}

// CacheWarmer keeps the price cache hot for the symbol sets interactive
// requests actually read. The cache keys on the full symbol set, so each
// roster must match a request-time set exactly: the core assets cover the
// default market report, the supported roster covers full-portfolio
// optimizations and keeps the history store fresh for every symbol.
type CacheWarmer struct {
	series  SeriesSource
	rosters [][]string
	log     zerolog.Logger
}

func NewCacheWarmer(series SeriesSource, rosters [][]string, log zerolog.Logger) *CacheWarmer {
	if len(rosters) == 0 {
		rosters = [][]string{domain.CoreAssets, domain.SupportedSymbols()}
	}
	return &CacheWarmer{
		series:  series,
		rosters: rosters,
		log:     log.With().Str("job", "cache_warmer").Logger(),
	}
}

func (w *CacheWarmer) Name() string { return "cache_warmer" }

// Run refreshes every roster for both lookback windows used by the
// analytics services.
func (w *CacheWarmer) Run(ctx context.Context) error {
	for _, roster := range w.rosters {
		for _, period := range []domain.Period{domain.Period1Year, domain.Period3Months} {
			frame := w.series.GetSeries(ctx, roster, period)
			if len(frame) == 0 {
				return fmt.Errorf("no price data for period %s", period)
			}
			w.log.Debug().
				Str("period", string(period)).
				Int("symbols", len(frame)).
				Msg("cache warmed")
		}
	}
	return nil
}
