package insights

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
)

// maxReportInsights caps the market report size.
const maxReportInsights = 10

// SeriesSource provides aligned price history for a set of symbols.
type SeriesSource interface {
	GetSeries(ctx context.Context, symbols []string, period domain.Period) map[string]domain.AssetSeries
}

// Service assembles market-wide insight reports.
type Service struct {
	series    SeriesSource
	generator *Generator
	log       zerolog.Logger
}

func NewService(series SeriesSource, generator *Generator, log zerolog.Logger) *Service {
	return &Service{
		series:    series,
		generator: generator,
		log:       log.With().Str("service", "insights").Logger(),
	}
}

// MarketReport generates insights for the given assets, falling back to the
// core roster when none are named. Per-asset insights require 3 months of
// history; missing data degrades to the general insights alone.
func (s *Service) MarketReport(ctx context.Context, assets []string) []domain.Insight {
	if len(assets) == 0 {
		assets = domain.CoreAssets
	}

	var out []domain.Insight

	frame := s.series.GetSeries(ctx, assets, domain.Period3Months)
	for _, asset := range assets {
		series, ok := frame[asset]
		if !ok {
			continue
		}
		out = append(out, s.generator.Generate(asset, series)...)
	}

	out = append(out, GeneralInsights()...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	if len(out) > maxReportInsights {
		out = out[:maxReportInsights]
	}

	s.log.Debug().Int("assets", len(assets)).Int("insights", len(out)).Msg("market report generated")
	return out
}
