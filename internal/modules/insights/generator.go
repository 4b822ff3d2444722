// Package insights derives technical-analysis observations from price
// history. Per-asset insights are computed from moving averages, RSI and
// volatility; a small fixed set of general market insights is appended
// unconditionally.
package insights

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
	"github.com/suyash242004/decentralfund-dao/pkg/formulas"
)

const (
	shortMAWindow = 20
	longMAWindow  = 50
	rsiLength     = 14

	overboughtRSI     = 70.0
	oversoldRSI       = 30.0
	highVolatility    = 0.30
	uptrendConfidence = 0.75
	rsiConfidence     = 0.65
	volConfidence     = 0.80
)

// Generator emits per-asset technical insights.
type Generator struct {
	log zerolog.Logger
}

func NewGenerator(log zerolog.Logger) *Generator {
	return &Generator{log: log.With().Str("component", "insights").Logger()}
}

// Generate analyzes one asset's price series. Insights are independent of
// each other except that overbought and oversold are mutually exclusive.
// Degenerate series produce no insights rather than errors.
func (g *Generator) Generate(asset string, series domain.AssetSeries) []domain.Insight {
	prices := series.Prices()
	if len(prices) == 0 {
		return nil
	}
	currentPrice := prices[len(prices)-1]

	var out []domain.Insight

	maShort := formulas.CalculateSMA(prices, shortMAWindow)
	maLong := formulas.CalculateSMA(prices, longMAWindow)
	if maShort != nil && maLong != nil && currentPrice > *maShort && *maShort > *maLong {
		out = append(out, domain.Insight{
			Title:          fmt.Sprintf("%s in Strong Uptrend", asset),
			Description:    "Price above both short and long-term moving averages. Current momentum is bullish.",
			Confidence:     uptrendConfidence,
			Impact:         domain.ImpactPositive,
			AffectedAssets: []string{asset},
			Timeframe:      "short-term",
		})
	}

	if rsi := formulas.CalculateRSI(prices, rsiLength); rsi != nil {
		switch {
		case *rsi > overboughtRSI:
			out = append(out, domain.Insight{
				Title:          fmt.Sprintf("%s Potentially Overbought", asset),
				Description:    fmt.Sprintf("RSI at %.1f suggests asset may be overbought. Consider taking profits.", *rsi),
				Confidence:     rsiConfidence,
				Impact:         domain.ImpactNegative,
				AffectedAssets: []string{asset},
				Timeframe:      "short-term",
			})
		case *rsi < oversoldRSI:
			out = append(out, domain.Insight{
				Title:          fmt.Sprintf("%s Potentially Oversold", asset),
				Description:    fmt.Sprintf("RSI at %.1f suggests asset may be oversold. Could be buying opportunity.", *rsi),
				Confidence:     rsiConfidence,
				Impact:         domain.ImpactPositive,
				AffectedAssets: []string{asset},
				Timeframe:      "short-term",
			})
		}
	}

	returns := formulas.CalculateReturns(prices)
	if len(returns) >= 2 {
		vol := formulas.AnnualizedVolatility(returns)
		if formulas.IsFinite(vol) && vol > highVolatility {
			out = append(out, domain.Insight{
				Title:          fmt.Sprintf("%s High Volatility Alert", asset),
				Description:    fmt.Sprintf("Asset showing %.1f%% annual volatility. Exercise caution.", vol*100),
				Confidence:     volConfidence,
				Impact:         domain.ImpactNeutral,
				AffectedAssets: []string{asset},
				Timeframe:      "short-term",
			})
		}
	}

	return out
}
