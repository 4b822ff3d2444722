// Package reports builds investment reports combining portfolio performance,
// risk assessment, recommendations and a market outlook.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
	"github.com/suyash242004/decentralfund-dao/pkg/formulas"
)

// Allocation percentages above these levels flag concentration risk.
const (
	highConcentrationPct   = 20.0
	mediumConcentrationPct = 10.0
	rebalanceTriggerPct    = 15.0
)

// maxOutlookInsights caps the market outlook section.
const maxOutlookInsights = 3

// PortfolioAsset is one position in the reported portfolio. Allocation is a
// percentage of the portfolio, Return the position's historical return.
type PortfolioAsset struct {
	Symbol     string  `json:"symbol"`
	Allocation float64 `json:"allocation"`
	Return     float64 `json:"return"`
}

// PortfolioData is the caller-supplied portfolio snapshot.
type PortfolioData struct {
	TotalValue    float64          `json:"total_value"`
	TotalInvested float64          `json:"total_invested"`
	Assets        []PortfolioAsset `json:"assets"`
}

// Summary is the headline portfolio numbers.
type Summary struct {
	TotalValue       float64 `json:"total_value"`
	TotalInvested    float64 `json:"total_invested"`
	UnrealizedGains  float64 `json:"unrealized_gains"`
	ReturnPercentage float64 `json:"return_percentage"`
	RiskLevel        string  `json:"risk_level"`
}

// PerformanceAnalysis carries portfolio-level statistics computed from a
// year of price history. Nil when no usable history exists.
type PerformanceAnalysis struct {
	AnnualReturn         float64 `json:"annual_return"`
	AnnualVolatility     float64 `json:"annual_volatility"`
	SharpeRatio          float64 `json:"sharpe_ratio"`
	MaxDrawdown          float64 `json:"max_drawdown"`
	BestPerformingAsset  string  `json:"best_performing_asset"`
	WorstPerformingAsset string  `json:"worst_performing_asset"`
}

// RiskAssessment summarizes diversification and concentration.
type RiskAssessment struct {
	DiversificationScore float64            `json:"diversification_score"`
	ConcentrationRisk    string             `json:"concentration_risk"`
	AssetClassBreakdown  map[string]float64 `json:"asset_class_breakdown"`
	OverallRiskLevel     string             `json:"overall_risk_level"`
	RiskScore            float64            `json:"risk_score"`
}

// Recommendation is one actionable portfolio suggestion.
type Recommendation struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Rationale   string `json:"rationale"`
}

// MarketOutlook carries the most confident current insights.
type MarketOutlook struct {
	KeyInsights      []domain.Insight `json:"key_insights"`
	OverallSentiment string           `json:"overall_sentiment"`
	Confidence       float64          `json:"confidence"`
}

// Report is the full investment report.
type Report struct {
	ID                  string               `json:"id"`
	GeneratedAt         time.Time            `json:"generated_at"`
	Summary             Summary              `json:"summary"`
	PerformanceAnalysis *PerformanceAnalysis `json:"performance_analysis,omitempty"`
	RiskAssessment      RiskAssessment       `json:"risk_assessment"`
	Recommendations     []Recommendation     `json:"recommendations"`
	MarketOutlook       MarketOutlook        `json:"market_outlook"`
}

// SeriesSource provides aligned price history for a set of symbols.
type SeriesSource interface {
	GetSeries(ctx context.Context, symbols []string, period domain.Period) map[string]domain.AssetSeries
}

// InsightProvider supplies market insights for the outlook section.
type InsightProvider interface {
	MarketReport(ctx context.Context, assets []string) []domain.Insight
}

// Service assembles investment reports.
type Service struct {
	series       SeriesSource
	insights     InsightProvider
	riskFreeRate float64
	now          func() time.Time
	log          zerolog.Logger
}

func NewService(series SeriesSource, insights InsightProvider, riskFreeRate float64, log zerolog.Logger) *Service {
	return &Service{
		series:       series,
		insights:     insights,
		riskFreeRate: riskFreeRate,
		now:          time.Now,
		log:          log.With().Str("service", "reports").Logger(),
	}
}

// Generate builds a report for the portfolio snapshot. Missing price history
// drops the performance section; every other section is always present.
func (s *Service) Generate(ctx context.Context, portfolio PortfolioData) Report {
	report := Report{
		ID:              uuid.NewString(),
		GeneratedAt:     s.now().UTC(),
		Summary:         s.summarize(portfolio),
		RiskAssessment:  s.assessRisk(portfolio),
		Recommendations: s.recommend(portfolio),
		MarketOutlook:   s.outlook(ctx),
	}
	report.PerformanceAnalysis = s.analyzePerformance(ctx, portfolio)

	s.log.Info().
		Str("report_id", report.ID).
		Int("assets", len(portfolio.Assets)).
		Msg("investment report generated")
	return report
}

func (s *Service) summarize(portfolio PortfolioData) Summary {
	returnPct := 0.0
	if portfolio.TotalInvested > 0 {
		returnPct = (portfolio.TotalValue - portfolio.TotalInvested) / portfolio.TotalInvested * 100
	}
	return Summary{
		TotalValue:       portfolio.TotalValue,
		TotalInvested:    portfolio.TotalInvested,
		UnrealizedGains:  portfolio.TotalValue - portfolio.TotalInvested,
		ReturnPercentage: returnPct,
		RiskLevel:        "moderate",
	}
}

func (s *Service) analyzePerformance(ctx context.Context, portfolio PortfolioData) *PerformanceAnalysis {
	if len(portfolio.Assets) == 0 {
		return nil
	}

	symbols := make([]string, len(portfolio.Assets))
	weights := make(map[string]float64, len(portfolio.Assets))
	for i, asset := range portfolio.Assets {
		symbols[i] = asset.Symbol
		weights[asset.Symbol] = asset.Allocation / 100
	}

	frame := s.series.GetSeries(ctx, symbols, domain.Period1Year)
	if len(frame) == 0 {
		return nil
	}

	portfolioReturns := weightedReturns(frame, weights)
	if len(portfolioReturns) < 2 {
		return nil
	}

	annualReturn := formulas.AnnualizedMeanReturn(portfolioReturns)
	annualVol := formulas.AnnualizedVolatility(portfolioReturns)
	if !formulas.IsFinite(annualReturn) || !formulas.IsFinite(annualVol) {
		return nil
	}

	best, worst := portfolio.Assets[0], portfolio.Assets[0]
	for _, asset := range portfolio.Assets[1:] {
		if asset.Return > best.Return {
			best = asset
		}
		if asset.Return < worst.Return {
			worst = asset
		}
	}

	return &PerformanceAnalysis{
		AnnualReturn:         annualReturn,
		AnnualVolatility:     annualVol,
		SharpeRatio:          formulas.SharpeRatio(annualReturn, annualVol, s.riskFreeRate),
		MaxDrawdown:          formulas.CalculateMaxDrawdown(portfolioReturns),
		BestPerformingAsset:  best.Symbol,
		WorstPerformingAsset: worst.Symbol,
	}
}

// weightedReturns builds the portfolio daily-return series across the frame.
// Rows are truncated to the shortest series so weights always apply to the
// same trading day.
func weightedReturns(frame map[string]domain.AssetSeries, weights map[string]float64) []float64 {
	perAsset := make(map[string][]float64, len(frame))
	minLen := -1
	for symbol, series := range frame {
		returns := formulas.CalculateReturns(series.Prices())
		if len(returns) == 0 {
			continue
		}
		perAsset[symbol] = returns
		if minLen < 0 || len(returns) < minLen {
			minLen = len(returns)
		}
	}
	if minLen <= 0 {
		return nil
	}

	portfolio := make([]float64, minLen)
	for symbol, returns := range perAsset {
		weight := weights[symbol]
		offset := len(returns) - minLen
		for i := 0; i < minLen; i++ {
			portfolio[i] += weight * returns[offset+i]
		}
	}
	return portfolio
}

func (s *Service) assessRisk(portfolio PortfolioData) RiskAssessment {
	breakdown := make(map[string]float64)
	maxAllocation := 0.0
	for _, asset := range portfolio.Assets {
		breakdown[domain.AssetClass(asset.Symbol)] += asset.Allocation
		if asset.Allocation > maxAllocation {
			maxAllocation = asset.Allocation
		}
	}

	concentration := "Low"
	if maxAllocation > highConcentrationPct {
		concentration = "High"
	} else if maxAllocation > mediumConcentrationPct {
		concentration = "Medium"
	}

	return RiskAssessment{
		DiversificationScore: float64(len(breakdown)) / 10,
		ConcentrationRisk:    concentration,
		AssetClassBreakdown:  breakdown,
		OverallRiskLevel:     "moderate",
		RiskScore:            0.6,
	}
}

func (s *Service) recommend(portfolio PortfolioData) []Recommendation {
	var out []Recommendation

	classes := make(map[string]bool)
	for _, asset := range portfolio.Assets {
		classes[domain.AssetClass(asset.Symbol)] = true
		if asset.Allocation > rebalanceTriggerPct {
			out = append(out, Recommendation{
				Type:        "rebalance",
				Priority:    "medium",
				Description: formatReduceAllocation(asset),
				Rationale:   "Concentration risk management",
			})
		}
	}

	if !classes["fixed_income"] {
		out = append(out, Recommendation{
			Type:        "diversification",
			Priority:    "high",
			Description: "Consider adding bond allocation for stability",
			Rationale:   "Portfolio lacks fixed income diversification",
		})
	}
	if !classes["cryptocurrency"] && len(portfolio.Assets) > 3 {
		out = append(out, Recommendation{
			Type:        "growth",
			Priority:    "low",
			Description: "Consider small cryptocurrency allocation (5-10%)",
			Rationale:   "Potential for portfolio growth and diversification",
		})
	}

	return out
}

func formatReduceAllocation(asset PortfolioAsset) string {
	return fmt.Sprintf("Consider reducing %s allocation (currently %.1f%%)", asset.Symbol, asset.Allocation)
}

func (s *Service) outlook(ctx context.Context) MarketOutlook {
	insights := s.insights.MarketReport(ctx, nil)
	if len(insights) > maxOutlookInsights {
		insights = insights[:maxOutlookInsights]
	}
	return MarketOutlook{
		KeyInsights:      insights,
		OverallSentiment: "bullish",
		Confidence:       0.75,
	}
}
