package insights

import "github.com/suyash242004/decentralfund-dao/internal/domain"

// GeneralInsights returns the fixed, asset-independent market observations.
// They are unconditional and not derived from price data.
func GeneralInsights() []domain.Insight {
	return []domain.Insight{
		{
			Title:          "Diversification Benefits",
			Description:    "Current market conditions favor diversified portfolios across asset classes.",
			Confidence:     0.70,
			Impact:         domain.ImpactPositive,
			AffectedAssets: []string{"SPY", "BTC", "GLD"},
			Timeframe:      "medium-term",
		},
		{
			Title:          "DeFi Growth Opportunity",
			Description:    "Decentralized finance protocols showing strong fundamentals and growing adoption.",
			Confidence:     0.60,
			Impact:         domain.ImpactPositive,
			AffectedAssets: []string{"ETH", "BTC"},
			Timeframe:      "long-term",
		},
		{
			Title:          "Interest Rate Sensitivity",
			Description:    "Bond prices may be sensitive to interest rate changes. Monitor Fed policy.",
			Confidence:     0.75,
			Impact:         domain.ImpactNeutral,
			AffectedAssets: []string{"TLT", "BND"},
			Timeframe:      "medium-term",
		},
	}
}
