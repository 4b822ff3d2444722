package sentiment

import "strings"

// Keyword lists for the domain scorer. Matching is case-insensitive
// substring containment, so "buying" counts toward "buy".
var (
	bullishKeywords = []string{
		"bullish", "buy", "growth", "profit", "gain", "increase", "positive",
		"strong", "outperform", "rally", "boom", "surge", "moon", "hodl",
	}

	bearishKeywords = []string{
		"bearish", "sell", "loss", "decline", "decrease", "negative",
		"weak", "crash", "dump", "fear", "panic", "bubble", "correction",
	}

	uncertaintyKeywords = []string{
		"uncertain", "volatile", "risk", "concern", "worry", "doubt",
		"unclear", "mixed", "cautious", "watchful",
	}
)

// FinancialScorer classifies text by counting finance-domain keywords.
type FinancialScorer struct{}

func NewFinancialScorer() *FinancialScorer { return &FinancialScorer{} }

// Proportions returns the normalized bullish/bearish/uncertain split. Texts
// with no keyword hits get the fixed uniform split 0.33/0.33/0.34.
func (s *FinancialScorer) Proportions(text string) (bullish, bearish, uncertain float64) {
	lower := strings.ToLower(text)

	count := func(keywords []string) float64 {
		n := 0.0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				n++
			}
		}
		return n
	}

	bullishHits := count(bullishKeywords)
	bearishHits := count(bearishKeywords)
	uncertainHits := count(uncertaintyKeywords)

	total := bullishHits + bearishHits + uncertainHits
	if total == 0 {
		return 0.33, 0.33, 0.34
	}
	return bullishHits / total, bearishHits / total, uncertainHits / total
}

// Score reports bullish minus bearish proportion.
func (s *FinancialScorer) Score(text string) float64 {
	bullish, bearish, _ := s.Proportions(text)
	return bullish - bearish
}
