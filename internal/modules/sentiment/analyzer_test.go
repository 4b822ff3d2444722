package sentiment

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
)

func TestFinancialScorer_NoKeywordsUniformSplit(t *testing.T) {
	scorer := NewFinancialScorer()
	bullish, bearish, uncertain := scorer.Proportions("the quorum met on tuesday")
	assert.InDelta(t, 0.33, bullish, 1e-9)
	assert.InDelta(t, 0.33, bearish, 1e-9)
	assert.InDelta(t, 0.34, uncertain, 1e-9)
}

func TestFinancialScorer_Proportions(t *testing.T) {
	scorer := NewFinancialScorer()
	bullish, bearish, uncertain := scorer.Proportions("Strong rally ahead, buy the surge before the correction")
	// 4 bullish hits (strong, rally, buy, surge), 1 bearish (correction).
	assert.InDelta(t, 0.8, bullish, 1e-9)
	assert.InDelta(t, 0.2, bearish, 1e-9)
	assert.InDelta(t, 0.0, uncertain, 1e-9)
}

func TestFinancialScorer_CaseInsensitiveSubstring(t *testing.T) {
	scorer := NewFinancialScorer()
	bullish, _, _ := scorer.Proportions("BUYING opportunity with GROWTH potential")
	assert.InDelta(t, 1.0, bullish, 1e-9)
}

func TestPolarityScorer(t *testing.T) {
	scorer := NewPolarityScorer()
	assert.Greater(t, scorer.Score("this is a great and promising proposal"), 0.0)
	assert.Less(t, scorer.Score("a terrible, risky idea"), 0.0)
	assert.Zero(t, scorer.Score("the committee convened at noon"))
}

func TestPolarityScorer_Negation(t *testing.T) {
	scorer := NewPolarityScorer()
	plain := scorer.Score("this proposal is good")
	negated := scorer.Score("this proposal is not good")
	assert.Greater(t, plain, 0.0)
	assert.Less(t, negated, 0.0)
}

func TestValenceScorer_Bounded(t *testing.T) {
	scorer := NewValenceScorer()
	score := scorer.Score("great great great amazing excellent best win success")
	assert.Greater(t, score, 0.5)
	assert.LessOrEqual(t, score, 1.0)

	score = scorer.Score("terrible disaster, the worst crisis and total collapse")
	assert.Less(t, score, -0.5)
	assert.GreaterOrEqual(t, score, -1.0)

	assert.Zero(t, scorer.Score("the meeting was rescheduled"))
}

func TestValenceScorer_Boosters(t *testing.T) {
	scorer := NewValenceScorer()
	assert.Greater(t, scorer.Score("very good"), scorer.Score("good"))
	assert.Less(t, scorer.Score("somewhat good"), scorer.Score("good"))
}

func TestAnalyze_PositiveText(t *testing.T) {
	analyzer := NewDefaultAnalyzer(zerolog.Nop())
	result := analyzer.Analyze("Great growth, strong profit and an impressive rally", "")

	assert.Equal(t, domain.SentimentPositive, result.Sentiment)
	assert.Greater(t, result.CompoundScore, 0.1)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
	assert.Contains(t, result.Details, "polarity")
	assert.Contains(t, result.Details, "compound")
	assert.Contains(t, result.Details, "bullish")
}

func TestAnalyze_NegativeText(t *testing.T) {
	analyzer := NewDefaultAnalyzer(zerolog.Nop())
	result := analyzer.Analyze("Terrible crash, panic selling, fear of total loss", "")
	assert.Equal(t, domain.SentimentNegative, result.Sentiment)
	assert.Less(t, result.CompoundScore, -0.1)
}

func TestAnalyze_NeutralText(t *testing.T) {
	analyzer := NewDefaultAnalyzer(zerolog.Nop())
	result := analyzer.Analyze("The treasury report is published every quarter", "")
	assert.Equal(t, domain.SentimentNeutral, result.Sentiment)
	assert.InDelta(t, 0.0, result.CompoundScore, 0.1)
}

func TestAnalyze_MissingScorersOmittedFromMean(t *testing.T) {
	// Only the financial scorer is available. A no-keyword text gives the
	// uniform split, so the score is exactly bullish minus bearish of that
	// split and the confidence is its magnitude.
	analyzer := NewAnalyzer(nil, nil, NewFinancialScorer(), zerolog.Nop())
	result := analyzer.Analyze("nothing relevant here", "")

	require.Len(t, result.Details, 3)
	assert.InDelta(t, 0.0, result.CompoundScore, 1e-9)
	assert.InDelta(t, 0.0, result.Confidence, 1e-9)
	assert.Equal(t, domain.SentimentNeutral, result.Sentiment)
}

func TestAnalyze_ConfidenceAgreement(t *testing.T) {
	analyzer := NewDefaultAnalyzer(zerolog.Nop())

	// All three scorers strongly agree on clearly bullish text.
	agree := analyzer.Analyze("great rally, strong growth, impressive surge, buy", "")
	// Mixed signals pull the scores apart.
	disagree := analyzer.Analyze("great rally but a terrible crash and panic", "")

	assert.Greater(t, agree.Confidence, disagree.Confidence)
}
