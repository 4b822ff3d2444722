package governance

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
)

// stubAnalyzer returns a canned sentiment result.
type stubAnalyzer struct {
	result domain.SentimentResult
}

func (s *stubAnalyzer) Analyze(_, _ string) domain.SentimentResult { return s.result }

func votes(passed ...bool) []Vote {
	out := make([]Vote, len(passed))
	for i, p := range passed {
		out[i] = Vote{Passed: p}
	}
	return out
}

func TestPredict_ConfidentPositivePasses(t *testing.T) {
	p := NewPredictor(&stubAnalyzer{result: domain.SentimentResult{
		Sentiment:  domain.SentimentPositive,
		Confidence: 0.85,
	}}, zerolog.Nop())

	prediction := p.Predict("fund the grants program", nil)
	assert.Equal(t, OutcomePass, prediction.PredictedOutcome)
	assert.InDelta(t, 0.75, prediction.Confidence, 1e-9)
	assert.InDelta(t, 0.5, prediction.HistoricalContext.RecentPassRate, 1e-9)
	assert.Zero(t, prediction.HistoricalContext.SimilarProposals)
}

func TestPredict_ConfidentNegativeRejects(t *testing.T) {
	p := NewPredictor(&stubAnalyzer{result: domain.SentimentResult{
		Sentiment:  domain.SentimentNegative,
		Confidence: 0.9,
	}}, zerolog.Nop())

	prediction := p.Predict("drain the treasury", nil)
	assert.Equal(t, OutcomeReject, prediction.PredictedOutcome)
	assert.InDelta(t, 0.75, prediction.Confidence, 1e-9)
}

func TestPredict_WeakSentimentUncertain(t *testing.T) {
	p := NewPredictor(&stubAnalyzer{result: domain.SentimentResult{
		Sentiment:  domain.SentimentPositive,
		Confidence: 0.4,
	}}, zerolog.Nop())

	prediction := p.Predict("adjust the fee schedule", nil)
	assert.Equal(t, OutcomeUncertain, prediction.PredictedOutcome)
	assert.InDelta(t, 0.50, prediction.Confidence, 1e-9)
}

func TestPredict_SupportiveCommunityBoostsConfidence(t *testing.T) {
	p := NewPredictor(&stubAnalyzer{result: domain.SentimentResult{
		Sentiment:  domain.SentimentPositive,
		Confidence: 0.85,
	}}, zerolog.Nop())

	history := votes(true, true, true, true, false) // pass rate 0.8
	prediction := p.Predict("fund the grants program", history)
	assert.InDelta(t, 0.75*1.1, prediction.Confidence, 1e-9)
	assert.InDelta(t, 0.8, prediction.HistoricalContext.RecentPassRate, 1e-9)
	assert.Equal(t, 5, prediction.HistoricalContext.SimilarProposals)
}

func TestPredict_SkepticalCommunityAlsoBoosts(t *testing.T) {
	p := NewPredictor(&stubAnalyzer{result: domain.SentimentResult{
		Sentiment:  domain.SentimentNegative,
		Confidence: 0.85,
	}}, zerolog.Nop())

	history := votes(false, false, false, false, true) // pass rate 0.2
	prediction := p.Predict("drain the treasury", history)
	assert.InDelta(t, 0.75*1.1, prediction.Confidence, 1e-9)
}

func TestPredict_ConfidenceCapped(t *testing.T) {
	p := NewPredictor(&stubAnalyzer{result: domain.SentimentResult{
		Sentiment:  domain.SentimentPositive,
		Confidence: 0.95,
	}}, zerolog.Nop())

	// 0.75 * 1.1 = 0.825; cap only binds when the boosted value exceeds it,
	// so force it with an already-high pass rate and check the ceiling.
	history := votes(true, true, true, true, true, true, true, true, true, true, true, true)
	prediction := p.Predict("obvious winner", history)
	assert.LessOrEqual(t, prediction.Confidence, 0.95)
	// only the last ten votes count
	assert.InDelta(t, 1.0, prediction.HistoricalContext.RecentPassRate, 1e-9)
	assert.Equal(t, 12, prediction.HistoricalContext.SimilarProposals)
}

func TestPredict_MixedHistoryNoBoost(t *testing.T) {
	p := NewPredictor(&stubAnalyzer{result: domain.SentimentResult{
		Sentiment:  domain.SentimentPositive,
		Confidence: 0.85,
	}}, zerolog.Nop())

	history := votes(true, false, true, false) // pass rate 0.5
	prediction := p.Predict("fund the grants program", history)
	assert.InDelta(t, 0.75, prediction.Confidence, 1e-9)
}
