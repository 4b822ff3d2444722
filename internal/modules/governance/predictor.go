// Package governance predicts proposal voting outcomes from proposal text
// sentiment and recent voting history.
package governance

import (
	"github.com/rs/zerolog"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
)

// Outcome is a predicted proposal result.
type Outcome string

const (
	OutcomePass      Outcome = "pass"
	OutcomeReject    Outcome = "reject"
	OutcomeUncertain Outcome = "uncertain"
)

const (
	// sentiment must be this confident before it decides the outcome
	decisiveSentimentConfidence = 0.7

	decisiveConfidence = 0.75
	neutralConfidence  = 0.50

	// pass rates outside [0.3, 0.7] indicate a predictable community
	supportivePassRate = 0.7
	skepticalPassRate  = 0.3
	consensusBoost     = 1.1
	maxConfidence      = 0.95

	recentVotesWindow = 10
)

// Vote is one historical proposal result.
type Vote struct {
	ProposalID string `json:"proposal_id,omitempty"`
	Passed     bool   `json:"passed"`
}

// Prediction is the predictor's full output.
type Prediction struct {
	PredictedOutcome  Outcome                `json:"predicted_outcome"`
	Confidence        float64                `json:"confidence"`
	SentimentAnalysis domain.SentimentResult `json:"sentiment_analysis"`
	HistoricalContext HistoricalContext      `json:"historical_context"`
}

// HistoricalContext summarizes the voting history the prediction leaned on.
type HistoricalContext struct {
	RecentPassRate   float64 `json:"recent_pass_rate"`
	SimilarProposals int     `json:"similar_proposals"`
}

// SentimentAnalyzer scores free-form text.
type SentimentAnalyzer interface {
	Analyze(text, topic string) domain.SentimentResult
}

// Predictor combines proposal sentiment with community voting patterns.
type Predictor struct {
	sentiment SentimentAnalyzer
	log       zerolog.Logger
}

func NewPredictor(sentiment SentimentAnalyzer, log zerolog.Logger) *Predictor {
	return &Predictor{
		sentiment: sentiment,
		log:       log.With().Str("service", "governance").Logger(),
	}
}

// Predict estimates whether the proposal will pass. Confidently positive
// text predicts pass, confidently negative text predicts reject, anything
// else is uncertain. A strongly supportive or strongly skeptical community
// (recent pass rate outside [0.3, 0.7]) boosts confidence.
func (p *Predictor) Predict(proposalText string, history []Vote) Prediction {
	sentiment := p.sentiment.Analyze(proposalText, "governance proposal")

	outcome := OutcomeUncertain
	confidence := neutralConfidence
	switch {
	case sentiment.Sentiment == domain.SentimentPositive && sentiment.Confidence > decisiveSentimentConfidence:
		outcome = OutcomePass
		confidence = decisiveConfidence
	case sentiment.Sentiment == domain.SentimentNegative && sentiment.Confidence > decisiveSentimentConfidence:
		outcome = OutcomeReject
		confidence = decisiveConfidence
	}

	passRate := recentPassRate(history)
	if passRate > supportivePassRate || passRate < skepticalPassRate {
		confidence *= consensusBoost
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	p.log.Debug().
		Str("outcome", string(outcome)).
		Float64("confidence", confidence).
		Float64("pass_rate", passRate).
		Msg("proposal outcome predicted")

	return Prediction{
		PredictedOutcome:  outcome,
		Confidence:        confidence,
		SentimentAnalysis: sentiment,
		HistoricalContext: HistoricalContext{
			RecentPassRate:   passRate,
			SimilarProposals: len(history),
		},
	}
}

// recentPassRate is the pass fraction over the last ten votes, or 0.5 when
// no history exists.
func recentPassRate(history []Vote) float64 {
	if len(history) == 0 {
		return 0.5
	}
	recent := history
	if len(recent) > recentVotesWindow {
		recent = recent[len(recent)-recentVotesWindow:]
	}
	passed := 0
	for _, vote := range recent {
		if vote.Passed {
			passed++
		}
	}
	return float64(passed) / float64(len(recent))
}
