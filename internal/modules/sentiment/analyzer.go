// Package sentiment scores free-form text with a small ensemble of lexicon
// scorers: a general polarity scorer, an intensity-aware valence scorer and
// a finance-keyword scorer. Scores are combined into one labeled verdict.
package sentiment

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
)

// Label thresholds on the combined compound score.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// Analyzer combines the available sub-scorers. Any scorer may be nil; a nil
// scorer is skipped entirely, never counted as a zero score.
type Analyzer struct {
	polarity  *PolarityScorer
	valence   *ValenceScorer
	financial *FinancialScorer
	log       zerolog.Logger
}

func NewAnalyzer(polarity *PolarityScorer, valence *ValenceScorer, financial *FinancialScorer, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		polarity:  polarity,
		valence:   valence,
		financial: financial,
		log:       log.With().Str("service", "sentiment").Logger(),
	}
}

// NewDefaultAnalyzer wires all three scorers.
func NewDefaultAnalyzer(log zerolog.Logger) *Analyzer {
	return NewAnalyzer(NewPolarityScorer(), NewValenceScorer(), NewFinancialScorer(), log)
}

// Analyze scores the text. The combined score is the arithmetic mean of the
// available sub-scores; label thresholds are +-0.1. Confidence reflects
// agreement between the sub-scores when two or more are available, otherwise
// the magnitude of the single score. topic is an optional caller hint and
// does not influence the score.
func (a *Analyzer) Analyze(text, topic string) domain.SentimentResult {
	var scores []float64
	details := make(map[string]float64)

	if a.polarity != nil {
		score := a.polarity.Score(text)
		scores = append(scores, score)
		details["polarity"] = score
	}
	if a.valence != nil {
		score := a.valence.Score(text)
		scores = append(scores, score)
		details["compound"] = score
	}
	if a.financial != nil {
		bullish, bearish, uncertain := a.financial.Proportions(text)
		details["bullish"] = bullish
		details["bearish"] = bearish
		details["uncertain"] = uncertain
		scores = append(scores, bullish-bearish)
	}

	var combined float64
	if len(scores) > 0 {
		for _, s := range scores {
			combined += s
		}
		combined /= float64(len(scores))
	}

	label := domain.SentimentNeutral
	switch {
	case combined >= positiveThreshold:
		label = domain.SentimentPositive
	case combined <= negativeThreshold:
		label = domain.SentimentNegative
	}

	var confidence float64
	if len(scores) > 1 {
		confidence = clamp(1-populationStdDev(scores), 0, 1)
	} else {
		confidence = math.Abs(combined)
	}

	a.log.Debug().
		Str("sentiment", string(label)).
		Str("topic", topic).
		Float64("confidence", confidence).
		Msg("sentiment analyzed")

	return domain.SentimentResult{
		Sentiment:     label,
		Confidence:    confidence,
		CompoundScore: combined,
		Details:       details,
	}
}

// populationStdDev is the uncorrected standard deviation, matching the
// combination rule's agreement measure.
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
