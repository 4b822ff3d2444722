package sentiment

import "strings"

// polarityLexicon assigns each word a polarity in [-1, 1].
var polarityLexicon = map[string]float64{
	"good":        0.7,
	"great":       0.8,
	"excellent":   1.0,
	"amazing":     0.9,
	"best":        1.0,
	"love":        0.5,
	"happy":       0.8,
	"promising":   0.6,
	"successful":  0.75,
	"innovative":  0.5,
	"healthy":     0.5,
	"solid":       0.4,
	"beneficial":  0.6,
	"impressive":  0.9,
	"optimistic":  0.7,
	"bad":         -0.7,
	"terrible":    -1.0,
	"awful":       -1.0,
	"worst":       -1.0,
	"hate":        -0.8,
	"poor":        -0.4,
	"failing":     -0.6,
	"disastrous":  -0.9,
	"horrible":    -1.0,
	"risky":       -0.5,
	"dangerous":   -0.6,
	"fraudulent":  -0.8,
	"misleading":  -0.5,
	"pessimistic": -0.7,
	"broken":      -0.4,
}

var polarityNegations = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true,
	"nobody": true, "none": true, "cannot": true, "without": true,
}

// PolarityScorer is a general-purpose lexicon polarity scorer. A word
// preceded by a negation contributes its inverted polarity.
type PolarityScorer struct{}

func NewPolarityScorer() *PolarityScorer { return &PolarityScorer{} }

// Score averages the polarity of recognized words, in [-1, 1]. Text with no
// recognized words scores 0.
func (s *PolarityScorer) Score(text string) float64 {
	words := tokenize(text)

	var sum float64
	var hits int
	for i, word := range words {
		polarity, ok := polarityLexicon[word]
		if !ok {
			continue
		}
		if i > 0 && polarityNegations[words[i-1]] {
			polarity = -polarity
		}
		sum += polarity
		hits++
	}

	if hits == 0 {
		return 0
	}
	return sum / float64(hits)
}

// tokenize lowercases and splits on everything that is not a letter or
// apostrophe.
func tokenize(text string) []string {
	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && r != '\''
	})
}
