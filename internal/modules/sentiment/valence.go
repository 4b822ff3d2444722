package sentiment

import "math"

// valenceLexicon assigns words an unbounded valence intensity, positive or
// negative, in the style of social-media sentiment lexicons.
var valenceLexicon = map[string]float64{
	"good":       1.9,
	"great":      3.1,
	"excellent":  2.7,
	"amazing":    2.8,
	"best":       3.2,
	"love":       3.2,
	"win":        2.8,
	"winner":     2.8,
	"happy":      2.7,
	"success":    2.7,
	"successful": 2.8,
	"promising":  1.6,
	"strong":     2.3,
	"confident":  2.2,
	"opportunity": 1.6,
	"improve":    1.9,
	"improved":   2.1,
	"bad":        -2.5,
	"terrible":   -2.1,
	"awful":      -2.0,
	"worst":      -3.1,
	"hate":       -2.7,
	"fail":       -2.5,
	"failure":    -2.5,
	"poor":       -2.1,
	"weak":       -1.9,
	"crisis":     -3.1,
	"scam":       -2.6,
	"fraud":      -2.8,
	"collapse":   -2.2,
	"disaster":   -3.1,
	"worried":    -1.2,
	"afraid":     -2.2,
}

var valenceBoosters = map[string]float64{
	"very": 0.293, "extremely": 0.293, "incredibly": 0.293,
	"really": 0.293, "totally": 0.293, "highly": 0.293,
	"somewhat": -0.293, "slightly": -0.293, "barely": -0.293,
}

// normalization constant for the compound score.
const valenceAlpha = 15.0

// ValenceScorer is an intensity-aware lexicon scorer producing a normalized
// compound score.
type ValenceScorer struct{}

func NewValenceScorer() *ValenceScorer { return &ValenceScorer{} }

// Score sums the valences of recognized words, adjusted for negation and
// booster words, then squashes the sum into [-1, 1] via
// sum / sqrt(sum^2 + alpha).
func (s *ValenceScorer) Score(text string) float64 {
	words := tokenize(text)

	var sum float64
	for i, word := range words {
		valence, ok := valenceLexicon[word]
		if !ok {
			continue
		}
		if i > 0 {
			prev := words[i-1]
			if polarityNegations[prev] {
				valence *= -0.74
			} else if boost, ok := valenceBoosters[prev]; ok {
				if valence > 0 {
					valence += boost
				} else {
					valence -= boost
				}
			}
		}
		sum += valence
	}

	if sum == 0 {
		return 0
	}
	return sum / math.Sqrt(sum*sum+valenceAlpha)
}
