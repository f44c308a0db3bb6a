// ABOUTME: Bag-of-words sentiment estimation over whitespace-split tokens
// ABOUTME: Counts distinct positive/negative word hits; no negation or stemming

package sentiment

import (
	"strings"
)

// Label classifies the overall tone of an utterance.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Result pairs a label with a signed strength score. Positive results score
// in (0, 1), negative in (-1, 0), neutral exactly 0.
type Result struct {
	Label Label
	Score float64
}

// Analyzer scores text against fixed positive and negative word sets.
type Analyzer struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

// New builds an analyzer from explicit word lists. Words are lowercased;
// duplicates collapse.
func New(positive, negative []string) *Analyzer {
	return &Analyzer{
		positive: toSet(positive),
		negative: toSet(negative),
	}
}

// Default returns an analyzer loaded with the builtin word lists.
func Default() *Analyzer {
	return New(defaultPositive, defaultNegative)
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Analyze scores text by intersecting its distinct lowercased words with the
// positive and negative sets. With p positive hits and n negative hits:
// p > n yields (positive, p/(p+n+1)), n > p yields (negative, -n/(p+n+1)),
// and a tie (including zero hits) yields (neutral, 0).
func (a *Analyzer) Analyze(text string) Result {
	words := make(map[string]struct{})
	for w := range strings.FieldsSeq(strings.ToLower(text)) {
		words[w] = struct{}{}
	}

	p, n := 0, 0
	for w := range words {
		if _, ok := a.positive[w]; ok {
			p++
		}
		if _, ok := a.negative[w]; ok {
			n++
		}
	}

	switch {
	case p > n:
		return Result{Label: Positive, Score: float64(p) / float64(p+n+1)}
	case n > p:
		return Result{Label: Negative, Score: -float64(n) / float64(p+n+1)}
	default:
		return Result{Label: Neutral, Score: 0}
	}
}

var defaultPositive = []string{
	"good", "great", "awesome", "excellent", "happy", "love", "wonderful",
	"fantastic", "amazing", "best", "nice", "thank", "thanks", "perfect",
	"beautiful", "brilliant", "exciting", "fun", "glad", "pleased",
}

var defaultNegative = []string{
	"bad", "terrible", "awful", "horrible", "sad", "hate", "worst", "angry",
	"upset", "annoyed", "frustrated", "disappointed", "boring", "stupid",
	"dumb", "useless", "wrong", "fail", "failed", "problem",
}
