// ABOUTME: Weighted intent scoring over patterns, keywords, and dialogue context.
// ABOUTME: Patterns are worth 2.0, keywords 0.5, context gates add 1.0 or halve.

package intent

import "strings"

// Scoring weights. Each matching pattern contributes patternWeight, each
// distinct keyword present in the utterance's word set contributes
// keywordWeight. An intent whose required context is active receives
// contextBonus; one whose required context is absent has its accumulated
// score multiplied by contextPenalty. Scores are unbounded above.
const (
	patternWeight  = 2.0
	keywordWeight  = 0.5
	contextBonus   = 1.0
	contextPenalty = 0.5
)

// score computes the weighted match score of it against the lowercased
// utterance and its whitespace-split word set, given the active context tag.
func (it *Intent) score(lowered string, words map[string]struct{}, currentContext string) float64 {
	score := 0.0

	for _, p := range it.patterns {
		if p.re != nil && p.re.MatchString(lowered) {
			score += patternWeight
		}
	}

	for kw := range it.keywords {
		if _, ok := words[kw]; ok {
			score += keywordWeight
		}
	}

	if it.ContextRequired != "" {
		if currentContext == it.ContextRequired {
			score += contextBonus
		} else {
			score *= contextPenalty
		}
	}

	return score
}

// firstMatch returns the captures of the first pattern, in declaration
// order, that textually matches the lowered utterance. Returns nil when no
// pattern matches.
func (it *Intent) firstMatch(lowered string) *PatternMatch {
	for _, p := range it.patterns {
		if p.re == nil {
			continue
		}
		idx := p.re.FindStringSubmatchIndex(lowered)
		if idx == nil {
			continue
		}
		n := len(idx) / 2
		m := &PatternMatch{
			Pattern: p.source,
			Groups:  make([]string, n),
			present: make([]bool, n),
		}
		for g := 0; g < n; g++ {
			lo, hi := idx[2*g], idx[2*g+1]
			if lo < 0 {
				continue
			}
			m.Groups[g] = lowered[lo:hi]
			m.present[g] = true
		}
		return m
	}
	return nil
}

// splitWords returns the set of whitespace-separated tokens in lowered.
func splitWords(lowered string) map[string]struct{} {
	words := make(map[string]struct{})
	for w := range strings.FieldsSeq(lowered) {
		words[w] = struct{}{}
	}
	return words
}
