// ABOUTME: Best-intent selection over the catalog with an acceptance threshold.
// ABOUTME: Tracks a running best; ties keep the earlier-declared intent.

package intent

import "strings"

// scoreThreshold is the acceptance gate: a best score at or below it means
// no intent is recognized.
const scoreThreshold = 0.5

// Classify scores every catalog intent against the utterance and returns
// the best one. The best is replaced only on strict improvement, so a tie
// keeps the intent declared earlier.
//
// Match carries the capture groups of the first pattern, in declaration
// order, that textually matches the utterance for the intent currently in
// the lead. An intent that takes the lead on keyword or context scoring
// alone, with no textual pattern match, leaves the previously recorded
// captures in place.
//
// When the best score does not exceed the threshold, both Intent and Match
// are nil.
func (c *Catalog) Classify(utterance, currentContext string) Classification {
	lowered := strings.ToLower(utterance)
	words := splitWords(lowered)

	var (
		best      *Intent
		bestScore float64
		match     *PatternMatch
	)

	for _, it := range c.intents {
		score := it.score(lowered, words, currentContext)
		if score <= bestScore {
			continue
		}
		best = it
		bestScore = score
		if m := it.firstMatch(lowered); m != nil {
			match = m
		}
	}

	if best == nil || bestScore <= scoreThreshold {
		return Classification{Score: bestScore}
	}
	return Classification{Intent: best, Score: bestScore, Match: match}
}
