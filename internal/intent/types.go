// ABOUTME: Intent catalog types for routing user utterances to responses.
// ABOUTME: Defines raw Definition, compiled Intent, PatternMatch captures, and Classification.

package intent

import "regexp"

// Definition is the raw, uncompiled form of a catalog entry as it appears
// in a config file's intents array or the builtin catalog.
type Definition struct {
	Name            string   `json:"name"`
	Patterns        []string `json:"patterns"`
	Keywords        []string `json:"keywords,omitempty"`
	Responses       []string `json:"responses"`
	ContextSet      string   `json:"context_set,omitempty"`
	ContextRequired string   `json:"context_required,omitempty"`
	ActionType      string   `json:"action_type,omitempty"`
}

// Intent is a compiled catalog entry. Patterns keep declaration order;
// keywords are lowercased and deduplicated at compile time.
type Intent struct {
	Name            string
	Responses       []string
	ContextSet      string
	ContextRequired string
	Action          string

	patterns []pattern
	keywords map[string]struct{}
}

// pattern pairs a source expression with its compiled form. re is nil when
// the source failed to compile; such patterns never match.
type pattern struct {
	source string
	re     *regexp.Regexp
}

// PatternMatch records the first catalog pattern that textually matched the
// utterance for an intent, together with its capture groups. Captures are
// taken from the lowercased utterance.
type PatternMatch struct {
	Pattern string   // source text of the matching pattern
	Groups  []string // Groups[0] is the full matched text
	present []bool   // whether each group participated in the match
}

// Text returns the full matched text, or "" on a nil match.
func (m *PatternMatch) Text() string {
	if m == nil || len(m.Groups) == 0 {
		return ""
	}
	return m.Groups[0]
}

// Group returns capture group i (group 0 is the full match). The second
// return is false on a nil match, an out-of-range index, or a group that
// did not participate in the match.
func (m *PatternMatch) Group(i int) (string, bool) {
	if m == nil || i < 0 || i >= len(m.Groups) || !m.present[i] {
		return "", false
	}
	return m.Groups[i], true
}

// Classification is the outcome of classifying one utterance.
// Intent is nil when no catalog entry cleared the acceptance threshold;
// Match is nil in that case too.
type Classification struct {
	Intent *Intent
	Score  float64
	Match  *PatternMatch
}
