// ABOUTME: Tests for catalog classification and scoring arithmetic.
// ABOUTME: Covers weights, context gating, ties, threshold, and capture semantics.

package intent

import (
	"math"
	"testing"
)

const scoreEpsilon = 1e-9

func mustLoad(t *testing.T, defs []Definition) *Catalog {
	t.Helper()
	c, err := Load(defs, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c
}

func TestClassifyScoring(t *testing.T) {
	t.Parallel()

	c := mustLoad(t, []Definition{
		{Name: "alpha", Patterns: []string{`\bping\b`}, Keywords: []string{"ping"}, Responses: []string{"a"}},
		{Name: "beta", Patterns: []string{`\bpong\b`, `^pong$`}, Keywords: []string{"pong"}, Responses: []string{"b"}},
		{Name: "gated", Patterns: []string{`\byes\b`}, Responses: []string{"g"}, ContextRequired: "asked"},
	})

	tests := []struct {
		name       string
		utterance  string
		context    string
		wantIntent string
		wantScore  float64
	}{
		{name: "pattern plus keyword", utterance: "ping", wantIntent: "alpha", wantScore: 2.5},
		{name: "two patterns plus keyword", utterance: "pong", wantIntent: "beta", wantScore: 4.5},
		{name: "context absent halves", utterance: "yes", wantIntent: "gated", wantScore: 1.0},
		{name: "context present adds bonus", utterance: "yes", context: "asked", wantIntent: "gated", wantScore: 3.0},
		{name: "wrong context halves", utterance: "yes", context: "other", wantIntent: "gated", wantScore: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := c.Classify(tt.utterance, tt.context)
			if got.Intent == nil {
				t.Fatalf("Classify(%q) rejected; want intent %q", tt.utterance, tt.wantIntent)
			}
			if got.Intent.Name != tt.wantIntent {
				t.Errorf("Classify(%q).Intent = %q, want %q", tt.utterance, got.Intent.Name, tt.wantIntent)
			}
			if math.Abs(got.Score-tt.wantScore) > scoreEpsilon {
				t.Errorf("Classify(%q).Score = %v, want %v", tt.utterance, got.Score, tt.wantScore)
			}
		})
	}
}

func TestClassifyThreshold(t *testing.T) {
	t.Parallel()

	c := mustLoad(t, []Definition{
		{Name: "kw", Patterns: []string{`zzz`}, Keywords: []string{"solo"}, Responses: []string{"r"}},
	})

	// A single keyword hit scores exactly 0.5, which does not exceed the
	// acceptance threshold.
	got := c.Classify("solo", "")
	if got.Intent != nil {
		t.Errorf("Classify(\"solo\") accepted %q; want rejection", got.Intent.Name)
	}
	if got.Match != nil {
		t.Errorf("rejected classification carries match %+v", got.Match)
	}
	if math.Abs(got.Score-0.5) > scoreEpsilon {
		t.Errorf("Score = %v, want 0.5", got.Score)
	}

	if got := c.Classify("total nonsense", ""); got.Intent != nil || got.Score != 0 {
		t.Errorf("no-hit utterance classified as %+v", got)
	}
}

func TestClassifyTieKeepsEarlierIntent(t *testing.T) {
	t.Parallel()

	c := mustLoad(t, []Definition{
		{Name: "first", Patterns: []string{`\bhm\b`}, Responses: []string{"1"}},
		{Name: "second", Patterns: []string{`\bhm\b`}, Responses: []string{"2"}},
	})

	got := c.Classify("hm", "")
	if got.Intent == nil || got.Intent.Name != "first" {
		t.Errorf("tie resolved to %+v, want first-declared intent", got.Intent)
	}
}

func TestClassifyCapturesFirstMatchingPattern(t *testing.T) {
	t.Parallel()

	c := mustLoad(t, []Definition{
		{Name: "order", Patterns: []string{`order (\d+)`, `(\d+)`}, Responses: []string{"r"}},
	})

	got := c.Classify("order 42", "")
	if got.Match == nil {
		t.Fatal("expected a pattern match")
	}
	if got.Match.Pattern != `order (\d+)` {
		t.Errorf("Match.Pattern = %q, want first declared pattern", got.Match.Pattern)
	}
	if g, ok := got.Match.Group(1); !ok || g != "42" {
		t.Errorf("Group(1) = %q, %v; want 42, true", g, ok)
	}

	// When only the later pattern matches, its captures are used.
	got = c.Classify("just 7", "")
	if got.Match == nil || got.Match.Pattern != `(\d+)` {
		t.Errorf("Match = %+v, want second pattern", got.Match)
	}
}

func TestClassifyCapturesAreLowercased(t *testing.T) {
	t.Parallel()

	c := mustLoad(t, []Definition{
		{Name: "user_name", Patterns: []string{`my name is (\w+)`}, Responses: []string{"r"}},
	})

	got := c.Classify("My Name Is Bob", "")
	if got.Match == nil {
		t.Fatal("expected a pattern match")
	}
	if g, _ := got.Match.Group(1); g != "bob" {
		t.Errorf("Group(1) = %q, want lowercased capture", g)
	}
}

func TestClassifyKeywordOnlyLeaderKeepsPriorCaptures(t *testing.T) {
	t.Parallel()

	c := mustLoad(t, []Definition{
		{Name: "patterned", Patterns: []string{`send (\w+)`}, Responses: []string{"p"}},
		{
			Name:      "wordy",
			Patterns:  []string{},
			Keywords:  []string{"now", "please", "urgent", "fast", "ok"},
			Responses: []string{"w"},
		},
	})

	// "patterned" scores 2.0 with a textual match; "wordy" then overtakes
	// on five keyword hits (2.5) without any pattern of its own. The
	// recorded captures stay those of the earlier candidate.
	got := c.Classify("send cake now please urgent fast ok", "")
	if got.Intent == nil || got.Intent.Name != "wordy" {
		t.Fatalf("Intent = %+v, want wordy", got.Intent)
	}
	if got.Match == nil || got.Match.Pattern != `send (\w+)` {
		t.Errorf("Match = %+v, want captures from the earlier candidate", got.Match)
	}
	if g, ok := got.Match.Group(1); !ok || g != "cake" {
		t.Errorf("Group(1) = %q, %v; want cake, true", g, ok)
	}
}

func TestClassifyMalformedPatternNeverMatches(t *testing.T) {
	t.Parallel()

	c := mustLoad(t, []Definition{
		{Name: "broken", Patterns: []string{`([unclosed`, `\bworks\b`}, Responses: []string{"r"}},
	})

	got := c.Classify("works", "")
	if got.Intent == nil || got.Intent.Name != "broken" {
		t.Fatalf("intact pattern did not classify: %+v", got)
	}
	if got.Match == nil || got.Match.Pattern != `\bworks\b` {
		t.Errorf("Match.Pattern = %+v, want the compilable pattern", got.Match)
	}
	if math.Abs(got.Score-2.0) > scoreEpsilon {
		t.Errorf("Score = %v, want 2.0 (broken pattern contributes nothing)", got.Score)
	}
}

func TestClassifyKeywordsDeduplicate(t *testing.T) {
	t.Parallel()

	c := mustLoad(t, []Definition{
		{Name: "dup", Patterns: []string{`\bword\b`}, Keywords: []string{"word", "WORD", "Word"}, Responses: []string{"r"}},
	})

	// Three spellings collapse into one keyword entry: 2.0 + 0.5.
	got := c.Classify("word", "")
	if math.Abs(got.Score-2.5) > scoreEpsilon {
		t.Errorf("Score = %v, want 2.5", got.Score)
	}
}

func TestPatternMatchGroupParticipation(t *testing.T) {
	t.Parallel()

	c := mustLoad(t, []Definition{
		{Name: "either", Patterns: []string{`(left)|(right)`}, Responses: []string{"r"}},
	})

	got := c.Classify("right", "")
	if got.Match == nil {
		t.Fatal("expected a match")
	}
	if _, ok := got.Match.Group(1); ok {
		t.Error("Group(1) participated unexpectedly")
	}
	if g, ok := got.Match.Group(2); !ok || g != "right" {
		t.Errorf("Group(2) = %q, %v; want right, true", g, ok)
	}
	if _, ok := got.Match.Group(9); ok {
		t.Error("out-of-range group reported present")
	}
}

func TestNilPatternMatchAccessors(t *testing.T) {
	t.Parallel()

	var m *PatternMatch
	if m.Text() != "" {
		t.Errorf("nil Text() = %q, want empty", m.Text())
	}
	if _, ok := m.Group(0); ok {
		t.Error("nil Group(0) reported present")
	}
}

func TestClassifyBuiltinGreeting(t *testing.T) {
	t.Parallel()

	c := mustLoad(t, Builtin())

	got := c.Classify("hello there", "")
	if got.Intent == nil || got.Intent.Name != "greeting" {
		t.Fatalf("Classify(\"hello there\") = %+v, want greeting", got.Intent)
	}

	// "hello" alone hits both greeting patterns plus one keyword.
	got = c.Classify("hello", "")
	if math.Abs(got.Score-4.5) > scoreEpsilon {
		t.Errorf("Score = %v, want 4.5", got.Score)
	}
}

func TestClassifyBuiltinContextFlow(t *testing.T) {
	t.Parallel()

	c := mustLoad(t, Builtin())

	// After how_are_you the context gate lets "i'm good" resolve to the
	// feeling intent rather than user_name ("i'm (\w+)").
	got := c.Classify("i'm good", "asked_user_feeling")
	if got.Intent == nil || got.Intent.Name != "user_feeling_good" {
		t.Fatalf("in-context classification = %+v", got.Intent)
	}

	howAreYou := c.Classify("how are you", "")
	if howAreYou.Intent == nil || howAreYou.Intent.ContextSet != "asked_user_feeling" {
		t.Errorf("how_are_you intent = %+v", howAreYou.Intent)
	}
}
