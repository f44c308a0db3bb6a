// ABOUTME: Tests for conversation state
// ABOUTME: Covers history snapshots, context tag lifecycle, and fact accessors

package convo

import (
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAddExchangeAndHistory(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 14, 15, 9, 0, 0, time.UTC)
	s := NewWithClock(fixedClock(start))

	s.AddExchange("hello", "Hi there!")
	s.AddExchange("bye", "Goodbye!")

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	h := s.History()
	if h[0].User != "hello" || h[0].Bot != "Hi there!" {
		t.Errorf("first exchange = %+v", h[0])
	}
	if !h[1].Timestamp.Equal(start) {
		t.Errorf("timestamp = %v, want %v", h[1].Timestamp, start)
	}
}

func TestHistoryIsSnapshot(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddExchange("a", "b")

	h := s.History()
	h[0].User = "mutated"

	if got := s.History()[0].User; got != "a" {
		t.Errorf("history mutated through snapshot: %q", got)
	}
}

func TestContextLifecycle(t *testing.T) {
	t.Parallel()

	s := New()
	if s.Context() != "" {
		t.Fatalf("fresh state context = %q, want empty", s.Context())
	}

	s.SetContext("asked_user_feeling")
	if s.Context() != "asked_user_feeling" {
		t.Errorf("Context() = %q", s.Context())
	}

	s.ClearContext()
	if s.Context() != "" {
		t.Errorf("context not cleared: %q", s.Context())
	}

	s.SetContext("a")
	s.SetContext("")
	if s.Context() != "" {
		t.Errorf("empty SetContext should clear, got %q", s.Context())
	}
}

func TestNameAndBirthday(t *testing.T) {
	t.Parallel()

	s := New()
	if _, ok := s.Name(); ok {
		t.Error("Name() on fresh state should report absent")
	}

	s.SetName("Alice")
	if name, ok := s.Name(); !ok || name != "Alice" {
		t.Errorf("Name() = %q, %v; want Alice, true", name, ok)
	}

	s.SetBirthday("March 14")
	if bd, ok := s.Birthday(); !ok || bd != "March 14" {
		t.Errorf("Birthday() = %q, %v; want March 14, true", bd, ok)
	}
}

func TestNotesAppend(t *testing.T) {
	t.Parallel()

	s := New()
	if notes := s.Notes(); notes != nil {
		t.Fatalf("fresh Notes() = %v, want nil", notes)
	}

	s.AddNote("buy milk")
	s.AddNote("call home")

	notes := s.Notes()
	if len(notes) != 2 || notes[0] != "buy milk" || notes[1] != "call home" {
		t.Errorf("Notes() = %v", notes)
	}
}

func TestFavorites(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetFavorite("color", "blue")
	s.SetFavorite("music", "The Beatles")
	s.SetFavorite("color", "green")

	favs := s.FavoritesMap()
	if favs["color"] != "green" {
		t.Errorf("color = %q, want green (overwrite)", favs["color"])
	}
	if favs["music"] != "The Beatles" {
		t.Errorf("music = %q", favs["music"])
	}
}

func TestFactsSnapshot(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetFact("mood", "curious")
	s.SetName("Bob")

	facts := s.Facts()
	if facts["mood"] != "curious" {
		t.Errorf("mood fact = %v", facts["mood"])
	}

	facts["mood"] = "changed"
	if v, _ := s.Fact("mood"); v != "curious" {
		t.Errorf("fact mutated through snapshot: %v", v)
	}
}

func TestStringFactIgnoresWrongType(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetFact(FactName, 42)
	if _, ok := s.Name(); ok {
		t.Error("non-string name fact should report absent")
	}
}

func TestResetWipesEverythingButSessionStart(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)
	s := NewWithClock(fixedClock(fixed))
	s.AddExchange("hi", "hello")
	s.SetContext("hobby_talk")
	s.SetName("Bob")

	s.Reset()

	if got := s.Len(); got != 0 {
		t.Errorf("Len() after reset = %d, want 0", got)
	}
	if got := s.Context(); got != "" {
		t.Errorf("Context() after reset = %q, want empty", got)
	}
	if _, ok := s.Name(); ok {
		t.Error("name survived reset")
	}
	if got := s.SessionStart(); !got.Equal(fixed) {
		t.Errorf("SessionStart() after reset = %v, want %v", got, fixed)
	}

	// State stays usable after a reset.
	s.AddExchange("again", "welcome back")
	if got := s.Len(); got != 1 {
		t.Errorf("Len() after post-reset exchange = %d, want 1", got)
	}
}
