// ABOUTME: Conversation state shared across a chat session
// ABOUTME: Tracks exchange history, a single context tag, and remembered user facts

package convo

import (
	"time"
)

// Fact keys used by the builtin actions.
const (
	FactName      = "name"
	FactBirthday  = "birthday"
	FactNotes     = "notes"
	FactFavorites = "favorites"
)

// Exchange is one user/bot turn pair.
type Exchange struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Bot       string    `json:"bot"`
}

// State carries everything remembered during a session: the exchange
// history, the active context tag, and free-form user facts. It is not
// safe for concurrent use; callers feed turns sequentially.
type State struct {
	history      []Exchange
	context      string
	facts        map[string]any
	sessionStart time.Time
	now          func() time.Time
}

// New returns an empty conversation state using the wall clock.
func New() *State {
	return NewWithClock(time.Now)
}

// NewWithClock returns an empty state using now as its clock.
// Tests inject fixed clocks here.
func NewWithClock(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	return &State{
		facts:        make(map[string]any),
		sessionStart: now(),
		now:          now,
	}
}

// SessionStart returns the moment the state was created.
func (s *State) SessionStart() time.Time {
	return s.sessionStart
}

// AddExchange appends a completed user/bot turn to the history.
func (s *State) AddExchange(user, bot string) {
	s.history = append(s.history, Exchange{
		Timestamp: s.now(),
		User:      user,
		Bot:       bot,
	})
}

// History returns a snapshot copy of all exchanges so far.
func (s *State) History() []Exchange {
	out := make([]Exchange, len(s.history))
	copy(out, s.history)
	return out
}

// Len returns the number of completed exchanges.
func (s *State) Len() int {
	return len(s.history)
}

// Reset wipes the history, context, and facts so the conversation starts
// over. The session start time is untouched; the session itself continues.
func (s *State) Reset() {
	s.history = nil
	s.context = ""
	s.facts = make(map[string]any)
}

// Context returns the active context tag, or "" when none is set.
func (s *State) Context() string {
	return s.context
}

// SetContext replaces the active context tag. An empty tag clears it.
func (s *State) SetContext(tag string) {
	s.context = tag
}

// ClearContext removes the active context tag.
func (s *State) ClearContext() {
	s.context = ""
}

// SetFact stores an arbitrary user fact under key.
func (s *State) SetFact(key string, value any) {
	s.facts[key] = value
}

// Fact returns the fact stored under key.
func (s *State) Fact(key string) (any, bool) {
	v, ok := s.facts[key]
	return v, ok
}

// Facts returns a snapshot copy of all stored facts.
func (s *State) Facts() map[string]any {
	out := make(map[string]any, len(s.facts))
	for k, v := range s.facts {
		out[k] = v
	}
	return out
}

// Name returns the remembered user name.
func (s *State) Name() (string, bool) {
	return s.stringFact(FactName)
}

// SetName remembers the user's name.
func (s *State) SetName(name string) {
	s.facts[FactName] = name
}

// Birthday returns the remembered birthday.
func (s *State) Birthday() (string, bool) {
	return s.stringFact(FactBirthday)
}

// SetBirthday remembers the user's birthday.
func (s *State) SetBirthday(birthday string) {
	s.facts[FactBirthday] = birthday
}

// AddNote appends a note to the remembered notes list.
func (s *State) AddNote(note string) {
	s.facts[FactNotes] = append(s.Notes(), note)
}

// Notes returns the remembered notes in insertion order.
func (s *State) Notes() []string {
	v, ok := s.facts[FactNotes]
	if !ok {
		return nil
	}
	notes, ok := v.([]string)
	if !ok {
		return nil
	}
	return notes
}

// SetFavorite records a favorite value under category.
func (s *State) SetFavorite(category, value string) {
	favs := s.FavoritesMap()
	if favs == nil {
		favs = make(map[string]string)
	}
	favs[category] = value
	s.facts[FactFavorites] = favs
}

// FavoritesMap returns the favorites by category. The returned map is the
// live store; SetFavorite is the writing path.
func (s *State) FavoritesMap() map[string]string {
	v, ok := s.facts[FactFavorites]
	if !ok {
		return nil
	}
	favs, ok := v.(map[string]string)
	if !ok {
		return nil
	}
	return favs
}

func (s *State) stringFact(key string) (string, bool) {
	v, ok := s.facts[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	if !ok || str == "" {
		return "", false
	}
	return str, true
}
