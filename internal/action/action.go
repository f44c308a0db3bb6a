// ABOUTME: Closed registry of intent actions that read captures and mutate conversation state.
// ABOUTME: Handlers return "" to fall through to the intent's templated responses.

package action

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mauromedda/pi-chat-agent-go/internal/convo"
)

// Tag identifies a registered action. The set is closed: catalogs naming a
// tag outside this set fail to load.
type Tag string

const (
	StoreUserName     Tag = "store_user_name"
	StoreUserBirthday Tag = "store_user_birthday"
	StoreUserNote     Tag = "store_user_note"
	ShowUserNotes     Tag = "show_user_notes"
	AddFavorites      Tag = "add_favorites"
	Calculate         Tag = "calculate"
)

// Match exposes the capture groups of the pattern that selected an intent.
// Group 0 is the full matched text; Group returns false for a group that
// did not participate. Implementations must tolerate a nil receiver.
type Match interface {
	Group(i int) (string, bool)
	Text() string
}

// Handler runs an intent's side effect. A non-empty reply short-circuits
// the response flow; an empty reply falls through to the intent's
// templated responses.
type Handler func(st *convo.State, m Match) (string, error)

// Registry maps tags to handlers. The tag set is fixed at construction.
type Registry struct {
	handlers map[Tag]Handler
}

// NewRegistry returns a registry with all builtin handlers installed.
func NewRegistry() *Registry {
	return &Registry{handlers: map[Tag]Handler{
		StoreUserName:     storeUserName,
		StoreUserBirthday: storeUserBirthday,
		StoreUserNote:     storeUserNote,
		ShowUserNotes:     showUserNotes,
		AddFavorites:      addFavorites,
		Calculate:         calculate,
	}}
}

// Known reports whether tag names a registered action. Catalog loading
// uses this to reject unknown tags.
func (r *Registry) Known(tag string) bool {
	_, ok := r.handlers[Tag(tag)]
	return ok
}

// Resolve returns the handler for tag.
func (r *Registry) Resolve(tag Tag) (Handler, bool) {
	h, ok := r.handlers[tag]
	return h, ok
}

// Tags returns all registered tags in sorted order.
func (r *Registry) Tags() []Tag {
	tags := make([]Tag, 0, len(r.handlers))
	for t := range r.handlers {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// storeUserName remembers capture group 1, title-cased, as the user's
// name. Without a usable capture it is a no-op; it always falls through.
func storeUserName(st *convo.State, m Match) (string, error) {
	if m == nil {
		return "", nil
	}
	name, ok := m.Group(1)
	if !ok || name == "" {
		return "", nil
	}
	st.SetName(cases.Title(language.English).String(name))
	return "", nil
}

// storeUserBirthday remembers capture group 1, trimmed, as the user's
// birthday. Always falls through.
func storeUserBirthday(st *convo.State, m Match) (string, error) {
	if m == nil {
		return "", nil
	}
	birthday, ok := m.Group(1)
	if !ok || strings.TrimSpace(birthday) == "" {
		return "", nil
	}
	st.SetBirthday(strings.TrimSpace(birthday))
	return "", nil
}

// storeUserNote appends capture group 1, trimmed, to the user's notes.
// Always falls through.
func storeUserNote(st *convo.State, m Match) (string, error) {
	if m == nil {
		return "", nil
	}
	note, ok := m.Group(1)
	if !ok || strings.TrimSpace(note) == "" {
		return "", nil
	}
	st.AddNote(strings.TrimSpace(note))
	return "", nil
}

// showUserNotes short-circuits with a numbered list of saved notes, or a
// fixed line when there are none.
func showUserNotes(st *convo.State, _ Match) (string, error) {
	notes := st.Notes()
	if len(notes) == 0 {
		return "You don't have any saved notes yet.", nil
	}
	var b strings.Builder
	b.WriteString("Here are your saved notes:")
	for i, note := range notes {
		fmt.Fprintf(&b, "\n%d. %s", i+1, note)
	}
	return b.String(), nil
}

// addFavorites records capture group 2 as the favorite for the category in
// capture group 1. The category "band" is folded into "music" for the
// favorites map and the favorite_music fact; the favorite_type fact keeps
// the category as captured. Always falls through.
func addFavorites(st *convo.State, m Match) (string, error) {
	if m == nil {
		return "", nil
	}
	rawCategory, ok1 := m.Group(1)
	value, ok2 := m.Group(2)
	if !ok1 || !ok2 {
		return "", nil
	}
	category := strings.ToLower(strings.TrimSpace(rawCategory))
	value = strings.TrimSpace(value)
	if category == "" || value == "" {
		return "", nil
	}

	folded := category
	if folded == "band" {
		folded = "music"
	}
	st.SetFavorite(folded, value)
	st.SetFact("favorite_"+folded, value)
	st.SetFact("favorite_type", category)
	return "", nil
}

// calcApology is returned whenever an expression cannot be evaluated.
const calcApology = "I couldn't calculate that. Please use a format like '5 + 3' or '10 * 2'."

// calculate evaluates the captured arithmetic expression and
// short-circuits with the result. Group 1 is preferred, falling back to
// the whole matched text. Anything unevaluable yields the apology.
func calculate(_ *convo.State, m Match) (string, error) {
	var expr string
	if m != nil {
		if g, ok := m.Group(1); ok {
			expr = g
		} else {
			expr = m.Text()
		}
	}

	sanitized := sanitizeExpression(expr)
	result, err := evalExpression(sanitized)
	if err != nil {
		return calcApology, nil
	}
	return fmt.Sprintf("The result of %s is **%s**", sanitized, formatNumber(result)), nil
}
