// ABOUTME: SessionSelectorModel is a Bubble Tea overlay for browsing stored sessions
// ABOUTME: Returns SessionSelectedMsg on enter, SessionSelectorDismissMsg on esc

package btea

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/pi-chat-agent-go/internal/session"
)

// SessionSelectorModel lists stored chat sessions newest first and lets
// the user pick one to inspect.
type SessionSelectorModel struct {
	list  SelectListModel
	empty bool
	width int
}

// NewSessionSelectorModel creates a selector over the given sessions.
func NewSessionSelectorModel(sessions []session.Info) SessionSelectorModel {
	items := make([]ListItem, len(sessions))
	for i, s := range sessions {
		desc := s.StartedAt
		if s.BotName != "" {
			desc += fmt.Sprintf("  %s", s.BotName)
		}
		if s.Persona != "" {
			desc += fmt.Sprintf(" (%s)", s.Persona)
		}
		items[i] = ListItem{Label: s.ID, Description: desc}
	}
	return SessionSelectorModel{
		list:  NewSelectListModel(items).SetMaxHeight(8),
		empty: len(sessions) == 0,
	}
}

// Init returns nil; no commands needed at startup.
func (m SessionSelectorModel) Init() tea.Cmd {
	return nil
}

// Update handles filtering keystrokes, navigation, and selection.
func (m SessionSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyRunes:
			if len(msg.Runes) > 0 {
				m.list = m.list.SetFilter(m.list.Filter() + string(msg.Runes))
			}
		case tea.KeyBackspace:
			if f := m.list.Filter(); f != "" {
				m.list = m.list.SetFilter(f[:len(f)-1])
			}
		case tea.KeyUp, tea.KeyDown:
			updated, _ := m.list.Update(msg)
			m.list = updated.(SelectListModel)
		case tea.KeyEnter:
			item := m.list.SelectedItem()
			if item.Label != "" {
				return m, func() tea.Msg { return SessionSelectedMsg{ID: item.Label} }
			}
		case tea.KeyEsc:
			return m, func() tea.Msg { return SessionSelectorDismissMsg{} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		updated, _ := m.list.Update(msg)
		m.list = updated.(SelectListModel)
	}
	return m, nil
}

// View renders the header and the filtered session list.
func (m SessionSelectorModel) View() string {
	s := Styles()

	var b strings.Builder
	header := "Stored sessions"
	if f := m.list.Filter(); f != "" {
		header += "  " + s.Dim.Render("filter: "+f)
	}
	b.WriteString("  " + s.Bold.Render(header) + "\n")

	if m.empty {
		b.WriteString("  " + s.Dim.Render("(no stored sessions yet)"))
		return b.String()
	}

	body := m.list.View()
	if body == "" {
		b.WriteString("  " + s.Dim.Render("(no matching sessions)"))
	} else {
		b.WriteString(body)
	}
	return b.String()
}
