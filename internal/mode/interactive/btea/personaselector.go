// ABOUTME: PersonaSelectorModel is a Bubble Tea overlay for switching personas
// ABOUTME: Wraps SelectListModel with typed filtering; enter emits PersonaSelectedMsg

package btea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PersonaSelectorModel lists available personas with their taglines and
// lets the user pick one to activate.
type PersonaSelectorModel struct {
	list  SelectListModel
	width int
}

// NewPersonaSelectorModel creates a selector over the given persona items.
// Labels are persona names; descriptions are their taglines.
func NewPersonaSelectorModel(items []ListItem) PersonaSelectorModel {
	return PersonaSelectorModel{
		list: NewSelectListModel(items).SetMaxHeight(8),
	}
}

// Init returns nil; no commands needed at startup.
func (m PersonaSelectorModel) Init() tea.Cmd {
	return nil
}

// Update handles filtering keystrokes, navigation, and selection.
func (m PersonaSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
				return m, func() tea.Msg { return PersonaSelectedMsg{Name: item.Label} }
			}
		case tea.KeyEsc:
			return m, func() tea.Msg { return PersonaSelectorDismissMsg{} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		updated, _ := m.list.Update(msg)
		m.list = updated.(SelectListModel)
	}
	return m, nil
}

// View renders the header and the filtered persona list.
func (m PersonaSelectorModel) View() string {
	s := Styles()

	var b strings.Builder
	header := "Switch persona"
	if f := m.list.Filter(); f != "" {
		header += "  " + s.Dim.Render("filter: "+f)
	}
	b.WriteString("  " + s.Bold.Render(header) + "\n")

	body := m.list.View()
	if body == "" {
		b.WriteString("  " + s.Dim.Render("(no matching personas)"))
	} else {
		b.WriteString(body)
	}
	return b.String()
}
