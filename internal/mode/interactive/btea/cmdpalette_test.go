// ABOUTME: Tests for the CmdPaletteModel slash-command overlay
// ABOUTME: Covers substring filtering, wrap-around navigation, and select/dismiss messages

package btea

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var _ tea.Model = CmdPaletteModel{}

func testCommands() []CommandEntry {
	return []CommandEntry{
		{Name: "clear", Description: "Clear conversation history"},
		{Name: "exit", Description: "End the conversation"},
		{Name: "help", Description: "List available commands"},
		{Name: "persona", Description: "Show or switch persona"},
		{Name: "stats", Description: "Show conversation statistics"},
	}
}

func TestCmdPaletteModel_View(t *testing.T) {
	t.Parallel()

	m := NewCmdPaletteModel(testCommands())
	got := m.View()

	for _, part := range []string{"/clear", "/help", "/stats", "List available commands"} {
		if !strings.Contains(got, part) {
			t.Errorf("View() missing %q:\n%s", part, got)
		}
	}
}

func TestCmdPaletteModel_TypingFilters(t *testing.T) {
	t.Parallel()

	m := NewCmdPaletteModel(testCommands())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("st")})
	m = updated.(CmdPaletteModel)

	got := m.View()
	if !strings.Contains(got, "/stats") {
		t.Errorf("View() missing /stats after filter:\n%s", got)
	}
	if strings.Contains(got, "/clear") {
		t.Errorf("View() still shows /clear after filter:\n%s", got)
	}

	if got, want := m.Selected(), "stats"; got != want {
		t.Errorf("Selected() = %q, want %q", got, want)
	}
}

func TestCmdPaletteModel_BackspaceWidensFilter(t *testing.T) {
	t.Parallel()

	m := NewCmdPaletteModel(testCommands()).SetFilter("sta")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = updated.(CmdPaletteModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = updated.(CmdPaletteModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = updated.(CmdPaletteModel)

	// Filter is empty again; everything is visible
	got := m.View()
	for _, part := range []string{"/clear", "/exit", "/help", "/persona", "/stats"} {
		if !strings.Contains(got, part) {
			t.Errorf("View() missing %q after backspace:\n%s", part, got)
		}
	}
}

func TestCmdPaletteModel_NavigationWraps(t *testing.T) {
	t.Parallel()

	m := NewCmdPaletteModel(testCommands())

	if got, want := m.Selected(), "clear"; got != want {
		t.Errorf("initial Selected() = %q, want %q", got, want)
	}

	// Up from the top wraps to the bottom
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(CmdPaletteModel)
	if got, want := m.Selected(), "stats"; got != want {
		t.Errorf("Selected() after wrap up = %q, want %q", got, want)
	}

	// Down from the bottom wraps to the top
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(CmdPaletteModel)
	if got, want := m.Selected(), "clear"; got != want {
		t.Errorf("Selected() after wrap down = %q, want %q", got, want)
	}
}

func TestCmdPaletteModel_EnterEmitsSelect(t *testing.T) {
	t.Parallel()

	m := NewCmdPaletteModel(testCommands()).SetFilter("help")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Update(enter) returned nil cmd")
	}

	msg, ok := cmd().(CmdPaletteSelectMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want CmdPaletteSelectMsg", cmd())
	}
	if got, want := msg.Name, "help"; got != want {
		t.Errorf("select msg Name = %q, want %q", got, want)
	}
}

func TestCmdPaletteModel_EnterOnEmptyListIsNoop(t *testing.T) {
	t.Parallel()

	m := NewCmdPaletteModel(testCommands()).SetFilter("nomatch")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Errorf("Update(enter) on empty list returned cmd, want nil")
	}
}

func TestCmdPaletteModel_EscEmitsDismiss(t *testing.T) {
	t.Parallel()

	m := NewCmdPaletteModel(testCommands())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("Update(esc) returned nil cmd")
	}
	if _, ok := cmd().(CmdPaletteDismissMsg); !ok {
		t.Errorf("cmd() = %T, want CmdPaletteDismissMsg", cmd())
	}
}
