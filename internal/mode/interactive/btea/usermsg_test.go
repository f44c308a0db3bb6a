// ABOUTME: Tests for the UserMsgModel user-utterance leaf
// ABOUTME: Checks the prompt prefix and leading blank line

package btea

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var _ tea.Model = UserMsgModel{}

func TestUserMsgModel_View(t *testing.T) {
	t.Parallel()

	m := NewUserMsgModel("tell me a joke")
	got := m.View()

	if !strings.HasPrefix(got, "\n") {
		t.Errorf("View() missing leading blank line:\n%q", got)
	}
	if !strings.Contains(got, " > ") {
		t.Errorf("View() missing prompt prefix:\n%s", got)
	}
	if !strings.Contains(got, "tell me a joke") {
		t.Errorf("View() missing text:\n%s", got)
	}
}
