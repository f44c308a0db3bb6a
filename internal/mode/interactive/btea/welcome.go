// ABOUTME: WelcomeModel is a Bubble Tea leaf that renders the startup banner
// ABOUTME: Shows the bot box, persona, version, and keyboard shortcuts

package btea

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/pi-chat-agent-go/internal/textwidth"
)

// WelcomeModel renders the startup banner with the bot name, persona
// tagline, version, and keyboard shortcuts.
type WelcomeModel struct {
	botName string
	tagline string
	persona string
	version string
	width   int
}

// NewWelcomeModel creates a WelcomeModel with the given session details.
func NewWelcomeModel(botName, tagline, persona, version string) WelcomeModel {
	return WelcomeModel{
		botName: botName,
		tagline: tagline,
		persona: persona,
		version: version,
	}
}

// Init returns nil; no commands needed for a static welcome banner.
func (m WelcomeModel) Init() tea.Cmd {
	return nil
}

// Update handles tea.WindowSizeMsg to track terminal width.
func (m WelcomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
	}
	return m, nil
}

// View renders the full welcome banner with the bot box, greeting line,
// and keyboard shortcuts table.
func (m WelcomeModel) View() string {
	s := Styles()
	ver := m.version
	if ver == "" {
		ver = "dev"
	}

	var b strings.Builder

	b.WriteString(s.Accent.Render("  ╭───────╮") + "\n")
	b.WriteString(s.Accent.Render("  │  ") + s.Bold.Render("🤖") + s.Accent.Render("   │") + "\n")
	b.WriteString(s.Accent.Render("  ╰───────╯") + "\n")

	b.WriteString(fmt.Sprintf("  %s %s\n", s.Bold.Render("pichat"), s.Dim.Render("v"+ver)))
	b.WriteString(fmt.Sprintf("  %s\n", s.Primary.Render(fmt.Sprintf("Welcome! I'm %s, %s.", m.botName, m.tagline))))
	b.WriteString(fmt.Sprintf("  %s\n", s.Dim.Render("persona: "+m.persona)))

	b.WriteString("\n")

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"enter", "send message"},
		{"/", "commands"},
		{"ctrl+p", "switch persona"},
		{"ctrl+r", "browse sessions"},
		{"up/down", "recall input"},
		{"ctrl+c", "exit"},
	}

	const keyPad = 16
	for _, sc := range shortcuts {
		padded := sc.key
		for len(padded) < keyPad {
			padded += " "
		}
		b.WriteString(fmt.Sprintf("  %s%s\n", s.Bold.Render(padded), s.Dim.Render(sc.desc)))
	}

	b.WriteString("\n")
	b.WriteString(s.Dim.Render("  Type 'quit' or 'exit' to end our conversation."))

	// Truncate lines to terminal width on narrow terminals
	result := b.String()
	if m.width > 0 && m.width < 40 {
		lines := strings.Split(result, "\n")
		for i, line := range lines {
			if textwidth.VisibleWidth(line) > m.width {
				lines[i] = textwidth.TruncateToWidth(line, m.width)
			}
		}
		return strings.Join(lines, "\n")
	}
	return result
}
