// ABOUTME: FooterModel is a Bubble Tea leaf that renders a two-line status bar
// ABOUTME: Shows bot name, persona, session, exchange count, context tag, sentiment

package btea

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/pi-chat-agent-go/internal/sentiment"
	"github.com/mauromedda/pi-chat-agent-go/internal/textwidth"
)

// FooterModel renders a two-line status bar at the bottom of the terminal.
// Line 1: bot name + persona + session ID.
// Line 2: exchange count + active context tag + last sentiment.
type FooterModel struct {
	botName    string
	persona    string
	sessionID  string
	exchanges  int
	contextTag string
	lastLabel  sentiment.Label
	lastScore  float64
	hasReply   bool
	width      int
}

// NewFooterModel creates an empty FooterModel.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// Init returns nil; no commands needed for a leaf model.
func (m FooterModel) Init() tea.Cmd {
	return nil
}

// Update handles tea.WindowSizeMsg to track terminal width.
func (m FooterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
	}
	return m, nil
}

// WithBotName returns a FooterModel with the bot name set.
func (m FooterModel) WithBotName(name string) FooterModel {
	m.botName = name
	return m
}

// WithPersona returns a FooterModel with the persona name set.
func (m FooterModel) WithPersona(p string) FooterModel {
	m.persona = p
	return m
}

// WithSessionID returns a FooterModel with the session ID set.
func (m FooterModel) WithSessionID(id string) FooterModel {
	m.sessionID = id
	return m
}

// WithExchanges returns a FooterModel with the exchange count set.
func (m FooterModel) WithExchanges(n int) FooterModel {
	m.exchanges = n
	return m
}

// WithContextTag returns a FooterModel with the dialogue context tag set.
func (m FooterModel) WithContextTag(tag string) FooterModel {
	m.contextTag = tag
	return m
}

// WithSentiment returns a FooterModel showing the given sentiment result.
func (m FooterModel) WithSentiment(r sentiment.Result) FooterModel {
	m.lastLabel = r.Label
	m.lastScore = r.Score
	m.hasReply = true
	return m
}

// View renders the two-line footer.
func (m FooterModel) View() string {
	s := Styles()

	// === Line 1: bot name + persona + session ===
	var parts []string

	if m.botName != "" {
		parts = append(parts, s.Bold.Render(m.botName))
	}
	if m.persona != "" {
		parts = append(parts, s.FooterPersona.Render("persona:"+m.persona))
	}
	if m.sessionID != "" {
		parts = append(parts, s.FooterSession.Render(m.sessionID))
	}

	line1 := strings.Join(parts, s.Muted.Render("  "))

	// === Line 2: exchanges + context + sentiment ===
	var line2Parts []string

	line2Parts = append(line2Parts, s.Dim.Render(fmt.Sprintf("%d exchanges", m.exchanges)))

	if m.contextTag != "" {
		line2Parts = append(line2Parts, s.FooterContext.Render("ctx:"+m.contextTag))
	}

	if m.hasReply {
		style := sentimentStyle(s, m.lastLabel)
		line2Parts = append(line2Parts, style.Render(fmt.Sprintf("%s %.1f", m.lastLabel, m.lastScore)))
	}

	line2 := strings.Join(line2Parts, " ")

	// Truncate if needed
	if m.width > 0 {
		if textwidth.VisibleWidth(line1) > m.width {
			line1 = textwidth.TruncateToWidth(line1, m.width)
		}
		if textwidth.VisibleWidth(line2) > m.width {
			line2 = textwidth.TruncateToWidth(line2, m.width)
		}
	}

	return line1 + "\n" + line2
}
