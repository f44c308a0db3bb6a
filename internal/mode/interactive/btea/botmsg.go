// ABOUTME: BotMsgModel is a Bubble Tea leaf that renders one bot reply
// ABOUTME: Glamour-rendered text behind a left border, with an intent tag line

package btea

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/pi-chat-agent-go/internal/chat"
)

// BotMsgModel renders a bot reply with a left border, markdown styling,
// and a dim meta line naming the matched intent and sentiment.
type BotMsgModel struct {
	reply chat.Reply
	md    *MarkdownRenderer
	width int
}

// NewBotMsgModel creates a BotMsgModel for the given reply. The markdown
// renderer is shared across messages so its caches accumulate.
func NewBotMsgModel(reply chat.Reply, md *MarkdownRenderer) *BotMsgModel {
	return &BotMsgModel{reply: reply, md: md}
}

// Init returns nil; no commands needed for a leaf model.
func (m *BotMsgModel) Init() tea.Cmd {
	return nil
}

// Update handles tea.WindowSizeMsg to track terminal width.
func (m *BotMsgModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
	}
	return m, nil
}

// View renders the reply text with a left border and the meta line.
func (m *BotMsgModel) View() string {
	s := Styles()
	borderChar := s.Border.Render("│")

	w := m.width
	if w <= 0 {
		w = 80
	}
	contentWidth := max(w-2, 20)

	rendered := m.reply.Text
	if m.md != nil {
		rendered = m.md.Render(m.reply.Text, contentWidth)
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range strings.Split(rendered, "\n") {
		b.WriteString(fmt.Sprintf("%s %s\n", borderChar, line))
	}
	b.WriteString(fmt.Sprintf("%s %s", borderChar, m.metaLine(s)))
	return b.String()
}

// metaLine formats the intent and sentiment tag shown under each reply.
func (m *BotMsgModel) metaLine(s ThemeStyles) string {
	intent := m.reply.Intent
	if intent == "" {
		intent = "fallback"
	}
	meta := s.Dim.Render(fmt.Sprintf("[%s]", intent))
	label := m.reply.Sentiment.Label
	if label != "" {
		meta += " " + sentimentStyle(s, label).Render(string(label))
	}
	return meta
}
