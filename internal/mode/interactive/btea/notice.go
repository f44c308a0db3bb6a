// ABOUTME: NoticeModel is a Bubble Tea leaf for command output and error text
// ABOUTME: Plain multi-line rendering, dimmed for notices and red for errors

package btea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// NoticeModel displays command output (help text, stats blocks, session
// listings) or an error. Unlike bot replies, notices skip markdown.
type NoticeModel struct {
	text  string
	isErr bool
	width int
}

// NewNoticeModel creates a NoticeModel for regular command output.
func NewNoticeModel(text string) NoticeModel {
	return NoticeModel{text: text}
}

// NewErrorNoticeModel creates a NoticeModel styled as an error.
func NewErrorNoticeModel(text string) NoticeModel {
	return NoticeModel{text: text, isErr: true}
}

// Init returns nil; no commands needed for a static notice.
func (m NoticeModel) Init() tea.Cmd {
	return nil
}

// Update handles tea.WindowSizeMsg to track terminal width.
func (m NoticeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
	}
	return m, nil
}

// View renders the notice text, one indented line per source line.
func (m NoticeModel) View() string {
	s := Styles()
	style := s.Muted
	if m.isErr {
		style = s.Error
	}

	var b strings.Builder
	b.WriteString("\n")
	lines := strings.Split(strings.TrimRight(m.text, "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  " + style.Render(line))
	}
	return b.String()
}
