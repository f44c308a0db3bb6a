// ABOUTME: InputModel is a single-line Bubble Tea chat input with kill ring and history recall
// ABOUTME: Value semantics; the kill ring and history are pointers shared across copies

package btea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/pi-chat-agent-go/internal/textwidth"
)

const killRingSize = 32

// killRing is a minimal Emacs-style ring buffer for killed (cut) text.
type killRing struct {
	entries []string
	pos     int
	size    int
}

func newKillRing() *killRing {
	return &killRing{
		entries: make([]string, 0, killRingSize),
		size:    killRingSize,
	}
}

func (kr *killRing) push(text string) {
	if len(kr.entries) < kr.size {
		kr.entries = append(kr.entries, text)
	} else {
		kr.entries[kr.pos] = text
	}
	kr.pos = (kr.pos + 1) % kr.size
}

func (kr *killRing) yank() string {
	if len(kr.entries) == 0 {
		return ""
	}
	idx := (kr.pos - 1 + len(kr.entries)) % len(kr.entries)
	return kr.entries[idx]
}

// inputHistory stores submitted lines for up/down recall.
type inputHistory struct {
	lines []string
}

// CursorMarker is the visible block cursor character.
const CursorMarker = "█"

// InputModel is a single-line text input with kill ring, submitted-line
// history recall, ghost-text completion, and a styled prompt prefix.
// Implements tea.Model.
type InputModel struct {
	runes       []rune
	col         int
	focused     bool
	ring        *killRing
	history     *inputHistory
	histIdx     int    // == len(history.lines) when editing the live line
	draft       []rune // live line saved while browsing history
	prompt      string
	promptWidth int
	placeholder string
	ghostText   string // dimmed completion shown after cursor
	width       int
}

// NewInputModel creates a new empty input.
func NewInputModel() InputModel {
	return InputModel{
		ring:    newKillRing(),
		history: &inputHistory{},
	}
}

// Init returns nil; no commands needed at startup.
func (m InputModel) Init() tea.Cmd {
	return nil
}

// Update handles key and window-size messages.
func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.dispatchKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// View renders the prompt, text, block cursor, and ghost text. Long lines
// scroll horizontally so the cursor stays visible.
func (m InputModel) View() string {
	s := Styles()

	if m.focused && len(m.runes) == 0 && m.placeholder != "" {
		return m.prompt + CursorMarker + s.Dim.Render(m.placeholder)
	}

	runes := m.runes
	col := m.col

	// Horizontal scroll: show the tail window that contains the cursor.
	if m.width > 0 {
		avail := m.width - m.promptWidth - 1
		if avail > 0 && len(runes) > avail {
			start := 0
			if col > avail {
				start = col - avail
			}
			end := min(start+avail, len(runes))
			runes = runes[start:end]
			col -= start
		}
	}

	var b strings.Builder
	b.WriteString(m.prompt)
	b.WriteString(string(runes[:col]))
	if m.focused {
		b.WriteString(CursorMarker)
	}
	b.WriteString(string(runes[col:]))
	if m.focused && col == len(runes) && m.ghostText != "" {
		b.WriteString(s.Dim.Render(m.ghostText))
	}
	return b.String()
}

// --- Public methods (value receivers, return new model) ---

// Text returns the current input content.
func (m InputModel) Text() string {
	return string(m.runes)
}

// SetText replaces the input content and places the cursor at the end.
func (m InputModel) SetText(s string) InputModel {
	m.runes = []rune(s)
	m.col = len(m.runes)
	return m
}

// SetFocused sets the focus state. Returns a new model.
func (m InputModel) SetFocused(focused bool) InputModel {
	m.focused = focused
	return m
}

// SetPrompt sets the prompt prefix. Returns a new model.
func (m InputModel) SetPrompt(p string) InputModel {
	m.prompt = p
	m.promptWidth = textwidth.VisibleWidth(p)
	return m
}

// SetPlaceholder sets dim hint text shown when empty and focused. Returns a new model.
func (m InputModel) SetPlaceholder(p string) InputModel {
	m.placeholder = p
	return m
}

// IsEmpty reports whether the input contains no text.
func (m InputModel) IsEmpty() bool {
	return len(m.runes) == 0
}

// SetGhostText sets dimmed completion text shown after the cursor.
func (m InputModel) SetGhostText(g string) InputModel {
	m.ghostText = g
	return m
}

// GhostText returns the current ghost text.
func (m InputModel) GhostText() string {
	return m.ghostText
}

// Push records text as a submitted line and clears the input. Returns a
// new model ready for the next utterance.
func (m InputModel) Push(text string) InputModel {
	if text != "" {
		m.history.lines = append(m.history.lines, text)
	}
	m.runes = nil
	m.col = 0
	m.draft = nil
	m.histIdx = len(m.history.lines)
	m.ghostText = ""
	return m
}

// --- Key dispatch ---

func (m *InputModel) dispatchKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.insertRune(r)
		}
	case tea.KeySpace:
		m.insertRune(' ')
	case tea.KeyTab:
		m.acceptGhostText()
	case tea.KeyBackspace:
		m.backspace()
	case tea.KeyDelete:
		m.deleteForward()
	case tea.KeyLeft:
		if m.col > 0 {
			m.col--
		}
	case tea.KeyRight:
		if m.col < len(m.runes) {
			m.col++
		}
	case tea.KeyUp:
		m.recallPrev()
	case tea.KeyDown:
		m.recallNext()
	case tea.KeyHome, tea.KeyCtrlA:
		m.col = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		m.col = len(m.runes)
	case tea.KeyCtrlK:
		m.killToEnd()
	case tea.KeyCtrlU:
		m.killToStart()
	case tea.KeyCtrlY:
		m.yank()
	}
}

// acceptGhostText appends the ghost completion and clears it.
func (m *InputModel) acceptGhostText() {
	if m.ghostText == "" {
		return
	}
	m.insertText(m.ghostText)
	m.ghostText = ""
}

// --- Editing operations ---

func (m *InputModel) insertRune(r rune) {
	line := m.runes
	newLine := make([]rune, len(line)+1)
	copy(newLine, line[:m.col])
	newLine[m.col] = r
	copy(newLine[m.col+1:], line[m.col:])
	m.runes = newLine
	m.col++
}

func (m *InputModel) insertText(text string) {
	for _, r := range text {
		m.insertRune(r)
	}
}

func (m *InputModel) backspace() {
	if m.col == 0 {
		return
	}
	m.runes = append(m.runes[:m.col-1], m.runes[m.col:]...)
	m.col--
}

func (m *InputModel) deleteForward() {
	if m.col >= len(m.runes) {
		return
	}
	m.runes = append(m.runes[:m.col], m.runes[m.col+1:]...)
}

func (m *InputModel) killToEnd() {
	if m.col >= len(m.runes) {
		return
	}
	m.ring.push(string(m.runes[m.col:]))
	m.runes = m.runes[:m.col]
}

func (m *InputModel) killToStart() {
	if m.col == 0 {
		return
	}
	m.ring.push(string(m.runes[:m.col]))
	m.runes = append([]rune{}, m.runes[m.col:]...)
	m.col = 0
}

func (m *InputModel) yank() {
	yanked := m.ring.yank()
	if yanked == "" {
		return
	}
	m.insertText(yanked)
}

// --- History recall ---

func (m *InputModel) recallPrev() {
	if len(m.history.lines) == 0 || m.histIdx == 0 {
		return
	}
	if m.histIdx == len(m.history.lines) {
		m.draft = append([]rune{}, m.runes...)
	}
	m.histIdx--
	m.runes = []rune(m.history.lines[m.histIdx])
	m.col = len(m.runes)
}

func (m *InputModel) recallNext() {
	if m.histIdx >= len(m.history.lines) {
		return
	}
	m.histIdx++
	if m.histIdx == len(m.history.lines) {
		m.runes = append([]rune{}, m.draft...)
	} else {
		m.runes = []rune(m.history.lines[m.histIdx])
	}
	m.col = len(m.runes)
}
