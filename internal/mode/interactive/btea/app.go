// ABOUTME: Root AppModel wiring all sub-models for the Bubble Tea interactive TUI
// ABOUTME: Handles message routing, overlay management, turn execution, and key dispatch

package btea

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/pi-chat-agent-go/internal/commands"
	"github.com/mauromedda/pi-chat-agent-go/internal/log"
	"github.com/mauromedda/pi-chat-agent-go/internal/sentiment"
	"github.com/mauromedda/pi-chat-agent-go/internal/session"
)

// AppModel is the root Bubble Tea model for the interactive TUI.
type AppModel struct {
	// State
	busy          bool // a turn is in flight; submissions are ignored
	interrupted   bool // exited via ctrl+c/ctrl+d; Run prints the farewell
	width, height int
	lastSentiment sentiment.Label

	// Sub-models (always present)
	input  InputModel
	footer FooterModel

	// Content: ordered list of display models
	content []tea.Model // WelcomeModel, UserMsgModel, BotMsgModel, NoticeModel

	// Overlay (nil = no overlay)
	overlay tea.Model

	// Dependencies
	deps AppDeps

	// Shared glamour renderer; caches accumulate across replies
	markdown *MarkdownRenderer

	// Cached separator string (recomputed only on WindowSizeMsg)
	cachedSep string
}

// NewAppModel creates an AppModel wired with the given dependencies.
func NewAppModel(deps AppDeps) AppModel {
	input := NewInputModel()
	input = input.SetFocused(true)
	input = input.SetPrompt("❯ ")
	input = input.SetPlaceholder("Say hello, or type / for commands")

	personaName := ""
	tagline := "your AI assistant"
	if deps.Personas != nil {
		if p := deps.Personas.ActiveProfile(); p != nil {
			personaName = p.Name
			tagline = p.Tagline
		}
	}

	sessionID := ""
	if deps.Log != nil {
		sessionID = deps.Log.ID
	}

	botName := ""
	if deps.Engine != nil {
		botName = deps.Engine.BotName()
	}

	footer := NewFooterModel().
		WithBotName(botName).
		WithPersona(personaName).
		WithSessionID(sessionID)
	if deps.State != nil {
		footer = footer.WithExchanges(deps.State.Len())
	}

	welcome := NewWelcomeModel(botName, tagline, personaName, deps.Version)

	return AppModel{
		input:    input,
		footer:   footer,
		content:  []tea.Model{welcome},
		deps:     deps,
		markdown: NewMarkdownRenderer(),
	}
}

// Init returns nil; the TUI waits for input.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Interrupted reports whether the session ended via ctrl+c or ctrl+d.
func (m AppModel) Interrupted() bool {
	return m.interrupted
}

// Update routes messages to the appropriate handler.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// --- Layout ---
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.cachedSep = strings.Repeat("─", msg.Width)
		m = m.propagateSize(msg)
		return m, nil

	// --- Overlay lifecycle ---
	case DismissOverlayMsg:
		m.overlay = nil
		return m, nil

	// --- Overlay result messages (always handled by root, even when overlay is active) ---
	case CmdPaletteSelectMsg:
		m.overlay = nil
		// Place command text in input for user to review/submit (not auto-submit)
		m.input = m.input.SetFocused(true).SetText("/" + msg.Name)
		return m, nil

	case CmdPaletteDismissMsg:
		m.overlay = nil
		m.input = m.input.SetFocused(true)
		return m, nil

	case PersonaSelectedMsg:
		m.overlay = nil
		m.input = m.input.SetFocused(true)
		return m.switchPersona(msg.Name)

	case PersonaSelectorDismissMsg:
		m.overlay = nil
		m.input = m.input.SetFocused(true)
		return m, nil

	case SessionSelectedMsg:
		m.overlay = nil
		m.input = m.input.SetFocused(true)
		ctx, effects := m.commandContext()
		result, err := m.deps.Registry.Dispatch(ctx, "/sessions "+msg.ID)
		return m.applyEffects(effects, result, err)

	case SessionSelectorDismissMsg:
		m.overlay = nil
		m.input = m.input.SetFocused(true)
		return m, nil

	default:
		// Route to overlay if active (key presses, etc.)
		if m.overlay != nil {
			// When the command palette is active, mirror typed/deleted
			// chars to the input so its text stays in sync.
			if _, isPalette := m.overlay.(CmdPaletteModel); isPalette {
				if keyMsg, isKey := msg.(tea.KeyMsg); isKey {
					if keyMsg.Type == tea.KeyRunes || keyMsg.Type == tea.KeyBackspace {
						updated, _ := m.input.Update(keyMsg)
						m.input = updated.(InputModel)
					}
				}
			}
			return m.updateOverlay(msg)
		}
	}

	// Non-overlay messages (only reached when no overlay is active)
	switch msg := msg.(type) {
	case BotReplyMsg:
		return m.handleBotReply(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// View renders the full TUI layout.
func (m AppModel) View() string {
	var sections []string

	for _, c := range m.content {
		sections = append(sections, c.View())
	}

	s := Styles()

	// The separator above the input reflects the sentiment of the last
	// reply.
	sepColor := s.Border
	switch m.lastSentiment {
	case sentiment.Positive:
		sepColor = s.Success
	case sentiment.Negative:
		sepColor = s.Error
	}

	sep := m.cachedSep
	sections = append(sections,
		sepColor.Render(sep),
		m.input.View(),
	)

	sections = append(sections,
		s.Border.Render(sep),
		m.footer.View(),
	)

	main := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.overlay != nil {
		return main + "\n" + m.overlay.View()
	}

	return main
}

// --- Key handling ---

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d":
		m.interrupted = true
		return m, tea.Quit

	case "ctrl+p":
		m.overlay = m.buildPersonaSelector()
		return m, nil

	case "ctrl+r":
		sessions, err := session.ListSessions()
		if err != nil {
			log.Warn("listing sessions: %v", err)
		}
		sel := NewSessionSelectorModel(sessions)
		sel.width = m.width
		m.overlay = sel
		return m, nil

	case "enter":
		if m.busy || m.input.IsEmpty() {
			return m, nil
		}
		return m.submit(m.input.Text())

	case "tab":
		if m.input.GhostText() != "" {
			updated, cmd := m.input.Update(msg)
			m.input = updated.(InputModel)
			return m, cmd
		}
		return m, nil

	default:
		// Check for "/" to open the command palette
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] == '/' && m.input.IsEmpty() {
			m.input = m.input.SetText("/")
			m.overlay = m.buildCmdPalette()
			return m, nil
		}
		// Route to input
		updated, cmd := m.input.Update(msg)
		m.input = updated.(InputModel)
		// Compute ghost text after each input update
		m.input = m.input.SetGhostText(m.computeGhostText())
		return m, cmd
	}
}

// --- Submission ---

func (m AppModel) submit(text string) (tea.Model, tea.Cmd) {
	m.input = m.input.Push(text)

	text = strings.TrimSpace(text)
	if text == "" {
		return m, nil
	}

	if commands.IsCommand(text) {
		um := NewUserMsgModel(text)
		um.width = m.width
		m.content = append(m.content, um)

		ctx, effects := m.commandContext()
		result, err := m.deps.Registry.Dispatch(ctx, text)
		return m.applyEffects(effects, result, err)
	}

	if strings.ToLower(text) == "stats" {
		um := NewUserMsgModel(text)
		um.width = m.width
		m.content = append(m.content, um)
		m.content = append(m.content, m.sizedNotice(m.deps.Engine.Stats(m.deps.State).String()))
		return m, nil
	}

	um := NewUserMsgModel(text)
	um.width = m.width
	m.content = append(m.content, um)

	m.busy = true
	return m, m.turnCmd(text)
}

// turnCmd runs one engine turn off the Update loop and reports the reply.
// Only one turn is ever in flight; the busy flag blocks further submits.
func (m AppModel) turnCmd(text string) tea.Cmd {
	deps := m.deps
	exit := deps.Settings != nil && deps.Settings.IsExitCommand(text)

	return func() tea.Msg {
		reply := deps.Engine.Respond(text, deps.State)
		deps.State.AddExchange(text, reply.Text)

		if deps.Log != nil {
			if err := deps.Log.AddExchange(session.ExchangeData{
				User:           text,
				Bot:            reply.Text,
				Intent:         reply.Intent,
				Score:          reply.Score,
				Sentiment:      string(reply.Sentiment.Label),
				SentimentScore: reply.Sentiment.Score,
			}); err != nil {
				log.Warn("recording exchange: %v", err)
			}
		}

		return BotReplyMsg{User: text, Reply: reply, Exit: exit}
	}
}

func (m AppModel) handleBotReply(msg BotReplyMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.lastSentiment = msg.Reply.Sentiment.Label

	bm := NewBotMsgModel(msg.Reply, m.markdown)
	bm.width = m.width
	m.content = append(m.content, bm)

	m.footer = m.footer.WithSentiment(msg.Reply.Sentiment)
	m = m.refreshFooter()

	if msg.Exit {
		// The farewell reply renders in the final frame.
		return m, tea.Quit
	}
	return m, nil
}

// --- Internal helpers ---

func (m AppModel) switchPersona(name string) (tea.Model, tea.Cmd) {
	if m.deps.CmdCtx == nil || m.deps.CmdCtx.SwitchPersona == nil {
		return m, nil
	}
	displayName, err := m.deps.CmdCtx.SwitchPersona(name)
	if err != nil {
		m.content = append(m.content, NewErrorNoticeModel(err.Error()))
		return m, nil
	}
	m.content = append(m.content, m.sizedNotice(fmt.Sprintf("Persona set to: %s (%s)", name, displayName)))
	m = m.refreshFooter()
	return m, nil
}

// refreshFooter re-reads the live state the footer displays.
func (m AppModel) refreshFooter() AppModel {
	if m.deps.Engine != nil {
		m.footer = m.footer.WithBotName(m.deps.Engine.BotName())
	}
	if m.deps.State != nil {
		m.footer = m.footer.
			WithExchanges(m.deps.State.Len()).
			WithContextTag(m.deps.State.Context())
	}
	if m.deps.Personas != nil {
		if p := m.deps.Personas.ActiveProfile(); p != nil {
			m.footer = m.footer.WithPersona(p.Name)
		}
	}
	return m
}

func (m AppModel) propagateSize(msg tea.WindowSizeMsg) AppModel {
	for i := range m.content {
		updated, _ := m.content[i].Update(msg)
		m.content[i] = updated
	}
	updated, _ := m.input.Update(msg)
	m.input = updated.(InputModel)
	fUpdated, _ := m.footer.Update(msg)
	m.footer = fUpdated.(FooterModel)
	if m.overlay != nil {
		oUpdated, _ := m.overlay.Update(msg)
		m.overlay = oUpdated
	}
	return m
}

func (m AppModel) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.overlay.Update(msg)
	m.overlay = updated
	return m, cmd
}

// computeGhostText returns the completion suffix for the current input text.
// Only active when text starts with "/" and has no spaces.
func (m AppModel) computeGhostText() string {
	text := m.input.Text()
	if !strings.HasPrefix(text, "/") || strings.Contains(text, " ") {
		return ""
	}
	prefix := text[1:]
	if prefix == "" {
		return ""
	}
	if m.deps.Registry == nil {
		return ""
	}
	match := m.deps.Registry.BestMatch(prefix)
	if match == "" || !strings.HasPrefix(match, prefix) {
		return ""
	}
	return match[len(prefix):]
}

func (m AppModel) buildCmdPalette() CmdPaletteModel {
	var entries []CommandEntry
	if m.deps.Registry != nil {
		cmdList := m.deps.Registry.List()
		entries = make([]CommandEntry, len(cmdList))
		for i, c := range cmdList {
			entries[i] = CommandEntry{Name: c.Name, Description: c.Description}
		}
	}
	p := NewCmdPaletteModel(entries)
	p.width = m.width
	return p
}

func (m AppModel) buildPersonaSelector() PersonaSelectorModel {
	var items []ListItem
	if m.deps.Personas != nil {
		for _, name := range m.deps.Personas.ProfileNames() {
			item := ListItem{Label: name}
			if p, ok := m.deps.Personas.Profile(name); ok {
				item.Description = p.Tagline
			}
			items = append(items, item)
		}
	}
	sel := NewPersonaSelectorModel(items)
	sel.width = m.width
	return sel
}
