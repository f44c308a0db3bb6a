// ABOUTME: All custom tea.Msg types for the Bubble Tea TUI
// ABOUTME: Engine replies, command results, and overlay lifecycle messages

package btea

import (
	"github.com/mauromedda/pi-chat-agent-go/internal/chat"
)

// --- Conversation turns (sent by the turn tea.Cmd) ---

// BotReplyMsg carries the engine's reply to one user utterance.
type BotReplyMsg struct {
	User  string
	Reply chat.Reply
	Exit  bool // utterance was an exit command; quit after rendering
}

// --- Overlay lifecycle ---

// DismissOverlayMsg closes the active overlay without a selection.
type DismissOverlayMsg struct{}

// CmdPaletteSelectMsg is returned when the user presses enter on a command.
type CmdPaletteSelectMsg struct{ Name string }

// CmdPaletteDismissMsg is returned when the user presses escape.
type CmdPaletteDismissMsg struct{}

// PersonaSelectedMsg is returned when the user picks a persona.
type PersonaSelectedMsg struct{ Name string }

// PersonaSelectorDismissMsg is returned when the persona picker is closed.
type PersonaSelectorDismissMsg struct{}

// SessionSelectedMsg is returned when the user picks a stored session.
type SessionSelectedMsg struct{ ID string }

// SessionSelectorDismissMsg is returned when the session browser is closed.
type SessionSelectorDismissMsg struct{}
