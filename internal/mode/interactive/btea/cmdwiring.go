// ABOUTME: Command wiring: adapts the shared CommandContext for TUI dispatch
// ABOUTME: Uses cmdSideEffects to capture quit/clear signals, applied after Dispatch returns

package btea

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/pi-chat-agent-go/internal/commands"
)

// cmdSideEffects captures signals from command callbacks that need to
// mutate AppModel after Dispatch returns.
type cmdSideEffects struct {
	quit     bool
	clearTUI bool
}

// commandContext copies the shared CommandContext and rebinds the
// TUI-owned callbacks to a fresh cmdSideEffects. The shared context's
// closures (persona switching, stats, transcripts) read live state, so
// the copy stays current without rebuilding them.
func (m AppModel) commandContext() (*commands.CommandContext, *cmdSideEffects) {
	effects := &cmdSideEffects{}

	ctx := &commands.CommandContext{}
	if m.deps.CmdCtx != nil {
		*ctx = *m.deps.CmdCtx
	}

	ctx.ExitFn = func() {
		effects.quit = true
	}
	ctx.ClearTUI = func() {
		effects.clearTUI = true
	}

	return ctx, effects
}

// applyEffects reads the side-effect flags and mutates AppModel accordingly.
// Returns the updated model and optional tea.Cmd.
func (m AppModel) applyEffects(effects *cmdSideEffects, result string, err error) (AppModel, tea.Cmd) {
	if err != nil {
		m.content = append(m.content, NewErrorNoticeModel(err.Error()))
		return m, nil
	}

	if effects.clearTUI {
		m.content = m.content[:0]
	}

	if result != "" {
		m.content = append(m.content, m.sizedNotice(result))
	}

	m = m.refreshFooter()

	if effects.quit {
		// Render the farewell notice in the final frame, then stop.
		return m, tea.Quit
	}
	return m, nil
}

// sizedNotice builds a NoticeModel pre-sized to the current width.
func (m AppModel) sizedNotice(text string) NoticeModel {
	n := NewNoticeModel(text)
	n.width = m.width
	return n
}
