// ABOUTME: Entry point for the Bubble Tea interactive mode
// ABOUTME: Starts the program and prints the farewell after an interrupt

package btea

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive TUI and blocks until the conversation ends.
// The TUI renders on stderr so stdout stays clean for shell pipelines.
func Run(deps AppDeps) error {
	m := NewAppModel(deps)

	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}

	// Ctrl+C and Ctrl+D skip the engine's farewell reply, so say goodbye
	// here once the terminal is restored.
	if app, ok := final.(AppModel); ok && app.Interrupted() {
		farewell := "Goodbye."
		if deps.CmdCtx != nil && deps.CmdCtx.Farewell != nil {
			farewell = deps.CmdCtx.Farewell()
		}
		botName := "Bot"
		if deps.Engine != nil {
			botName = deps.Engine.BotName()
		}
		fmt.Printf("\n%s: %s\n", botName, farewell)
	}

	return nil
}
