// ABOUTME: Slash command registry and dispatch for chat modes
// ABOUTME: Provides 9 commands: clear, config, exit, help, persona, save, sessions, stats, version

package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mauromedda/pi-chat-agent-go/internal/config"
	"github.com/mauromedda/pi-chat-agent-go/internal/session"
)

// Command represents a slash command.
type Command struct {
	Name        string
	Description string
	Execute     func(ctx *CommandContext, args string) (string, error)
}

// CommandContext provides access to app state for commands.
// Callbacks are nilable; commands answer "not available" when one is nil.
type CommandContext struct {
	Version    string
	ConfigPath string // "" means builtin defaults
	SessionID  string

	BotName       func() string
	PersonaName   func() string
	PersonaNames  func() []string
	SwitchPersona func(name string) (string, error)

	StatsFn        func() string
	SaveTranscript func(path string) (string, error)

	ClearHistory func()
	ClearTUI     func()
	ExitFn       func()
	Farewell     func() string
}

// Registry holds all registered slash commands.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry creates a registry with all core commands registered.
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]*Command)}
	r.registerCoreCommands()
	return r
}

// Get returns a command by name.
// The second return value indicates whether the name was found.
func (r *Registry) Get(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all commands sorted by name for deterministic output.
func (r *Registry) List() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Dispatch parses a "/command args" input, looks up the command, and
// executes it. Unknown commands get a nearest-name suggestion when one is
// close enough.
func (r *Registry) Dispatch(ctx *CommandContext, input string) (string, error) {
	input = strings.TrimSpace(input)
	if !IsCommand(input) {
		return "", fmt.Errorf("not a command: %q", input)
	}

	raw := input[1:]
	parts := strings.SplitN(raw, " ", 2)
	name := parts[0]
	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	cmd, ok := r.commands[name]
	if !ok {
		if s := r.Suggest(name); s != "" {
			return "", fmt.Errorf("unknown command: /%s (did you mean /%s?)", name, s)
		}
		return "", fmt.Errorf("unknown command: /%s", name)
	}
	return cmd.Execute(ctx, args)
}

// IsCommand returns true if input starts with '/'.
func IsCommand(input string) bool {
	return len(input) > 0 && input[0] == '/'
}

// BestMatch returns the alphabetically first command name with the given
// prefix, or "" when none matches. Used for input ghost text.
func (r *Registry) BestMatch(prefix string) string {
	if prefix == "" {
		return ""
	}
	best := ""
	for name := range r.commands {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if best == "" || name < best {
			best = name
		}
	}
	return best
}

// Suggest returns the closest command name within edit distance 2, or ""
// when nothing is close.
func (r *Registry) Suggest(name string) string {
	best := ""
	bestDist := 3
	for cmdName := range r.commands {
		if d := levenshtein.ComputeDistance(name, cmdName); d < bestDist {
			best, bestDist = cmdName, d
		}
	}
	return best
}

// registerCoreCommands adds all built-in slash commands to the registry.
func (r *Registry) registerCoreCommands() {
	core := []*Command{
		{
			Name:        "help",
			Description: "Show available commands",
			Execute: func(_ *CommandContext, _ string) (string, error) {
				var b strings.Builder
				b.WriteString("Available commands:\n")
				for _, cmd := range r.List() {
					fmt.Fprintf(&b, "  /%s - %s\n", cmd.Name, cmd.Description)
				}
				b.WriteString("Anything else is sent to the bot. Try 'help' for its capabilities.")
				return b.String(), nil
			},
		},
		{
			Name:        "stats",
			Description: "Show conversation statistics",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.StatsFn == nil {
					return "Stats not available.", nil
				}
				return ctx.StatsFn(), nil
			},
		},
		{
			Name:        "save",
			Description: "Save the conversation transcript",
			Execute: func(ctx *CommandContext, args string) (string, error) {
				if ctx.SaveTranscript == nil {
					return "Save not available.", nil
				}
				path, err := ctx.SaveTranscript(args)
				if err != nil {
					return "", fmt.Errorf("saving transcript: %w", err)
				}
				return fmt.Sprintf("✓ Conversation saved to '%s'", path), nil
			},
		},
		{
			Name:        "sessions",
			Description: "List stored sessions, or show one by ID",
			Execute: func(_ *CommandContext, args string) (string, error) {
				if args != "" {
					return renderSessionDetail(args)
				}
				return renderSessionList()
			},
		},
		{
			Name:        "persona",
			Description: "Show or switch the bot persona",
			Execute: func(ctx *CommandContext, args string) (string, error) {
				if ctx.PersonaName == nil || ctx.PersonaNames == nil {
					return "Personas not available.", nil
				}
				if args == "" {
					return fmt.Sprintf(
						"Current persona: %s\nAvailable: %s",
						ctx.PersonaName(), strings.Join(ctx.PersonaNames(), ", "),
					), nil
				}
				if ctx.SwitchPersona == nil {
					return "Persona switch not available.", nil
				}
				displayName, err := ctx.SwitchPersona(args)
				if err != nil {
					return "", fmt.Errorf("switching persona: %w", err)
				}
				return fmt.Sprintf("Persona set to: %s (%s)", args, displayName), nil
			},
		},
		{
			Name:        "config",
			Description: "Show current configuration",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				configPath := ctx.ConfigPath
				if configPath == "" {
					configPath = "builtin defaults"
				}
				botName := ""
				if ctx.BotName != nil {
					botName = ctx.BotName()
				}
				personaName := ""
				if ctx.PersonaName != nil {
					personaName = ctx.PersonaName()
				}
				return fmt.Sprintf(
					"Config:   %s\nPersona:  %s\nBot name: %s\nSessions: %s\nVersion:  %s",
					configPath, personaName, botName, config.SessionsDir(), ctx.Version,
				), nil
			},
		},
		{
			Name:        "clear",
			Description: "Clear conversation history",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ClearHistory == nil {
					return "Clear not available.", nil
				}
				ctx.ClearHistory()
				if ctx.ClearTUI != nil {
					ctx.ClearTUI()
				}
				return "Conversation cleared.", nil
			},
		},
		{
			Name:        "version",
			Description: "Show the pichat version",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				return "pichat " + ctx.Version, nil
			},
		},
		{
			Name:        "exit",
			Description: "End the conversation",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				farewell := "Goodbye."
				if ctx.Farewell != nil {
					farewell = ctx.Farewell()
				}
				if ctx.ExitFn == nil {
					return "Exit not available.", nil
				}
				ctx.ExitFn()
				return farewell, nil
			},
		},
	}
	for _, cmd := range core {
		r.commands[cmd.Name] = cmd
	}
}

// renderSessionList formats the stored sessions newest first.
func renderSessionList() (string, error) {
	sessions, err := session.ListSessions()
	if err != nil {
		return "", fmt.Errorf("listing sessions: %w", err)
	}
	if len(sessions) == 0 {
		return "No stored sessions yet.", nil
	}

	var b strings.Builder
	b.WriteString("Stored sessions (newest first):\n")
	for _, info := range sessions {
		line := fmt.Sprintf("  %s  %s  %s", info.ID, info.StartedAt, info.BotName)
		if info.Persona != "" {
			line += " (" + info.Persona + ")"
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("Use /sessions <id> to view one.")
	return b.String(), nil
}

// renderSessionDetail formats the exchanges of one stored session.
func renderSessionDetail(id string) (string, error) {
	records, err := session.ReadRecords(id)
	if err != nil {
		return "", fmt.Errorf("reading session %s: %w", id, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Session %s:\n", id)
	exchanges := 0
	for _, rec := range records {
		if rec.Type != session.RecordExchange {
			continue
		}
		var ex session.ExchangeData
		if err := json.Unmarshal(rec.Data, &ex); err != nil {
			continue
		}
		exchanges++
		fmt.Fprintf(&b, "  You: %s\n  Bot: %s\n", ex.User, ex.Bot)
	}
	if exchanges == 0 {
		b.WriteString("  (no exchanges recorded)")
	} else {
		fmt.Fprintf(&b, "%d exchange(s).", exchanges)
	}
	return b.String(), nil
}
