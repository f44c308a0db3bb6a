// ABOUTME: CLI entry point for the pichat conversational bot
// ABOUTME: Parses flags, loads config and personas, dispatches to print or TUI mode

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// termfix must be imported before any package that imports bubbletea.
	// It sets lipgloss.SetHasDarkBackground(true) in its init(), preventing
	// BubbleTea's tea_init.go from sending OSC 10/11 terminal queries whose
	// async responses leak garbage into the input line.
	_ "github.com/mauromedda/pi-chat-agent-go/internal/termfix"

	"github.com/charmbracelet/glamour"
	"github.com/mauromedda/pi-chat-agent-go/internal/chat"
	"github.com/mauromedda/pi-chat-agent-go/internal/commands"
	"github.com/mauromedda/pi-chat-agent-go/internal/config"
	"github.com/mauromedda/pi-chat-agent-go/internal/convo"
	pilog "github.com/mauromedda/pi-chat-agent-go/internal/log"
	"github.com/mauromedda/pi-chat-agent-go/internal/mode/interactive/btea"
	"github.com/mauromedda/pi-chat-agent-go/internal/mode/print"
	"github.com/mauromedda/pi-chat-agent-go/internal/persona"
	"github.com/mauromedda/pi-chat-agent-go/internal/session"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("pichat %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run performs the full initialization sequence and dispatches to the
// selected mode.
func run(args cliArgs) error {
	if args.logLevel != "" {
		lvl, err := pilog.ParseLevel(args.logLevel)
		if err != nil {
			return err
		}
		pilog.SetLevel(lvl)
	}

	if args.sessionsDir != "" {
		config.SetSessionsDir(args.sessionsDir)
	}

	// The config file and the persona profile directory load concurrently;
	// neither depends on the other.
	var (
		cfg      *config.Settings
		personas *persona.Engine
	)
	var g errgroup.Group
	g.Go(func() error {
		s, err := config.Load(args.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = s
		return nil
	})
	g.Go(func() error {
		p, err := persona.NewEngine(config.PersonasDir())
		if err != nil {
			return fmt.Errorf("loading personas: %w", err)
		}
		personas = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if args.personaName != "" {
		if _, err := personas.SetProfile(args.personaName); err != nil {
			return err
		}
	}

	eng, err := chat.FromSettings(cfg, resolveBotName(args, cfg, personas), nil)
	if err != nil {
		return err
	}
	applyPersonaFallbacks(eng, cfg, personas.ActiveProfile())

	st := convo.New()
	registry := commands.NewRegistry()

	// Bare arguments act as an inline prompt, same as -p.
	prompt := args.prompt
	if prompt == "" && len(args.remaining()) > 0 {
		prompt = strings.Join(args.remaining(), " ")
	}

	// One-shot prompts skip the session log; conversations get one.
	var sessLog *session.Session
	if prompt == "" {
		sessLog, err = session.NewSession(eng.BotName(), personas.ActiveProfile().Name)
		if err != nil {
			pilog.Warn("session log disabled: %v", err)
			sessLog = nil
		}
	}

	sessionID := ""
	if sessLog != nil {
		sessionID = sessLog.ID
	}
	cmdCtx := buildCommandContext(args, eng, st, personas, cfg, sessionID)

	defer func() {
		if sessLog != nil {
			if err := sessLog.End(st.Len()); err != nil {
				pilog.Warn("closing session log: %v", err)
			}
		}
		if args.save && st.Len() > 0 {
			path, err := cmdCtx.SaveTranscript("")
			if err != nil {
				pilog.Error("saving transcript: %v", err)
				return
			}
			fmt.Fprintf(os.Stderr, "Conversation saved to %s\n", path)
		}
	}()

	// -p "prompt" shorthand: answer one utterance and exit.
	if prompt != "" {
		return print.Run(print.Config{
			OutputFormat: args.format,
			Prompt:       prompt,
		}, print.Deps{
			Engine:   eng,
			State:    st,
			Settings: cfg,
			Registry: registry,
			CmdCtx:   cmdCtx,
			Render:   stdoutRenderer(),
		})
	}

	// Print mode: one reply per stdin line. Piped stdin cannot host the
	// TUI, so it falls back here too.
	if args.print || !term.IsTerminal(int(os.Stdin.Fd())) {
		banner := ""
		if term.IsTerminal(int(os.Stdout.Fd())) {
			banner = print.Banner(eng.BotName(), personas.ActiveProfile().Tagline)
		}
		return print.Run(print.Config{
			OutputFormat: args.format,
			ShowBanner:   banner != "",
		}, print.Deps{
			Engine:   eng,
			State:    st,
			Settings: cfg,
			Registry: registry,
			CmdCtx:   cmdCtx,
			Log:      sessLog,
			Banner:   banner,
			Farewell: personas.ActiveProfile().Farewell,
			Render:   stdoutRenderer(),
		})
	}

	// Interactive mode (default)
	return btea.Run(btea.AppDeps{
		Engine:   eng,
		State:    st,
		Settings: cfg,
		Registry: registry,
		CmdCtx:   cmdCtx,
		Personas: personas,
		Log:      sessLog,
		Version:  version,
	})
}

// resolveBotName picks the bot name from CLI flag, config, or the active
// persona, in that order.
func resolveBotName(args cliArgs, cfg *config.Settings, personas *persona.Engine) string {
	if args.name != "" {
		return args.name
	}
	if cfg.BotSettings != nil && cfg.BotSettings.DefaultName != "" {
		return cfg.BotSettings.DefaultName
	}
	return personas.ActiveProfile().DisplayName
}

// applyPersonaFallbacks layers the unknown-reply pools: builtin defaults,
// then the persona's buckets, then explicit config overrides on top.
func applyPersonaFallbacks(eng *chat.Engine, cfg *config.Settings, p *persona.Profile) {
	f := chat.DefaultFallbacks()
	if p != nil {
		if len(p.Fallbacks.Positive) > 0 {
			f.Positive = p.Fallbacks.Positive
		}
		if len(p.Fallbacks.Negative) > 0 {
			f.Negative = p.Fallbacks.Negative
		}
		if len(p.Fallbacks.Neutral) > 0 {
			f.Neutral = p.Fallbacks.Neutral
		}
	}
	if bs := cfg.BotSettings; bs != nil {
		if len(bs.UnknownResponsePositive) > 0 {
			f.Positive = bs.UnknownResponsePositive
		}
		if len(bs.UnknownResponseNegative) > 0 {
			f.Negative = bs.UnknownResponseNegative
		}
		if len(bs.UnknownResponseNeutral) > 0 {
			f.Neutral = bs.UnknownResponseNeutral
		}
	}
	eng.SetFallbacks(f)
}

// buildCommandContext wires the slash commands to the live engine, state,
// and persona registry. ClearTUI and ExitFn stay nil here; each mode binds
// its own.
func buildCommandContext(args cliArgs, eng *chat.Engine, st *convo.State, personas *persona.Engine, cfg *config.Settings, sessionID string) *commands.CommandContext {
	return &commands.CommandContext{
		Version:    version,
		ConfigPath: args.configPath,
		SessionID:  sessionID,

		BotName: eng.BotName,
		PersonaName: func() string {
			return personas.ActiveProfile().Name
		},
		PersonaNames: personas.ProfileNames,
		SwitchPersona: func(name string) (string, error) {
			p, err := personas.SetProfile(name)
			if err != nil {
				return "", err
			}
			eng.SetBotName(p.DisplayName)
			applyPersonaFallbacks(eng, cfg, p)
			return p.DisplayName, nil
		},

		StatsFn: func() string {
			return eng.Stats(st).String()
		},
		SaveTranscript: transcriptSaver(eng, st),

		ClearHistory: st.Reset,
		Farewell: func() string {
			return personas.ActiveProfile().Farewell
		},
	}
}

// transcriptSaver returns the /save implementation. An empty path gets a
// timestamped default under the transcripts directory.
func transcriptSaver(eng *chat.Engine, st *convo.State) func(string) (string, error) {
	return func(path string) (string, error) {
		if path == "" {
			dir := config.TranscriptsDir()
			if err := config.EnsureDir(dir); err != nil {
				return "", fmt.Errorf("creating transcripts dir: %w", err)
			}
			name := fmt.Sprintf("conversation_%s.json", time.Now().Format("20060102_150405"))
			path = filepath.Join(dir, name)
		}
		if err := session.SaveTranscript(path, eng.BotName(), st, nil); err != nil {
			return "", err
		}
		return path, nil
	}
}

// stdoutRenderer returns a glamour-backed reply renderer when stdout is a
// terminal. Pipes get nil, keeping replies plain for shell consumption.
func stdoutRenderer() func(string) string {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil
	}

	return func(text string) string {
		out, err := r.Render(text)
		if err != nil {
			return text
		}
		return strings.TrimSpace(out)
	}
}
