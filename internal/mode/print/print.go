// ABOUTME: Non-interactive chat mode with text, JSON, and stream-JSON formatters
// ABOUTME: Answers one prompt or replays a whole conversation piped through stdin

package print

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mauromedda/pi-chat-agent-go/internal/chat"
	"github.com/mauromedda/pi-chat-agent-go/internal/commands"
	"github.com/mauromedda/pi-chat-agent-go/internal/config"
	"github.com/mauromedda/pi-chat-agent-go/internal/convo"
	"github.com/mauromedda/pi-chat-agent-go/internal/log"
	"github.com/mauromedda/pi-chat-agent-go/internal/session"
)

// Config configures non-interactive chat execution.
type Config struct {
	OutputFormat string // "text" (default), "json", "stream-json"
	Prompt       string // single utterance; "" reads lines from stdin
	ShowBanner   bool   // print the welcome banner before the loop
}

// Deps provides dependencies for print mode.
type Deps struct {
	Engine   *chat.Engine
	State    *convo.State
	Settings *config.Settings
	Registry *commands.Registry
	CmdCtx   *commands.CommandContext
	Log      *session.Session // nilable; exchanges are recorded when set
	Banner   string
	Farewell string
	Render   func(string) string // nilable reply renderer; nil keeps replies plain
	In       io.Reader           // nil means os.Stdin
	Out      io.Writer           // nil means os.Stdout
}

// Banner renders the welcome block shown when a conversation starts.
func Banner(botName, tagline string) string {
	rule := strings.Repeat("=", 60)
	return fmt.Sprintf(
		"%s\n  🤖 Welcome! I'm %s, %s.\n  Type 'quit' or 'exit' to end our conversation.\n  Type 'help' to see what I can do!\n  Type 'stats' to see conversation statistics!\n%s",
		rule, botName, tagline, rule,
	)
}

// Run executes the chat in non-interactive mode. With a prompt it answers
// once; otherwise it consumes stdin line by line until an exit command or
// EOF, honoring slash commands and the bare "stats" keyword.
func Run(cfg Config, deps Deps) error {
	if deps.In == nil {
		deps.In = os.Stdin
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "text"
	}

	f := newFormatter(cfg.OutputFormat, deps.Out, deps.Engine.BotName, deps.Render)

	if cfg.Prompt != "" {
		f.start()
		runTurn(deps, f, strings.TrimSpace(cfg.Prompt))
		f.end("")
		return nil
	}

	exitRequested := false
	if deps.CmdCtx != nil {
		prev := deps.CmdCtx.ExitFn
		deps.CmdCtx.ExitFn = func() {
			exitRequested = true
			if prev != nil {
				prev()
			}
		}
	}

	f.start()
	if cfg.ShowBanner && deps.Banner != "" {
		f.banner(deps.Banner)
	}

	// The farewell only prints when input ends without an explicit exit;
	// exit words already get a goodbye reply from the engine.
	exited := false

	scanner := bufio.NewScanner(deps.In)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if deps.Registry != nil && commands.IsCommand(line) {
			out, err := deps.Registry.Dispatch(deps.CmdCtx, line)
			if err != nil {
				f.err(err)
				continue
			}
			f.notice(out)
			if exitRequested {
				exited = true
				break
			}
			continue
		}

		if strings.ToLower(line) == "stats" {
			f.notice(deps.Engine.Stats(deps.State).String())
			continue
		}

		runTurn(deps, f, line)

		if deps.Settings != nil && deps.Settings.IsExitCommand(line) {
			exited = true
			break
		}
	}
	if err := scanner.Err(); err != nil {
		f.end("")
		return fmt.Errorf("reading input: %w", err)
	}

	if exited {
		f.end("")
	} else {
		f.end(deps.Farewell)
	}
	return nil
}

// runTurn produces one reply, records it, and hands it to the formatter.
func runTurn(deps Deps, f formatter, utterance string) {
	reply := deps.Engine.Respond(utterance, deps.State)
	deps.State.AddExchange(utterance, reply.Text)

	if deps.Log != nil {
		if err := deps.Log.AddExchange(session.ExchangeData{
			User:           utterance,
			Bot:            reply.Text,
			Intent:         reply.Intent,
			Score:          reply.Score,
			Sentiment:      string(reply.Sentiment.Label),
			SentimentScore: reply.Sentiment.Score,
		}); err != nil {
			log.Warn("recording exchange: %v", err)
		}
	}

	f.exchange(utterance, reply)
}

// formatter abstracts output formatting.
type formatter interface {
	start()
	banner(text string)
	exchange(user string, reply chat.Reply)
	notice(text string)
	err(e error)
	end(farewell string)
}

func newFormatter(format string, out io.Writer, botName func() string, render func(string) string) formatter {
	switch format {
	case "json":
		return &jsonFormatter{out: out, botName: botName}
	case "stream-json":
		return &streamJSONFormatter{out: out}
	default:
		return &textFormatter{out: out, botName: botName, render: render}
	}
}

// textFormatter writes plain replies, one per turn. An optional render
// hook lets a TTY caller pass the reply through a markdown renderer.
type textFormatter struct {
	out     io.Writer
	botName func() string
	render  func(string) string
}

func (f *textFormatter) start()             {}
func (f *textFormatter) banner(text string) { fmt.Fprintf(f.out, "%s\n", text) }
func (f *textFormatter) exchange(_ string, reply chat.Reply) {
	text := reply.Text
	if f.render != nil {
		text = f.render(text)
	}
	fmt.Fprintf(f.out, "%s: %s\n", f.botName(), text)
}
func (f *textFormatter) notice(text string) { fmt.Fprintf(f.out, "%s\n", text) }
func (f *textFormatter) err(e error)        { fmt.Fprintf(os.Stderr, "error: %v\n", e) }
func (f *textFormatter) end(farewell string) {
	if farewell != "" {
		fmt.Fprintf(f.out, "%s: %s\n", f.botName(), farewell)
	}
}

// jsonFormatter collects the conversation and writes one JSON object at
// the end.
type jsonFormatter struct {
	out       io.Writer
	botName   func() string
	exchanges []jsonExchange
	notices   []string
	errors    []string
}

type jsonExchange struct {
	User      string  `json:"user"`
	Bot       string  `json:"bot"`
	Intent    string  `json:"intent,omitempty"`
	Score     float64 `json:"score"`
	Sentiment string  `json:"sentiment"`
}

type jsonOutput struct {
	BotName   string         `json:"bot_name"`
	Exchanges []jsonExchange `json:"exchanges"`
	Notices   []string       `json:"notices,omitempty"`
	Errors    []string       `json:"errors,omitempty"`
}

func (f *jsonFormatter) start()             {}
func (f *jsonFormatter) banner(_ string)    {}
func (f *jsonFormatter) notice(text string) { f.notices = append(f.notices, text) }
func (f *jsonFormatter) err(e error)        { f.errors = append(f.errors, e.Error()) }
func (f *jsonFormatter) exchange(user string, reply chat.Reply) {
	f.exchanges = append(f.exchanges, jsonExchange{
		User:      user,
		Bot:       reply.Text,
		Intent:    reply.Intent,
		Score:     reply.Score,
		Sentiment: string(reply.Sentiment.Label),
	})
}
func (f *jsonFormatter) end(_ string) {
	out := jsonOutput{
		BotName:   f.botName(),
		Exchanges: f.exchanges,
		Notices:   f.notices,
		Errors:    f.errors,
	}
	data, _ := json.Marshal(out)
	fmt.Fprintln(f.out, string(data))
}

// streamJSONFormatter writes one JSON line per event.
type streamJSONFormatter struct {
	out io.Writer
}

type streamEvent struct {
	Type      string  `json:"type"`
	User      string  `json:"user,omitempty"`
	Bot       string  `json:"bot,omitempty"`
	Intent    string  `json:"intent,omitempty"`
	Score     float64 `json:"score,omitempty"`
	Sentiment string  `json:"sentiment,omitempty"`
	Text      string  `json:"text,omitempty"`
	Error     string  `json:"error,omitempty"`
}

func (f *streamJSONFormatter) start()          { f.write(streamEvent{Type: "start"}) }
func (f *streamJSONFormatter) banner(_ string) {}
func (f *streamJSONFormatter) exchange(user string, reply chat.Reply) {
	f.write(streamEvent{
		Type:      "exchange",
		User:      user,
		Bot:       reply.Text,
		Intent:    reply.Intent,
		Score:     reply.Score,
		Sentiment: string(reply.Sentiment.Label),
	})
}
func (f *streamJSONFormatter) notice(text string) { f.write(streamEvent{Type: "notice", Text: text}) }
func (f *streamJSONFormatter) err(e error)        { f.write(streamEvent{Type: "error", Error: e.Error()}) }
func (f *streamJSONFormatter) end(_ string)       { f.write(streamEvent{Type: "end"}) }

func (f *streamJSONFormatter) write(evt streamEvent) {
	data, _ := json.Marshal(evt)
	fmt.Fprintln(f.out, string(data))
}
