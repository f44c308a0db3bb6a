// ABOUTME: Tests for the root AppModel message routing and turn flow
// ABOUTME: Drives the model with key and reply messages; no real terminal

package btea

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/pi-chat-agent-go/internal/action"
	"github.com/mauromedda/pi-chat-agent-go/internal/chat"
	"github.com/mauromedda/pi-chat-agent-go/internal/commands"
	"github.com/mauromedda/pi-chat-agent-go/internal/config"
	"github.com/mauromedda/pi-chat-agent-go/internal/convo"
	"github.com/mauromedda/pi-chat-agent-go/internal/intent"
	"github.com/mauromedda/pi-chat-agent-go/internal/persona"
	"github.com/mauromedda/pi-chat-agent-go/internal/sentiment"
	"github.com/mauromedda/pi-chat-agent-go/internal/template"
)

var _ tea.Model = AppModel{}

// testAppDeps builds deterministic dependencies for driving the TUI model.
func testAppDeps(t *testing.T) AppDeps {
	t.Helper()

	registry := action.NewRegistry()
	catalog, err := intent.Load([]intent.Definition{
		{Name: "greeting", Patterns: []string{`\bhello\b`}, Responses: []string{"Hi there!"}},
		{Name: "farewell", Patterns: []string{`\b(quit|bye)\b`}, Responses: []string{"Goodbye!"}},
	}, registry.Known)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	eng := chat.New(chat.Config{
		Catalog:  catalog,
		Registry: registry,
		Analyzer: sentiment.Default(),
		Filler:   &template.Filler{BotName: "Bot"},
		Rand:     rand.New(rand.NewSource(1)),
	})

	personas, err := persona.NewEngine("")
	if err != nil {
		t.Fatalf("building persona engine: %v", err)
	}

	st := convo.New()
	ctx := &commands.CommandContext{
		Version:      "1.2.3",
		BotName:      eng.BotName,
		PersonaName:  func() string { return personas.ActiveProfile().Name },
		PersonaNames: personas.ProfileNames,
		SwitchPersona: func(name string) (string, error) {
			p, err := personas.SetProfile(name)
			if err != nil {
				return "", err
			}
			eng.SetBotName(p.DisplayName)
			return p.DisplayName, nil
		},
		StatsFn:      func() string { return eng.Stats(st).String() },
		ClearHistory: st.Reset,
	}

	return AppDeps{
		Engine:   eng,
		State:    st,
		Settings: config.Defaults(),
		Registry: commands.NewRegistry(),
		CmdCtx:   ctx,
		Personas: personas,
		Version:  "1.2.3",
	}
}

func appKey(t *testing.T, m AppModel, msg tea.KeyMsg) (AppModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(AppModel), cmd
}

func appType(t *testing.T, m AppModel, s string) AppModel {
	t.Helper()
	updated, _ := appKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return updated
}

func TestAppModel_InitialView(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	got := m.View()

	wantParts := []string{
		"Welcome! I'm Bot, your AI assistant.",
		"persona: default",
		"0 exchanges",
		"Say hello, or type / for commands",
	}
	for _, part := range wantParts {
		if !strings.Contains(got, part) {
			t.Errorf("View() missing %q in output:\n%s", part, got)
		}
	}
}

func TestAppModel_SubmitTurnFlow(t *testing.T) {
	t.Parallel()

	deps := testAppDeps(t)
	m := NewAppModel(deps)

	m = appType(t, m, "hello")
	m, cmd := appKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on non-empty input returned nil cmd")
	}
	if !m.busy {
		t.Error("model not busy while turn is in flight")
	}
	if got := m.View(); !strings.Contains(got, "> hello") {
		t.Errorf("View() missing echoed user message:\n%s", got)
	}

	reply, ok := cmd().(BotReplyMsg)
	if !ok {
		t.Fatalf("turn cmd returned %T, want BotReplyMsg", cmd())
	}
	if got, want := reply.Reply.Text, "Hi there!"; got != want {
		t.Errorf("reply text = %q, want %q", got, want)
	}
	if reply.Exit {
		t.Error("greeting flagged as exit")
	}

	updated, quitCmd := m.Update(reply)
	m = updated.(AppModel)
	if quitCmd != nil {
		t.Error("non-exit reply returned a cmd")
	}
	if m.busy {
		t.Error("model still busy after reply")
	}

	got := m.View()
	for _, part := range []string{"Hi there!", "[greeting]", "1 exchanges"} {
		if !strings.Contains(got, part) {
			t.Errorf("View() missing %q in output:\n%s", part, got)
		}
	}
	if deps.State.Len() != 1 {
		t.Errorf("state has %d exchanges, want 1", deps.State.Len())
	}
}

func TestAppModel_BusyBlocksSecondSubmit(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	m = appType(t, m, "hello")
	m, _ = appKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	contentLen := len(m.content)
	m = appType(t, m, "hello again")
	m, cmd := appKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("enter while busy returned a cmd")
	}
	if len(m.content) != contentLen {
		t.Errorf("content grew to %d while busy, want %d", len(m.content), contentLen)
	}
}

func TestAppModel_ExitWordQuitsAfterReply(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	m = appType(t, m, "quit")
	m, cmd := appKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter returned nil cmd")
	}

	reply, ok := cmd().(BotReplyMsg)
	if !ok {
		t.Fatalf("turn cmd returned %T, want BotReplyMsg", cmd())
	}
	if !reply.Exit {
		t.Error("exit word not flagged for quit")
	}

	updated, quitCmd := m.Update(reply)
	m = updated.(AppModel)
	if quitCmd == nil {
		t.Fatal("exit reply returned nil cmd")
	}
	if _, ok := quitCmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", quitCmd())
	}
	// The farewell reply renders in the final frame.
	if got := m.View(); !strings.Contains(got, "Goodbye!") {
		t.Errorf("View() missing farewell reply:\n%s", got)
	}
	if m.Interrupted() {
		t.Error("clean exit flagged as interrupted")
	}
}

func TestAppModel_CtrlCInterrupts(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	m, cmd := appKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if !m.Interrupted() {
		t.Error("Interrupted() = false after ctrl+c")
	}
	if cmd == nil {
		t.Fatal("ctrl+c returned nil cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestAppModel_SlashOpensPalette(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	m = appType(t, m, "/")

	if m.overlay == nil {
		t.Fatal("overlay not opened by /")
	}
	if _, ok := m.overlay.(CmdPaletteModel); !ok {
		t.Fatalf("overlay is %T, want CmdPaletteModel", m.overlay)
	}
	if got, want := m.input.Text(), "/"; got != want {
		t.Errorf("input text = %q, want %q", got, want)
	}
	if got := m.View(); !strings.Contains(got, "/help") {
		t.Errorf("View() missing palette entries:\n%s", got)
	}
}

func TestAppModel_PaletteMirrorsTypingAndSelects(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	m = appType(t, m, "/")
	m = appType(t, m, "ver")

	if got, want := m.input.Text(), "/ver"; got != want {
		t.Errorf("input text = %q, want %q", got, want)
	}

	m, cmd := appKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter in palette returned nil cmd")
	}
	updated, _ := m.Update(cmd())
	m = updated.(AppModel)

	if m.overlay != nil {
		t.Error("overlay still open after selection")
	}
	if got, want := m.input.Text(), "/version"; got != want {
		t.Errorf("input text after selection = %q, want %q", got, want)
	}
}

func TestAppModel_PaletteEscDismisses(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	m = appType(t, m, "/")

	m, cmd := appKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc in palette returned nil cmd")
	}
	updated, _ := m.Update(cmd())
	m = updated.(AppModel)

	if m.overlay != nil {
		t.Error("overlay still open after esc")
	}
}

func TestAppModel_SlashCommandDispatch(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	m.input = m.input.SetText("/version")
	m, cmd := appKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("plain command dispatch returned a cmd")
	}
	if got := m.View(); !strings.Contains(got, "pichat 1.2.3") {
		t.Errorf("View() missing command output:\n%s", got)
	}
}

func TestAppModel_SlashExitQuits(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	m.input = m.input.SetText("/exit")
	m, cmd := appKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("/exit returned nil cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
	if got := m.View(); !strings.Contains(got, "Goodbye.") {
		t.Errorf("View() missing farewell notice:\n%s", got)
	}
}

func TestAppModel_UnknownCommandShowsError(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	m.input = m.input.SetText("/bogus")
	m, cmd := appKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("failed dispatch returned a cmd")
	}
	if got := m.View(); !strings.Contains(got, "unknown command: /bogus") {
		t.Errorf("View() missing error notice:\n%s", got)
	}
}

func TestAppModel_BareStatsInline(t *testing.T) {
	t.Parallel()

	deps := testAppDeps(t)
	m := NewAppModel(deps)
	m = appType(t, m, "stats")
	m, cmd := appKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("stats keyword returned a cmd")
	}
	if m.busy {
		t.Error("stats keyword set busy")
	}
	if got := m.View(); !strings.Contains(got, "CONVERSATION STATISTICS") {
		t.Errorf("View() missing stats block:\n%s", got)
	}
	// The stats keyword itself never reaches the engine.
	if deps.State.Len() != 0 {
		t.Errorf("state has %d exchanges, want 0", deps.State.Len())
	}
}

func TestAppModel_CtrlPOpensPersonaSelector(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	m, _ = appKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})

	if _, ok := m.overlay.(PersonaSelectorModel); !ok {
		t.Fatalf("overlay is %T, want PersonaSelectorModel", m.overlay)
	}

	got := m.View()
	for _, part := range []string{"Switch persona", "default", "cheery", "laconic"} {
		if !strings.Contains(got, part) {
			t.Errorf("View() missing %q in output:\n%s", part, got)
		}
	}
}

func TestAppModel_PersonaSelectionSwitches(t *testing.T) {
	t.Parallel()

	deps := testAppDeps(t)
	m := NewAppModel(deps)
	m, _ = appKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})

	updated, _ := m.Update(PersonaSelectedMsg{Name: "cheery"})
	m = updated.(AppModel)

	if m.overlay != nil {
		t.Error("overlay still open after persona selection")
	}
	if got, want := deps.Engine.BotName(), "Sunny"; got != want {
		t.Errorf("engine bot name = %q, want %q", got, want)
	}

	got := m.View()
	for _, part := range []string{"Persona set to: cheery (Sunny)", "persona:cheery"} {
		if !strings.Contains(got, part) {
			t.Errorf("View() missing %q in output:\n%s", part, got)
		}
	}
}

func TestAppModel_UnknownPersonaShowsError(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	updated, _ := m.Update(PersonaSelectedMsg{Name: "ghost"})
	m = updated.(AppModel)

	if got := m.View(); !strings.Contains(got, `unknown persona "ghost"`) {
		t.Errorf("View() missing error notice:\n%s", got)
	}
}

func TestAppModel_GhostTextSuggestsCommand(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	m.input = m.input.SetText("/ver")
	m = appType(t, m, "s")

	if got, want := m.input.GhostText(), "ion"; got != want {
		t.Errorf("GhostText() = %q, want %q", got, want)
	}
}

func TestAppModel_WindowSizeRebuildsSeparator(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 24})
	m = updated.(AppModel)

	if got, want := m.cachedSep, strings.Repeat("─", 40); got != want {
		t.Errorf("cachedSep = %q, want %q", got, want)
	}
	if got := m.View(); !strings.Contains(got, strings.Repeat("─", 40)) {
		t.Errorf("View() missing separator:\n%s", got)
	}
}

func TestAppModel_CtrlROpensSessionBrowser(t *testing.T) {
	t.Setenv("PICHAT_DIR", t.TempDir())

	m := NewAppModel(testAppDeps(t))
	m, _ = appKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	if _, ok := m.overlay.(SessionSelectorModel); !ok {
		t.Fatalf("overlay is %T, want SessionSelectorModel", m.overlay)
	}
	if got := m.View(); !strings.Contains(got, "(no stored sessions yet)") {
		t.Errorf("View() missing empty session state:\n%s", got)
	}

	updated, _ := m.Update(SessionSelectorDismissMsg{})
	m = updated.(AppModel)
	if m.overlay != nil {
		t.Error("overlay still open after dismiss")
	}
}

func TestAppModel_EmptyEnterIsNoop(t *testing.T) {
	t.Parallel()

	m := NewAppModel(testAppDeps(t))
	contentLen := len(m.content)

	m, cmd := appKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter on empty input returned a cmd")
	}
	if len(m.content) != contentLen {
		t.Errorf("content grew to %d on empty enter, want %d", len(m.content), contentLen)
	}
}
