// ABOUTME: Dependency injection struct for the Bubble Tea interactive app
// ABOUTME: Bundles the engine, conversation state, personas, and command wiring

package btea

import (
	"github.com/mauromedda/pi-chat-agent-go/internal/chat"
	"github.com/mauromedda/pi-chat-agent-go/internal/commands"
	"github.com/mauromedda/pi-chat-agent-go/internal/config"
	"github.com/mauromedda/pi-chat-agent-go/internal/convo"
	"github.com/mauromedda/pi-chat-agent-go/internal/persona"
	"github.com/mauromedda/pi-chat-agent-go/internal/session"
)

// AppDeps bundles all dependencies for the Bubble Tea interactive app.
type AppDeps struct {
	Engine   *chat.Engine
	State    *convo.State
	Settings *config.Settings
	Registry *commands.Registry
	CmdCtx   *commands.CommandContext
	Personas *persona.Engine
	Log      *session.Session // nilable; exchanges are recorded when set
	Version  string
}
