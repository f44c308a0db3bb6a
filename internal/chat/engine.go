// ABOUTME: Conversation engine: classifies an utterance, runs its action, picks a response
// ABOUTME: Falls back to sentiment-keyed replies when nothing clears the threshold

package chat

import (
	"math/rand"
	"time"

	"github.com/mauromedda/pi-chat-agent-go/internal/action"
	"github.com/mauromedda/pi-chat-agent-go/internal/convo"
	"github.com/mauromedda/pi-chat-agent-go/internal/intent"
	"github.com/mauromedda/pi-chat-agent-go/internal/log"
	"github.com/mauromedda/pi-chat-agent-go/internal/sentiment"
	"github.com/mauromedda/pi-chat-agent-go/internal/template"
)

// errorNotice is shown when a turn fails partway; the conversation keeps
// going.
const errorNotice = "Oops, something went wrong. Let's continue!"

// FallbackResponses holds the reply pools used when no intent matches,
// keyed by the sentiment of the utterance.
type FallbackResponses struct {
	Positive []string
	Negative []string
	Neutral  []string
}

// DefaultFallbacks returns the builtin fallback pools.
func DefaultFallbacks() FallbackResponses {
	return FallbackResponses{
		Positive: []string{
			"I love your positive energy! What else is on your mind?",
			"That sounds great! Tell me more.",
			"Wonderful! What else would you like to chat about?",
		},
		Negative: []string{
			"I'm sorry to hear that. Is there anything I can help with?",
			"That sounds challenging. Want to talk about it?",
			"I understand. I'm here if you need to chat.",
		},
		Neutral: []string{
			"Interesting! Could you tell me more about that?",
			"I see. What else is on your mind?",
			"That's intriguing! Type 'help' to see what I can do.",
			"Hmm, I'm not quite sure what you mean. Try asking differently?",
		},
	}
}

// Config carries the engine's collaborators. Nil fields get defaults where
// noted.
type Config struct {
	Catalog   *intent.Catalog
	Registry  *action.Registry
	Analyzer  *sentiment.Analyzer
	Filler    *template.Filler
	Fallbacks *FallbackResponses // nil means DefaultFallbacks
	Rand      *rand.Rand         // nil means a time-seeded source
	Now       func() time.Time   // nil means time.Now
}

// Engine produces one reply per user utterance. It is not safe for
// concurrent use; each conversation owns its engine and state.
type Engine struct {
	catalog   *intent.Catalog
	registry  *action.Registry
	analyzer  *sentiment.Analyzer
	filler    *template.Filler
	fallbacks FallbackResponses
	rng       *rand.Rand
	now       func() time.Time
}

// New builds an engine from cfg.
func New(cfg Config) *Engine {
	e := &Engine{
		catalog:   cfg.Catalog,
		registry:  cfg.Registry,
		analyzer:  cfg.Analyzer,
		filler:    cfg.Filler,
		fallbacks: DefaultFallbacks(),
		rng:       cfg.Rand,
		now:       cfg.Now,
	}
	if cfg.Fallbacks != nil {
		e.fallbacks = *cfg.Fallbacks
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Reply is the outcome of one conversation turn.
type Reply struct {
	Text      string
	Intent    string // "" when nothing cleared the threshold
	Score     float64
	Sentiment sentiment.Result
}

// BotName returns the name used for {bot_name} substitution.
func (e *Engine) BotName() string {
	return e.filler.BotName
}

// SetBotName changes the name used for {bot_name} substitution.
func (e *Engine) SetBotName(name string) {
	e.filler.BotName = name
}

// SetFallbacks replaces the fallback reply pools.
func (e *Engine) SetFallbacks(f FallbackResponses) {
	e.fallbacks = f
}

// Respond runs one turn: classify the utterance, run the matched intent's
// action, then either return the action's reply or a random templated
// response. When no intent matches, a sentiment-keyed fallback is returned
// untemplated. A panic anywhere in the turn is downgraded to an error
// notice so the conversation survives.
func (e *Engine) Respond(utterance string, st *convo.State) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("turn failed: %v", r)
			reply.Text = errorNotice
		}
	}()

	cls := e.catalog.Classify(utterance, st.Context())
	reply.Score = cls.Score
	reply.Sentiment = e.analyzer.Analyze(utterance)

	if cls.Intent == nil {
		reply.Text = e.pick(e.fallbackPool(reply.Sentiment.Label))
		return reply
	}
	reply.Intent = cls.Intent.Name

	if cls.Intent.Action != "" {
		handler, ok := e.registry.Resolve(action.Tag(cls.Intent.Action))
		if ok {
			result, err := handler(st, cls.Match)
			if err != nil {
				log.Error("action %s failed: %v", cls.Intent.Action, err)
				reply.Text = errorNotice
				return reply
			}
			// A short-circuiting action replies directly and leaves the
			// dialogue context alone.
			if result != "" {
				reply.Text = e.filler.Fill(result, st)
				return reply
			}
		}
	}

	reply.Text = e.filler.Fill(e.pick(cls.Intent.Responses), st)

	if cls.Intent.ContextSet != "" {
		st.SetContext(cls.Intent.ContextSet)
	} else {
		st.ClearContext()
	}
	return reply
}

// pick returns a uniformly random element of options.
func (e *Engine) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[e.rng.Intn(len(options))]
}

// fallbackPool selects the fallback pool for a sentiment label.
func (e *Engine) fallbackPool(label sentiment.Label) []string {
	switch label {
	case sentiment.Positive:
		return e.fallbacks.Positive
	case sentiment.Negative:
		return e.fallbacks.Negative
	default:
		return e.fallbacks.Neutral
	}
}
