// ABOUTME: Builds a ready-to-talk engine from merged settings
// ABOUTME: Falls back to the builtin catalog, word lists, and reply pools

package chat

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mauromedda/pi-chat-agent-go/internal/action"
	"github.com/mauromedda/pi-chat-agent-go/internal/config"
	"github.com/mauromedda/pi-chat-agent-go/internal/intent"
	"github.com/mauromedda/pi-chat-agent-go/internal/sentiment"
	"github.com/mauromedda/pi-chat-agent-go/internal/template"
)

// FromSettings assembles an engine from merged settings. A nil intents
// section uses the builtin catalog; a nil sentiment_words section uses the
// builtin word lists. botName seeds {bot_name} substitution and now seeds
// the clock (nil means time.Now).
func FromSettings(s *config.Settings, botName string, now func() time.Time) (*Engine, error) {
	registry := action.NewRegistry()

	defs := s.Intents
	if defs == nil {
		defs = intent.Builtin()
	}
	catalog, err := intent.Load(defs, registry.Known)
	if err != nil {
		return nil, fmt.Errorf("loading intents: %w", err)
	}

	analyzer := sentiment.Default()
	if sw := s.SentimentWords; sw != nil {
		analyzer = sentiment.New(sw.Positive, sw.Negative)
	}

	fallbacks := DefaultFallbacks()
	if bs := s.BotSettings; bs != nil {
		if len(bs.UnknownResponsePositive) > 0 {
			fallbacks.Positive = bs.UnknownResponsePositive
		}
		if len(bs.UnknownResponseNegative) > 0 {
			fallbacks.Negative = bs.UnknownResponseNegative
		}
		if len(bs.UnknownResponseNeutral) > 0 {
			fallbacks.Neutral = bs.UnknownResponseNeutral
		}
	}

	return New(Config{
		Catalog:   catalog,
		Registry:  registry,
		Analyzer:  analyzer,
		Filler:    &template.Filler{BotName: botName, Now: now},
		Fallbacks: &fallbacks,
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:       now,
	}), nil
}
