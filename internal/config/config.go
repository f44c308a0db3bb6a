// ABOUTME: JSON bot settings with validation and defaults merging
// ABOUTME: File shape mirrors the config sections: bot_settings, sentiment_words, intents

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mauromedda/pi-chat-agent-go/internal/intent"
)

// Settings holds the merged configuration. Section pointers distinguish a
// missing section from an empty one.
type Settings struct {
	BotSettings    *BotSettings        `json:"bot_settings"`
	SentimentWords *SentimentWords     `json:"sentiment_words,omitempty"`
	Intents        []intent.Definition `json:"intents"`
}

// BotSettings carries the bot's presentation and harness options.
type BotSettings struct {
	DefaultName             string   `json:"default_name,omitempty"`
	ExitCommands            []string `json:"exit_commands,omitempty"`
	UnknownResponsePositive []string `json:"unknown_response_positive,omitempty"`
	UnknownResponseNegative []string `json:"unknown_response_negative,omitempty"`
	UnknownResponseNeutral  []string `json:"unknown_response_neutral,omitempty"`
}

// SentimentWords replaces the builtin sentiment word lists wholesale when
// the section is present.
type SentimentWords struct {
	Positive []string `json:"positive,omitempty"`
	Negative []string `json:"negative,omitempty"`
}

// Defaults returns the settings used when no config file is present.
// The intent catalog and sentiment word lists stay nil; the engine falls
// back to its builtins for those.
func Defaults() *Settings {
	return &Settings{
		BotSettings: &BotSettings{
			ExitCommands: []string{"quit", "exit"},
		},
	}
}

// Load reads bot settings. An explicit path must exist and validate; with
// an empty path the global config file is used when present, otherwise the
// defaults.
func Load(explicitPath string) (*Settings, error) {
	path := explicitPath
	if path == "" {
		path = GlobalConfigFile()
	}

	loaded, err := loadFile(path)
	if err != nil {
		if os.IsNotExist(err) && explicitPath == "" {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := loaded.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return merge(Defaults(), loaded), nil
}

// loadFile reads a Settings from a JSON file.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks that the required sections are present. Per-intent field
// validation happens when the catalog compiles.
func (s *Settings) Validate() error {
	if s.BotSettings == nil {
		return fmt.Errorf("missing required section %q", "bot_settings")
	}
	if s.Intents == nil {
		return fmt.Errorf("missing required section %q", "intents")
	}
	return nil
}

// IsExitCommand reports whether the lowercased input is one of the
// configured exit commands.
func (s *Settings) IsExitCommand(input string) bool {
	if s.BotSettings == nil {
		return false
	}
	lowered := strings.ToLower(input)
	for _, cmd := range s.BotSettings.ExitCommands {
		if lowered == cmd {
			return true
		}
	}
	return false
}

// merge overlays file settings onto defaults. Non-empty file values win;
// the sentiment_words section replaces the builtin lists wholesale.
func merge(defaults, file *Settings) *Settings {
	if file == nil {
		return defaults
	}

	result := *defaults

	if fb := file.BotSettings; fb != nil {
		bs := *defaults.BotSettings
		if fb.DefaultName != "" {
			bs.DefaultName = fb.DefaultName
		}
		if len(fb.ExitCommands) > 0 {
			bs.ExitCommands = fb.ExitCommands
		}
		if len(fb.UnknownResponsePositive) > 0 {
			bs.UnknownResponsePositive = fb.UnknownResponsePositive
		}
		if len(fb.UnknownResponseNegative) > 0 {
			bs.UnknownResponseNegative = fb.UnknownResponseNegative
		}
		if len(fb.UnknownResponseNeutral) > 0 {
			bs.UnknownResponseNeutral = fb.UnknownResponseNeutral
		}
		result.BotSettings = &bs
	}

	if file.SentimentWords != nil {
		result.SentimentWords = file.SentimentWords
	}
	if file.Intents != nil {
		result.Intents = file.Intents
	}

	return &result
}
