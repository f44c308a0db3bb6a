// ABOUTME: Persona profile loading and validation
// ABOUTME: Parses YAML profiles defining the bot's name, tagline, and fallback flavor

package persona

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default strings applied to profiles that leave them empty.
const (
	DefaultTagline  = "your AI assistant"
	DefaultFarewell = "Goodbye! Thanks for chatting! 👋"
)

// Profile defines how the bot presents itself: the name it substitutes
// into responses, the welcome tagline, and optional fallback reply pools
// that color what it says when nothing matches.
type Profile struct {
	Name        string      `yaml:"name"`
	DisplayName string      `yaml:"display_name"`
	Tagline     string      `yaml:"tagline"`
	Farewell    string      `yaml:"farewell"`
	Fallbacks   FallbackSet `yaml:"fallbacks"`
}

// FallbackSet holds persona-flavored fallback replies keyed by sentiment.
// Empty pools defer to the builtin ones.
type FallbackSet struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
	Neutral  []string `yaml:"neutral"`
}

// LoadProfile reads a single YAML profile from a file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validate profile %s: %w", path, err)
	}

	p.applyDefaults()
	return &p, nil
}

// LoadProfiles reads all YAML profiles from a directory. A missing
// directory yields no profiles.
func LoadProfiles(dir string) (map[string]*Profile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*Profile{}, nil
		}
		return nil, fmt.Errorf("read profiles directory %s: %w", dir, err)
	}

	profiles := make(map[string]*Profile)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		p, err := LoadProfile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		profiles[p.Name] = p
	}

	return profiles, nil
}

// Validate checks that a profile's required fields are present.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.DisplayName == "" {
		return fmt.Errorf("profile %q: display_name is required", p.Name)
	}
	return nil
}

func (p *Profile) applyDefaults() {
	if p.Tagline == "" {
		p.Tagline = DefaultTagline
	}
	if p.Farewell == "" {
		p.Farewell = DefaultFarewell
	}
}

func builtinProfiles() map[string]*Profile {
	return map[string]*Profile{
		"default": {
			Name:        "default",
			DisplayName: "Pi",
			Tagline:     DefaultTagline,
			Farewell:    DefaultFarewell,
		},
		"cheery": {
			Name:        "cheery",
			DisplayName: "Sunny",
			Tagline:     "your upbeat chat buddy",
			Farewell:    "Bye for now! Keep smiling! 🌞",
			Fallbacks: FallbackSet{
				Positive: []string{
					"Yes! I love hearing that! What else?",
					"Amazing! Keep it coming!",
				},
				Negative: []string{
					"Oh no! Let's turn that frown around. Want to talk about it?",
					"Sending good vibes your way! What would cheer you up?",
				},
				Neutral: []string{
					"Ooh, tell me more!",
					"Fun! What else is going on?",
				},
			},
		},
		"laconic": {
			Name:        "laconic",
			DisplayName: "Ada",
			Tagline:     "a bot of few words",
			Farewell:    "Bye.",
			Fallbacks: FallbackSet{
				Positive: []string{"Good.", "Noted."},
				Negative: []string{"Unfortunate.", "I see."},
				Neutral:  []string{"Go on.", "Hm."},
			},
		},
	}
}
