// ABOUTME: Persona engine managing profile registration and the active profile
// ABOUTME: Overlays user YAML profiles on the builtins; safe for concurrent use

package persona

import (
	"fmt"
	"sort"
	"sync"
)

// Engine manages persona profiles and tracks the active one.
// It is safe for concurrent use.
type Engine struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	active   *Profile
}

// NewEngine creates an engine with builtin profiles. If profilesDir is
// non-empty, profiles found there are loaded on top; a user profile with
// a builtin's name replaces it.
func NewEngine(profilesDir string) (*Engine, error) {
	e := &Engine{
		profiles: builtinProfiles(),
	}

	if profilesDir != "" {
		extra, err := LoadProfiles(profilesDir)
		if err != nil {
			return nil, fmt.Errorf("load profiles: %w", err)
		}
		for name, p := range extra {
			e.profiles[name] = p
		}
	}

	e.active = e.profiles["default"]
	return e, nil
}

// SetProfile activates a profile by name and returns it.
func (e *Engine) SetProfile(name string) (*Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown persona %q", name)
	}
	e.active = p
	return p, nil
}

// ActiveProfile returns the currently active profile.
func (e *Engine) ActiveProfile() *Profile {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active
}

// Profile returns the profile registered under name.
func (e *Engine) Profile(name string) (*Profile, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p, ok := e.profiles[name]
	return p, ok
}

// ProfileNames returns all available profile names sorted alphabetically.
func (e *Engine) ProfileNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.profiles))
	for name := range e.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
