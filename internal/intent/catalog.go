// ABOUTME: Catalog compilation and validation from raw intent definitions.
// ABOUTME: Compiles patterns case-insensitively, normalizes keywords, resolves action tags.

package intent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mauromedda/pi-chat-agent-go/internal/log"
)

// Catalog holds compiled intents in declaration order.
type Catalog struct {
	intents []*Intent
}

// Load compiles defs into a catalog. knownAction reports whether an action
// tag is registered; a definition naming an unregistered tag is a load
// error. Pass nil to accept any tag.
//
// A pattern that fails to compile is logged and kept as a permanent
// non-match; the rest of the intent still scores.
func Load(defs []Definition, knownAction func(string) bool) (*Catalog, error) {
	seen := make(map[string]struct{}, len(defs))
	intents := make([]*Intent, 0, len(defs))

	for i, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("intent #%d missing field %q", i, "name")
		}
		if def.Patterns == nil {
			return nil, fmt.Errorf("intent #%d (%s) missing field %q", i, def.Name, "patterns")
		}
		if def.Responses == nil {
			return nil, fmt.Errorf("intent #%d (%s) missing field %q", i, def.Name, "responses")
		}
		if len(def.Responses) == 0 {
			return nil, fmt.Errorf("intent #%d (%s): responses must not be empty", i, def.Name)
		}
		if _, dup := seen[def.Name]; dup {
			return nil, fmt.Errorf("duplicate intent name %q", def.Name)
		}
		seen[def.Name] = struct{}{}

		if def.ActionType != "" && knownAction != nil && !knownAction(def.ActionType) {
			return nil, fmt.Errorf("intent %q: unknown action type %q", def.Name, def.ActionType)
		}

		intents = append(intents, compile(def))
	}

	return &Catalog{intents: intents}, nil
}

// compile builds a compiled Intent from a definition.
func compile(def Definition) *Intent {
	it := &Intent{
		Name:            def.Name,
		Responses:       def.Responses,
		ContextSet:      def.ContextSet,
		ContextRequired: def.ContextRequired,
		Action:          def.ActionType,
		patterns:        make([]pattern, 0, len(def.Patterns)),
		keywords:        make(map[string]struct{}, len(def.Keywords)),
	}

	for _, src := range def.Patterns {
		re, err := regexp.Compile("(?i)" + src)
		if err != nil {
			log.Warn("intent %s: skipping pattern %q: %v", def.Name, src, err)
			re = nil
		}
		it.patterns = append(it.patterns, pattern{source: src, re: re})
	}

	for _, kw := range def.Keywords {
		it.keywords[strings.ToLower(kw)] = struct{}{}
	}

	return it
}

// Len returns the number of compiled intents.
func (c *Catalog) Len() int {
	return len(c.intents)
}

// Names returns intent names in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.intents))
	for i, it := range c.intents {
		names[i] = it.Name
	}
	return names
}

// Find returns the intent with the given name, or nil.
func (c *Catalog) Find(name string) *Intent {
	for _, it := range c.intents {
		if it.Name == name {
			return it
		}
	}
	return nil
}
