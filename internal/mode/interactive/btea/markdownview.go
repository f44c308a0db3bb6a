// ABOUTME: Markdown renderer wrapper around glamour for terminal output
// ABOUTME: Caches glamour renderers per width and rendered results per content

package btea

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer wraps glamour to render bot replies with caching. Bot
// responses carry light markdown (bold results, bullet lists), so every
// message view goes through here.
type MarkdownRenderer struct {
	renderers map[int]*glamour.TermRenderer // width -> renderer
	cache     map[string]string             // "hash:width" -> rendered
}

// NewMarkdownRenderer creates a MarkdownRenderer with empty caches.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		renderers: make(map[int]*glamour.TermRenderer),
		cache:     make(map[string]string),
	}
}

// Render returns the terminal-styled rendering of the given markdown.
// Results are cached by content hash and width; renderers are reused per
// width because building one is far more expensive than rendering.
func (r *MarkdownRenderer) Render(md string, width int) string {
	if md == "" {
		return ""
	}

	key := cacheKey(md, width)
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	renderer, err := r.rendererFor(width)
	if err != nil {
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}

	// Glamour pads with blank lines and trailing spaces; single chat
	// replies read better flush.
	rendered = strings.Trim(rendered, "\n")
	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	rendered = strings.Join(lines, "\n")

	r.cache[key] = rendered
	return rendered
}

func (r *MarkdownRenderer) rendererFor(width int) (*glamour.TermRenderer, error) {
	if renderer, ok := r.renderers[width]; ok {
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[width] = renderer
	return renderer, nil
}

// cacheKey produces a string key from content hash and width.
func cacheKey(content string, width int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], width)
}
