// ABOUTME: Display-width helpers for terminal output with grapheme-aware segmentation
// ABOUTME: VisibleWidth, TruncateToWidth, and WrapText skip ANSI escapes when measuring

package textwidth

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// VisibleWidth returns the display width of s, accounting for ANSI escape
// sequences (which contribute zero width) and grapheme clusters (which may
// be wider than one cell for East Asian characters and emoji).
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	// Fast path: pure ASCII with no escape sequences
	if isPlainASCII(s) {
		return len(s)
	}
	return computeWidth(s)
}

// isPlainASCII returns true if s contains only printable ASCII (0x20-0x7E)
// with no escape sequences.
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

// computeWidth measures the visible width by iterating grapheme clusters,
// skipping ANSI escape sequences.
func computeWidth(s string) int {
	stripped := StripANSI(s)
	w := 0
	state := -1
	for len(stripped) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(stripped, state)
		w += graphemeWidth(cluster)
		stripped = rest
		state = newState
	}
	return w
}

// graphemeWidth returns the display width of a single grapheme cluster.
func graphemeWidth(cluster string) int {
	if len(cluster) == 0 {
		return 0
	}
	// Decode the first rune without allocating a []rune slice.
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}

// StripANSI removes all ANSI escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' {
			i = skipANSISequence(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// skipANSISequence advances past an ANSI escape sequence starting at s[i].
// Returns the index of the first byte after the sequence.
func skipANSISequence(s string, i int) int {
	if i >= len(s) || s[i] != '\x1b' {
		return i
	}
	i++ // skip ESC
	if i >= len(s) {
		return i
	}

	switch s[i] {
	case '[':
		// CSI sequence: ESC [ ... <final byte 0x40-0x7E>
		i++
		for i < len(s) {
			b := s[i]
			if b >= 0x40 && b <= 0x7E {
				return i + 1
			}
			i++
		}
		return i
	case ']':
		// OSC sequence: ESC ] ... (ST or BEL)
		i++
		for i < len(s) {
			if s[i] == '\x07' {
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
			i++
		}
		return i
	default:
		// Simple two-byte ESC sequence
		return i + 1
	}
}

// sgrState tracks active SGR (Select Graphic Rendition) sequences so that
// styling survives line breaks introduced by WrapText.
type sgrState struct {
	codes []string
}

func (a *sgrState) apply(seq string) {
	if seq == "\x1b[0m" || seq == "\x1b[m" {
		a.codes = a.codes[:0]
		return
	}
	a.codes = append(a.codes, seq)
}

func (a *sgrState) prefix() string {
	if len(a.codes) == 0 {
		return ""
	}
	var b strings.Builder
	for _, c := range a.codes {
		b.WriteString(c)
	}
	return b.String()
}

// WrapText wraps s into lines of at most maxWidth visible columns. ANSI
// escape sequences are preserved and do not count toward width; active
// styling is re-applied at the start of each continuation line.
func WrapText(s string, maxWidth int) []string {
	if maxWidth <= 0 {
		return nil
	}
	if s == "" {
		return []string{""}
	}

	var lines []string
	var currentLine strings.Builder
	currentWidth := 0
	var sgr sgrState

	i := 0
	for i < len(s) {
		if s[i] == '\n' {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentWidth = 0
			if p := sgr.prefix(); p != "" {
				currentLine.WriteString(p)
			}
			i++
			continue
		}

		if s[i] == '\x1b' {
			end := skipANSISequence(s, i)
			seq := s[i:end]
			sgr.apply(seq)
			currentLine.WriteString(seq)
			i = end
			continue
		}

		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		w := graphemeWidth(cluster)

		if currentWidth+w > maxWidth {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentWidth = 0
			if p := sgr.prefix(); p != "" {
				currentLine.WriteString(p)
			}
		}

		currentLine.WriteString(cluster)
		currentWidth += w
		i += len(s[i:]) - len(rest)
	}

	lines = append(lines, currentLine.String())
	return lines
}

// TruncateToWidth truncates s to at most maxWidth visible columns.
// If truncation occurs, the last visible character is replaced with ellipsis.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…" // single ellipsis character
	}

	var b strings.Builder
	col := 0
	target := maxWidth - 1 // Leave room for ellipsis
	i := 0
	for i < len(s) && col < target {
		if s[i] == '\x1b' {
			end := skipANSISequence(s, i)
			b.WriteString(s[i:end])
			i = end
			continue
		}
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		cw := graphemeWidth(cluster)
		if col+cw > target {
			break
		}
		b.WriteString(cluster)
		col += cw
		i += len(s[i:]) - len(rest)
	}
	b.WriteString("\x1b[0m") // Reset before ellipsis
	b.WriteRune('…')
	return b.String()
}
