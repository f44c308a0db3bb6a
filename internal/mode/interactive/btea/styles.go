// ABOUTME: Lipgloss style palette shared by all Bubble Tea sub-models
// ABOUTME: Styles() builds the palette once; sentiment styles key off the label

package btea

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/pi-chat-agent-go/internal/sentiment"
)

// ThemeStyles holds pre-built lipgloss styles for all semantic palette fields.
type ThemeStyles struct {
	Primary lipgloss.Style
	Accent  lipgloss.Style
	Muted   lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	Border    lipgloss.Style
	Selection lipgloss.Style
	Prompt    lipgloss.Style

	UserBg lipgloss.Style

	FooterPersona lipgloss.Style
	FooterSession lipgloss.Style
	FooterContext lipgloss.Style

	Bold lipgloss.Style
	Dim  lipgloss.Style
}

var (
	stylesOnce sync.Once
	styles     ThemeStyles
)

// Styles returns the shared style palette, building it on first use. View()
// is called on every frame; rebuilding lipgloss styles each time would be
// wasted work.
func Styles() ThemeStyles {
	stylesOnce.Do(func() {
		styles = buildStyles()
	})
	return styles
}

func buildStyles() ThemeStyles {
	return ThemeStyles{
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),

		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Selection: lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),

		UserBg: lipgloss.NewStyle().Background(lipgloss.Color("237")),

		FooterPersona: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		FooterSession: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		FooterContext: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),

		Bold: lipgloss.NewStyle().Bold(true),
		Dim:  lipgloss.NewStyle().Faint(true),
	}
}

// sentimentStyle maps a sentiment label to its display style.
func sentimentStyle(s ThemeStyles, label sentiment.Label) lipgloss.Style {
	switch label {
	case sentiment.Positive:
		return s.Success
	case sentiment.Negative:
		return s.Error
	default:
		return s.Dim
	}
}
