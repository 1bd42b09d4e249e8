package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders segments of a bar over one background colour.
//
// Lipgloss emits a reset after every styled segment, which leaves the
// terminal default background showing through the gaps between segments
// and inside multi-word segments. BgStyle paints those gaps too.
type BgStyle struct {
	bg lipgloss.Color
}

// NewBgStyle returns a helper for the given background colour.
func NewBgStyle(bgColor string) BgStyle {
	return BgStyle{bg: lipgloss.Color(bgColor)}
}

// Render styles text word by word so the spaces keep the background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	words := strings.Split(text, " ")
	wordStyle := style.Background(b.bg)
	for i, w := range words {
		if w != "" {
			words[i] = wordStyle.Render(w)
		}
	}
	return strings.Join(words, b.Spaces(1))
}

// Spaces returns n spaces painted with the background.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Join joins already-rendered parts with a painted separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, lipgloss.NewStyle().Background(b.bg).Render(sep))
}
