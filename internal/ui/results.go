package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/omdb"
	"github.com/five82/marquee/internal/search"
)

const idleHint = "Type a movie title and press enter."

// renderOutcome draws the display region for the terminal. Results keep the
// order they arrived in; every other kind is its status message.
func renderOutcome(o search.Outcome, width int, styles Styles) string {
	switch o.Kind {
	case search.KindIdle:
		return styles.FaintText.Render(idleHint)
	case search.KindResults:
		if len(o.Movies) == 0 {
			return ""
		}
		blocks := make([]string, 0, len(o.Movies))
		for _, mv := range o.Movies {
			blocks = append(blocks, renderMovie(mv, width, styles))
		}
		return strings.Join(blocks, "\n\n")
	default:
		return styles.KindText(o.Kind).Render(o.Message())
	}
}

func renderMovie(mv omdb.Movie, width int, styles Styles) string {
	textWidth := width
	if textWidth <= 0 || textWidth > LayoutMaxTextWidth {
		textWidth = LayoutMaxTextWidth
	}

	heading := styles.Heading.Render(fmt.Sprintf("%s (%s)", mv.Title, mv.Year))

	poster := mv.Poster
	posterStyle := styles.MutedText
	if !mv.HasPoster() {
		posterStyle = styles.FaintText
	}
	posterLine := styles.FaintText.Render("Poster ") + posterStyle.Render(poster)

	plot := lipgloss.NewStyle().Width(textWidth).Render(
		styles.AccentText.Render("Plot:") + " " + styles.Text.Render(mv.Plot),
	)

	return lipgloss.JoinVertical(lipgloss.Left, heading, posterLine, plot)
}
