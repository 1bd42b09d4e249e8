package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	h := m.help
	h.ShowAll = true
	h.Width = m.width - 4
	b.WriteString(h.View(m.keys))
	b.WriteString("\n\n")

	b.WriteString(styles.AccentText.Bold(true).Render("Theme"))
	b.WriteString("\n")
	for _, name := range ThemeNames() {
		marker := "  "
		style := styles.MutedText
		if name == m.theme.Name {
			marker = "> "
			style = styles.Text
		}
		b.WriteString(style.Render(marker + name))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Press any key to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
