package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/search"
)

// renderHeader renders the status bar: logo, outcome badge, search
// generation, result count and last update.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	snap := m.snapshot

	parts := []string{bg.Render("marquee", styles.Logo)}

	kind := snap.Outcome.Kind
	if kind == search.KindIdle {
		parts = append(parts, bg.Render("ready", styles.MutedText))
	} else {
		parts = append(parts, styles.KindStyle(kind).Render(kind.String()))
	}

	if snap.Busy() {
		parts = append(parts, bg.Render(m.spinner.View(), styles.InfoText))
	}

	if snap.Generation > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("search #%d", snap.Generation), styles.FaintText))
	}

	if kind == search.KindResults {
		parts = append(parts, bg.Render(plural(len(snap.Outcome.Movies), "movie"), styles.SuccessText))
	}

	if q := snap.Outcome.Query; q != "" && kind != search.KindPrompt {
		parts = append(parts, bg.Render(fmt.Sprintf("%q", truncate(q, 40)), styles.Text))
	}

	if m.width >= LayoutCompactWidth && !snap.UpdatedAt.IsZero() {
		parts = append(parts, bg.Render("updated "+snap.UpdatedAt.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderFooter renders key hints, or the log path in the diagnostics view.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	var parts []string
	if m.currentView == ViewDiagnostics {
		path := m.logPath
		if path == "" {
			path = "logging to file disabled"
		}
		parts = append(parts,
			bg.Render("log", styles.FaintText),
			bg.Render(truncateMiddle(path, max(m.width/2, 20)), styles.MutedText))
		if m.diagErr != nil {
			parts = append(parts, bg.Render(m.diagErr.Error(), styles.DangerText))
		}
	}
	if m.width >= LayoutCompactWidth || len(parts) == 0 {
		m.help.Width = m.width
		parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return styles.Footer.Width(m.width).Render(
		lipgloss.NewStyle().MaxWidth(max(m.width-2, 0)).Render(bg.Join(parts, "  ")),
	)
}
