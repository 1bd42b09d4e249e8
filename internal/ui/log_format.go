package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/logtail"
)

func formatLogEntries(entries []logtail.Entry, styles Styles) []string {
	if len(entries) == 0 {
		return nil
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, formatLogEntry(e, styles))
	}
	return lines
}

func formatLogEntry(e logtail.Entry, styles Styles) string {
	if e.Level == "" && e.Message == "" {
		return styles.FaintText.Render(e.Raw)
	}

	ts := "--:--:--"
	if !e.Time.IsZero() {
		ts = e.Time.In(time.Local).Format("15:04:05")
	}
	level := strings.ToUpper(strings.TrimSpace(e.Level))
	if level == "" {
		level = "INFO"
	}

	parts := []string{
		styles.FaintText.Render(ts),
		levelStyle(level, styles).Render(fmt.Sprintf("%-5s", level)),
		styles.Text.Render(e.Message),
	}
	if e.Query != "" {
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf("query=%q", e.Query)))
	}
	if e.Run != "" {
		parts = append(parts, styles.FaintText.Render("run="+e.Run))
	}
	line := strings.Join(parts, " ")
	if e.Error != "" {
		line += "\n    " + styles.DangerText.Render(e.Error)
	}
	return line
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "ERROR", "FATAL", "PANIC":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG", "TRACE":
		return styles.FaintText
	default:
		return styles.InfoText
	}
}
