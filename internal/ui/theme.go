package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/search"
)

// Theme defines the palette for the UI.
type Theme struct {
	Name string

	Background string // Outermost background
	Surface    string // Header and footer bars
	SurfaceAlt string // Input field

	Border      string // Unfocused pane border
	BorderFocus string // Focused pane border

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Heading: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),

		PaneFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)),

		kindColors: map[search.Kind]string{
			search.KindPrompt:   t.Warning,
			search.KindLoading:  t.Info,
			search.KindNotFound: t.Warning,
			search.KindResults:  t.Success,
			search.KindFailed:   t.Danger,
		},
		background: t.Background,
		muted:      t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Heading     lipgloss.Style
	Header      lipgloss.Style
	Footer      lipgloss.Style
	Logo        lipgloss.Style
	Pane        lipgloss.Style
	PaneFocused lipgloss.Style

	kindColors map[search.Kind]string
	background string
	muted      string
}

// KindStyle returns a badge style for an outcome kind.
func (s Styles) KindStyle(kind search.Kind) lipgloss.Style {
	color := s.kindColors[kind]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// KindText returns a foreground-only style for status messages of kind.
func (s Styles) KindText(kind search.Kind) lipgloss.Style {
	color := s.kindColors[kind]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:        "Nightfox",
		Background:  "#131a24", // bg0
		Surface:     "#192330", // bg1
		SurfaceAlt:  "#212e3f", // bg2
		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue
		Text:        "#cdcecf", // fg1
		Muted:       "#738091", // comment
		Faint:       "#71839b", // fg3
		Accent:      "#719cd6", // blue
		Success:     "#81b29a", // green
		Warning:     "#dbc074", // yellow
		Danger:      "#c94f6d", // red
		Info:        "#63cdcf", // cyan
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:        "Kanagawa",
		Background:  "#16161D", // sumiInk0
		Surface:     "#1F1F28", // sumiInk3
		SurfaceAlt:  "#2A2A37", // sumiInk4
		Border:      "#54546D", // sumiInk6
		BorderFocus: "#7E9CD8", // crystalBlue
		Text:        "#DCD7BA", // fujiWhite
		Muted:       "#C8C093", // oldWhite
		Faint:       "#727169", // fujiGray
		Accent:      "#7E9CD8", // crystalBlue
		Success:     "#98BB6C", // springGreen
		Warning:     "#E6C384", // carpYellow
		Danger:      "#E46876", // waveRed
		Info:        "#7FB4CA", // springBlue
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name:        "Slate",
		Background:  "#020617", // slate-950
		Surface:     "#0f172a", // slate-900
		SurfaceAlt:  "#1e293b", // slate-800
		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400
		Text:        "#f1f5f9", // slate-100
		Muted:       "#94a3b8", // slate-400
		Faint:       "#64748b", // slate-500
		Accent:      "#38bdf8", // sky-400
		Success:     "#22c55e", // green-500
		Warning:     "#f59e0b", // amber-500
		Danger:      "#ef4444", // red-500
		Info:        "#06b6d4", // cyan-500
	}
}
