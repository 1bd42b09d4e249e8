package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/marquee/internal/logtail"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/search"
	"github.com/five82/marquee/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewResults View = iota
	ViewDiagnostics
)

type focusArea int

const (
	focusInput focusArea = iota
	focusPane
)

// Searcher runs one search, pushing every intermediate outcome to show.
type Searcher interface {
	Run(ctx context.Context, raw string, show search.Display) search.Outcome
}

var _ Searcher = (*search.Pipeline)(nil)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Searcher  Searcher
	Region    *state.Region
	Logger    *zerolog.Logger
	LogPath   string
	PollTick  time.Duration
	ThemeName string
	LastQuery string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	searcher  Searcher
	region    *state.Region
	log       zerolog.Logger
	logPath   string
	prefsPath string
	pollTick  time.Duration
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	focus       focusArea
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Widgets
	input    textinput.Model
	results  viewport.Model
	diag     viewport.Model
	spinner  spinner.Model
	help     help.Model
	rendered int // Snapshot.Writes last drawn into results

	// Data state
	snapshot state.Snapshot
	diagErr  error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	region := opts.Region
	if region == nil {
		region = &state.Region{}
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	input := textinput.New()
	input.Placeholder = "Movie title"
	input.Prompt = "> "
	input.SetValue(opts.LastQuery)
	input.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		ctx:       ctx,
		searcher:  opts.Searcher,
		region:    region,
		log:       log,
		logPath:   opts.LogPath,
		prefsPath: opts.PrefsPath,
		pollTick:  pollTick,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.ThemeName),
		input:     input,
		results:   viewport.New(0, 0),
		diag:      viewport.New(0, 0),
		spinner:   sp,
		help:      help.New(),
		snapshot:  region.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(m.pollTick),
		fetchSnapshotCmd(m.region),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.rendered = 0
		m.refreshResults(false)
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{fetchSnapshotCmd(m.region), tickCmd(m.pollTick)}
		if m.currentView == ViewDiagnostics {
			cmds = append(cmds, loadDiagnosticsCmd(m.logPath))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case searchDoneMsg:
		if msg.generation != m.region.Snapshot().Latest {
			m.log.Debug().Uint64("generation", msg.generation).Msg("discarding superseded search")
		}
		return m, fetchSnapshotCmd(m.region)

	case diagnosticsMsg:
		follow := m.diag.AtBottom()
		m.diagErr = msg.err
		m.diag.SetContent(strings.Join(formatLogEntries(msg.entries, m.theme.Styles()), "\n"))
		// Stay put if the user scrolled up to read older entries.
		if follow {
			m.diag.GotoBottom()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.snapshot.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderInput(),
		m.renderPane(),
		m.renderFooter(),
	)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.rendered = 0
		m.refreshResults(false)
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Diagnostics):
		if m.currentView == ViewDiagnostics {
			m.currentView = ViewResults
			m.setFocus(focusInput)
			return m, nil
		}
		m.currentView = ViewDiagnostics
		m.setFocus(focusPane)
		return m, loadDiagnosticsCmd(m.logPath)

	case key.Matches(msg, m.keys.Tab):
		if m.focus == focusInput {
			m.setFocus(focusPane)
		} else {
			m.setFocus(focusInput)
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewResults
		m.setFocus(focusInput)
		return m, nil

	case key.Matches(msg, m.keys.Submit) && m.focus == focusInput:
		cmd := m.submit()
		return m, cmd
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m.handlePaneKey(msg)
}

// handlePaneKey scrolls whichever pane is showing.
func (m Model) handlePaneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vp := &m.results
	if m.currentView == ViewDiagnostics {
		vp = &m.diag
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		vp.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		vp.LineDown(1)
	case key.Matches(msg, m.keys.Top):
		vp.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		vp.GotoBottom()
	case key.Matches(msg, m.keys.PageUp):
		vp.ViewUp()
	case key.Matches(msg, m.keys.PageDown):
		vp.ViewDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		vp.HalfViewUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		vp.HalfViewDown()
	}
	return m, nil
}

// submit starts a new search generation for the current query. Any search
// still in flight keeps running but can no longer write to the region.
func (m *Model) submit() tea.Cmd {
	query := m.input.Value()
	gen := m.region.Begin()
	m.currentView = ViewResults
	m.savePrefs()

	m.log.Debug().Uint64("generation", gen).Str("query", query).Msg("search submitted")

	return tea.Batch(
		runSearchCmd(m.ctx, m.searcher, m.region, gen, query),
		m.spinner.Tick,
	)
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, LastQuery: m.input.Value()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn().Err(err).Str("path", m.prefsPath).Msg("failed to save preferences")
	}
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

// applySnapshot stores a region snapshot and redraws results when it changed.
func (m *Model) applySnapshot(snap state.Snapshot) {
	newSearch := snap.Generation != m.snapshot.Generation
	m.snapshot = snap
	m.refreshResults(newSearch)
}

func (m *Model) refreshResults(gotoTop bool) {
	if !m.ready || (m.rendered != 0 && m.rendered == m.snapshot.Writes) {
		return
	}
	m.results.SetContent(renderOutcome(m.snapshot.Outcome, m.results.Width, m.theme.Styles()))
	m.rendered = m.snapshot.Writes
	if gotoTop {
		m.results.GotoTop()
	}
}

// resize fits the widgets to the terminal.
func (m *Model) resize() {
	paneHeight := max(m.height-headerHeight-inputHeight-footerHeight-paneBorder, 1)
	paneWidth := max(m.width-paneBorder, 1)

	m.input.Width = max(m.width-paneBorder-len(m.input.Prompt)-1, 1)
	m.results.Width, m.results.Height = paneWidth, paneHeight
	m.diag.Width, m.diag.Height = paneWidth, paneHeight
}

func (m Model) renderInput() string {
	styles := m.theme.Styles()
	style := styles.Pane
	if m.focus == focusInput {
		style = styles.PaneFocused
	}
	return style.Width(max(m.width-paneBorder, 1)).Render(m.input.View())
}

func (m Model) renderPane() string {
	styles := m.theme.Styles()
	style := styles.Pane
	if m.focus == focusPane {
		style = styles.PaneFocused
	}
	content := m.results.View()
	if m.currentView == ViewDiagnostics {
		content = m.diag.View()
	}
	return style.Render(content)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type searchDoneMsg struct {
	generation uint64
	outcome    search.Outcome
}

type diagnosticsMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(region *state.Region) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(region.Snapshot())
	}
}

func runSearchCmd(ctx context.Context, s Searcher, region *state.Region, gen uint64, query string) tea.Cmd {
	return func() tea.Msg {
		out := s.Run(ctx, query, region.Show(gen))
		return searchDoneMsg{generation: gen, outcome: out}
	}
}

func loadDiagnosticsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return diagnosticsMsg{}
		}
		entries, err := logtail.Read(path, DiagnosticsLines)
		return diagnosticsMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
