// Package ui provides the Bubble Tea terminal interface for marquee.
//
// # Layout
//
// The screen is four stacked parts:
//
//   - Header: logo, outcome badge, search generation, movie count, update time
//   - Query field: a textinput prefilled with the last query
//   - Pane: the display region (results viewport) or the diagnostics view
//   - Footer: key hints, or the log file path in the diagnostics view
//
// # Searching
//
// Pressing enter in the query field calls state.Region.Begin for a fresh
// generation and runs the search pipeline in a tea.Cmd, writing through
// Region.Show(gen). A search that is still in flight when a newer one
// starts keeps running, but the region rejects its writes. The model never
// receives outcomes directly; it polls Region.Snapshot on every tick and
// once more when a search command returns, then redraws when the snapshot's
// write counter moved.
//
// # Themes
//
// Three palettes are built in (Nightfox, Kanagawa, Slate). ctrl+t cycles
// them, and the choice is saved to the prefs file together with the last
// submitted query.
//
// # Diagnostics
//
// ctrl+l swaps the pane for the tail of the JSON log file, read through the
// logtail package. The view is a snapshot taken when it opens.
package ui
