package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops the
	// update time and the footer drops key hints.
	LayoutCompactWidth = 80

	// LayoutMaxTextWidth caps plot wrapping on very wide terminals.
	LayoutMaxTextWidth = 100
)

// Chrome heights in lines.
const (
	headerHeight = 1
	inputHeight  = 3 // bordered single-line field
	footerHeight = 1
	paneBorder   = 2
)

// Diagnostics limits.
const (
	// DiagnosticsLines is the number of log records the diagnostics view reads.
	DiagnosticsLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default snapshot polling interval.
	DefaultUIInterval = 250 * time.Millisecond
)
