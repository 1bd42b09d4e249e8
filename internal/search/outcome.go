package search

import "github.com/five82/marquee/internal/omdb"

// Kind classifies what the display region should show.
type Kind int

const (
	KindIdle Kind = iota
	KindPrompt
	KindLoading
	KindNotFound
	KindResults
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindPrompt:
		return "prompt"
	case KindLoading:
		return "loading"
	case KindNotFound:
		return "not_found"
	case KindResults:
		return "results"
	case KindFailed:
		return "failed"
	default:
		return "idle"
	}
}

// User-facing status messages.
const (
	MessagePrompt   = "Please enter a movie title."
	MessageLoading  = "Loading details..."
	MessageNotFound = "Movie not found. Try again."
	MessageFailed   = "There was an error communicating with the server."
)

// Outcome is one complete state of the display region.
type Outcome struct {
	Kind   Kind
	Query  string
	Movies []omdb.Movie
	// Run is the pipeline run id, empty for outcomes decided before any I/O.
	Run string
	// Err holds the underlying failure for KindFailed. It is for the
	// diagnostic log only and never rendered.
	Err error
}

// Message returns the status text for non-result outcomes.
func (o Outcome) Message() string {
	switch o.Kind {
	case KindPrompt:
		return MessagePrompt
	case KindLoading:
		return MessageLoading
	case KindNotFound:
		return MessageNotFound
	case KindFailed:
		return MessageFailed
	default:
		return ""
	}
}

// Display receives every outcome a run produces, in order. It reports
// whether the write was accepted; a run keeps going either way.
type Display func(Outcome) bool
