package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/five82/marquee/internal/logtail"
	"github.com/five82/marquee/internal/omdb"
	"github.com/five82/marquee/internal/search"
)

func TestRenderOutcome_Kinds(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()

	tests := []struct {
		name string
		out  search.Outcome
		want string
	}{
		{"idle", search.Outcome{}, idleHint},
		{"prompt", search.Outcome{Kind: search.KindPrompt}, search.MessagePrompt},
		{"loading", search.Outcome{Kind: search.KindLoading}, search.MessageLoading},
		{"not found", search.Outcome{Kind: search.KindNotFound}, search.MessageNotFound},
		{"failed", search.Outcome{Kind: search.KindFailed, Err: errors.New("boom")}, search.MessageFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderOutcome(tt.out, 80, styles)
			if !strings.Contains(got, tt.want) {
				t.Fatalf("renderOutcome = %q, want it to contain %q", got, tt.want)
			}
			if strings.Contains(got, "boom") {
				t.Fatalf("renderOutcome leaked error detail: %q", got)
			}
		})
	}
}

func TestRenderOutcome_EmptyResults(t *testing.T) {
	got := renderOutcome(search.Outcome{Kind: search.KindResults}, 80, GetTheme("").Styles())
	if got != "" {
		t.Fatalf("renderOutcome(empty results) = %q, want empty", got)
	}
}

func TestRenderMovie_PosterShownVerbatim(t *testing.T) {
	styles := GetTheme("").Styles()
	got := renderMovie(omdb.Movie{Title: "Heat", Year: "1995", Poster: "N/A", Plot: "Cops and robbers."}, 80, styles)

	for _, want := range []string{"Heat (1995)", "N/A", "Plot:", "Cops and robbers."} {
		if !strings.Contains(got, want) {
			t.Fatalf("renderMovie missing %q:\n%s", want, got)
		}
	}
	if !strings.HasPrefix(strings.TrimSpace(got), "Heat (1995)") {
		t.Fatalf("heading is not first:\n%s", got)
	}
}

func TestRenderMovie_WrapsPlot(t *testing.T) {
	plot := strings.Repeat("word ", 40)
	got := renderMovie(omdb.Movie{Title: "T", Year: "2000", Plot: plot}, 30, GetTheme("").Styles())
	for _, line := range strings.Split(got, "\n") {
		if n := len([]rune(line)); n > 30 {
			t.Fatalf("line exceeds width (%d): %q", n, line)
		}
	}
}

func TestFormatLogEntry(t *testing.T) {
	styles := GetTheme("").Styles()
	ts := time.Date(2026, 10, 18, 9, 30, 0, 0, time.Local)

	got := formatLogEntry(logtail.Entry{
		Time:    ts,
		Level:   "warn",
		Message: "failed to save preferences",
		Run:     "01J",
		Query:   "heat",
	}, styles)
	for _, want := range []string{"09:30:00", "WARN", "failed to save preferences", `query="heat"`, "run=01J"} {
		if !strings.Contains(got, want) {
			t.Fatalf("formatLogEntry missing %q: %q", want, got)
		}
	}

	raw := formatLogEntry(logtail.Entry{Raw: "plain text"}, styles)
	if !strings.Contains(raw, "plain text") {
		t.Fatalf("formatLogEntry(raw) = %q", raw)
	}
}

func TestTruncateMiddle(t *testing.T) {
	path := "/home/user/.local/state/marquee/marquee.log"
	got := truncateMiddle(path, 20)
	if len([]rune(got)) != 20 {
		t.Fatalf("truncateMiddle length = %d, want 20 (%q)", len([]rune(got)), got)
	}
	if !strings.HasPrefix(got, "/home/") || !strings.HasSuffix(got, "ee.log") {
		t.Fatalf("truncateMiddle = %q, want both ends kept", got)
	}
	if got := truncateMiddle("short", 20); got != "short" {
		t.Fatalf("truncateMiddle(short) = %q", got)
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "movie"); got != "1 movie" {
		t.Fatalf("plural(1) = %q", got)
	}
	if got := plural(3, "movie"); got != "3 movies" {
		t.Fatalf("plural(3) = %q", got)
	}
}
