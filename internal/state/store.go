package state

import (
	"sync"
	"time"

	"github.com/five82/marquee/internal/search"
)

// Snapshot represents what the display region currently shows.
type Snapshot struct {
	Outcome    search.Outcome
	Generation uint64 // generation of the run that produced Outcome
	Latest     uint64 // newest generation handed out by Begin
	UpdatedAt  time.Time
	Writes     int
}

// Busy reports whether the newest run has not produced its final outcome yet.
func (s Snapshot) Busy() bool {
	if s.Latest == 0 {
		return false
	}
	return s.Generation != s.Latest || s.Outcome.Kind == search.KindLoading
}

// Region is the single display region shared by concurrent pipeline runs.
// Every write replaces the whole outcome; writes from any run older than the
// newest one are dropped.
type Region struct {
	mu       sync.RWMutex
	latest   uint64
	snapshot Snapshot
}

// Begin hands out a new generation, making every earlier one stale.
func (r *Region) Begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest++
	r.snapshot.Latest = r.latest
	return r.latest
}

// Write replaces the region's content if gen is still the newest generation.
// It reports whether the write was accepted.
func (r *Region) Write(gen uint64, outcome search.Outcome) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen == 0 || gen != r.latest {
		return false
	}
	r.snapshot.Outcome = cloneOutcome(outcome)
	r.snapshot.Generation = gen
	r.snapshot.UpdatedAt = time.Now()
	r.snapshot.Writes++
	return true
}

// Show adapts the region to search.Display for one generation.
func (r *Region) Show(gen uint64) search.Display {
	return func(o search.Outcome) bool {
		return r.Write(gen, o)
	}
}

// Snapshot returns a copy of the current snapshot.
func (r *Region) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := r.snapshot
	snap.Outcome = cloneOutcome(r.snapshot.Outcome)
	return snap
}

func cloneOutcome(o search.Outcome) search.Outcome {
	if len(o.Movies) == 0 {
		o.Movies = nil
		return o
	}
	o.Movies = append(o.Movies[:0:0], o.Movies...)
	return o
}
