// Package state holds the display region shared by concurrent search runs.
//
// # Overview
//
// Every front end shows exactly one thing at a time: a prompt, a loading
// message, a not-found message, an error message, or a list of movies. That
// content lives in a Region. Search runs write to it; the TUI and web
// front ends read snapshots from it.
//
// # Generations
//
// Triggering a search calls Begin, which hands out a generation number one
// higher than any before it. The run then writes through Show(gen):
//
//	gen := region.Begin()
//	go pipeline.Run(ctx, query, region.Show(gen))
//
// A write is accepted only while its generation is still the newest. When a
// user triggers a second search before the first one finishes, the first
// run keeps going, but everything it writes after the second Begin is
// dropped. The newest run always owns the final content.
//
//	Run A:  Begin(1) ─ loading ─────────────── results (dropped)
//	Run B:             Begin(2) ─ loading ─ results
//	Region:    1:loading    2:loading   2:results
//
// # Concurrency Model
//
// Region uses a readers-writer lock. Writes replace the whole outcome, so a
// reader never sees parts of two runs mixed together. Snapshots copy the
// movie slice and can be used freely after the lock is released.
package state
