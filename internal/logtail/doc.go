// Package logtail reads the end of marquee's diagnostic log.
//
// The terminal UI owns the screen, so diagnostics go to a JSON-lines file
// instead of stderr. The diagnostics view uses this package to show the
// most recent records without leaving the UI.
//
// # Reading
//
// Read scans the file once and keeps the last maxLines lines in a ring
// buffer, so memory stays O(maxLines) regardless of file size:
//
//	entries, err := logtail.Read(logger.Path(), 200)
//
// Lines longer than 1 MiB abort the scan with an error. A missing file is
// not an error; nothing has been logged yet.
//
// # Parsing
//
// Each line is decoded as a zerolog record. The fields the diagnostics view
// shows (time, level, message, run, query, error) are lifted into Entry.
// Anything that is not JSON is kept verbatim in Entry.Raw.
package logtail
