// Package app is marquee's composition root.
//
// It loads the config, opens the diagnostic log, builds the OMDb client and
// the search pipeline, then hands them to one of three surfaces:
//
//	Run     terminal UI (logs to file only)
//	Search  one search, fragment written to a writer
//	Serve   HTTP page on listen_addr
//
// # Wiring
//
//	config.Load ──> Validate ──> logging.New ──> omdb.NewClient ──> search.New
//	                                                                    │
//	               ┌────────────────────────┬───────────────────────────┤
//	               ▼                        ▼                           ▼
//	   ui.Run(state.Region)       render.Fragment(out)        web.New(pipeline)
//
// The API key is read once here and injected into the client; nothing else
// looks at the environment.
//
// # Errors
//
// Startup failures (bad config, missing key, unwritable log file) are
// returned wrapped and end the process. Failures during a search never
// are: the pipeline turns them into the generic server-error outcome and
// logs the cause. Search is the exception for scripting, returning the
// cause after writing the message.
package app
