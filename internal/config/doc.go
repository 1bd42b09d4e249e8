// Package config loads marquee's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/marquee/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. OMDB_API_KEY, when set, replaces api_key
//
// # Default Values
//
//   - API base URL: https://www.omdbapi.com/
//   - Request timeout: 10s (0 disables the per-request timeout)
//   - Detail fan-out limit: 10 concurrent requests
//   - Diagnostic log: ~/.local/state/marquee/marquee.log
//   - Log level: info
//   - Listen address for serve: 127.0.0.1:8080
//
// # TOML Format
//
//	api_key = "abcd1234"
//	base_url = "https://www.omdbapi.com/"
//	request_timeout = "10s"
//	max_concurrency = 10
//	log_file = "~/.local/state/marquee/marquee.log"
//	log_level = "debug"
//	listen_addr = "127.0.0.1:8080"
//
// Every field is optional here; Validate rejects a missing API key once the
// caller actually needs to talk to the provider.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors, and malformed durations. A missing file
// is not an error.
package config
