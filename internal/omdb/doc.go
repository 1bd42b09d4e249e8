// Package omdb provides an HTTP client for the OMDb movie API.
//
// # Client Usage
//
// The API key is injected at construction; nothing in this package reads
// configuration or the environment:
//
//	client, err := omdb.NewClient(omdb.Options{APIKey: cfg.APIKey, Timeout: 10 * time.Second})
//	if err != nil {
//		return fmt.Errorf("init omdb client: %w", err)
//	}
//
//	res, err := client.Search(ctx, "alien")
//	if err != nil {
//		return err // transport or decode failure
//	}
//	if !res.Found() {
//		// zero hits and provider errors look the same
//	}
//	movie, err := client.FetchMovie(ctx, res.Search[0].IMDbID)
//
// # API Endpoints
//
//   - GET <base>?s=<title>&apikey=<key>: title search, returns stubs
//   - GET <base>?i=<imdbID>&apikey=<key>: full record for one title
//
// # Error Handling
//
// Errors are returned for request construction, transport failures, and
// bodies that are not JSON. An error status with a JSON body is decoded like
// a success, because OMDb reports "Invalid API key!" and similar conditions
// that way. The API key is redacted from every error message.
package omdb
