// Package search runs one movie search from raw input to a final outcome.
//
// A run passes through four stages:
//
//	Gate      whitespace-only input becomes a Prompt outcome; nothing is sent
//	Search    one provider search; "Response":"False" becomes NotFound
//	FanOut    one detail fetch per hit, bounded by Options.Limit
//	Results   movies in the order the provider listed them
//
// Every intermediate outcome (Loading) and the final one are pushed to a
// Display callback, then the final outcome is returned. Any transport or
// decoding error in Search or FanOut ends the run as Failed, which shows a
// single generic message; the cause is logged once with the run's ULID.
//
// FanOut stops at the first failed detail fetch and cancels the rest, so
// partial results are never shown.
package search
