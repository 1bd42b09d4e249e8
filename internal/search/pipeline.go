package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/omdb"
)

// DefaultLimit caps concurrent detail requests when Options.Limit is zero.
// OMDb returns at most ten hits per page, so this rarely queues anything.
const DefaultLimit = 10

// Options configure a Pipeline.
type Options struct {
	Fetcher omdb.Fetcher
	// Limit bounds concurrent detail requests; zero uses DefaultLimit.
	Limit int
	// Logger overrides the logger carried by the run context.
	Logger *zerolog.Logger
}

// Pipeline runs gate → search → detail fan-out → outcome for one query.
// It is safe for concurrent use; runs share nothing but the Fetcher.
type Pipeline struct {
	fetcher omdb.Fetcher
	limit   int
	log     *zerolog.Logger
	newID   func() string
}

// New builds a Pipeline.
func New(opts Options) (*Pipeline, error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("search pipeline requires a fetcher")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Pipeline{
		fetcher: opts.Fetcher,
		limit:   limit,
		log:     opts.Logger,
		newID:   func() string { return ulid.Make().String() },
	}, nil
}

// Gate trims raw for validation only. It reports false when nothing but
// whitespace was entered; otherwise raw is returned unchanged.
func Gate(raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	return raw, true
}

// Run executes one search. Every intermediate and final outcome is passed to
// show; the final outcome is also returned. show may be nil.
func (p *Pipeline) Run(ctx context.Context, raw string, show Display) Outcome {
	if show == nil {
		show = func(Outcome) bool { return true }
	}

	query, ok := Gate(raw)
	if !ok {
		out := Outcome{Kind: KindPrompt}
		show(out)
		return out
	}

	run := p.newID()
	base := p.log
	if base == nil {
		base = logging.FromContext(ctx)
	}
	log := base.With().Str("run", run).Str("query", query).Logger()
	log.Debug().Msg("search started")

	res, err := p.fetcher.Search(ctx, query)
	if err != nil {
		return p.fail(log, show, Outcome{Query: query, Run: run}, fmt.Errorf("search: %w", err))
	}
	if !res.Found() {
		log.Debug().Str("provider_error", res.Error).Msg("no results")
		out := Outcome{Kind: KindNotFound, Query: query, Run: run}
		show(out)
		return out
	}

	show(Outcome{Kind: KindLoading, Query: query, Run: run})

	movies, err := FanOut(ctx, p.fetcher, res.Search, p.limit)
	if err != nil {
		return p.fail(log, show, Outcome{Query: query, Run: run}, err)
	}

	log.Debug().Int("results", len(movies)).Msg("search finished")
	out := Outcome{Kind: KindResults, Query: query, Movies: movies, Run: run}
	show(out)
	return out
}

func (p *Pipeline) fail(log zerolog.Logger, show Display, out Outcome, err error) Outcome {
	log.Error().Err(err).Msg("movie search failed")
	out.Kind = KindFailed
	out.Movies = nil
	out.Err = err
	show(out)
	return out
}

// FanOut fetches the detail record for every stub concurrently, at most limit
// at a time. Results keep stub order. The first failure cancels the requests
// still in flight and fails the whole batch.
func FanOut(ctx context.Context, f omdb.Fetcher, stubs []omdb.Stub, limit int) ([]omdb.Movie, error) {
	movies := make([]omdb.Movie, len(stubs))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, stub := range stubs {
		i, stub := i, stub
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			movie, err := f.FetchMovie(gctx, stub.IMDbID)
			if err != nil {
				return fmt.Errorf("fetch detail %s: %w", stub.IMDbID, err)
			}
			movies[i] = movie
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return movies, nil
}
