package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/omdb"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/render"
	"github.com/five82/marquee/internal/search"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/ui"
	"github.com/five82/marquee/internal/web"
)

// Options configure the marquee application.
type Options struct {
	ConfigPath string
	PrefsPath  string    // empty uses default ~/.config/marquee/prefs.toml
	LogLevel   string    // overrides log_level from the config file when set
	Stderr     io.Writer // console log output for search and serve; nil uses os.Stderr
}

// deps is everything built from the config before a surface starts.
type deps struct {
	cfg      config.Config
	log      *logging.Logger
	pipeline *search.Pipeline
}

func setup(opts Options, console io.Writer) (*deps, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: console,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := omdb.NewClient(omdb.Options{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("init omdb client: %w", err)
	}

	pipeline, err := search.New(search.Options{
		Fetcher: client,
		Limit:   cfg.MaxConcurrency,
		Logger:  &log.Logger,
	})
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("init search pipeline: %w", err)
	}

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Dur("request_timeout", cfg.RequestTimeout).
		Int("max_concurrency", cfg.MaxConcurrency).
		Msg("marquee configured")

	return &deps{cfg: cfg, log: log, pipeline: pipeline}, nil
}

func (o Options) stderr() io.Writer {
	if o.Stderr != nil {
		return o.Stderr
	}
	return os.Stderr
}

// Run boots the terminal UI until the user quits or the context is cancelled.
// Diagnostics go to the log file only; the UI owns the terminal.
func Run(ctx context.Context, opts Options) error {
	d, err := setup(opts, nil)
	if err != nil {
		return err
	}
	defer d.log.Close()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	d.log.Info().Str("log_file", d.log.Path()).Msg("starting terminal ui")

	err = ui.Run(ui.Options{
		Context:   ctx,
		Searcher:  d.pipeline,
		Region:    &state.Region{},
		Logger:    &d.log.Logger,
		LogPath:   d.log.Path(),
		ThemeName: userPrefs.Theme,
		LastQuery: userPrefs.LastQuery,
		PrefsPath: prefsPath,
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

// Search runs one search for query and writes the resulting fragment to w.
// A failed search still writes its message; the error is returned as well.
func Search(ctx context.Context, opts Options, query string, w io.Writer) error {
	d, err := setup(opts, opts.stderr())
	if err != nil {
		return err
	}
	defer d.log.Close()

	ctx = logging.WithContext(ctx, d.log.Logger)
	out := d.pipeline.Run(ctx, query, nil)

	frag, err := render.Fragment(out)
	if err != nil {
		return fmt.Errorf("render fragment: %w", err)
	}
	if _, err := fmt.Fprintln(w, frag); err != nil {
		return fmt.Errorf("write fragment: %w", err)
	}

	if out.Kind == search.KindFailed {
		return fmt.Errorf("search %q: %w", out.Query, out.Err)
	}
	return nil
}

// Serve runs the web surface on addr (or listen_addr from the config when
// addr is empty) until the context is cancelled.
func Serve(ctx context.Context, opts Options, addr string) error {
	d, err := setup(opts, opts.stderr())
	if err != nil {
		return err
	}
	defer d.log.Close()

	if addr == "" {
		addr = d.cfg.ListenAddr
	}
	return web.New(d.pipeline, d.log.Logger).ListenAndServe(ctx, addr)
}
