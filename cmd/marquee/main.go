package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "marquee",
		Short: "Search OMDb for movies by title",
		Long: `marquee looks up every movie matching a title on OMDb and shows each one's
title, year, poster and plot.

Without a subcommand it starts the terminal UI. The API key is read from
api_key in the config file or from the OMDB_API_KEY environment variable.

Examples:
  marquee                          # terminal UI
  marquee search "the thing"       # print the HTML fragment for one search
  marquee serve --addr :8080       # serve the search page over HTTP`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/marquee/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/marquee/prefs.toml)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(newSearchCmd(&opts, stdout, stderr), newServeCmd(&opts, stderr))
	return root
}

func newSearchCmd(opts *app.Options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Run one search and print the HTML fragment",
		Long: `Run one search and print the fragment the page would show: one block per
movie, or a single status paragraph. Multiple arguments are joined with spaces.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := *opts
			o.Stderr = stderr
			return app.Search(cmd.Context(), o, strings.Join(args, " "), stdout)
		},
	}
}

func newServeCmd(opts *app.Options, stderr io.Writer) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o := *opts
			o.Stderr = stderr
			return app.Serve(cmd.Context(), o, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default listen_addr from config, 127.0.0.1:8080)")
	return cmd
}
