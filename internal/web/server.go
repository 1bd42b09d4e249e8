// Package web serves marquee as a single HTML page: a title field, a search
// button, and the display region.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/render"
	"github.com/five82/marquee/internal/search"
)

const shutdownTimeout = 10 * time.Second

// Searcher runs one search and returns its final outcome.
type Searcher interface {
	Run(ctx context.Context, raw string, show search.Display) search.Outcome
}

var _ Searcher = (*search.Pipeline)(nil)

// Server wraps the echo instance.
type Server struct {
	echo     *echo.Echo
	searcher Searcher
	log      zerolog.Logger
}

// New builds a Server with its routes registered.
func New(searcher Searcher, log zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, searcher: searcher, log: log}

	e.Use(middleware.Recover())
	e.Use(s.withLogger)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := s.log.Debug()
			if v.Error != nil {
				ev = s.log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Int64("latency_ms", v.Latency.Milliseconds()).
				Msg("request completed")
			return nil
		},
	}))

	e.GET("/", s.handlePage)
	e.GET("/search", s.handleFragment)
	e.GET("/health", s.handleHealth)
	return s
}

// Handler exposes the server for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("address", addr).Msg("starting http server")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("start http server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return <-errCh
}

func (s *Server) withLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		c.SetRequest(req.WithContext(logging.WithContext(req.Context(), s.log)))
		return next(c)
	}
}

func (s *Server) handlePage(c echo.Context) error {
	data := render.PageData{}
	if c.QueryParams().Has("q") {
		data.Query = c.QueryParam("q")
		frag, err := s.fragmentFor(c, data.Query)
		if err != nil {
			return err
		}
		data.Fragment = frag
	}

	var buf bytes.Buffer
	if err := render.Page(&buf, data); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) handleFragment(c echo.Context) error {
	frag, err := s.fragmentFor(c, c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, string(frag))
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) fragmentFor(c echo.Context, query string) (template.HTML, error) {
	out := s.searcher.Run(c.Request().Context(), query, nil)
	return render.Fragment(out)
}
