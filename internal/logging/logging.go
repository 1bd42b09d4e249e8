// Package logging owns marquee's operator-facing diagnostic channel.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configure New.
type Options struct {
	// Level is a zerolog level name; unknown values fall back to info.
	Level string
	// File receives JSON lines when set. Parent directories are created.
	File string
	// Console mirrors records to this writer in human-readable form.
	Console io.Writer
}

// Logger bundles the zerolog logger with the file it writes to, if any.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New builds a Logger. With neither File nor Console set, records are dropped.
func New(opts Options) (*Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        opts.Console,
			TimeFormat: time.RFC3339,
		})
	}

	var file *os.File
	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, file)
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	zl := zerolog.New(out).Level(lvl).With().Timestamp().Str("app", "marquee").Logger()
	return &Logger{Logger: zl, file: file}, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Path returns the file backing the logger, or "" when logging to the console only.
func (l *Logger) Path() string {
	if l == nil || l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// WithContext attaches zl to ctx.
func WithContext(ctx context.Context, zl zerolog.Logger) context.Context {
	return zl.WithContext(ctx)
}

// FromContext returns the logger carried by ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
