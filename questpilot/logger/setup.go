package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the console and file sinks.
type Options struct {
	Level     slog.Level
	File      string
	AddSource bool
}

// Setup installs the default logger: colored console output at the
// configured level plus a rotating debug-level file when File is set.
func Setup(opts Options) (io.Closer, error) {
	handlers := []slog.Handler{NewHandler(os.Stdout, opts.Level)}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, err
		}
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5,
			MaxBackups: 3,
		}
		handlers = append(handlers, slog.NewTextHandler(file, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: opts.AddSource,
		}))
		closer = file
	}

	slog.SetDefault(slog.New(Fanout(handlers...)))
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type fanout []slog.Handler

// Fanout dispatches every record to each handler that accepts its level.
func Fanout(handlers ...slog.Handler) slog.Handler {
	return fanout(handlers)
}

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}
