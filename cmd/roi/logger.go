package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"nexalis-roi/internal/config"
)

// errorMirror sends every record to out and copies records at or above
// LevelError to errs.
type errorMirror struct {
	out  slog.Handler
	errs slog.Handler
}

func (m errorMirror) Enabled(ctx context.Context, lvl slog.Level) bool {
	return m.out.Enabled(ctx, lvl) || (lvl >= slog.LevelError && m.errs.Enabled(ctx, lvl))
}

func (m errorMirror) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if m.out.Enabled(ctx, r.Level) {
		err = m.out.Handle(ctx, r)
	}

	if r.Level >= slog.LevelError {
		// the file copy never fails the log call
		_ = m.errs.Handle(ctx, r.Clone())
	}

	return err
}

func (m errorMirror) WithAttrs(attrs []slog.Attr) slog.Handler {
	return errorMirror{out: m.out.WithAttrs(attrs), errs: m.errs.WithAttrs(attrs)}
}

func (m errorMirror) WithGroup(name string) slog.Handler {
	return errorMirror{out: m.out.WithGroup(name), errs: m.errs.WithGroup(name)}
}

func logLevel(env, override string) (slog.Level, error) {
	if override != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(override)); err != nil {
			return 0, fmt.Errorf("log level %q: %w", override, err)
		}
		return lvl, nil
	}
	if env == envProd {
		return slog.LevelInfo, nil
	}
	return slog.LevelDebug, nil
}

// newLogHandler builds the stdout handler for env: JSON on dev, text
// elsewhere.
func newLogHandler(w io.Writer, env string, lvl slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: lvl}
	if env == envDev {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// setupLogger returns the process logger and a closer for the error file.
// A bad level falls back to the env default; an unopenable error file
// leaves stdout logging only.
func setupLogger(env string, cfg config.Log) (*slog.Logger, func() error) {
	noop := func() error { return nil }

	lvl, lvlErr := logLevel(env, cfg.Level)
	if lvlErr != nil {
		lvl, _ = logLevel(env, "")
	}
	out := newLogHandler(os.Stdout, env, lvl)

	log := slog.New(out)
	closer := noop

	if cfg.ErrorFile != "" {
		f, err := os.OpenFile(cfg.ErrorFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Warn("cannot open error log file", slog.String("path", cfg.ErrorFile), slog.String("error", err.Error()))
		} else {
			log = slog.New(errorMirror{
				out:  out,
				errs: slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelError}),
			})
			closer = f.Close
		}
	}

	if lvlErr != nil {
		log.Warn("ignoring log level", slog.String("error", lvlErr.Error()))
	}

	return log, closer
}
