package main

import (
	"io"
	"log/slog"
	"os"
)

// newLogger writes to log.file when set, otherwise to fallback. The returned close func releases the file.
func newLogger(cfg logging, fallback io.Writer) (*slog.Logger, func() error, error) {
	out := fallback
	closeFn := func() error { return nil }

	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, err
		}

		out = file
		closeFn = file.Close
	}

	options := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler = slog.NewTextHandler(out, options)
	if cfg.Structured {
		handler = slog.NewJSONHandler(out, options)
	}

	return slog.New(handler).With("app", applicationName), closeFn, nil
}
