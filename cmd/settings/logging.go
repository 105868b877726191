package settings

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ParseLevel parses debug, info, warn or error (case insensitive)
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return l, fmt.Errorf("%w: unknown log level %q", ErrInvalidSettings, level)
	}

	return l, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds the CLI logger. Records at the configured level go to
// stderr as text, and if a log file is configured, also to that file as JSON
// lines. The returned closer releases the log file.
func NewLogger(config Log, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, nil, err
	}

	console := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})

	if config.File == "" {
		return slog.New(console), nopCloser{}, nil
	}

	file, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	handler := slogmulti.Fanout(
		console,
		slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)

	return slog.New(handler), file, nil
}

var logger = slog.New(slog.DiscardHandler)

// Logger returns the logger configured by the root command
func Logger() *slog.Logger {
	return logger
}

// SetLogger replaces the logger returned by Logger
func SetLogger(l *slog.Logger) {
	logger = l
}
