// Package logger builds the process-wide slog logger for the testuri CLI.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

const (
	defaultMaxSizeMB  = 50
	defaultMaxBackups = 3
)

// Options configures [Setup].
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// Format is json or text. Empty means json.
	Format string

	// File, when set, sends output to a size-rotated file instead of stderr.
	File string

	// MaxSizeMB and MaxBackups control rotation; zero uses the defaults.
	MaxSizeMB  int
	MaxBackups int
}

// ParseLevel maps a level name onto slog.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// ValidFormat reports whether format names a supported handler.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "", FormatJSON, FormatText:
		return true
	}
	return false
}

// Setup returns a logger for opts writing to stderr.
//
// The returned closer releases the log file when one is configured; it is
// always non-nil.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	return setup(opts, os.Stderr)
}

func setup(opts Options, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if !ValidFormat(opts.Format) {
		return nil, nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	out := stderr
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, defaultMaxSizeMB),
			MaxBackups: orDefault(opts.MaxBackups, defaultMaxBackups),
			LocalTime:  true,
		}
		out, closer = rotated, rotated
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, FormatText) {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	return slog.New(handler), closer, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
