package testuri

import (
	"errors"
	"log/slog"
	"time"
)

// pollerConfig holds mutable state during Poller construction.
type pollerConfig struct {
	targets        []string
	outputDir      string
	interval       time.Duration
	requestTimeout time.Duration
	logger         *slog.Logger
	clock          func() time.Time
	cycleCallbacks []func(CycleReport)
}

// Option is a function that configures a [Poller] instance during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithTargets], [WithTargetList], [WithOutputDir],
// [WithInterval], [WithRequestTimeout], [WithLogger], [WithCycleCallback],
// [WithClock].
type Option func(*pollerConfig) error

// WithTargets appends URLs to the target list.
//
// Targets are used verbatim and checked in the order they were added.
// Can be called multiple times.
//
// Example:
//
//	p, err := testuri.New(
//	    testuri.WithTargets("https://a.example", "https://b.example"),
//	)
func WithTargets(urls ...string) Option {
	return func(cfg *pollerConfig) error {
		cfg.targets = append(cfg.targets, urls...)
		return nil
	}
}

// WithTargetList appends the targets of a comma-separated list.
//
// The list is split with [ParseTargets]; an empty string adds nothing.
//
// Example:
//
//	p, err := testuri.New(
//	    testuri.WithTargetList(os.Getenv("URLS")),
//	)
func WithTargetList(raw string) Option {
	return func(cfg *pollerConfig) error {
		cfg.targets = append(cfg.targets, ParseTargets(raw)...)
		return nil
	}
}

// WithOutputDir sets the directory report files are written to.
//
// The directory is created by [Poller.Prepare] (and therefore by
// [Poller.Run]) if it does not exist. Defaults to /data/out.
//
// Returns an error if dir is empty.
func WithOutputDir(dir string) Option {
	return func(cfg *pollerConfig) error {
		if dir == "" {
			return errors.New("output directory cannot be empty")
		}
		cfg.outputDir = dir
		return nil
	}
}

// WithInterval sets the pause between the end of one cycle and the start of
// the next. Defaults to 60 seconds.
//
// Returns an error if the duration is zero or negative.
func WithInterval(d time.Duration) Option {
	return func(cfg *pollerConfig) error {
		if d <= 0 {
			return errors.New("interval must be positive")
		}
		cfg.interval = d
		return nil
	}
}

// WithRequestTimeout sets how long a single GET may take before it is
// recorded as a timeout. Defaults to 5 seconds.
//
// Returns an error if the duration is zero or negative.
func WithRequestTimeout(d time.Duration) Option {
	return func(cfg *pollerConfig) error {
		if d <= 0 {
			return errors.New("request timeout must be positive")
		}
		cfg.requestTimeout = d
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Poller instance.
//
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *pollerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithCycleCallback registers a function to be called after every cycle.
//
// The callback receives the [CycleReport] once the report file has been
// closed successfully. Callbacks run synchronously on the polling goroutine
// in registration order, so they delay the next cycle by however long they
// take. Panics within callbacks are recovered and logged.
//
// Example:
//
//	p, err := testuri.New(
//	    testuri.WithTargetList(urls),
//	    testuri.WithCycleCallback(func(c testuri.CycleReport) {
//	        fmt.Printf("%s: %d/%d failed\n", c.Path, c.Failures(), len(c.Results))
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithCycleCallback(cb func(CycleReport)) Option {
	return func(cfg *pollerConfig) error {
		if cb == nil {
			return nil
		}
		cfg.cycleCallbacks = append(cfg.cycleCallbacks, cb)
		return nil
	}
}

// WithClock replaces the clock used to timestamp cycles and name report
// files. Defaults to [time.Now].
//
// Returns an error if now is nil.
func WithClock(now func() time.Time) Option {
	return func(cfg *pollerConfig) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		cfg.clock = now
		return nil
	}
}
