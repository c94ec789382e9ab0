package poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Result holds the outcome of checking a single target.
type Result struct {
	// URL is the target exactly as configured.
	URL string

	// StatusCode is the HTTP status code, zero on error.
	StatusCode int

	// Latency is the time taken to complete the HTTP request.
	Latency time.Duration

	// CheckedAt is the timestamp when the check finished.
	CheckedAt time.Time

	// Error contains any error that occurred during the check.
	Error error
}

// Sweep checks every target once, sequentially and in order, calling visit
// with each result as soon as it is available.
//
// Sweep keeps going after cancellation of ctx so that visit still sees one
// result per target; those results carry the cancellation error. Sweep stops
// early only when visit returns an error, which is then returned.
func (c *Client) Sweep(ctx context.Context, targets []string, timeout time.Duration, visit func(Result) error) error {
	for _, target := range targets {
		resp := c.Check(ctx, target, timeout)

		result := Result{
			URL:        target,
			StatusCode: resp.StatusCode,
			Latency:    resp.Latency,
			CheckedAt:  time.Now(),
			Error:      resp.Error,
		}
		if err := visit(result); err != nil {
			return err
		}
	}
	return nil
}

// CycleFunc runs one polling cycle. A non-nil error stops the [Scheduler].
type CycleFunc func(ctx context.Context) error

// Scheduler drives cycles one after another with a fixed pause in between.
//
// The pause starts when a cycle completes, so the effective period is the
// cycle duration plus the interval. Cycles never overlap.
type Scheduler struct {
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a new [Scheduler].
//
// Parameters:
//   - interval: Pause between the end of one cycle and the start of the next
//   - logger: Logger for scheduler events
func NewScheduler(interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		interval: interval,
		logger:   logger,
	}
}

// Interval returns the pause between cycles.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Run blocks, running cycle immediately and then again after every pause,
// until ctx is cancelled or cycle fails.
//
// Returns nil when ctx is cancelled, otherwise the cycle's error.
// A cycle that is in progress when ctx is cancelled is allowed to finish.
func (s *Scheduler) Run(ctx context.Context, cycle CycleFunc) error {
	if ctx.Err() != nil {
		return nil
	}

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for n := 1; ; n++ {
		if err := cycle(ctx); err != nil {
			return fmt.Errorf("cycle %d failed: %w", n, err)
		}

		if ctx.Err() != nil {
			return nil
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(s.interval)

		s.logger.Debug("waiting for next cycle", "interval", s.interval.String())

		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}
