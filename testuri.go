package testuri

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/testuri/internal/poller"
	"github.com/jpalmerr/testuri/internal/report"
)

const (
	// DefaultOutputDir is where report files go unless [WithOutputDir] is used.
	DefaultOutputDir = "/data/out"

	defaultInterval       = 60 * time.Second
	defaultRequestTimeout = 5 * time.Second
)

// Poller periodically checks a fixed list of URLs and writes one report
// file per cycle.
//
// A Poller is created with [New] and driven either by [Poller.Run], which
// loops until its context is cancelled, or one cycle at a time with
// [Poller.RunCycle]. Targets are checked sequentially, never concurrently.
//
// The typical lifecycle is:
//
//	p, err := testuri.New(testuri.WithTargetList(os.Getenv("URLS")))
//	if err != nil {
//	    slog.Error("failed to create poller", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	if err := p.Run(ctx); err != nil { // blocks until ctx cancelled
//	    os.Exit(1)
//	}
type Poller struct {
	targets        []string
	outputDir      string
	interval       time.Duration
	requestTimeout time.Duration
	logger         *slog.Logger
	now            func() time.Time
	cycleCallbacks []func(CycleReport)
	client         *poller.Client
}

// New creates a new [Poller] instance with the given options.
//
// Defaults:
//   - Targets: none
//   - Output directory: /data/out
//   - Interval: 60 seconds
//   - Request timeout: 5 seconds
//
// New does not touch the filesystem or the network.
// Returns an error if any option is invalid.
func New(opts ...Option) (*Poller, error) {
	cfg := &pollerConfig{
		targets:        []string{},
		outputDir:      DefaultOutputDir,
		interval:       defaultInterval,
		requestTimeout: defaultRequestTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := cfg.clock
	if clock == nil {
		clock = time.Now
	}

	return &Poller{
		targets:        cfg.targets,
		outputDir:      cfg.outputDir,
		interval:       cfg.interval,
		requestTimeout: cfg.requestTimeout,
		logger:         logger,
		now:            clock,
		cycleCallbacks: cfg.cycleCallbacks,
		client:         poller.NewClient(),
	}, nil
}

// Prepare creates the output directory if it does not exist yet.
//
// Prepare is idempotent: an existing directory and its contents are left
// untouched. [Poller.Run] calls it before the first cycle.
func (p *Poller) Prepare() error {
	return report.EnsureDir(p.outputDir)
}

// Run checks all targets immediately, then again after every interval,
// until ctx is cancelled.
//
// The interval is measured from the end of a cycle. A cycle in progress when
// ctx is cancelled still writes one line per target before Run returns.
//
// Returns nil when ctx is cancelled. Returns an error if the output
// directory cannot be created or a report file cannot be written; per-target
// network failures are recorded in the report and never end the loop.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.Prepare(); err != nil {
		return err
	}
	defer p.client.Close()

	p.logger.Info("poller starting",
		"target_count", len(p.targets),
		"output_dir", p.outputDir,
		"interval", p.interval.String(),
		"request_timeout", p.requestTimeout.String(),
	)
	if len(p.targets) == 0 {
		p.logger.Warn("no targets configured, reports will be empty")
	}

	scheduler := poller.NewScheduler(p.interval, p.logger)
	err := scheduler.Run(ctx, func(ctx context.Context) error {
		_, err := p.RunCycle(ctx)
		return err
	})
	if err != nil {
		return err
	}

	p.logger.Info("poller stopped")
	return nil
}

// RunCycle performs a single cycle: it creates the report file for the
// current clock reading, checks every target in order and writes one line
// per target, then closes the file.
//
// The output directory must already exist; see [Poller.Prepare].
// Returns an error only for filesystem failures. Cycle callbacks are invoked
// after the file has been closed successfully.
func (p *Poller) RunCycle(ctx context.Context) (CycleReport, error) {
	began := time.Now()
	cycle := CycleReport{
		ID:        uuid.NewString(),
		StartedAt: p.now(),
		Results:   make([]CheckResult, 0, len(p.targets)),
	}
	logger := p.logger.With("cycle_id", cycle.ID)

	f, err := report.Create(p.outputDir, cycle.StartedAt)
	if err != nil {
		return cycle, err
	}
	cycle.Path = f.Path()

	sweepErr := p.client.Sweep(ctx, p.targets, p.requestTimeout, func(r poller.Result) error {
		result := pollerResultToCheckResult(r)
		cycle.Results = append(cycle.Results, result)
		logResult(logger, result)
		return f.WriteLine(result.Line())
	})
	closeErr := f.Close()
	cycle.Duration = time.Since(began)

	if sweepErr != nil {
		return cycle, sweepErr
	}
	if closeErr != nil {
		return cycle, closeErr
	}

	logger.Info("cycle completed",
		"report", cycle.Path,
		"targets", len(cycle.Results),
		"failures", cycle.Failures(),
		"duration_ms", cycle.Duration.Milliseconds(),
	)

	for _, cb := range p.cycleCallbacks {
		invokeCallbackSafe(cb, cycle, logger)
	}

	return cycle, nil
}

// Targets returns a copy of the configured target list.
func (p *Poller) Targets() []string {
	cp := make([]string, len(p.targets))
	copy(cp, p.targets)
	return cp
}

// OutputDir returns the directory report files are written to.
func (p *Poller) OutputDir() string {
	return p.outputDir
}

// Interval returns the pause between cycles.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// RequestTimeout returns the per-request timeout.
func (p *Poller) RequestTimeout() time.Duration {
	return p.requestTimeout
}

// pollerResultToCheckResult converts an internal poller result to the public type.
func pollerResultToCheckResult(r poller.Result) CheckResult {
	return CheckResult{
		URL:        r.URL,
		StatusCode: r.StatusCode,
		Err:        r.Error,
		Latency:    r.Latency,
		CheckedAt:  r.CheckedAt,
	}
}

// logResult logs a check (DEBUG level for success to reduce noise).
func logResult(logger *slog.Logger, r CheckResult) {
	attrs := []any{
		"url", r.URL,
		"latency_ms", r.Latency.Milliseconds(),
	}
	if r.Err != nil {
		logger.Warn("check failed", append(attrs, "error", r.Err.Error())...)
		return
	}
	logger.Debug("check completed", append(attrs, "status_code", r.StatusCode)...)
}

// invokeCallbackSafe calls a cycle callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(CycleReport), cycle CycleReport, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("cycle callback panicked", "panic", r)
		}
	}()
	cb(cycle)
}
