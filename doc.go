// Package testuri periodically checks the reachability of a list of URLs
// and writes a timestamped plain-text report per check cycle.
//
// Every cycle issues one GET per target, sequentially and in input order,
// and writes one line per target to <output_dir>/testuri_<YYYYMMDD_HHMMSS>.out:
//
//	http://a.test -> 200
//	http://b.test -> ERROR: Get "http://b.test": dial tcp: lookup b.test: no such host
//
// After the file is closed the poller pauses for the configured interval and
// starts over, until its context is cancelled.
//
// # Quick Start
//
//	p, _ := testuri.New(
//	    testuri.WithTargetList("https://a.example,https://b.example"),
//	    testuri.WithOutputDir("/data/out"),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	p.Run(ctx) // blocks until ctx is cancelled
//
// # Configuration
//
// Poller uses the functional options pattern. Defaults match a container
// deployment: /data/out, a 60 second pause and a 5 second request timeout.
//
//	p, err := testuri.New(
//	    testuri.WithTargets("https://a.example", "https://b.example"),
//	    testuri.WithInterval(30 * time.Second),
//	    testuri.WithRequestTimeout(2 * time.Second),
//	    testuri.WithCycleCallback(func(c testuri.CycleReport) { ... }),
//	)
//
// # Failures
//
// A target that cannot be reached (timeout, DNS, refused connection, TLS,
// malformed URL) gets an ERROR line and the cycle moves on; nothing is
// retried. Filesystem failures end [Poller.Run] with an error so a process
// supervisor can restart the program.
//
// # Architecture
//
//   - internal/poller: HTTP checks and the cycle scheduler
//   - internal/report: Report file naming and writing
//   - internal/metrics: Prometheus collectors fed from cycle reports
//   - internal/server: Optional /metrics and /healthz listener
//   - internal/logger: slog setup for the CLI
//   - config: YAML and environment configuration for the CLI
package testuri
