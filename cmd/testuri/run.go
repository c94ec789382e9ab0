package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/jpalmerr/testuri"
	"github.com/jpalmerr/testuri/config"
	"github.com/jpalmerr/testuri/internal/logger"
	"github.com/jpalmerr/testuri/internal/metrics"
	"github.com/jpalmerr/testuri/internal/server"
	"github.com/jpalmerr/testuri/internal/store"
)

// runCmd starts the polling loop.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll the configured targets",
	Long: `Poll the configured targets and write one report per cycle.

The poller will:
  - Load configuration from the environment and the optional YAML file
  - Create the output directory if it is missing
  - Check every target in order, then wait the interval and repeat

The loop runs until interrupted (Ctrl+C) or receives SIGTERM. A filesystem
failure (for example an unwritable output directory) exits with status 1.

Example:
  URLS=https://example.com testuri run
  testuri run -c /etc/testuri/testuri.yaml
  testuri run --once`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (optional)")
	runCmd.Flags().Bool("once", false, "run a single cycle, print the report path and exit")
}

func runRun(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	once, _ := cmd.Flags().GetBool("once")

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, closer, err := logger.Setup(config.LoggerOptions(cfg))
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	for _, w := range cfg.Warnings() {
		log.Warn("config warning", "detail", w)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, st, reg, err := newPoller(cfg, log)
	if err != nil {
		return err
	}

	if once {
		return runOnce(ctx, p)
	}

	if cfg.Metrics.Port != 0 {
		srv := server.NewServer(st, reg, cfg.Metrics.Port, log)
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("failed to start ops server: %w", err)
		}
	}

	if err := p.Run(ctx); err != nil {
		log.Error("poller stopped with error", "error", err)
		return fmt.Errorf("poller error: %w", err)
	}
	log.Info("shutdown complete")
	return nil
}

// newPoller builds the poller with its metrics and last-cycle store wired in
// as cycle callbacks.
func newPoller(cfg *config.Config, log *slog.Logger) (*testuri.Poller, *store.MemoryStore, *prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder, err := metrics.NewRecorder(reg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	st := store.NewMemoryStore()

	opts := append(config.BuildOptions(cfg),
		testuri.WithLogger(log),
		testuri.WithCycleCallback(recorder.ObserveCycle),
		testuri.WithCycleCallback(store.Recorder(st)),
	)
	p, err := testuri.New(opts...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create poller: %w", err)
	}
	return p, st, reg, nil
}

func runOnce(ctx context.Context, p *testuri.Poller) error {
	if err := p.Prepare(); err != nil {
		return err
	}
	cycle, err := p.RunCycle(ctx)
	if err != nil {
		return fmt.Errorf("cycle failed: %w", err)
	}

	fmt.Printf("%s\n", cycle.Path)
	return nil
}
