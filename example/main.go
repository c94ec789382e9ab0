package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jpalmerr/testuri"
)

func main() {
	// start mock server (see mock_server.go)
	go StartMockTargetServer(":9999")
	time.Sleep(100 * time.Millisecond)

	outDir := filepath.Join(os.TempDir(), "testuri-demo")

	p, err := testuri.New(
		testuri.WithTargetList("http://localhost:9999/ok,http://localhost:9999/flaky,http://localhost:9999/missing"),
		// one that times out and one nothing listens on
		testuri.WithTargets("http://localhost:9999/slow", "http://localhost:1/closed"),
		testuri.WithOutputDir(outDir),
		testuri.WithInterval(10*time.Second),
		testuri.WithCycleCallback(func(c testuri.CycleReport) {
			fmt.Printf("\n%s (%d/%d failed)\n", filepath.Base(c.Path), c.Failures(), len(c.Results))
			for _, r := range c.Results {
				fmt.Printf("  %s\n", r.Line())
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create poller", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  testuri demo")
	fmt.Println()
	fmt.Printf("  Reports: %s\n", outDir)
	fmt.Println("  Targets: 3 mock, 1 slow (timeout), 1 closed port")
	fmt.Println("  Interval: 10s after each cycle")
	fmt.Println()
	fmt.Println("  Press Ctrl+C to stop")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := p.Run(ctx); err != nil {
		slog.Error("poller error", "error", err)
		os.Exit(1)
	}
}
