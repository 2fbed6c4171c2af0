/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */
package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phuonguno98/unotop/internal/monitor"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run the collectors without a UI",
	Long: `Run both collectors headless and log a one-line summary per snapshot
until interrupted. Useful to check sampling cadence and provider errors.

Examples:
  # Run in foreground with default settings
  unotop collect

  # Keep every tick and log as JSON to a rotating file
  unotop collect --delivery queue --log-file unotop.log`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

// runCollect is the headless monitoring entry point.
func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize logger
	logger := InitLogger(cfg.LogLevel, cfg.LogFile)
	logStartup(logger, cfg)

	mgr, mon, err := newPipeline(cfg, logger)
	if err != nil {
		logger.Error("Failed to build pipeline", "error", err)
		return err
	}

	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("UnoTop is running", "delivery", cfg.Delivery)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := mon.Run(context.WithoutCancel(ctx)); err != nil {
			logger.Error("Monitor stopped with error", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		logSummaries(ctx, mon, logger)
	}()

	// Start collector manager (blocking until context is cancelled)
	if err := mgr.Start(ctx); err != nil {
		logger.Error("Collector manager stopped with error", "error", err)
	}

	logger.Info("Shutting down...")

	// The manager closed both mailboxes; the monitor drains them and returns
	wg.Wait()

	stats := mon.Stats()
	logger.Info("Shutdown complete",
		"process_ticks", stats.ProcessTicks,
		"performance_ticks", stats.PerformanceTicks,
	)

	return nil
}

// logSummaries logs the newest snapshot of each stream whenever its tick count moves.
func logSummaries(ctx context.Context, mon *monitor.Monitor, logger *slog.Logger) {
	var last monitor.Stats
	for {
		select {
		case <-ctx.Done():
			return
		case <-mon.Updates():
		}

		stats := mon.Stats()
		if stats.ProcessTicks != last.ProcessTicks {
			if snap := mon.LatestProcessSnapshot(); snap != nil {
				logger.Info("Process snapshot",
					"tick", stats.ProcessTicks,
					"processes", len(snap.Processes),
				)
			}
		}
		if stats.PerformanceTicks != last.PerformanceTicks {
			if snap := mon.LatestPerformanceSnapshot(); snap != nil {
				logger.Info("Performance snapshot",
					"tick", stats.PerformanceTicks,
					"cpus", len(snap.CPUs),
					"memory_used_gib", snap.Memory.Used,
					"memory_total_gib", snap.Memory.Total,
					"swap_used_gib", snap.Swap.Used,
					"disks", len(snap.Disks),
					"networks", len(snap.Networks),
				)
			}
		}
		last = stats
	}
}
