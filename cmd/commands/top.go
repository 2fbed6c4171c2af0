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
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phuonguno98/unotop/internal/monitor"
	"github.com/phuonguno98/unotop/internal/tui"
	"github.com/phuonguno98/unotop/internal/view"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Open the interactive task manager",
	Long: `Open a full-screen view of the process table and system performance.

Keys:
  n, p, c, m   Sort by name, PID, CPU or memory (descending, ascending, off)
  /            Filter processes by name or PID (Enter/Esc to finish)
  Tab          Switch between processes and performance
  q, Ctrl-C    Quit

Examples:
  # Refresh processes twice per second
  unotop top --process-interval 500ms

  # Start sorted by memory, largest first
  unotop top --sort memory

  # Log to a file while the UI owns the terminal
  unotop top --log-file unotop.log --log-level debug`,
	RunE: runTop,
}

var topSort string

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().StringVar(&topSort, "sort", "",
		"Initial sort field and direction: name, pid, cpu or memory, optionally :asc or :desc")
}

// applySort sets the monitor's starting sort order from the --sort text.
func applySort(mon *monitor.Monitor, text string) error {
	spec, err := view.ParseSortSpec(text)
	if err != nil {
		return err
	}
	mon.SetSort(spec)
	return nil
}

func runTop(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The UI owns the terminal, so logs only go to a file
	logger := newLogger(cfg.LogLevel, io.Discard, false)
	if cfg.LogFile != "" {
		logger = InitLogger(cfg.LogLevel, cfg.LogFile)
	}
	logStartup(logger, cfg)

	mgr, mon, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}
	if err := applySort(mon, topSort); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := mgr.Start(ctx); err != nil {
			logger.Error("Collector manager stopped with error", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := mon.Run(ctx); err != nil {
			logger.Error("Monitor stopped with error", "error", err)
		}
	}()

	err = tui.New(mon, logger).Run(ctx)

	cancel()
	wg.Wait()
	logger.Info("Shutdown complete")

	return err
}
