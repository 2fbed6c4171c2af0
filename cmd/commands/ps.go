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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phuonguno98/unotop/internal/collector"
	"github.com/phuonguno98/unotop/internal/provider"
	"github.com/phuonguno98/unotop/internal/render"
	"github.com/phuonguno98/unotop/internal/view"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

const (
	outputTable = "table"
	outputCSV   = "csv"
)

var (
	// ps command specific flags
	psFilter string
	psSort   string
	psOutput string
	psSample time.Duration
	psLimit  int
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "Print the process table once",
	Long: `Take one process snapshot, apply a filter and sort order, and print it.
CPU usage is measured over the sample window.

Examples:
  # Top 10 processes by CPU
  unotop ps --sort cpu --limit 10

  # Every process whose name or PID contains "ssh", as CSV
  unotop ps --filter ssh --sort pid:asc --output csv`,
	RunE: runPs,
}

func init() {
	rootCmd.AddCommand(psCmd)

	psCmd.Flags().StringVar(&psFilter, "filter", "",
		"Keep processes whose name or PID contains this text (case-sensitive)")
	psCmd.Flags().StringVar(&psSort, "sort", "",
		"Sort field and direction: name, pid, cpu or memory, optionally :asc or :desc")
	psCmd.Flags().StringVarP(&psOutput, "output", "o", outputTable,
		"Output format (table, csv)")
	psCmd.Flags().DurationVar(&psSample, "sample", 500*time.Millisecond,
		"Window over which CPU usage is measured")
	psCmd.Flags().IntVar(&psLimit, "limit", 0,
		"Maximum number of rows (0 = all)")
}

func runPs(cmd *cobra.Command, args []string) error {
	spec, err := view.ParseSortSpec(psSort)
	if err != nil {
		return err
	}
	if psOutput != outputTable && psOutput != outputCSV {
		return fmt.Errorf("invalid output format: %s (must be table or csv)", psOutput)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Logs go to stderr so the table can be piped
	logger := newLogger(cfg.LogLevel, os.Stderr, false)
	if cfg.LogFile != "" {
		logger = InitLogger(cfg.LogLevel, cfg.LogFile)
	}

	sys, err := provider.NewSystem(cfg.ProcessCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create system provider: %w", err)
	}
	pc := collector.NewProcessCollector(sys, psSample, logger)

	ctx := cmd.Context()

	// The first sample primes CPU and I/O counters
	if _, err := pc.Collect(ctx); err != nil {
		return err
	}
	select {
	case <-time.After(psSample):
	case <-ctx.Done():
		return ctx.Err()
	}
	snap, err := pc.Collect(ctx)
	if err != nil {
		return err
	}

	rows := view.Rows(snap.Processes, psFilter, spec)
	if psLimit > 0 && len(rows) > psLimit {
		rows = rows[:psLimit]
	}

	if psOutput == outputCSV {
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		return writeProcessCSV(cmd.OutOrStdout(), snap.Timestamp, loc, rows)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), render.FormatProcessTable(rows, spec))
	return err
}

func writeProcessCSV(w io.Writer, ts time.Time, loc *time.Location, rows []metrics.ProcessRecord) error {
	csvWriter := render.NewProcessCSVWriter(w, loc)
	if err := csvWriter.WriteRows(ts, rows); err != nil {
		return err
	}
	return csvWriter.Flush()
}
