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
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phuonguno98/unotop/internal/mailbox"
	"github.com/phuonguno98/unotop/internal/provider"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

// ProcessCollector samples the process table.
type ProcessCollector struct {
	provider provider.SystemInfoProvider
	interval time.Duration
	logger   *slog.Logger
}

// NewProcessCollector creates a process collector sampling every interval.
func NewProcessCollector(p provider.SystemInfoProvider, interval time.Duration, logger *slog.Logger) *ProcessCollector {
	return &ProcessCollector{
		provider: p,
		interval: interval,
		logger:   logger.With("collector", "process"),
	}
}

// Collect builds one process snapshot. The records keep provider order.
func (c *ProcessCollector) Collect(ctx context.Context) (*metrics.ProcessSnapshot, error) {
	infos, err := c.provider.ListProcesses(ctx)
	if err != nil && infos == nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	for _, re := range provider.RecordErrors(err) {
		c.logger.Warn("Skipping process", "pid", re.Key, "error", re.Err)
	}

	snapshot := &metrics.ProcessSnapshot{
		Timestamp: time.Now(),
		Processes: make([]metrics.ProcessRecord, 0, len(infos)),
	}
	for i := range infos {
		info := &infos[i]
		snapshot.Processes = append(snapshot.Processes, metrics.ProcessRecord{
			PID:          info.PID,
			Name:         info.Name,
			Memory:       metrics.BytesToMiB(info.MemoryBytes),
			CPUUsage:     info.CPUPercent,
			ReadBytes:    info.ReadBytes,
			WrittenBytes: info.WrittenBytes,
		})
	}

	return snapshot, nil
}

// Run publishes a snapshot to out, then sleeps for the interval, until ctx is done.
// Failed collections and failed deliveries are logged and the loop continues.
func (c *ProcessCollector) Run(ctx context.Context, out mailbox.Mailbox[*metrics.ProcessSnapshot]) error {
	c.logger.Info("Starting collector", "interval", c.interval)

	runLoop(ctx, c.interval, func() {
		snapshot, err := c.Collect(ctx)
		if err != nil {
			c.logger.Warn("Collection failed", "error", err)
			return
		}
		if err := out.Send(snapshot); err != nil {
			c.logger.Debug("Snapshot not delivered", "error", err)
			return
		}
		c.logger.Debug("Snapshot sent", "processes", len(snapshot.Processes))
	})

	c.logger.Info("Collector stopped")
	return nil
}

// Name returns the collector name for logging purposes.
func (c *ProcessCollector) Name() string {
	return "Process"
}

// runLoop calls tick, then waits interval, until ctx is done.
// The wait starts after tick returns, so a slow tick stretches the cadence.
func runLoop(ctx context.Context, interval time.Duration, tick func()) {
	for {
		if ctx.Err() != nil {
			return
		}

		tick()

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
