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
	"log/slog"
	"sync"
	"time"

	"github.com/phuonguno98/unotop/internal/config"
	"github.com/phuonguno98/unotop/internal/mailbox"
	"github.com/phuonguno98/unotop/internal/provider"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

var startUpDelay = 1 * time.Second

// Manager runs the process and performance collectors side by side.
type Manager struct {
	config         *config.Config
	provider       provider.SystemInfoProvider
	process        *ProcessCollector
	performance    *PerformanceCollector
	processBox     mailbox.Mailbox[*metrics.ProcessSnapshot]
	performanceBox mailbox.Mailbox[*metrics.PerformanceSnapshot]
	logger         *slog.Logger
}

// NewManager creates a new collector manager instance.
// Snapshots are published to the given mailboxes, which are closed when Start returns.
func NewManager(
	cfg *config.Config,
	p provider.SystemInfoProvider,
	processBox mailbox.Mailbox[*metrics.ProcessSnapshot],
	performanceBox mailbox.Mailbox[*metrics.PerformanceSnapshot],
	logger *slog.Logger,
) *Manager {
	return &Manager{
		config:   cfg,
		provider: p,
		process:  NewProcessCollector(p, cfg.ProcessInterval, logger),
		performance: NewPerformanceCollector(p, PerformanceOptions{
			Interval:        cfg.PerformanceInterval,
			CPUHistory:      cfg.CPUHistory,
			IncludeDisks:    cfg.IncludeDisks,
			ExcludeDisks:    cfg.ExcludeDisks,
			IncludeNetworks: cfg.IncludeNetworks,
			ExcludeNetworks: cfg.ExcludeNetworks,
		}, logger),
		processBox:     processBox,
		performanceBox: performanceBox,
		logger:         logger,
	}
}

// Start performs a baseline query, then runs both collectors until ctx is done.
// The two streams are independent; neither waits for the other.
func (m *Manager) Start(ctx context.Context) error {
	defer m.processBox.Close()
	defer m.performanceBox.Close()

	m.logger.Info("Starting collector manager",
		"process_interval", m.config.ProcessInterval,
		"performance_interval", m.config.PerformanceInterval,
	)

	// CPU and I/O figures are deltas; prime them so the first snapshot is meaningful
	m.logger.Info("Performing baseline collection...")
	m.Baseline(ctx)

	select {
	case <-time.After(startUpDelay):
	case <-ctx.Done():
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := m.process.Run(ctx, m.processBox); err != nil {
			m.logger.Error("Process collector stopped with error", "error", err)
		}
	}()

	go func() {
		defer wg.Done()
		if err := m.performance.Run(ctx, m.performanceBox); err != nil {
			m.logger.Error("Performance collector stopped with error", "error", err)
		}
	}()

	wg.Wait()
	m.logger.Info("Collector manager stopped")

	return nil
}

// Baseline queries every delta-based counter once without publishing.
func (m *Manager) Baseline(ctx context.Context) {
	if _, err := m.provider.ListProcesses(ctx); err != nil {
		m.logger.Warn("Baseline process query failed", "error", err)
	}
	if _, err := m.provider.ListCPUs(ctx); err != nil {
		m.logger.Warn("Baseline CPU query failed", "error", err)
	}
	if _, err := m.provider.ListNetworks(ctx); err != nil {
		m.logger.Warn("Baseline network query failed", "error", err)
	}
}
