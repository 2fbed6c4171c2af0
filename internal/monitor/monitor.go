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
// Package monitor is the consumer side of the collection pipeline. It drains
// the process and performance mailboxes, keeps the newest snapshot of each and
// applies the sort and filter state to the process table on read.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go.uber.org/atomic"

	"github.com/phuonguno98/unotop/internal/mailbox"
	"github.com/phuonguno98/unotop/internal/view"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

// Stats counts the snapshots received on each stream.
type Stats struct {
	ProcessTicks     uint64
	PerformanceTicks uint64
}

// Monitor holds the latest snapshot of both streams.
type Monitor struct {
	processBox     mailbox.Mailbox[*metrics.ProcessSnapshot]
	performanceBox mailbox.Mailbox[*metrics.PerformanceSnapshot]
	view           *view.State
	logger         *slog.Logger

	mu          sync.RWMutex
	process     *metrics.ProcessSnapshot
	performance *metrics.PerformanceSnapshot

	processTicks     atomic.Uint64
	performanceTicks atomic.Uint64

	updates chan struct{}
}

// New creates a monitor reading from the given mailboxes.
func New(
	processBox mailbox.Mailbox[*metrics.ProcessSnapshot],
	performanceBox mailbox.Mailbox[*metrics.PerformanceSnapshot],
	logger *slog.Logger,
) *Monitor {
	return &Monitor{
		processBox:     processBox,
		performanceBox: performanceBox,
		view:           view.NewState(),
		logger:         logger.With("component", "monitor"),
		updates:        make(chan struct{}, 1),
	}
}

// Run receives snapshots until both mailboxes are closed and drained, or ctx is done.
// The two streams are consumed independently.
func (m *Monitor) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		consume(ctx, m.processBox, m.setProcess, m.logger.With("stream", "process"))
	}()

	go func() {
		defer wg.Done()
		consume(ctx, m.performanceBox, m.setPerformance, m.logger.With("stream", "performance"))
	}()

	wg.Wait()
	m.logger.Info("Monitor stopped", "process_ticks", m.processTicks.Load(), "performance_ticks", m.performanceTicks.Load())
	return nil
}

func consume[T any](ctx context.Context, box mailbox.Mailbox[T], store func(T), logger *slog.Logger) {
	for {
		v, err := box.Recv(ctx)
		if err != nil {
			if errors.Is(err, mailbox.ErrClosed) {
				logger.Debug("Mailbox closed")
			}
			return
		}
		store(v)
	}
}

func (m *Monitor) setProcess(s *metrics.ProcessSnapshot) {
	m.mu.Lock()
	m.process = s
	m.mu.Unlock()
	m.processTicks.Inc()
	m.notify()
}

func (m *Monitor) setPerformance(s *metrics.PerformanceSnapshot) {
	m.mu.Lock()
	m.performance = s
	m.mu.Unlock()
	m.performanceTicks.Inc()
	m.notify()
}

func (m *Monitor) notify() {
	select {
	case m.updates <- struct{}{}:
	default:
	}
}

// Updates signals after a new snapshot of either stream was stored.
// Signals coalesce; a reader should re-read both snapshots on wake.
func (m *Monitor) Updates() <-chan struct{} {
	return m.updates
}

// LatestProcessSnapshot returns the newest process snapshot, or nil before the first tick.
func (m *Monitor) LatestProcessSnapshot() *metrics.ProcessSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.process
}

// LatestPerformanceSnapshot returns the newest performance snapshot, or nil before the first tick.
func (m *Monitor) LatestPerformanceSnapshot() *metrics.PerformanceSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.performance
}

// ApplyFilter replaces the filter text.
func (m *Monitor) ApplyFilter(text string) {
	m.view.ApplyFilter(text)
}

// ToggleSort advances the sort state for field and returns the new spec.
func (m *Monitor) ToggleSort(field view.SortField) view.SortSpec {
	return m.view.ToggleSort(field)
}

// SetSort replaces the sort spec.
func (m *Monitor) SetSort(spec view.SortSpec) {
	m.view.SetSort(spec)
}

// SortSpec returns the active sort spec.
func (m *Monitor) SortSpec() view.SortSpec {
	return m.view.SortSpec()
}

// FilterText returns the active filter text.
func (m *Monitor) FilterText() string {
	return m.view.FilterText()
}

// CurrentView returns the filtered and sorted rows of the latest process snapshot.
func (m *Monitor) CurrentView() []metrics.ProcessRecord {
	return m.view.Apply(m.LatestProcessSnapshot())
}

// Stats returns the number of snapshots received per stream.
func (m *Monitor) Stats() Stats {
	return Stats{
		ProcessTicks:     m.processTicks.Load(),
		PerformanceTicks: m.performanceTicks.Load(),
	}
}
