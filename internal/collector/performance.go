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
	"time"
	"unicode/utf8"

	"github.com/phuonguno98/unotop/internal/mailbox"
	"github.com/phuonguno98/unotop/internal/provider"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

// PerformanceCollector samples CPU, memory, swap, disk and network counters.
type PerformanceCollector struct {
	provider provider.SystemInfoProvider
	interval time.Duration
	history  *CPUHistory
	disks    deviceFilter
	networks deviceFilter
	logger   *slog.Logger
}

// PerformanceOptions configures a PerformanceCollector.
type PerformanceOptions struct {
	Interval        time.Duration
	CPUHistory      int      // Samples kept per core (1 = latest only)
	IncludeDisks    []string // Mount paths or devices to monitor (empty = all)
	ExcludeDisks    []string
	IncludeNetworks []string // Interfaces to monitor (empty = all)
	ExcludeNetworks []string
}

// NewPerformanceCollector creates a performance collector.
func NewPerformanceCollector(p provider.SystemInfoProvider, opts PerformanceOptions, logger *slog.Logger) *PerformanceCollector {
	return &PerformanceCollector{
		provider: p,
		interval: opts.Interval,
		history:  NewCPUHistory(opts.CPUHistory),
		disks:    newDeviceFilter(opts.IncludeDisks, opts.ExcludeDisks),
		networks: newDeviceFilter(opts.IncludeNetworks, opts.ExcludeNetworks),
		logger:   logger.With("collector", "performance"),
	}
}

// Collect builds one performance snapshot.
// A section whose query fails is left empty; the snapshot is still returned.
func (c *PerformanceCollector) Collect(ctx context.Context) *metrics.PerformanceSnapshot {
	return &metrics.PerformanceSnapshot{
		Timestamp: time.Now(),
		Disks:     c.collectDisks(ctx),
		Networks:  c.collectNetworks(ctx),
		CPUs:      c.collectCPUs(ctx),
		Memory:    c.collectMemory(ctx),
		Swap:      c.collectSwap(ctx),
	}
}

func (c *PerformanceCollector) collectDisks(ctx context.Context) []metrics.DiskRecord {
	infos, err := c.provider.ListDisks(ctx)
	if err != nil {
		if infos == nil {
			c.logger.Warn("Failed to collect disk metrics", "error", err)
			return nil
		}
		for _, re := range provider.RecordErrors(err) {
			c.logger.Warn("Skipping disk", "mount", re.Key, "error", re.Err)
		}
	}

	disks := make([]metrics.DiskRecord, 0, len(infos))
	for i := range infos {
		info := &infos[i]
		if !c.disks.shouldMonitor(info.MountPoint, info.Device) {
			continue
		}

		structure, err := decodeLabel(info.FileSystem)
		if err != nil {
			c.logger.Warn("Skipping disk", "mount", info.MountPoint, "error", err)
			continue
		}

		used, free := metrics.DiskUsage(info.Total, info.Available)
		disks = append(disks, metrics.DiskRecord{
			MountPath: info.MountPoint,
			Kind:      info.Kind,
			Structure: structure,
			Capacity:  metrics.BytesToGiB(info.Total),
			Removable: info.Removable,
			Used:      used,
			Free:      free,
		})
	}

	metrics.SortDisks(disks)
	return disks
}

func (c *PerformanceCollector) collectNetworks(ctx context.Context) []metrics.NetworkRecord {
	infos, err := c.provider.ListNetworks(ctx)
	if err != nil {
		if infos == nil {
			c.logger.Warn("Failed to collect network metrics", "error", err)
			return nil
		}
		for _, re := range provider.RecordErrors(err) {
			c.logger.Warn("Skipping network interface", "iface", re.Key, "error", re.Err)
		}
	}

	networks := make([]metrics.NetworkRecord, 0, len(infos))
	for i := range infos {
		info := &infos[i]
		if !c.networks.shouldMonitor(info.Name) {
			continue
		}
		networks = append(networks, metrics.NetworkRecord{
			Name:             info.Name,
			Transmitted:      info.Transmitted,
			Received:         info.Received,
			TotalTransmitted: info.TotalTransmitted,
			TotalReceived:    info.TotalReceived,
		})
	}

	metrics.SortNetworks(networks)
	return networks
}

func (c *PerformanceCollector) collectCPUs(ctx context.Context) []metrics.CPURecord {
	infos, err := c.provider.ListCPUs(ctx)
	if err != nil && infos == nil {
		c.logger.Warn("Failed to collect CPU metrics", "error", err)
		return nil
	}

	seen := make(map[string]struct{}, len(infos))
	cpus := make([]metrics.CPURecord, 0, len(infos))
	for _, info := range infos {
		seen[info.Name] = struct{}{}
		cpus = append(cpus, metrics.CPURecord{
			Name:  info.Name,
			Usage: c.history.Push(info.Name, info.Usage),
		})
	}
	c.history.Retain(seen)

	return cpus
}

func (c *PerformanceCollector) collectMemory(ctx context.Context) metrics.MemoryStats {
	m, err := c.provider.MemoryStats(ctx)
	if err != nil {
		c.logger.Warn("Failed to collect memory metrics", "error", err)
		return metrics.MemoryStats{}
	}
	return metrics.NewMemoryStats(m.Total, m.Used)
}

func (c *PerformanceCollector) collectSwap(ctx context.Context) metrics.SwapStats {
	s, err := c.provider.SwapStats(ctx)
	if err != nil {
		c.logger.Warn("Failed to collect swap metrics", "error", err)
		return metrics.SwapStats{}
	}
	return metrics.NewSwapStats(s.Total, s.Used)
}

// Run publishes a snapshot to out, then sleeps for the interval, until ctx is done.
func (c *PerformanceCollector) Run(ctx context.Context, out mailbox.Mailbox[*metrics.PerformanceSnapshot]) error {
	c.logger.Info("Starting collector", "interval", c.interval, "cpu_history", c.history.Capacity())

	runLoop(ctx, c.interval, func() {
		snapshot := c.Collect(ctx)
		if err := out.Send(snapshot); err != nil {
			c.logger.Debug("Snapshot not delivered", "error", err)
			return
		}
		c.logger.Debug("Snapshot sent",
			"cpus", len(snapshot.CPUs),
			"memory_used_gib", snapshot.Memory.Used,
			"disks", len(snapshot.Disks),
			"networks", len(snapshot.Networks),
		)
	})

	c.logger.Info("Collector stopped")
	return nil
}

// Name returns the collector name for logging purposes.
func (c *PerformanceCollector) Name() string {
	return "Performance"
}

// decodeLabel converts a raw filesystem label to text.
func decodeLabel(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", provider.ErrInvalidLabel
	}
	return string(raw), nil
}
