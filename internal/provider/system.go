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
package provider

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/phuonguno98/unotop/pkg/metrics"
)

// DefaultProcessCacheSize bounds the number of cached process handles.
const DefaultProcessCacheSize = 4096

// Dependency injection points for testing
var (
	processPids    = process.PidsWithContext
	newProcess     = process.NewProcessWithContext
	createTime     = (*process.Process).CreateTimeWithContext
	cpuTimes       = cpu.TimesWithContext
	virtualMemory  = mem.VirtualMemoryWithContext
	swapMemory     = mem.SwapMemoryWithContext
	diskPartitions = disk.PartitionsWithContext
	diskUsage      = disk.UsageWithContext
	netIOCounters  = net.IOCountersWithContext
)

// procHandle keeps a gopsutil process alive across queries so that CPU and
// I/O figures are computed against the previous query of the same process.
type procHandle struct {
	proc       *process.Process
	createdAt  int64
	readBytes  uint64
	writeBytes uint64
	ioSeen     bool
}

// System implements SystemInfoProvider on top of gopsutil.
// It is safe for concurrent use by one process collector and one performance collector.
type System struct {
	procMu sync.Mutex
	procs  *lru.Cache // pid -> *procHandle

	perfMu  sync.Mutex
	prevCPU map[string]metrics.CPUTimeStats
	prevNet map[string]net.IOCountersStat
}

// NewSystem creates a gopsutil-backed provider.
// cacheSize limits how many process handles are retained between queries.
func NewSystem(cacheSize int) (*System, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultProcessCacheSize
	}

	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create process cache: %w", err)
	}

	return &System{
		procs:   cache,
		prevCPU: make(map[string]metrics.CPUTimeStats),
		prevNet: make(map[string]net.IOCountersStat),
	}, nil
}

// ListProcesses returns every process that could be inspected.
// Processes that exit during the scan are omitted without error.
func (s *System) ListProcesses(ctx context.Context) ([]ProcessInfo, error) {
	pids, err := processPids(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pids: %w", err)
	}

	s.procMu.Lock()
	defer s.procMu.Unlock()

	result := make([]ProcessInfo, 0, len(pids))
	for _, pid := range pids {
		h, err := s.handle(ctx, pid)
		if err != nil {
			continue
		}

		name, err := h.proc.NameWithContext(ctx)
		if err != nil {
			s.procs.Remove(pid)
			continue
		}

		info := ProcessInfo{
			PID:  uint32(pid),
			Name: name,
		}

		if m, err := h.proc.MemoryInfoWithContext(ctx); err == nil {
			info.MemoryBytes = m.RSS
		}
		if pct, err := h.proc.PercentWithContext(ctx, 0); err == nil {
			info.CPUPercent = pct
		}
		if io, err := h.proc.IOCountersWithContext(ctx); err == nil {
			if h.ioSeen {
				info.ReadBytes = metrics.CounterDelta(h.readBytes, io.ReadBytes)
				info.WrittenBytes = metrics.CounterDelta(h.writeBytes, io.WriteBytes)
			}
			h.readBytes = io.ReadBytes
			h.writeBytes = io.WriteBytes
			h.ioSeen = true
		}

		result = append(result, info)
	}

	return result, nil
}

// handle returns the cached handle for pid, replacing it when the pid was reused.
func (s *System) handle(ctx context.Context, pid int32) (*procHandle, error) {
	p, err := newProcess(ctx, pid)
	if err != nil {
		s.procs.Remove(pid)
		return nil, err
	}
	created, _ := createTime(p, ctx)

	if v, ok := s.procs.Get(pid); ok {
		h := v.(*procHandle)
		if h.createdAt == created {
			return h, nil
		}
	}

	h := &procHandle{proc: p, createdAt: created}
	s.procs.Add(pid, h)
	return h, nil
}

// ListCPUs returns per-core usage since the previous call.
// The first call establishes the baseline and reports zero usage.
func (s *System) ListCPUs(ctx context.Context) ([]CPUInfo, error) {
	times, err := cpuTimes(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU times: %w", err)
	}

	s.perfMu.Lock()
	defer s.perfMu.Unlock()

	now := time.Now()
	result := make([]CPUInfo, 0, len(times))
	for i := range times {
		t := &times[i]
		name := t.CPU
		if name == "" {
			name = "cpu" + strconv.Itoa(i)
		}

		current := metrics.CPUTimeStats{
			User:      t.User + t.Nice,
			System:    t.System,
			Idle:      t.Idle,
			IOWait:    t.Iowait,
			Irq:       t.Irq,
			SoftIrq:   t.Softirq,
			Steal:     t.Steal,
			Timestamp: now,
		}
		prev := s.prevCPU[name]

		result = append(result, CPUInfo{
			Name:  name,
			Usage: metrics.CalculateCPUUtilization(&prev, &current),
		})
		s.prevCPU[name] = current
	}

	return result, nil
}

// MemoryStats returns physical memory counters.
func (s *System) MemoryStats(ctx context.Context) (MemoryInfo, error) {
	vm, err := virtualMemory(ctx)
	if err != nil {
		return MemoryInfo{}, fmt.Errorf("failed to get memory stats: %w", err)
	}
	return MemoryInfo{Total: vm.Total, Used: vm.Used}, nil
}

// SwapStats returns swap counters.
func (s *System) SwapStats(ctx context.Context) (SwapInfo, error) {
	sw, err := swapMemory(ctx)
	if err != nil {
		return SwapInfo{}, fmt.Errorf("failed to get swap stats: %w", err)
	}
	return SwapInfo{Total: sw.Total, Used: sw.Used}, nil
}

// ListDisks returns physical mounted filesystems.
// Partitions whose usage cannot be read are skipped and reported as *RecordError.
func (s *System) ListDisks(ctx context.Context) ([]DiskInfo, error) {
	partitions, err := diskPartitions(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk partitions: %w", err)
	}

	disks := make([]DiskInfo, 0, len(partitions))
	seen := make(map[string]bool)
	var errs []error

	for _, partition := range partitions {
		// Bind mounts show up once per mount point
		if seen[partition.Mountpoint] {
			continue
		}
		seen[partition.Mountpoint] = true

		usage, err := diskUsage(ctx, partition.Mountpoint)
		if err != nil {
			errs = append(errs, &RecordError{Kind: "disk", Key: partition.Mountpoint, Err: err})
			continue
		}

		kind, removable := mediaInfo(partition.Device)
		disks = append(disks, DiskInfo{
			Device:     partition.Device,
			MountPoint: partition.Mountpoint,
			Kind:       kind,
			FileSystem: []byte(partition.Fstype),
			Total:      usage.Total,
			Available:  usage.Free,
			Removable:  removable,
		})
	}

	return disks, errors.Join(errs...)
}

// ListNetworks returns per-interface counters.
// Transmitted and Received are zero on the first call.
func (s *System) ListNetworks(ctx context.Context) ([]NetworkInfo, error) {
	counters, err := netIOCounters(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get network I/O counters: %w", err)
	}

	s.perfMu.Lock()
	defer s.perfMu.Unlock()

	result := make([]NetworkInfo, 0, len(counters))
	for _, counter := range counters {
		info := NetworkInfo{
			Name:             counter.Name,
			TotalTransmitted: counter.BytesSent,
			TotalReceived:    counter.BytesRecv,
		}

		if prev, ok := s.prevNet[counter.Name]; ok {
			info.Transmitted = metrics.CounterDelta(prev.BytesSent, counter.BytesSent)
			info.Received = metrics.CounterDelta(prev.BytesRecv, counter.BytesRecv)
		}
		s.prevNet[counter.Name] = counter

		result = append(result, info)
	}

	return result, nil
}

var _ SystemInfoProvider = (*System)(nil)
