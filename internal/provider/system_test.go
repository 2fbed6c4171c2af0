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
	"os"
	"testing"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

func newTestSystem(t *testing.T) *System {
	t.Helper()
	s, err := NewSystem(16)
	if err != nil {
		t.Fatalf("NewSystem() error = %v", err)
	}
	return s
}

func TestListDisks(t *testing.T) {
	origPartitions := diskPartitions
	origUsage := diskUsage
	defer func() {
		diskPartitions = origPartitions
		diskUsage = origUsage
	}()

	tests := []struct {
		name           string
		mockPartitions func(context.Context, bool) ([]disk.PartitionStat, error)
		mockUsage      func(context.Context, string) (*disk.UsageStat, error)
		wantCount      int
		wantRecordErrs int
		wantErr        bool
	}{
		{
			name: "Success",
			mockPartitions: func(context.Context, bool) ([]disk.PartitionStat, error) {
				return []disk.PartitionStat{
					{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
					{Device: "/dev/sdb1", Mountpoint: "/data", Fstype: "xfs"},
				}, nil
			},
			mockUsage: func(context.Context, string) (*disk.UsageStat, error) {
				return &disk.UsageStat{Total: 1000, Free: 400}, nil
			},
			wantCount: 2,
		},
		{
			name: "Partitions Error",
			mockPartitions: func(context.Context, bool) ([]disk.PartitionStat, error) {
				return nil, errors.New("start failed")
			},
			wantErr: true,
		},
		{
			name: "Usage Error (Record skipped)",
			mockPartitions: func(context.Context, bool) ([]disk.PartitionStat, error) {
				return []disk.PartitionStat{
					{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
					{Device: "/dev/sdb1", Mountpoint: "/broken", Fstype: "ext4"},
				}, nil
			},
			mockUsage: func(_ context.Context, path string) (*disk.UsageStat, error) {
				if path == "/broken" {
					return nil, errors.New("permission denied")
				}
				return &disk.UsageStat{Total: 1000}, nil
			},
			wantCount:      1,
			wantRecordErrs: 1,
			wantErr:        true,
		},
		{
			name: "Duplicate Mount Points",
			mockPartitions: func(context.Context, bool) ([]disk.PartitionStat, error) {
				return []disk.PartitionStat{
					{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
					{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
				}, nil
			},
			mockUsage: func(context.Context, string) (*disk.UsageStat, error) {
				return &disk.UsageStat{Total: 1000}, nil
			},
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diskPartitions = tt.mockPartitions
			diskUsage = tt.mockUsage

			got, err := newTestSystem(t).ListDisks(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("ListDisks() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if len(got) != tt.wantCount {
				t.Errorf("ListDisks() count = %d, want %d", len(got), tt.wantCount)
			}
			if n := len(RecordErrors(err)); n != tt.wantRecordErrs {
				t.Errorf("RecordErrors() count = %d, want %d", n, tt.wantRecordErrs)
			}
		})
	}
}

func TestListDisks_Fields(t *testing.T) {
	origPartitions := diskPartitions
	origUsage := diskUsage
	defer func() {
		diskPartitions = origPartitions
		diskUsage = origUsage
	}()

	diskPartitions = func(context.Context, bool) ([]disk.PartitionStat, error) {
		return []disk.PartitionStat{{Device: "none", Mountpoint: "/mnt/x", Fstype: "vfat"}}, nil
	}
	diskUsage = func(context.Context, string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Total: 5000, Free: 1200}, nil
	}

	got, err := newTestSystem(t).ListDisks(context.Background())
	if err != nil {
		t.Fatalf("ListDisks() error = %v", err)
	}
	d := got[0]
	if d.MountPoint != "/mnt/x" || string(d.FileSystem) != "vfat" {
		t.Errorf("unexpected disk %+v", d)
	}
	if d.Total != 5000 || d.Available != 1200 {
		t.Errorf("Total/Available = %d/%d, want 5000/1200", d.Total, d.Available)
	}
	if d.Kind != "Unknown" || d.Removable {
		t.Errorf("Kind/Removable = %q/%v, want Unknown/false", d.Kind, d.Removable)
	}
}

func TestListNetworks(t *testing.T) {
	orig := netIOCounters
	defer func() { netIOCounters = orig }()

	calls := [][]net.IOCountersStat{
		{
			{Name: "eth0", BytesSent: 1000, BytesRecv: 5000},
		},
		{
			{Name: "eth0", BytesSent: 1500, BytesRecv: 5200},
			{Name: "wlan0", BytesSent: 10, BytesRecv: 20},
		},
	}
	call := 0
	netIOCounters = func(context.Context, bool) ([]net.IOCountersStat, error) {
		defer func() { call++ }()
		return calls[call], nil
	}

	s := newTestSystem(t)

	first, err := s.ListNetworks(context.Background())
	if err != nil {
		t.Fatalf("first ListNetworks() error = %v", err)
	}
	if first[0].Transmitted != 0 || first[0].Received != 0 {
		t.Errorf("first call deltas = %d/%d, want 0/0", first[0].Transmitted, first[0].Received)
	}
	if first[0].TotalTransmitted != 1000 || first[0].TotalReceived != 5000 {
		t.Errorf("first call totals = %d/%d, want 1000/5000", first[0].TotalTransmitted, first[0].TotalReceived)
	}

	second, err := s.ListNetworks(context.Background())
	if err != nil {
		t.Fatalf("second ListNetworks() error = %v", err)
	}
	if second[0].Transmitted != 500 || second[0].Received != 200 {
		t.Errorf("eth0 deltas = %d/%d, want 500/200", second[0].Transmitted, second[0].Received)
	}
	// New interface has no baseline yet
	if second[1].Transmitted != 0 || second[1].TotalTransmitted != 10 {
		t.Errorf("wlan0 = %+v, want zero delta and total 10", second[1])
	}
}

func TestListNetworks_Error(t *testing.T) {
	orig := netIOCounters
	defer func() { netIOCounters = orig }()

	netIOCounters = func(context.Context, bool) ([]net.IOCountersStat, error) {
		return nil, errors.New("no /proc/net/dev")
	}

	if _, err := newTestSystem(t).ListNetworks(context.Background()); err == nil {
		t.Error("ListNetworks() expected error")
	}
}

func TestListCPUs(t *testing.T) {
	orig := cpuTimes
	defer func() { cpuTimes = orig }()

	calls := [][]cpu.TimesStat{
		{
			{CPU: "cpu0", User: 100, Idle: 100},
			{CPU: "cpu1", User: 100, Idle: 100},
		},
		{
			{CPU: "cpu0", User: 150, Idle: 150},
			{CPU: "cpu1", User: 100, Idle: 200},
		},
	}
	call := 0
	cpuTimes = func(context.Context, bool) ([]cpu.TimesStat, error) {
		defer func() { call++ }()
		return calls[call], nil
	}

	s := newTestSystem(t)

	first, err := s.ListCPUs(context.Background())
	if err != nil {
		t.Fatalf("first ListCPUs() error = %v", err)
	}
	for _, c := range first {
		if c.Usage != 0 {
			t.Errorf("baseline %s usage = %v, want 0", c.Name, c.Usage)
		}
	}

	second, err := s.ListCPUs(context.Background())
	if err != nil {
		t.Fatalf("second ListCPUs() error = %v", err)
	}
	if second[0].Name != "cpu0" || second[0].Usage != 50 {
		t.Errorf("cpu0 = %+v, want usage 50", second[0])
	}
	if second[1].Usage != 0 {
		t.Errorf("cpu1 = %+v, want usage 0", second[1])
	}
}

func TestMemoryAndSwapStats(t *testing.T) {
	origVM := virtualMemory
	origSwap := swapMemory
	defer func() {
		virtualMemory = origVM
		swapMemory = origSwap
	}()

	virtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Total: 17_179_869_184, Used: 8_589_934_592}, nil
	}
	swapMemory = func(context.Context) (*mem.SwapMemoryStat, error) {
		return nil, errors.New("swap unavailable")
	}

	s := newTestSystem(t)

	m, err := s.MemoryStats(context.Background())
	if err != nil {
		t.Fatalf("MemoryStats() error = %v", err)
	}
	if m.Total != 17_179_869_184 || m.Used != 8_589_934_592 {
		t.Errorf("MemoryStats() = %+v", m)
	}

	if _, err := s.SwapStats(context.Background()); err == nil {
		t.Error("SwapStats() expected error")
	}
}

func TestListProcesses_PidsError(t *testing.T) {
	orig := processPids
	defer func() { processPids = orig }()

	processPids = func(context.Context) ([]int32, error) {
		return nil, errors.New("no procfs")
	}

	if _, err := newTestSystem(t).ListProcesses(context.Background()); err == nil {
		t.Error("ListProcesses() expected error")
	}
}

func TestListProcesses_Live(t *testing.T) {
	s := newTestSystem(t)

	procs, err := s.ListProcesses(context.Background())
	if err != nil {
		t.Fatalf("ListProcesses() error = %v", err)
	}
	if len(procs) == 0 {
		t.Fatal("ListProcesses() returned no processes")
	}

	// A second pass reuses cached handles
	procs, err = s.ListProcesses(context.Background())
	if err != nil {
		t.Fatalf("second ListProcesses() error = %v", err)
	}
	for _, p := range procs {
		if p.CPUPercent < 0 {
			t.Errorf("pid %d cpu = %v, want >= 0", p.PID, p.CPUPercent)
		}
	}
}

func TestRecordErrors(t *testing.T) {
	if got := RecordErrors(nil); got != nil {
		t.Errorf("RecordErrors(nil) = %v, want nil", got)
	}

	a := &RecordError{Kind: "disk", Key: "/a", Err: errors.New("x")}
	b := &RecordError{Kind: "disk", Key: "/b", Err: ErrInvalidLabel}
	joined := errors.Join(a, errors.New("plain"), b)

	got := RecordErrors(joined)
	if len(got) != 2 {
		t.Fatalf("RecordErrors() count = %d, want 2", len(got))
	}
	if got[0].Key != "/a" || got[1].Key != "/b" {
		t.Errorf("RecordErrors() keys = %q, %q", got[0].Key, got[1].Key)
	}
	if !errors.Is(joined, ErrInvalidLabel) {
		t.Error("errors.Is(joined, ErrInvalidLabel) = false")
	}
	if a.Error() != "disk /a: x" {
		t.Errorf("Error() = %q", a.Error())
	}
}

func stubProcessHooks(t *testing.T) {
	t.Helper()
	origPids := processPids
	origNew := newProcess
	origCreate := createTime
	t.Cleanup(func() {
		processPids = origPids
		newProcess = origNew
		createTime = origCreate
	})
}

func TestListProcesses_VanishedProcesses(t *testing.T) {
	stubProcessHooks(t)

	const (
		gonePid  int32 = 2147483000 // exits before it can be opened
		nameless int32 = 2147483001 // exits between open and Name
	)
	livePid := int32(os.Getpid())

	processPids = func(context.Context) ([]int32, error) {
		return []int32{gonePid, nameless, livePid}, nil
	}
	newProcess = func(ctx context.Context, pid int32) (*process.Process, error) {
		switch pid {
		case gonePid:
			return nil, process.ErrorProcessNotRunning
		case nameless:
			return &process.Process{Pid: pid}, nil
		default:
			return process.NewProcessWithContext(ctx, pid)
		}
	}
	createTime = func(*process.Process, context.Context) (int64, error) {
		return 1, nil
	}

	s := newTestSystem(t)
	procs, err := s.ListProcesses(context.Background())
	if err != nil {
		t.Fatalf("ListProcesses() error = %v, want nil", err)
	}
	if len(procs) != 1 || procs[0].PID != uint32(livePid) {
		t.Fatalf("ListProcesses() = %+v, want only pid %d", procs, livePid)
	}

	for _, pid := range []int32{gonePid, nameless} {
		if s.procs.Contains(pid) {
			t.Errorf("Handle for vanished pid %d still cached", pid)
		}
	}
	if !s.procs.Contains(livePid) {
		t.Errorf("Handle for live pid %d not cached", livePid)
	}
}

func TestListProcesses_PidReuse(t *testing.T) {
	stubProcessHooks(t)

	livePid := int32(os.Getpid())
	processPids = func(context.Context) ([]int32, error) {
		return []int32{livePid}, nil
	}
	newProcess = process.NewProcessWithContext

	created := int64(100)
	createTime = func(*process.Process, context.Context) (int64, error) {
		return created, nil
	}

	cached := func(s *System) *procHandle {
		v, ok := s.procs.Get(livePid)
		if !ok {
			t.Fatalf("No cached handle for pid %d", livePid)
		}
		return v.(*procHandle)
	}

	s := newTestSystem(t)

	tests := []struct {
		name        string
		createdAt   int64
		wantReplace bool
	}{
		{"Same process keeps handle", 100, false},
		{"Reused pid replaces handle", 200, true},
		{"New process keeps its handle", 200, false},
	}

	if _, err := s.ListProcesses(context.Background()); err != nil {
		t.Fatalf("ListProcesses() error = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := cached(s)
			created = tt.createdAt

			if _, err := s.ListProcesses(context.Background()); err != nil {
				t.Fatalf("ListProcesses() error = %v", err)
			}

			after := cached(s)
			if replaced := after != before; replaced != tt.wantReplace {
				t.Errorf("Handle replaced = %v, want %v", replaced, tt.wantReplace)
			}
			if after.createdAt != tt.createdAt {
				t.Errorf("Handle createdAt = %d, want %d", after.createdAt, tt.createdAt)
			}
		})
	}
}
