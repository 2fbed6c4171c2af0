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
package metrics

import "time"

// ProcessRecord is one live OS process at sample time.
type ProcessRecord struct {
	PID          uint32
	Name         string
	Memory       uint64  // Resident memory in MiB (truncated)
	CPUUsage     float64 // Percent of one core
	ReadBytes    uint64
	WrittenBytes uint64
}

// ProcessSnapshot is the unordered process table captured in one tick.
// It must not be modified once published.
type ProcessSnapshot struct {
	Timestamp time.Time
	Processes []ProcessRecord
}

// CPURecord holds the usage samples of a single core, oldest first.
type CPURecord struct {
	Name  string
	Usage []float64
}

// Latest returns the most recent usage sample, or 0 if there is none.
func (c CPURecord) Latest() float64 {
	if len(c.Usage) == 0 {
		return 0
	}
	return c.Usage[len(c.Usage)-1]
}

// MemoryStats represents physical memory in GiB (truncated).
type MemoryStats struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// SwapStats represents swap space in GiB (truncated).
type SwapStats struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// NetworkRecord represents the counters of a single network interface.
type NetworkRecord struct {
	Name             string
	Transmitted      uint64 // Bytes since the previous tick
	Received         uint64 // Bytes since the previous tick
	TotalTransmitted uint64 // Cumulative bytes
	TotalReceived    uint64 // Cumulative bytes
}

// DiskRecord represents a mounted filesystem.
type DiskRecord struct {
	MountPath string
	Kind      string // Media kind: SSD, HDD or Unknown
	Structure string // Filesystem type label (ext4, ntfs, ...)
	Capacity  uint64 // GiB (truncated)
	Removable bool
	Used      uint64 // Bytes, total - available
	Free      uint64 // Bytes available
}

// PerformanceSnapshot represents the system-wide counters captured in one tick.
// Disks are ordered by mount path and networks by interface name.
type PerformanceSnapshot struct {
	Timestamp time.Time
	CPUs      []CPURecord
	Memory    MemoryStats
	Swap      SwapStats
	Networks  []NetworkRecord
	Disks     []DiskRecord
}

// CPUTimeStats represents CPU time counters of one core for delta calculations.
type CPUTimeStats struct {
	User      float64
	System    float64
	Idle      float64
	IOWait    float64
	Irq       float64
	SoftIrq   float64
	Steal     float64
	Timestamp time.Time
}
