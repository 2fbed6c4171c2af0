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

import "sort"

// Unit divisors. Conversions are decimal and truncate.
const (
	BytesPerMiB = 1_000_000
	BytesPerGiB = 1_000_000_000
)

// BytesToMiB converts a byte count to whole MiB.
// Formula: ⌊B / 1,000,000⌋
func BytesToMiB(b uint64) uint64 {
	return b / BytesPerMiB
}

// BytesToGiB converts a byte count to whole GiB.
// Formula: ⌊B / 1,000,000,000⌋
func BytesToGiB(b uint64) uint64 {
	return b / BytesPerGiB
}

// freeBytes returns total - used, clamped at zero.
// Some platforms report used > total for swap while it is being resized.
func freeBytes(total, used uint64) uint64 {
	if used > total {
		return 0
	}
	return total - used
}

// NewMemoryStats builds MemoryStats from raw byte counters.
// Free is derived on bytes before conversion.
func NewMemoryStats(totalBytes, usedBytes uint64) MemoryStats {
	return MemoryStats{
		Total: BytesToGiB(totalBytes),
		Used:  BytesToGiB(usedBytes),
		Free:  BytesToGiB(freeBytes(totalBytes, usedBytes)),
	}
}

// NewSwapStats builds SwapStats from raw byte counters.
func NewSwapStats(totalBytes, usedBytes uint64) SwapStats {
	return SwapStats{
		Total: BytesToGiB(totalBytes),
		Used:  BytesToGiB(usedBytes),
		Free:  BytesToGiB(freeBytes(totalBytes, usedBytes)),
	}
}

// DiskUsage returns used (total - available) and free (available) bytes.
func DiskUsage(totalBytes, availableBytes uint64) (used, free uint64) {
	return freeBytes(totalBytes, availableBytes), availableBytes
}

// CounterDelta returns the growth of a cumulative counter since its previous value.
// A counter that went backwards (interface or process reset) yields the current value.
func CounterDelta(prev, current uint64) uint64 {
	if current < prev {
		return current
	}
	return current - prev
}

// SortDisks orders disks ascending by mount path using byte-wise comparison.
func SortDisks(disks []DiskRecord) {
	sort.SliceStable(disks, func(i, j int) bool {
		return disks[i].MountPath < disks[j].MountPath
	})
}

// SortNetworks orders networks ascending by interface name.
func SortNetworks(networks []NetworkRecord) {
	sort.SliceStable(networks, func(i, j int) bool {
		return networks[i].Name < networks[j].Name
	})
}

// CalculateCPUUtilization calculates CPU utilization percentage from two CPU time snapshots.
// Formula: 100 * (1 - ΔIdle / ΔTotal)
func CalculateCPUUtilization(prev, current *CPUTimeStats) float64 {
	if prev.Timestamp.IsZero() {
		return 0.0
	}

	prevTotal := prev.User + prev.System + prev.Idle + prev.IOWait + prev.Irq + prev.SoftIrq + prev.Steal
	currentTotal := current.User + current.System + current.Idle + current.IOWait + current.Irq + current.SoftIrq + current.Steal

	deltaTotal := currentTotal - prevTotal
	deltaIdle := current.Idle - prev.Idle

	if deltaTotal <= 0 {
		return 0.0
	}

	utilization := 100.0 * (1.0 - deltaIdle/deltaTotal)
	if utilization < 0 {
		return 0.0
	}
	return utilization
}
