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
// Package provider exposes point-in-time queries over the operating system:
// process table, CPU cores, memory, swap, disks and network interfaces.
package provider

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidLabel is returned when a filesystem label cannot be decoded as text.
var ErrInvalidLabel = errors.New("filesystem label is not valid UTF-8")

// ProcessInfo is a raw process entry as reported by the OS.
type ProcessInfo struct {
	PID          uint32
	Name         string
	MemoryBytes  uint64  // Resident set size
	CPUPercent   float64 // Usage since the previous query
	ReadBytes    uint64  // Bytes read since the previous query
	WrittenBytes uint64  // Bytes written since the previous query
}

// CPUInfo is the usage of a single logical core.
type CPUInfo struct {
	Name  string
	Usage float64 // Percent since the previous query
}

// MemoryInfo holds physical memory counters in bytes.
type MemoryInfo struct {
	Total uint64
	Used  uint64
}

// SwapInfo holds swap counters in bytes.
type SwapInfo struct {
	Total uint64
	Used  uint64
}

// DiskInfo is a mounted filesystem as reported by the OS.
type DiskInfo struct {
	Device     string
	MountPoint string
	Kind       string // SSD, HDD or Unknown
	FileSystem []byte // Raw filesystem type label, decoded by the caller
	Total      uint64
	Available  uint64
	Removable  bool
}

// NetworkInfo holds the counters of one interface.
type NetworkInfo struct {
	Name             string
	Transmitted      uint64 // Bytes since the previous query
	Received         uint64 // Bytes since the previous query
	TotalTransmitted uint64
	TotalReceived    uint64
}

// SystemInfoProvider answers synchronous point-in-time queries about the host.
//
// List methods may return a partial result together with a non-nil error when
// individual records failed; such errors wrap *RecordError.
type SystemInfoProvider interface {
	ListProcesses(ctx context.Context) ([]ProcessInfo, error)
	ListCPUs(ctx context.Context) ([]CPUInfo, error)
	MemoryStats(ctx context.Context) (MemoryInfo, error)
	SwapStats(ctx context.Context) (SwapInfo, error)
	ListDisks(ctx context.Context) ([]DiskInfo, error)
	ListNetworks(ctx context.Context) ([]NetworkInfo, error)
}

// RecordError reports a failure on a single record of a list query.
type RecordError struct {
	Kind string // disk, process, network
	Key  string // mount path, pid or interface name
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Key, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// RecordErrors returns every *RecordError contained in err.
func RecordErrors(err error) []*RecordError {
	if err == nil {
		return nil
	}

	var out []*RecordError
	var re *RecordError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, RecordErrors(e)...)
		}
		return out
	}
	if errors.As(err, &re) {
		out = append(out, re)
	}
	return out
}
