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
// Package render formats snapshots as plain text tables and CSV.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/phuonguno98/unotop/internal/view"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

const tableWidth = 80

// Sort markers shown next to the active column header.
const (
	MarkDescending = "▼"
	MarkAscending  = "▲"
)

// ProcessColumns are the process table headers, in display order.
var ProcessColumns = []string{"NAME", "PID", "CPU%", "MEM(MiB)", "READ", "WRITTEN"}

// columnFields maps process columns to their sort field.
var columnFields = map[string]view.SortField{
	"NAME":     view.FieldName,
	"PID":      view.FieldPID,
	"CPU%":     view.FieldCPUUsage,
	"MEM(MiB)": view.FieldMemory,
}

// ProcessHeader returns the process column headers, marking the active sort column.
func ProcessHeader(spec view.SortSpec) []string {
	header := make([]string, len(ProcessColumns))
	for i, col := range ProcessColumns {
		header[i] = col
		if f, ok := columnFields[col]; ok && spec.Active() && f == spec.Field {
			if spec.Direction == view.Ascending {
				header[i] += " " + MarkAscending
			} else {
				header[i] += " " + MarkDescending
			}
		}
	}
	return header
}

// ProcessRow returns the cells of one process row.
func ProcessRow(p metrics.ProcessRecord) []string {
	return []string{
		p.Name,
		strconv.FormatUint(uint64(p.PID), 10),
		fmt.Sprintf("%.1f", p.CPUUsage),
		strconv.FormatUint(p.Memory, 10),
		FormatBytes(p.ReadBytes),
		FormatBytes(p.WrittenBytes),
	}
}

// FormatProcessTable formats process rows as a table.
func FormatProcessTable(rows []metrics.ProcessRecord, spec view.SortSpec) string {
	var sb strings.Builder

	header := ProcessHeader(spec)
	sb.WriteString(fmt.Sprintf("%-25s %8s %8s %10s %12s %12s\n",
		header[0], header[1], header[2], header[3], header[4], header[5]))
	sb.WriteString(strings.Repeat("-", tableWidth))
	sb.WriteString("\n")

	for _, p := range rows {
		cells := ProcessRow(p)
		sb.WriteString(fmt.Sprintf("%-25s %8s %8s %10s %12s %12s\n",
			truncate(cells[0], 25), cells[1], cells[2], cells[3], cells[4], cells[5]))
	}

	return sb.String()
}

// FormatDisksTable formats disk records as a table.
func FormatDisksTable(disks []metrics.DiskRecord) string {
	var sb strings.Builder

	sb.WriteString("\nDisks:\n")
	sb.WriteString(strings.Repeat("=", tableWidth))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-24s %-8s %-10s %10s %10s %10s\n", "MOUNTPOINT", "KIND", "FILESYSTEM", "CAPACITY", "USED", "FREE"))
	sb.WriteString(strings.Repeat("-", tableWidth))
	sb.WriteString("\n")

	for _, d := range disks {
		kind := d.Kind
		if d.Removable {
			kind += "*"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-8s %-10s %10s %10s %10s\n",
			truncate(d.MountPath, 24),
			kind,
			truncate(d.Structure, 10),
			fmt.Sprintf("%d GiB", d.Capacity),
			FormatBytes(d.Used),
			FormatBytes(d.Free),
		))
	}

	sb.WriteString(strings.Repeat("=", tableWidth))
	sb.WriteString("\n")

	return sb.String()
}

// FormatNetworksTable formats network records as a table.
func FormatNetworksTable(networks []metrics.NetworkRecord) string {
	var sb strings.Builder

	sb.WriteString("\nNetwork Interfaces:\n")
	sb.WriteString(strings.Repeat("=", tableWidth))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-20s %12s %12s %15s %15s\n", "INTERFACE", "TX", "RX", "TOTAL TX", "TOTAL RX"))
	sb.WriteString(strings.Repeat("-", tableWidth))
	sb.WriteString("\n")

	for _, n := range networks {
		sb.WriteString(fmt.Sprintf("%-20s %12s %12s %15s %15s\n",
			truncate(n.Name, 20),
			FormatBytes(n.Transmitted),
			FormatBytes(n.Received),
			FormatBytes(n.TotalTransmitted),
			FormatBytes(n.TotalReceived),
		))
	}

	sb.WriteString(strings.Repeat("=", tableWidth))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMemory formats memory and swap usage on two lines.
func FormatMemory(mem metrics.MemoryStats, swap metrics.SwapStats) string {
	return fmt.Sprintf("Memory: %d/%d GiB used (%d GiB free)\nSwap:   %d/%d GiB used (%d GiB free)\n",
		mem.Used, mem.Total, mem.Free, swap.Used, swap.Total, swap.Free)
}

// FormatCPUs formats the latest usage of each core on one line.
func FormatCPUs(cpus []metrics.CPURecord) string {
	parts := make([]string, 0, len(cpus))
	for _, c := range cpus {
		parts = append(parts, fmt.Sprintf("%s %.1f%%", c.Name, c.Latest()))
	}
	return "CPU: " + strings.Join(parts, "  ") + "\n"
}

// FormatBytes converts bytes to human-readable format.
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// truncate truncates a string to maxLen characters, never splitting a rune.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}
