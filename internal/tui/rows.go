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
package tui

import (
	"fmt"

	"github.com/phuonguno98/unotop/internal/monitor"
	"github.com/phuonguno98/unotop/internal/render"
	"github.com/phuonguno98/unotop/internal/view"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

// processRows builds the process table, header first, keeping at most limit data rows.
// A limit below zero keeps every row.
func processRows(rows []metrics.ProcessRecord, spec view.SortSpec, limit int) [][]string {
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([][]string, 0, len(rows)+1)
	out = append(out, render.ProcessHeader(spec))
	for _, p := range rows {
		out = append(out, render.ProcessRow(p))
	}
	return out
}

func diskRows(disks []metrics.DiskRecord) [][]string {
	out := [][]string{{"Mount", "Kind", "FS", "Capacity", "Used", "Free"}}
	for _, d := range disks {
		kind := d.Kind
		if d.Removable {
			kind += "*"
		}
		out = append(out, []string{
			d.MountPath,
			kind,
			d.Structure,
			fmt.Sprintf("%d GiB", d.Capacity),
			render.FormatBytes(d.Used),
			render.FormatBytes(d.Free),
		})
	}
	return out
}

func networkRows(networks []metrics.NetworkRecord) [][]string {
	// TX and RX are the bytes moved since the previous sample
	out := [][]string{{"Interface", "TX (tick)", "RX (tick)", "Total TX", "Total RX"}}
	for _, n := range networks {
		out = append(out, []string{
			n.Name,
			render.FormatBytes(n.Transmitted),
			render.FormatBytes(n.Received),
			render.FormatBytes(n.TotalTransmitted),
			render.FormatBytes(n.TotalReceived),
		})
	}
	return out
}

// gaugePercent returns used/total as a percentage in [0, 100].
func gaugePercent(used, total uint64) int {
	if total == 0 {
		return 0
	}
	if used >= total {
		return 100
	}
	return int(used * 100 / total)
}

// statusLine describes the view state and key bindings.
func statusLine(spec view.SortSpec, filter string, editing bool, shown, total int, stats monitor.Stats) string {
	if editing {
		return fmt.Sprintf("Filter: %s_   (Enter/Esc to finish)", filter)
	}

	line := fmt.Sprintf("%d/%d processes | sort: %s", shown, total, spec)
	if filter != "" {
		line += fmt.Sprintf(" | filter: %q", filter)
	}
	line += fmt.Sprintf(" | ticks: %d/%d", stats.ProcessTicks, stats.PerformanceTicks)
	return line + " | n/p/c/m sort, / filter, Tab performance, q quit"
}
