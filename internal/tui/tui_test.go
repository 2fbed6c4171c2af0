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
	"strings"
	"testing"

	"github.com/phuonguno98/unotop/internal/monitor"
	"github.com/phuonguno98/unotop/internal/view"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

// fakeCommands records the commands issued by the controller.
type fakeCommands struct {
	spec    view.SortSpec
	filter  string
	toggled []view.SortField
}

func (f *fakeCommands) ToggleSort(field view.SortField) view.SortSpec {
	f.toggled = append(f.toggled, field)
	f.spec = f.spec.Toggle(field)
	return f.spec
}

func (f *fakeCommands) ApplyFilter(text string) {
	f.filter = text
}

func (f *fakeCommands) FilterText() string {
	return f.filter
}

func TestController_SortKeys(t *testing.T) {
	tests := []struct {
		key  string
		want view.SortField
	}{
		{"n", view.FieldName},
		{"p", view.FieldPID},
		{"c", view.FieldCPUUsage},
		{"m", view.FieldMemory},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cmds := &fakeCommands{}
			c := NewController(cmds)
			if got := c.HandleKey(tt.key); got != ActionRedraw {
				t.Errorf("HandleKey(%q) = %v, want ActionRedraw", tt.key, got)
			}
			if len(cmds.toggled) != 1 || cmds.toggled[0] != tt.want {
				t.Errorf("Toggled = %v, want [%v]", cmds.toggled, tt.want)
			}
		})
	}
}

func TestController_UnknownKey(t *testing.T) {
	cmds := &fakeCommands{}
	c := NewController(cmds)
	if got := c.HandleKey("x"); got != ActionNone {
		t.Errorf("HandleKey(x) = %v, want ActionNone", got)
	}
	if len(cmds.toggled) != 0 {
		t.Errorf("Unexpected toggle: %v", cmds.toggled)
	}
}

func TestController_Quit(t *testing.T) {
	c := NewController(&fakeCommands{})
	if got := c.HandleKey("q"); got != ActionQuit {
		t.Errorf("HandleKey(q) = %v, want ActionQuit", got)
	}

	// Ctrl-C quits even while typing a filter
	c.HandleKey("/")
	if got := c.HandleKey("<C-c>"); got != ActionQuit {
		t.Errorf("HandleKey(<C-c>) = %v, want ActionQuit", got)
	}
}

func TestController_FilterMode(t *testing.T) {
	cmds := &fakeCommands{}
	c := NewController(cmds)

	c.HandleKey("/")
	if !c.Editing() {
		t.Fatal("Expected filter mode after /")
	}

	for _, k := range []string{"s", "q", "<Space>", "d", "<F1>"} {
		c.HandleKey(k)
	}
	if cmds.filter != "sq d" {
		t.Errorf("Filter = %q, want %q", cmds.filter, "sq d")
	}
	if len(cmds.toggled) != 0 {
		t.Error("Sort keys must not toggle while editing")
	}

	c.HandleKey("<Backspace>")
	c.HandleKey("<C-<Backspace>>")
	if cmds.filter != "sq" {
		t.Errorf("Filter = %q, want sq", cmds.filter)
	}

	c.HandleKey("é")
	c.HandleKey("<Backspace>")
	if cmds.filter != "sq" {
		t.Errorf("Filter after multibyte backspace = %q, want sq", cmds.filter)
	}

	if got := c.HandleKey("<Enter>"); got != ActionRedraw || c.Editing() {
		t.Error("Enter should leave filter mode")
	}

	// Filter is kept after leaving edit mode
	if cmds.filter != "sq" {
		t.Errorf("Filter = %q, want sq", cmds.filter)
	}

	// Backspace on an empty filter does nothing
	cmds.filter = ""
	c.HandleKey("/")
	if got := c.HandleKey("<Backspace>"); got != ActionNone {
		t.Errorf("Backspace on empty filter = %v, want ActionNone", got)
	}
	c.HandleKey("<Escape>")
	if c.Editing() {
		t.Error("Escape should leave filter mode")
	}
}

func TestController_Pages(t *testing.T) {
	cmds := &fakeCommands{}
	c := NewController(cmds)

	if c.Page() != PageProcesses {
		t.Fatalf("Initial page = %v, want PageProcesses", c.Page())
	}

	c.HandleKey("<Tab>")
	if c.Page() != PagePerformance {
		t.Fatalf("Page after Tab = %v, want PagePerformance", c.Page())
	}

	// Sort and filter keys only apply to the process page
	if got := c.HandleKey("c"); got != ActionNone {
		t.Errorf("HandleKey(c) on performance page = %v, want ActionNone", got)
	}
	if c.HandleKey("/"); c.Editing() {
		t.Error("Filter mode entered on performance page")
	}

	c.HandleKey("<Tab>")
	if c.Page() != PageProcesses {
		t.Errorf("Page after second Tab = %v, want PageProcesses", c.Page())
	}
}

func TestProcessRows(t *testing.T) {
	records := []metrics.ProcessRecord{
		{PID: 1, Name: "init"},
		{PID: 2, Name: "kthreadd"},
		{PID: 3, Name: "bash"},
	}

	rows := processRows(records, view.SortSpec{Field: view.FieldName, Direction: view.Ascending}, 2)
	if len(rows) != 3 {
		t.Fatalf("processRows() returned %d rows, want 3", len(rows))
	}
	if rows[0][0] != "NAME ▲" {
		t.Errorf("Header = %v", rows[0])
	}
	if rows[2][1] != "2" {
		t.Errorf("Second row = %v", rows[2])
	}

	if got := processRows(records, view.SortSpec{}, -1); len(got) != 4 {
		t.Errorf("Unlimited processRows() returned %d rows, want 4", len(got))
	}
	if got := processRows(nil, view.SortSpec{}, 0); len(got) != 1 {
		t.Errorf("Empty processRows() returned %d rows, want header only", len(got))
	}
}

func TestPerformanceRows(t *testing.T) {
	disks := diskRows([]metrics.DiskRecord{{MountPath: "/media/usb", Kind: "SSD", Structure: "vfat", Capacity: 32, Removable: true}})
	if len(disks) != 2 || disks[1][1] != "SSD*" || disks[1][3] != "32 GiB" {
		t.Errorf("diskRows() = %v", disks)
	}

	networks := networkRows([]metrics.NetworkRecord{{Name: "eth0", Transmitted: 2048}})
	if len(networks) != 2 || networks[1][1] != "2.0 KB" || networks[0][1] != "TX (tick)" {
		t.Errorf("networkRows() = %v", networks)
	}
}

func TestGaugePercent(t *testing.T) {
	tests := []struct {
		used, total uint64
		want        int
	}{
		{0, 0, 0},
		{8, 16, 50},
		{1, 3, 33},
		{20, 16, 100},
	}

	for _, tt := range tests {
		if got := gaugePercent(tt.used, tt.total); got != tt.want {
			t.Errorf("gaugePercent(%d, %d) = %d, want %d", tt.used, tt.total, got, tt.want)
		}
	}
}

func TestStatusLine(t *testing.T) {
	spec := view.SortSpec{Field: view.FieldCPUUsage, Direction: view.Descending}
	line := statusLine(spec, "ssh", false, 2, 10, monitor.Stats{ProcessTicks: 3, PerformanceTicks: 4})

	for _, want := range []string{"2/10 processes", "sort: " + spec.String(), `filter: "ssh"`, "ticks: 3/4"} {
		if !strings.Contains(line, want) {
			t.Errorf("statusLine() = %q, missing %q", line, want)
		}
	}

	editing := statusLine(spec, "ssh", true, 2, 10, monitor.Stats{})
	if !strings.HasPrefix(editing, "Filter: ssh_") {
		t.Errorf("Editing statusLine() = %q", editing)
	}
}
