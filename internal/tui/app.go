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
// Package tui is the terminal front end. It renders the monitor's snapshots
// with termui and turns key presses into sort and filter commands.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/phuonguno98/unotop/internal/monitor"
	"github.com/phuonguno98/unotop/internal/view"
)

// App is the full-screen task manager.
type App struct {
	mon    *monitor.Monitor
	ctrl   *Controller
	logger *slog.Logger

	status    *widgets.Paragraph
	processes *widgets.Table

	cpus     *widgets.SparklineGroup
	memory   *widgets.Gauge
	swap     *widgets.Gauge
	disks    *widgets.Table
	networks *widgets.Table

	processGrid     *ui.Grid
	performanceGrid *ui.Grid
}

// New creates the UI for mon. Nothing is drawn until Run.
func New(mon *monitor.Monitor, logger *slog.Logger) *App {
	a := &App{
		mon:    mon,
		ctrl:   NewController(mon),
		logger: logger.With("component", "tui"),
	}

	a.status = widgets.NewParagraph()
	a.status.Border = false

	a.processes = widgets.NewTable()
	a.processes.Title = " Processes "
	a.processes.TextStyle = ui.NewStyle(ui.ColorWhite)
	a.processes.RowSeparator = false
	a.processes.BorderStyle.Fg = ui.ColorGreen
	a.processes.RowStyles[0] = ui.NewStyle(ui.ColorWhite, ui.ColorClear, ui.ModifierBold)
	a.processes.Rows = processRows(nil, view.SortSpec{}, 0)

	// The group divides its height by the sparkline count, so it never starts empty
	a.cpus = widgets.NewSparklineGroup(widgets.NewSparkline())
	a.cpus.Title = " CPU "
	a.cpus.BorderStyle.Fg = ui.ColorYellow

	a.memory = widgets.NewGauge()
	a.memory.Title = " Memory "
	a.memory.BarColor = ui.ColorGreen

	a.swap = widgets.NewGauge()
	a.swap.Title = " Swap "
	a.swap.BarColor = ui.ColorMagenta

	a.disks = widgets.NewTable()
	a.disks.Title = " Disks "
	a.disks.TextStyle = ui.NewStyle(ui.ColorWhite)
	a.disks.RowSeparator = false
	a.disks.BorderStyle.Fg = ui.ColorCyan
	a.disks.Rows = diskRows(nil)

	a.networks = widgets.NewTable()
	a.networks.Title = " Networks "
	a.networks.TextStyle = ui.NewStyle(ui.ColorWhite)
	a.networks.RowSeparator = false
	a.networks.BorderStyle.Fg = ui.ColorYellow
	a.networks.Rows = networkRows(nil)

	a.processGrid = ui.NewGrid()
	a.processGrid.Set(
		ui.NewRow(0.06, ui.NewCol(1.0, a.status)),
		ui.NewRow(0.94, ui.NewCol(1.0, a.processes)),
	)

	a.performanceGrid = ui.NewGrid()
	a.performanceGrid.Set(
		ui.NewRow(0.45, ui.NewCol(1.0, a.cpus)),
		ui.NewRow(0.15,
			ui.NewCol(0.5, a.memory),
			ui.NewCol(0.5, a.swap),
		),
		ui.NewRow(0.40,
			ui.NewCol(0.5, a.disks),
			ui.NewCol(0.5, a.networks),
		),
	)

	return a
}

// Run owns the terminal until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := ui.Init(); err != nil {
		return fmt.Errorf("failed to init termui: %w", err)
	}
	defer ui.Close()

	a.resize(ui.TerminalDimensions())
	a.refresh()
	a.render()

	uiEvents := ui.PollEvents()
	for {
		select {
		case <-ctx.Done():
			return nil

		case e := <-uiEvents:
			switch e.Type {
			case ui.KeyboardEvent:
				switch a.ctrl.HandleKey(e.ID) {
				case ActionQuit:
					a.logger.Info("Quit requested")
					return nil
				case ActionRedraw:
					a.refresh()
					ui.Clear()
					a.render()
				}
			case ui.ResizeEvent:
				payload := e.Payload.(ui.Resize)
				a.resize(payload.Width, payload.Height)
				ui.Clear()
				a.render()
			}

		case <-a.mon.Updates():
			a.refresh()
			a.render()
		}
	}
}

func (a *App) resize(width, height int) {
	a.processGrid.SetRect(0, 0, width, height)
	a.performanceGrid.SetRect(0, 0, width, height)
}

func (a *App) render() {
	if a.ctrl.Page() == PagePerformance {
		ui.Render(a.performanceGrid)
		return
	}
	ui.Render(a.processGrid)
}

// refresh copies the monitor state into the widgets of the visible page.
func (a *App) refresh() {
	if a.ctrl.Page() == PagePerformance {
		a.refreshPerformance()
		return
	}

	spec := a.mon.SortSpec()
	rows := a.mon.CurrentView()
	total := 0
	if snap := a.mon.LatestProcessSnapshot(); snap != nil {
		total = len(snap.Processes)
	}

	// The header takes one line
	visible := a.processes.Inner.Dy() - 1
	a.processes.Rows = processRows(rows, spec, visible)
	a.status.Text = statusLine(spec, a.mon.FilterText(), a.ctrl.Editing(), len(rows), total, a.mon.Stats())
}

func (a *App) refreshPerformance() {
	snap := a.mon.LatestPerformanceSnapshot()
	if snap == nil {
		return
	}

	if len(snap.CPUs) > 0 && len(a.cpus.Sparklines) != len(snap.CPUs) {
		a.cpus.Sparklines = make([]*widgets.Sparkline, len(snap.CPUs))
		for i := range a.cpus.Sparklines {
			sl := widgets.NewSparkline()
			sl.MaxVal = 100
			sl.LineColor = ui.ColorYellow
			sl.TitleStyle.Fg = ui.ColorWhite
			a.cpus.Sparklines[i] = sl
		}
	}
	for i, c := range snap.CPUs {
		sl := a.cpus.Sparklines[i]
		sl.Data = c.Usage
		sl.Title = fmt.Sprintf("%s %.1f%%", c.Name, c.Latest())
	}

	a.memory.Percent = gaugePercent(snap.Memory.Used, snap.Memory.Total)
	a.memory.Label = fmt.Sprintf("%d/%d GiB", snap.Memory.Used, snap.Memory.Total)
	a.swap.Percent = gaugePercent(snap.Swap.Used, snap.Swap.Total)
	a.swap.Label = fmt.Sprintf("%d/%d GiB", snap.Swap.Used, snap.Swap.Total)

	a.disks.Rows = diskRows(snap.Disks)
	a.networks.Rows = networkRows(snap.Networks)
}
