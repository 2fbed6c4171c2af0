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
	"unicode/utf8"

	"github.com/phuonguno98/unotop/internal/view"
)

// Page is a screen of the terminal UI.
type Page int

// Pages, in Tab order.
const (
	PageProcesses Page = iota
	PagePerformance
)

// Action tells the event loop what to do after a key press.
type Action int

// Key handling outcomes.
const (
	ActionNone Action = iota
	ActionRedraw
	ActionQuit
)

// Commands is the part of the monitor driven by key presses.
type Commands interface {
	ToggleSort(field view.SortField) view.SortSpec
	ApplyFilter(text string)
	FilterText() string
}

// sortKeys maps key IDs to the field they toggle.
var sortKeys = map[string]view.SortField{
	"n": view.FieldName,
	"p": view.FieldPID,
	"c": view.FieldCPUUsage,
	"m": view.FieldMemory,
}

// Controller turns key presses into sort and filter commands.
type Controller struct {
	cmds    Commands
	page    Page
	editing bool
}

// NewController creates a controller on the process page.
func NewController(cmds Commands) *Controller {
	return &Controller{cmds: cmds}
}

// Page returns the visible page.
func (c *Controller) Page() Page {
	return c.page
}

// Editing reports whether filter input mode is active.
func (c *Controller) Editing() bool {
	return c.editing
}

// HandleKey applies one termui key ID.
func (c *Controller) HandleKey(id string) Action {
	if id == "<C-c>" {
		return ActionQuit
	}
	if c.editing {
		return c.handleFilterKey(id)
	}

	switch id {
	case "q":
		return ActionQuit
	case "<Tab>":
		if c.page == PageProcesses {
			c.page = PagePerformance
		} else {
			c.page = PageProcesses
		}
		return ActionRedraw
	case "/":
		if c.page != PageProcesses {
			return ActionNone
		}
		c.editing = true
		return ActionRedraw
	}

	if f, ok := sortKeys[id]; ok && c.page == PageProcesses {
		c.cmds.ToggleSort(f)
		return ActionRedraw
	}
	return ActionNone
}

func (c *Controller) handleFilterKey(id string) Action {
	text := c.cmds.FilterText()

	switch id {
	case "<Enter>", "<Escape>":
		c.editing = false
		return ActionRedraw
	case "<Backspace>", "<C-<Backspace>>":
		if text == "" {
			return ActionNone
		}
		_, size := utf8.DecodeLastRuneInString(text)
		c.cmds.ApplyFilter(text[:len(text)-size])
		return ActionRedraw
	case "<Space>":
		c.cmds.ApplyFilter(text + " ")
		return ActionRedraw
	}

	// Printable keys arrive as a single rune; everything else is <Name>
	if utf8.RuneCountInString(id) != 1 {
		return ActionNone
	}
	c.cmds.ApplyFilter(text + id)
	return ActionRedraw
}
