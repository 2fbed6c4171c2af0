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
// Package view turns a process snapshot into the ordered, filtered rows shown
// to the user.
package view

import (
	"strconv"
	"strings"
	"sync"

	"github.com/phuonguno98/unotop/pkg/metrics"
)

// Filter keeps the records whose name, or decimal pid, contains text.
// Matching is case-sensitive and an empty text keeps everything.
// Input order is preserved and the input slice is not modified.
func Filter(processes []metrics.ProcessRecord, text string) []metrics.ProcessRecord {
	out := make([]metrics.ProcessRecord, 0, len(processes))
	for i := range processes {
		if Matches(&processes[i], text) {
			out = append(out, processes[i])
		}
	}
	return out
}

// Matches reports whether a record passes the filter text.
func Matches(p *metrics.ProcessRecord, text string) bool {
	return strings.Contains(p.Name, text) ||
		strings.Contains(strconv.FormatUint(uint64(p.PID), 10), text)
}

// Rows filters then sorts processes. The result is a new slice.
func Rows(processes []metrics.ProcessRecord, text string, spec SortSpec) []metrics.ProcessRecord {
	rows := Filter(processes, text)
	Sort(rows, spec)
	return rows
}

// State holds the sort and filter chosen by the user.
// It is safe for concurrent use.
type State struct {
	mu     sync.RWMutex
	sort   SortSpec
	filter string
}

// NewState creates a state with no active sort and an empty filter.
func NewState() *State {
	return &State{}
}

// ToggleSort applies a click on field f and returns the new spec.
func (s *State) ToggleSort(f SortField) SortSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = s.sort.Toggle(f)
	return s.sort
}

// SetSort replaces the sort spec.
func (s *State) SetSort(spec SortSpec) {
	s.mu.Lock()
	s.sort = spec
	s.mu.Unlock()
}

// ApplyFilter replaces the filter text.
func (s *State) ApplyFilter(text string) {
	s.mu.Lock()
	s.filter = text
	s.mu.Unlock()
}

// SortSpec returns the current sort spec.
func (s *State) SortSpec() SortSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sort
}

// FilterText returns the current filter text.
func (s *State) FilterText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Apply returns the rows of snap under the current sort and filter.
// A nil snapshot yields no rows.
func (s *State) Apply(snap *metrics.ProcessSnapshot) []metrics.ProcessRecord {
	if snap == nil {
		return nil
	}

	s.mu.RLock()
	text, spec := s.filter, s.sort
	s.mu.RUnlock()

	return Rows(snap.Processes, text, spec)
}
