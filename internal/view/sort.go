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
package view

import (
	"cmp"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/phuonguno98/unotop/pkg/metrics"
)

// SortField is a sortable column of the process table.
type SortField int

// Sortable fields. FieldNone means no column is active.
const (
	FieldNone SortField = iota
	FieldName
	FieldPID
	FieldCPUUsage
	FieldMemory
)

// Fields lists the sortable fields in column order.
var Fields = []SortField{FieldName, FieldPID, FieldCPUUsage, FieldMemory}

func (f SortField) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldPID:
		return "pid"
	case FieldCPUUsage:
		return "cpu_usage"
	case FieldMemory:
		return "memory"
	default:
		return "none"
	}
}

// ParseSortField accepts a field name or its short alias.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return FieldName, nil
	case "pid":
		return FieldPID, nil
	case "cpu_usage", "cpu":
		return FieldCPUUsage, nil
	case "memory", "mem":
		return FieldMemory, nil
	default:
		return FieldNone, fmt.Errorf("invalid sort field: %q (must be name, pid, cpu or memory)", s)
	}
}

// Direction is the ordering applied to the active field.
type Direction int

// Directions, in click-cycle order after Unset.
const (
	Unset Direction = iota
	Descending
	Ascending
)

func (d Direction) String() string {
	switch d {
	case Descending:
		return "desc"
	case Ascending:
		return "asc"
	default:
		return "unset"
	}
}

// SortSpec is the active sort column and its direction.
// The zero value sorts nothing.
type SortSpec struct {
	Field     SortField
	Direction Direction
}

// Toggle returns the spec that results from clicking field f.
// A new field starts Descending; the same field cycles
// Descending -> Ascending -> Unset -> Descending.
func (s SortSpec) Toggle(f SortField) SortSpec {
	if f == FieldNone {
		return s
	}
	if f != s.Field {
		return SortSpec{Field: f, Direction: Descending}
	}

	next := Descending
	switch s.Direction {
	case Descending:
		next = Ascending
	case Ascending:
		next = Unset
	}
	return SortSpec{Field: f, Direction: next}
}

// Active reports whether the spec reorders rows.
func (s SortSpec) Active() bool {
	return s.Field != FieldNone && s.Direction != Unset
}

func (s SortSpec) String() string {
	if s.Field == FieldNone {
		return "none"
	}
	return s.Field.String() + ":" + s.Direction.String()
}

// ParseSortSpec parses "field" or "field:asc|desc". A bare field sorts descending,
// the same as a first click on its column. An empty string yields the zero spec.
func ParseSortSpec(s string) (SortSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SortSpec{}, nil
	}

	name, dir, hasDir := strings.Cut(s, ":")
	field, err := ParseSortField(name)
	if err != nil {
		return SortSpec{}, err
	}

	spec := SortSpec{Field: field, Direction: Descending}
	if hasDir {
		switch strings.ToLower(dir) {
		case "desc":
		case "asc":
			spec.Direction = Ascending
		default:
			return SortSpec{}, fmt.Errorf("invalid sort direction: %q (must be asc or desc)", dir)
		}
	}
	return spec, nil
}

// Sort orders processes in place. The sort is stable; an inactive spec leaves
// the slice untouched.
func Sort(processes []metrics.ProcessRecord, spec SortSpec) {
	if !spec.Active() {
		return
	}

	less := func(i, j int) bool {
		return compare(&processes[i], &processes[j], spec.Field) < 0
	}
	if spec.Direction == Descending {
		less = func(i, j int) bool {
			return compare(&processes[j], &processes[i], spec.Field) < 0
		}
	}

	sort.SliceStable(processes, less)
}

// compare orders two records by field in ascending order.
func compare(a, b *metrics.ProcessRecord, field SortField) int {
	switch field {
	case FieldName:
		return strings.Compare(a.Name, b.Name)
	case FieldPID:
		return cmp.Compare(a.PID, b.PID)
	case FieldMemory:
		return cmp.Compare(a.Memory, b.Memory)
	case FieldCPUUsage:
		return totalCompare(a.CPUUsage, b.CPUUsage)
	default:
		return 0
	}
}

// totalCompare orders floats by the IEEE 754 totalOrder predicate:
// -NaN < -Inf < ... < -0 < +0 < ... < +Inf < +NaN.
func totalCompare(a, b float64) int {
	return cmp.Compare(totalKey(a), totalKey(b))
}

func totalKey(f float64) int64 {
	bits := int64(math.Float64bits(f))
	// Flip magnitude bits of negatives so that signed comparison matches totalOrder
	return bits ^ int64(uint64(bits>>63)>>1)
}
