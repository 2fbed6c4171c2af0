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
package collector

import "sync"

// DefaultCPUHistory is the number of usage samples kept per core.
const DefaultCPUHistory = 60

// CPUHistory keeps a fixed number of usage samples per core name,
// evicting the oldest sample on overflow.
type CPUHistory struct {
	mu       sync.Mutex
	capacity int
	rings    map[string]*ring
}

type ring struct {
	buf   []float64
	start int
	size  int
}

func (r *ring) push(v float64) {
	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = v
		r.size++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

// values returns a copy of the samples, oldest first.
func (r *ring) values() []float64 {
	out := make([]float64, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// NewCPUHistory creates a history keeping capacity samples per core.
// A capacity below 1 is treated as 1.
func NewCPUHistory(capacity int) *CPUHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &CPUHistory{
		capacity: capacity,
		rings:    make(map[string]*ring),
	}
}

// Capacity returns the number of samples kept per core.
func (h *CPUHistory) Capacity() int {
	return h.capacity
}

// Push appends a sample for core and returns its samples, oldest first.
func (h *CPUHistory) Push(core string, usage float64) []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rings[core]
	if !ok {
		r = &ring{buf: make([]float64, h.capacity)}
		h.rings[core] = r
	}
	r.push(usage)
	return r.values()
}

// Retain drops the history of every core not in names.
func (h *CPUHistory) Retain(names map[string]struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for name := range h.rings {
		if _, ok := names[name]; !ok {
			delete(h.rings, name)
		}
	}
}

// Len returns the number of tracked cores.
func (h *CPUHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rings)
}
