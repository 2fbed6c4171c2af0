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
package mailbox

import (
	"context"

	"go.uber.org/atomic"
)

// Latest is a single-slot mailbox. Send overwrites any value not yet received.
type Latest[T any] struct {
	base
	value       T
	full        bool
	overwritten atomic.Uint64
}

// NewLatest creates an empty single-slot mailbox.
func NewLatest[T any]() *Latest[T] {
	m := &Latest[T]{}
	m.setup()
	return m
}

// Send stores v, replacing a pending value.
func (m *Latest[T]) Send(v T) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.full {
		m.overwritten.Inc()
	}
	m.value = v
	m.full = true
	m.mu.Unlock()

	m.sent.Inc()
	m.wake()
	return nil
}

// Recv returns the pending value, waiting for one if the slot is empty.
func (m *Latest[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	for {
		m.mu.Lock()
		if m.full {
			v := m.value
			m.value = zero
			m.full = false
			m.mu.Unlock()
			m.received.Inc()
			return v, nil
		}
		closed := m.closed
		m.mu.Unlock()

		if closed {
			return zero, ErrClosed
		}
		if err := m.wait(ctx); err != nil {
			return zero, err
		}
	}
}

// Close stops accepting values.
func (m *Latest[T]) Close() {
	m.close()
}

// Stats returns delivery counters.
func (m *Latest[T]) Stats() Stats {
	m.mu.Lock()
	pending := 0
	if m.full {
		pending = 1
	}
	m.mu.Unlock()

	return Stats{
		Sent:        m.sent.Load(),
		Received:    m.received.Load(),
		Overwritten: m.overwritten.Load(),
		Pending:     pending,
	}
}

var _ Mailbox[int] = (*Latest[int])(nil)
