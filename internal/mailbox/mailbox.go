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
// Package mailbox hands snapshots from one producer to one consumer.
//
// Two delivery policies are available. Latest keeps a single slot and
// overwrites it on every send, so a slow consumer only ever sees the newest
// value. Queue keeps every value in FIFO order with unbounded capacity.
package mailbox

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"
)

// ErrClosed is returned by Send after Close, and by Recv once a closed
// mailbox has been drained.
var ErrClosed = errors.New("mailbox closed")

// Policy selects the delivery behavior of a mailbox.
type Policy string

// Supported policies.
const (
	PolicyLatest Policy = "latest"
	PolicyQueue  Policy = "queue"
)

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyLatest, PolicyQueue:
		return p, nil
	default:
		return "", fmt.Errorf("invalid delivery policy: %s (must be latest or queue)", s)
	}
}

// Mailbox is a single-producer, single-consumer delivery channel.
type Mailbox[T any] interface {
	// Send delivers v without blocking.
	Send(v T) error
	// Recv waits until a value is available, the mailbox is closed and
	// drained, or ctx is done.
	Recv(ctx context.Context) (T, error)
	// Close stops accepting values. Pending values can still be received.
	Close()
	// Stats returns delivery counters.
	Stats() Stats
}

// Stats reports mailbox activity.
type Stats struct {
	Sent        uint64 // Values accepted by Send
	Received    uint64 // Values returned by Recv
	Overwritten uint64 // Values replaced before being received (Latest only)
	Pending     int    // Values waiting to be received
}

// New creates a mailbox for the given policy.
func New[T any](policy Policy) (Mailbox[T], error) {
	switch policy {
	case PolicyLatest:
		return NewLatest[T](), nil
	case PolicyQueue:
		return NewQueue[T](), nil
	default:
		return nil, fmt.Errorf("invalid delivery policy: %s", policy)
	}
}

// base holds the signalling shared by both policies.
type base struct {
	mu     sync.Mutex
	closed bool
	notify chan struct{} // capacity 1, wakes the consumer
	done   chan struct{} // closed by Close
	once   sync.Once

	sent     atomic.Uint64
	received atomic.Uint64
}

func (b *base) setup() {
	b.notify = make(chan struct{}, 1)
	b.done = make(chan struct{})
}

func (b *base) wake() {
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

func (b *base) close() {
	b.once.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()
		close(b.done)
	})
}

// wait blocks until the producer signals, the mailbox closes or ctx ends.
func (b *base) wait(ctx context.Context) error {
	select {
	case <-b.notify:
		return nil
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
