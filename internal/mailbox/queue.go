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

import "context"

// Queue is an unbounded FIFO mailbox. Every sent value is delivered in order;
// a consumer slower than the producer lets the backlog grow without limit.
type Queue[T any] struct {
	base
	items []T
}

// NewQueue creates an empty unbounded mailbox.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.setup()
	return q
}

// Send appends v to the queue.
func (q *Queue[T]) Send(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	q.sent.Inc()
	q.wake()
	return nil
}

// Recv returns the oldest pending value, waiting for one if the queue is empty.
func (q *Queue[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			v := q.items[0]
			q.items[0] = zero
			q.items = q.items[1:]
			q.mu.Unlock()
			q.received.Inc()
			return v, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return zero, ErrClosed
		}
		if err := q.wait(ctx); err != nil {
			return zero, err
		}
	}
}

// Close stops accepting values. Queued values remain receivable.
func (q *Queue[T]) Close() {
	q.close()
}

// Stats returns delivery counters.
func (q *Queue[T]) Stats() Stats {
	q.mu.Lock()
	pending := len(q.items)
	q.mu.Unlock()

	return Stats{
		Sent:     q.sent.Load(),
		Received: q.received.Load(),
		Pending:  pending,
	}
}

var _ Mailbox[int] = (*Queue[int])(nil)
