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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("latest")
	require.NoError(t, err)
	assert.Equal(t, PolicyLatest, p)

	p, err = ParsePolicy("queue")
	require.NoError(t, err)
	assert.Equal(t, PolicyQueue, p)

	_, err = ParsePolicy("ring")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	m, err := New[int](PolicyLatest)
	require.NoError(t, err)
	assert.IsType(t, &Latest[int]{}, m)

	m, err = New[int](PolicyQueue)
	require.NoError(t, err)
	assert.IsType(t, &Queue[int]{}, m)

	_, err = New[int]("bogus")
	assert.Error(t, err)
}

func TestLatest_OverwritesPending(t *testing.T) {
	m := NewLatest[int]()

	require.NoError(t, m.Send(1))
	require.NoError(t, m.Send(2))
	require.NoError(t, m.Send(3))

	v, err := m.Recv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	stats := m.Stats()
	assert.Equal(t, uint64(3), stats.Sent)
	assert.Equal(t, uint64(1), stats.Received)
	assert.Equal(t, uint64(2), stats.Overwritten)
	assert.Equal(t, 0, stats.Pending)
}

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue[int]()

	for i := 1; i <= 5; i++ {
		require.NoError(t, q.Send(i))
	}
	assert.Equal(t, 5, q.Stats().Pending)

	for i := 1; i <= 5; i++ {
		v, err := q.Recv(context.Background())
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}

	stats := q.Stats()
	assert.Equal(t, uint64(5), stats.Sent)
	assert.Equal(t, uint64(5), stats.Received)
	assert.Equal(t, uint64(0), stats.Overwritten)
}

func TestMailbox_RecvWaitsForSend(t *testing.T) {
	for _, policy := range []Policy{PolicyLatest, PolicyQueue} {
		t.Run(string(policy), func(t *testing.T) {
			m, err := New[string](policy)
			require.NoError(t, err)

			got := make(chan string, 1)
			go func() {
				v, err := m.Recv(context.Background())
				if err == nil {
					got <- v
				}
			}()

			time.Sleep(20 * time.Millisecond)
			require.NoError(t, m.Send("hello"))

			select {
			case v := <-got:
				assert.Equal(t, "hello", v)
			case <-time.After(time.Second):
				t.Fatal("Recv did not wake up after Send")
			}
		})
	}
}

func TestMailbox_RecvContextCancel(t *testing.T) {
	for _, policy := range []Policy{PolicyLatest, PolicyQueue} {
		t.Run(string(policy), func(t *testing.T) {
			m, err := New[int](policy)
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
			defer cancel()

			_, err = m.Recv(ctx)
			assert.True(t, errors.Is(err, context.DeadlineExceeded))
		})
	}
}

func TestMailbox_Close(t *testing.T) {
	for _, policy := range []Policy{PolicyLatest, PolicyQueue} {
		t.Run(string(policy), func(t *testing.T) {
			m, err := New[int](policy)
			require.NoError(t, err)

			require.NoError(t, m.Send(7))
			m.Close()
			m.Close() // idempotent

			assert.ErrorIs(t, m.Send(8), ErrClosed)

			// Pending value survives Close
			v, err := m.Recv(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 7, v)

			_, err = m.Recv(context.Background())
			assert.ErrorIs(t, err, ErrClosed)
		})
	}
}

func TestMailbox_CloseWakesReceiver(t *testing.T) {
	m := NewQueue[int]()

	errCh := make(chan error, 1)
	go func() {
		_, err := m.Recv(context.Background())
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	m.Close()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("Recv did not return after Close")
	}
}

func TestQueue_ConcurrentProducerPreservesOrder(t *testing.T) {
	q := NewQueue[int]()
	const n = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			_ = q.Send(i)
		}
		q.Close()
	}()

	next := 0
	for {
		v, err := q.Recv(context.Background())
		if errors.Is(err, ErrClosed) {
			break
		}
		require.NoError(t, err)
		require.Equal(t, next, v)
		next++
	}
	wg.Wait()
	assert.Equal(t, n, next)
}

func TestLatest_ConcurrentProducerNeverGoesBackwards(t *testing.T) {
	m := NewLatest[int]()
	const n = 1000

	go func() {
		for i := 1; i <= n; i++ {
			_ = m.Send(i)
		}
		m.Close()
	}()

	last := 0
	for {
		v, err := m.Recv(context.Background())
		if errors.Is(err, ErrClosed) {
			break
		}
		require.NoError(t, err)
		require.Greater(t, v, last)
		last = v
	}
	assert.Equal(t, n, last)
}
