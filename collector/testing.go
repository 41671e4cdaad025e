package collector

import (
	"context"
	"sync"
	"testing"
	"time"
)

// TestCollector collects items from a subscription channel for testing.
// This is a test helper that should only be used in tests.
type TestCollector[T any] struct {
	t       testing.TB
	items   []T
	cancel  func()
	done    chan struct{}
	timeout time.Duration
	mu      sync.Mutex
}

// Collect starts collecting from a subscription.
// Use Wait(n) to block until n items are received or timeout.
func Collect[T any](t testing.TB, subscribe func(context.Context) <-chan T) *TestCollector[T] {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	ch := subscribe(ctx)

	c := &TestCollector[T]{
		t:       t,
		cancel:  cancel,
		done:    make(chan struct{}),
		timeout: time.Second,
	}

	go func() {
		defer close(c.done)
		for item := range ch {
			c.mu.Lock()
			c.items = append(c.items, item)
			c.mu.Unlock()
		}
	}()

	t.Cleanup(c.stop)

	return c
}

// WithTimeout changes how long Wait blocks
func (c *TestCollector[T]) WithTimeout(timeout time.Duration) *TestCollector[T] {
	c.timeout = timeout
	return c
}

// Wait blocks until n items are received or the timeout is hit.
// Fails the test on timeout. Returns collected items.
func (c *TestCollector[T]) Wait(n int) []T {
	c.t.Helper()
	deadline := time.Now().Add(c.timeout)

	for time.Now().Before(deadline) {
		if items := c.snapshot(); len(items) >= n {
			c.stop()
			return items
		}
		time.Sleep(time.Millisecond)
	}

	c.stop()
	items := c.snapshot()
	c.t.Fatalf("timeout waiting for %d items, got %d", n, len(items))
	return nil
}

// Stop cancels collection and returns items collected so far.
func (c *TestCollector[T]) Stop() []T {
	c.stop()
	return c.snapshot()
}

func (c *TestCollector[T]) stop() {
	c.cancel()
	select {
	case <-c.done:
	case <-time.After(c.timeout):
	}
}

func (c *TestCollector[T]) snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return items
}
