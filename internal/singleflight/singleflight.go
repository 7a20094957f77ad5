// Package singleflight coalesces concurrent calls for the same key so
// the underlying work runs at most once.
package singleflight

import (
	"context"
	"sync"
)

// Group deduplicates concurrent calls per key K. The first caller for a
// key becomes the leader and runs fn; followers wait on the shared
// result. Publishing (val, err) happens-before close(done), so reads
// after <-done observe the final values.
type Group[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*call[V]
}

type call[V any] struct {
	done chan struct{} // closed when val/err are published
	val  V
	err  error
}

// Do runs fn once for the given key; concurrent calls with the same key
// wait for the shared result. Cancelling ctx unblocks only the waiting
// follower; it does not stop the leader's fn. If the work itself must
// be cancellable, thread ctx into fn.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (V, error) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[K]*call[V])
	}
	if c, ok := g.m[key]; ok {
		// An in-flight call exists: wait, respecting ctx.
		done := c.done
		g.mu.Unlock()

		select {
		case <-done:
			return c.val, c.err
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}

	// We are the leader for this key.
	c := &call[V]{done: make(chan struct{})}
	g.m[key] = c
	g.mu.Unlock()

	// Execute fn outside the lock.
	v, err := fn()

	c.val, c.err = v, err
	close(c.done)

	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()

	return v, err
}
