// Package inflight provides per-key mutual exclusion so at most one
// recomputation runs per subject at a time.
//
// A single global lock would serialize unrelated subjects; this guard only
// serializes callers contending on the same key, preserving cross-subject
// parallelism.
package inflight

import (
	"context"
	"sync"
	"sync/atomic"
)

// Guard tracks in-flight keys. A second caller for a held key is rejected
// rather than queued; the caller decides whether to retry or surface the
// conflict.
type Guard interface {
	// TryAcquire marks key as in flight. Returns false if key is already
	// held by another caller.
	TryAcquire(ctx context.Context, key string) bool

	// Release frees key. Releasing a key that is not held is a no-op.
	Release(ctx context.Context, key string)

	// Size reports how many keys are currently held.
	Size() int64
}

// Option applies a configuration option to the keyed guard.
type Option func(*keyedGuard)

// WithCapacityHint pre-sizes the internal key set for the expected number
// of concurrently recomputing subjects.
func WithCapacityHint(n int) Option {
	return func(g *keyedGuard) {
		if n > 0 {
			g.capacityHint = n
		}
	}
}

// keyedGuard implements Guard with a mutex-protected key set. Sections are
// short (set insert/delete), so a single mutex does not hurt throughput.
type keyedGuard struct {
	mu           sync.Mutex
	held         map[string]struct{}
	size         atomic.Int64
	capacityHint int
}

// NewKeyedGuard creates a guard with configuration options.
func NewKeyedGuard(opts ...Option) Guard {
	g := &keyedGuard{capacityHint: 16}
	for _, opt := range opts {
		opt(g)
	}
	g.held = make(map[string]struct{}, g.capacityHint)
	return g
}

func (g *keyedGuard) TryAcquire(_ context.Context, key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.held[key]; exists {
		return false
	}
	g.held[key] = struct{}{}
	g.size.Add(1)
	return true
}

func (g *keyedGuard) Release(_ context.Context, key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.held[key]; !exists {
		return
	}
	delete(g.held, key)
	g.size.Add(-1)
}

func (g *keyedGuard) Size() int64 {
	return g.size.Load()
}
