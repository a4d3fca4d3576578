package snapshotcache

import (
	"context"
	"fmt"
	"sync"

	"github.com/riftlens/riftlens/internal/domain/model"
)

// MemoryCache implements Cache with a mutex-protected map. Snapshots are
// stored by value, so readers always see a complete snapshot.
type MemoryCache struct {
	mu        sync.RWMutex
	snapshots map[string]model.PlaystyleTagSnapshot
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{snapshots: make(map[string]model.PlaystyleTagSnapshot)}
}

// Get returns the cached snapshot for a subject, however stale.
func (c *MemoryCache) Get(_ context.Context, subjectID string) (model.PlaystyleTagSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot, ok := c.snapshots[subjectID]
	if !ok {
		return model.PlaystyleTagSnapshot{}, fmt.Errorf("subject %s: %w", subjectID, ErrNoSnapshot)
	}
	return snapshot, nil
}

// Put replaces the subject's snapshot atomically.
func (c *MemoryCache) Put(_ context.Context, snapshot model.PlaystyleTagSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[snapshot.SubjectID] = snapshot
	return nil
}
