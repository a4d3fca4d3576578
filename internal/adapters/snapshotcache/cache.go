// Package snapshotcache stores versioned playstyle tag snapshots.
//
// The cache is the one shared mutable resource in the service. Writes are
// whole-snapshot swaps: a reader always observes either the previous
// complete snapshot or the new complete snapshot, never a mix.
package snapshotcache

import (
	"context"

	"github.com/riftlens/riftlens/internal/domain/model"
)

// Cache provides read/write access to cached playstyle snapshots.
type Cache interface {
	// Get returns the cached snapshot for a subject, however stale.
	// Returns ErrNoSnapshot when the subject was never classified.
	Get(ctx context.Context, subjectID string) (model.PlaystyleTagSnapshot, error)

	// Put replaces the subject's snapshot atomically.
	Put(ctx context.Context, snapshot model.PlaystyleTagSnapshot) error
}
