package snapshotcache

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrNoSnapshot marks a subject that has never been classified.
	ErrNoSnapshot = errors.New("no cached snapshot")
)
