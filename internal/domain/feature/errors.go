package feature

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidRecord marks a malformed participation record, e.g. a
	// non-positive match duration.
	ErrInvalidRecord = errors.New("invalid participation record")
)
