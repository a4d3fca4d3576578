package matchstore

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrSubjectNotFound marks a subject with no registry row at all,
	// distinct from a registered subject with zero matches.
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrUnavailable marks a failed or timed-out upstream refresh.
	ErrUnavailable = errors.New("match store unavailable")
)
