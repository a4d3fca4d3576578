package service

import (
	"errors"

	"github.com/riftlens/riftlens/internal/adapters/matchstore"
	"github.com/riftlens/riftlens/internal/domain/feature"
)

// Service-level error taxonomy. The first three alias the sentinel of the
// package that detects the condition, so errors.Is works on either name.
var (
	// ErrInvalidRecord marks malformed input rejected before feature
	// extraction.
	ErrInvalidRecord = feature.ErrInvalidRecord

	// ErrSubjectNotFound marks a subject with no history at all, distinct
	// from a known subject with zero games in a window.
	ErrSubjectNotFound = matchstore.ErrSubjectNotFound

	// ErrUpstreamUnavailable marks a failed or timed-out match-data
	// refresh with no cached snapshot to fall back on.
	ErrUpstreamUnavailable = matchstore.ErrUnavailable

	// ErrConcurrentRecalculation marks a recalculation already in flight
	// for the subject. Callers may retry once it completes.
	ErrConcurrentRecalculation = errors.New("recalculation already in flight")
)
