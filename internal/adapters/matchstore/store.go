// Package matchstore defines the port to the external match store and its
// implementations.
//
// The store owns raw participation records and the subject registry; this
// service only reads them, plus triggers refreshes that pull new records
// from the upstream game-data provider into the store.
package matchstore

import (
	"context"
	"time"

	"github.com/riftlens/riftlens/internal/domain/model"
)

// Query filters a subject's participation records. Zero-valued fields are
// not applied.
type Query struct {
	SubjectID string
	Role      model.Role
	Since     time.Time
	Limit     int
}

// Store provides read access to raw match data plus the upstream refresh
// hook.
type Store interface {
	// ListBySubject returns matching records ordered most recent first.
	// An empty result is valid; it does not imply the subject is unknown.
	ListBySubject(ctx context.Context, q Query) ([]model.MatchParticipationRecord, error)

	// Subject returns the registry row for a subject.
	// Returns ErrSubjectNotFound for unregistered subjects.
	Subject(ctx context.Context, subjectID string) (model.Subject, error)

	// Subjects lists all registered subjects.
	Subjects(ctx context.Context) ([]model.Subject, error)

	// Refresh pulls new records for a subject from the upstream provider
	// into the store, honoring ctx for cancellation and deadlines.
	// Returns ErrUnavailable when the upstream cannot be reached.
	Refresh(ctx context.Context, subjectID string) error
}

// Refresher is the upstream collector hook invoked by Refresh.
type Refresher interface {
	Refresh(ctx context.Context, subjectID string) error
}
