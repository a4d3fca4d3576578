package matchstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riftlens/riftlens/internal/domain/model"
)

// MemoryOption applies a configuration option to the MemoryStore.
type MemoryOption func(*MemoryStore)

// WithRefreshFunc wires the refresh hook invoked by Refresh. Without one,
// Refresh succeeds as a no-op (the in-memory store is its own upstream).
func WithRefreshFunc(fn func(ctx context.Context, subjectID string) error) MemoryOption {
	return func(s *MemoryStore) {
		s.refreshFn = fn
	}
}

// MemoryStore is an in-memory Store used by tests and local development.
type MemoryStore struct {
	mu        sync.RWMutex
	subjects  map[string]model.Subject
	records   map[string][]model.MatchParticipationRecord
	refreshFn func(ctx context.Context, subjectID string) error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		subjects: make(map[string]model.Subject),
		records:  make(map[string][]model.MatchParticipationRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddSubject registers a subject.
func (s *MemoryStore) AddSubject(subj model.Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjects[subj.ID] = subj
}

// AddRecords appends participation records for their subjects.
func (s *MemoryStore) AddRecords(recs ...model.MatchParticipationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		s.records[rec.SubjectID] = append(s.records[rec.SubjectID], rec)
	}
}

// ListBySubject returns matching records ordered most recent first, ties
// broken by match id.
func (s *MemoryStore) ListBySubject(_ context.Context, q Query) ([]model.MatchParticipationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.MatchParticipationRecord
	for _, rec := range s.records[q.SubjectID] {
		if q.Role != "" && rec.Role != q.Role {
			continue
		}
		if !q.Since.IsZero() && rec.PlayedAt.Before(q.Since) {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].PlayedAt.Equal(out[j].PlayedAt) {
			return out[i].PlayedAt.After(out[j].PlayedAt)
		}
		return out[i].MatchID > out[j].MatchID
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Subject returns the registry row for a subject.
func (s *MemoryStore) Subject(_ context.Context, subjectID string) (model.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subj, ok := s.subjects[subjectID]
	if !ok {
		return model.Subject{}, fmt.Errorf("subject %s: %w", subjectID, ErrSubjectNotFound)
	}
	return subj, nil
}

// Subjects lists all registered subjects ordered by id.
func (s *MemoryStore) Subjects(_ context.Context) ([]model.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Subject, 0, len(s.subjects))
	for _, subj := range s.subjects {
		out = append(out, subj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Refresh invokes the configured refresh hook, if any.
func (s *MemoryStore) Refresh(ctx context.Context, subjectID string) error {
	if s.refreshFn == nil {
		return nil
	}
	if err := s.refreshFn(ctx, subjectID); err != nil {
		return fmt.Errorf("refresh %s: %v: %w", subjectID, err, ErrUnavailable)
	}
	return nil
}
