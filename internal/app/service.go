// Package service provides the analytics core that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riftlens/riftlens/internal/adapters/matchstore"
	"github.com/riftlens/riftlens/internal/adapters/snapshotcache"
	"github.com/riftlens/riftlens/internal/domain/inflight"
	"github.com/riftlens/riftlens/internal/domain/model"
	"github.com/riftlens/riftlens/internal/domain/scoring"
	"github.com/riftlens/riftlens/internal/domain/style"
	"github.com/riftlens/riftlens/internal/domain/synergy"
	"github.com/riftlens/riftlens/pkg/logger"
	"github.com/riftlens/riftlens/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultRefreshTimeout     = 10 * time.Second
	defaultLeaderboardWorkers = 8
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScorer replaces the role performance scorer.
func WithScorer(scorer *scoring.Scorer) Option {
	return func(s *Service) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// WithClassifier replaces the playstyle tag classifier.
func WithClassifier(classifier *style.Classifier) Option {
	return func(s *Service) {
		if classifier != nil {
			s.classifier = classifier
		}
	}
}

// WithSynergyCalculator replaces the duo synergy calculator.
func WithSynergyCalculator(calc *synergy.Calculator) Option {
	return func(s *Service) {
		if calc != nil {
			s.synergy = calc
		}
	}
}

// WithRefreshTimeout bounds the upstream refresh step of a recalculation.
func WithRefreshTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshTimeout = d
		}
	}
}

// WithLeaderboardWorkers bounds per-subject fan-out during leaderboard
// aggregation.
func WithLeaderboardWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.leaderboardWorkers = n
		}
	}
}

// WithClock overrides the snapshot timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service implements the analytics operations exposed over HTTP: role
// scores, playstyle tags (read and recalculate), duo synergy, and the
// leaderboard. Scoring paths are stateless per request; the snapshot cache
// is the only shared mutable state and is guarded per subject.
type Service struct {
	store      matchstore.Store
	cache      snapshotcache.Cache
	scorer     *scoring.Scorer
	classifier *style.Classifier
	synergy    *synergy.Calculator
	guard      inflight.Guard

	refreshTimeout     time.Duration
	leaderboardWorkers int
	now                func() time.Time

	logger logger.Logger
}

// New creates the service around the match store and snapshot cache ports.
func New(store matchstore.Store, cache snapshotcache.Cache, opts ...Option) *Service {
	s := &Service{
		store:              store,
		cache:              cache,
		scorer:             scoring.NewScorer(),
		classifier:         style.NewClassifier(),
		synergy:            synergy.NewCalculator(),
		guard:              inflight.NewKeyedGuard(),
		refreshTimeout:     defaultRefreshTimeout,
		leaderboardWorkers: defaultLeaderboardWorkers,
		now:                func() time.Time { return time.Now().UTC() },
		logger:             logger.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RoleScores computes a fresh RoleScoreSnapshot per role the subject has
// played. Roles without any matches are omitted; a subject without a
// registry row yields ErrSubjectNotFound.
func (s *Service) RoleScores(ctx context.Context, subjectID string) ([]model.RoleScoreSnapshot, error) {
	if _, err := s.store.Subject(ctx, subjectID); err != nil {
		return nil, err
	}

	scores := make([]model.RoleScoreSnapshot, 0, len(model.Roles()))
	for _, role := range model.Roles() {
		recs, err := s.store.ListBySubject(ctx, matchstore.Query{
			SubjectID: subjectID,
			Role:      role,
			Limit:     s.scorer.WindowSize(),
		})
		if err != nil {
			return nil, fmt.Errorf("list %s matches for %s: %w", role, subjectID, err)
		}
		if len(recs) == 0 {
			continue
		}
		snapshot, err := s.scorer.ScoreRole(subjectID, role, recs)
		if err != nil {
			return nil, err
		}
		scores = append(scores, snapshot)
	}
	return scores, nil
}

// PlaystyleTags returns the cached snapshot unconditionally, even if its
// version is stale. It never computes. A never-classified subject gets the
// explicit empty state: zero games, nil timestamp.
func (s *Service) PlaystyleTags(ctx context.Context, subjectID string) (model.PlaystyleTagSnapshot, error) {
	snapshot, err := s.cache.Get(ctx, subjectID)
	if errors.Is(err, snapshotcache.ErrNoSnapshot) {
		metrics.RecordSnapshotCacheMiss()
		return model.PlaystyleTagSnapshot{
			SubjectID: subjectID,
			Tags:      []model.PlaystyleTag{},
		}, nil
	}
	if err != nil {
		return model.PlaystyleTagSnapshot{}, err
	}
	metrics.RecordSnapshotCacheHit()
	return snapshot, nil
}

// RecalculatePlaystyleTags recomputes and caches the subject's tags.
//
// With noRefresh the tags are re-derived from match data already in the
// store: cheap and deterministic. Otherwise the subject's match data is
// refreshed upstream first, bounded by the refresh timeout; if the refresh
// fails and a cached snapshot exists, that snapshot is returned intact
// instead of propagating the failure.
//
// Recalculations are serialized per subject: a second concurrent call for
// the same subject is rejected with ErrConcurrentRecalculation.
func (s *Service) RecalculatePlaystyleTags(ctx context.Context, subjectID string, noRefresh bool) (model.PlaystyleTagSnapshot, error) {
	if _, err := s.store.Subject(ctx, subjectID); err != nil {
		return model.PlaystyleTagSnapshot{}, err
	}

	if !s.guard.TryAcquire(ctx, subjectID) {
		metrics.RecordRecalculationConflict()
		return model.PlaystyleTagSnapshot{}, fmt.Errorf("subject %s: %w", subjectID, ErrConcurrentRecalculation)
	}
	defer s.guard.Release(ctx, subjectID)

	if !noRefresh {
		if snapshot, err := s.refreshMatchData(ctx, subjectID); err != nil {
			return snapshot, err
		} else if snapshot.Computed() {
			// Refresh failed but a previous snapshot exists; keep it.
			return snapshot, nil
		}
	}

	recs, err := s.store.ListBySubject(ctx, matchstore.Query{
		SubjectID: subjectID,
		Limit:     s.classifier.WindowSize(),
	})
	if err != nil {
		return model.PlaystyleTagSnapshot{}, fmt.Errorf("list matches for %s: %w", subjectID, err)
	}

	snapshot, err := s.classifier.Classify(subjectID, recs, s.now())
	if err != nil {
		return model.PlaystyleTagSnapshot{}, err
	}
	if err := s.cache.Put(ctx, snapshot); err != nil {
		return model.PlaystyleTagSnapshot{}, fmt.Errorf("cache snapshot for %s: %w", subjectID, err)
	}

	metrics.RecordRecalculation(!noRefresh)
	s.logger.Info(ctx, "recalculated playstyle tags",
		logger.String("subject", subjectID),
		logger.Int("games_used", snapshot.GamesUsed),
		logger.Int("tags", len(snapshot.Tags)),
		logger.String("version", snapshot.Version))
	return snapshot, nil
}

// refreshMatchData runs the bounded upstream refresh. On failure it
// returns the previous cached snapshot when one exists (second return path
// for the caller to short-circuit with), or ErrUpstreamUnavailable when
// there is nothing to fall back on. The zero snapshot means the refresh
// succeeded and classification should proceed.
func (s *Service) refreshMatchData(ctx context.Context, subjectID string) (model.PlaystyleTagSnapshot, error) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.refreshTimeout)
	defer cancel()

	start := time.Now()
	err := s.store.Refresh(refreshCtx, subjectID)
	metrics.RecordRefreshLatency(float64(time.Since(start).Milliseconds()))
	if err == nil {
		return model.PlaystyleTagSnapshot{}, nil
	}

	metrics.RecordRefreshFailure()
	if cached, cacheErr := s.cache.Get(ctx, subjectID); cacheErr == nil {
		s.logger.Warn(ctx, "match refresh failed; serving previous snapshot",
			logger.String("subject", subjectID), logger.Error(err))
		return cached, nil
	}

	return model.PlaystyleTagSnapshot{}, fmt.Errorf("refresh %s: %w", subjectID, err)
}

// DuoSynergy estimates the pair's synergy. A subject with neither match
// history nor a cached snapshot is unknown and yields ErrSubjectNotFound;
// a pair with zero shared matches is still estimated from style alone.
func (s *Service) DuoSynergy(ctx context.Context, subjectA, subjectB string) (model.DuoSynergyResult, error) {
	a, err := s.synergySubject(ctx, subjectA)
	if err != nil {
		return model.DuoSynergyResult{}, err
	}
	b, err := s.synergySubject(ctx, subjectB)
	if err != nil {
		return model.DuoSynergyResult{}, err
	}
	return s.synergy.Compute(a, b), nil
}

// synergySubject loads one side's style profile and full match history.
func (s *Service) synergySubject(ctx context.Context, subjectID string) (synergy.Subject, error) {
	recs, err := s.store.ListBySubject(ctx, matchstore.Query{SubjectID: subjectID})
	if err != nil {
		return synergy.Subject{}, fmt.Errorf("list matches for %s: %w", subjectID, err)
	}
	if len(recs) == 0 {
		if _, cacheErr := s.cache.Get(ctx, subjectID); cacheErr != nil {
			return synergy.Subject{}, fmt.Errorf("subject %s: %w", subjectID, ErrSubjectNotFound)
		}
	}

	profile, _, err := s.classifier.Profile(recs)
	if err != nil {
		return synergy.Subject{}, err
	}
	return synergy.Subject{
		ID:      subjectID,
		Profile: profile,
		Games:   len(recs),
		Matches: recs,
	}, nil
}

// GetStats exposes service counters for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"inflight_recalculations": s.guard.Size(),
		"classifier_version":      s.classifier.Version(),
		"score_window":            s.scorer.WindowSize(),
		"classifier_window":       s.classifier.WindowSize(),
	}
}
