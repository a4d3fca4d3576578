package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riftlens/riftlens/internal/adapters/matchstore"
	"github.com/riftlens/riftlens/internal/domain/model"
	"github.com/riftlens/riftlens/pkg/metrics"
)

// Leaderboard ranks every subject with at least one match inside the
// timeframe by their best-role score over window-restricted matches.
// Ordering is score descending, ties broken by subject id ascending.
//
// Per-subject computation is independent and fanned out over a bounded
// worker group; only the result slice is shared, behind a mutex.
func (s *Service) Leaderboard(ctx context.Context, timeframe model.Timeframe) ([]model.LeaderboardEntry, error) {
	start := time.Now()
	since := timeframe.Since(s.now())

	subjects, err := s.store.Subjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	var (
		mu       sync.Mutex
		entries  []model.LeaderboardEntry
		firstErr error
	)
	sem := make(chan struct{}, s.leaderboardWorkers)
	var wg sync.WaitGroup

	for _, subj := range subjects {
		wg.Add(1)
		sem <- struct{}{}
		go func(subj model.Subject) {
			defer wg.Done()
			defer func() { <-sem }()

			entry, ok, err := s.leaderboardEntry(ctx, subj, since)
			mu.Lock()
			defer mu.Unlock()
			if err != nil && firstErr == nil {
				firstErr = err
				return
			}
			if ok {
				entries = append(entries, entry)
			}
		}(subj)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].BestScore != entries[j].BestScore {
			return entries[i].BestScore > entries[j].BestScore
		}
		return entries[i].SubjectID < entries[j].SubjectID
	})

	metrics.RecordLeaderboardBuild(float64(time.Since(start).Milliseconds()))
	return entries, nil
}

// leaderboardEntry computes one subject's row. ok is false when the
// subject has no matches inside the window.
func (s *Service) leaderboardEntry(ctx context.Context, subj model.Subject, since time.Time) (model.LeaderboardEntry, bool, error) {
	recs, err := s.store.ListBySubject(ctx, matchstore.Query{SubjectID: subj.ID, Since: since})
	if err != nil {
		return model.LeaderboardEntry{}, false, fmt.Errorf("list matches for %s: %w", subj.ID, err)
	}
	if len(recs) == 0 {
		return model.LeaderboardEntry{}, false, nil
	}

	byRole := make(map[model.Role][]model.MatchParticipationRecord)
	for _, rec := range recs {
		byRole[rec.Role] = append(byRole[rec.Role], rec)
	}

	var best model.RoleScoreSnapshot
	haveBest := false
	// Roles iterated in display order so equal scores resolve the same
	// way on every rebuild.
	for _, role := range model.Roles() {
		roleRecs, ok := byRole[role]
		if !ok {
			continue
		}
		snapshot, err := s.scorer.ScoreRole(subj.ID, role, roleRecs)
		if err != nil {
			return model.LeaderboardEntry{}, false, err
		}
		if !haveBest || snapshot.Score > best.Score {
			best = snapshot
			haveBest = true
		}
	}
	if !haveBest {
		return model.LeaderboardEntry{}, false, nil
	}

	return model.LeaderboardEntry{
		SubjectID:   subj.ID,
		DisplayName: subj.DisplayName,
		Level:       subj.Level,
		BestRole:    best.Role,
		BestScore:   best.Score,
		GamesPlayed: len(recs),
	}, true, nil
}

// Subjects lists the registered subjects for the directory endpoint.
func (s *Service) Subjects(ctx context.Context) ([]model.Subject, error) {
	return s.store.Subjects(ctx)
}
