package matchstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq" // postgres driver
	"github.com/riftlens/riftlens/internal/domain/model"
)

// PostgresOption applies a configuration option to the PostgresStore.
type PostgresOption func(*PostgresStore)

// WithRefresher wires the upstream collector used by Refresh. Without one,
// Refresh reports ErrUnavailable.
func WithRefresher(r Refresher) PostgresOption {
	return func(s *PostgresStore) {
		s.refresher = r
	}
}

// PostgresStore reads raw match data from the shared postgres match store.
type PostgresStore struct {
	db        *sql.DB
	refresher Refresher
}

// OpenPostgres connects to the match store and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string, opts ...PostgresOption) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open match store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping match store: %w", err)
	}

	s := &PostgresStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close match store: %w", err)
	}
	return nil
}

// ListBySubject returns matching records ordered most recent first, ties
// broken by match id for a stable order.
func (s *PostgresStore) ListBySubject(ctx context.Context, q Query) ([]model.MatchParticipationRecord, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT match_id, subject_id, played_at, role, win,
		kills, deaths, assists, gold_earned, damage_to_champions,
		vision_score, minions_killed, duration_seconds
		FROM match_participations WHERE subject_id = $1`)

	args := []any{q.SubjectID}
	if q.Role != "" {
		args = append(args, string(q.Role))
		fmt.Fprintf(&sb, " AND role = $%d", len(args))
	}
	if !q.Since.IsZero() {
		args = append(args, q.Since)
		fmt.Fprintf(&sb, " AND played_at >= $%d", len(args))
	}
	sb.WriteString(" ORDER BY played_at DESC, match_id DESC")
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query participations for %s: %w", q.SubjectID, err)
	}
	defer rows.Close()

	var recs []model.MatchParticipationRecord
	for rows.Next() {
		var rec model.MatchParticipationRecord
		var role string
		var durationSec int64
		if err := rows.Scan(&rec.MatchID, &rec.SubjectID, &rec.PlayedAt, &role, &rec.Win,
			&rec.Kills, &rec.Deaths, &rec.Assists, &rec.GoldEarned, &rec.DamageToChampions,
			&rec.VisionScore, &rec.MinionsKilled, &durationSec); err != nil {
			return nil, fmt.Errorf("scan participation: %w", err)
		}
		if canonical, ok := model.ParseRole(role); ok {
			rec.Role = canonical
		} else {
			rec.Role = model.Role(role)
		}
		rec.Duration = time.Duration(durationSec) * time.Second
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participations: %w", err)
	}
	return recs, nil
}

// Subject returns the registry row for a subject.
func (s *PostgresStore) Subject(ctx context.Context, subjectID string) (model.Subject, error) {
	const query = `SELECT id, display_name, level, last_updated FROM subjects WHERE id = $1`

	var subj model.Subject
	err := s.db.QueryRowContext(ctx, query, subjectID).
		Scan(&subj.ID, &subj.DisplayName, &subj.Level, &subj.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subject{}, fmt.Errorf("subject %s: %w", subjectID, ErrSubjectNotFound)
	}
	if err != nil {
		return model.Subject{}, fmt.Errorf("query subject %s: %w", subjectID, err)
	}
	return subj, nil
}

// Subjects lists all registered subjects, ordered by id for determinism.
func (s *PostgresStore) Subjects(ctx context.Context) ([]model.Subject, error) {
	const query = `SELECT id, display_name, level, last_updated FROM subjects ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query subjects: %w", err)
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var subj model.Subject
		if err := rows.Scan(&subj.ID, &subj.DisplayName, &subj.Level, &subj.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, subj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subjects: %w", err)
	}
	return subjects, nil
}

// Refresh delegates to the configured upstream collector. Failures map to
// ErrUnavailable so callers can fall back to cached state.
func (s *PostgresStore) Refresh(ctx context.Context, subjectID string) error {
	if s.refresher == nil {
		return fmt.Errorf("no upstream collector configured: %w", ErrUnavailable)
	}
	if err := s.refresher.Refresh(ctx, subjectID); err != nil {
		return fmt.Errorf("refresh %s: %v: %w", subjectID, err, ErrUnavailable)
	}
	return nil
}
