// Package scoring computes 0-100 role performance scores from bounded
// match windows.
package scoring

import (
	"math"
	"sort"

	"github.com/riftlens/riftlens/internal/domain/feature"
	"github.com/riftlens/riftlens/internal/domain/model"
)

// Metric names used as keys in benchmark and weight configuration maps.
const (
	MetricWinRate = "win_rate"
	MetricKDA     = "kda"
	MetricGold    = "gold"
	MetricVision  = "vision"
	MetricDamage  = "damage"
	MetricCS      = "cs"
)

// Default scoring configuration constants.
const (
	DefaultWindowSize = 20
	maxScoreValue     = 100
)

// defaultBenchmarks returns the per-metric "good performance" ceilings a
// sub-score of 100 corresponds to. Values are per-game averages.
func defaultBenchmarks() map[string]float64 {
	return map[string]float64{
		MetricKDA:    5.0,
		MetricGold:   15000,
		MetricVision: 30,
		MetricDamage: 30000,
		MetricCS:     250,
	}
}

// defaultWeights returns the blend weights for the final score. Win rate is
// weighted highest. Weights are expected to sum to 1.
func defaultWeights() map[string]float64 {
	return map[string]float64{
		MetricWinRate: 0.40,
		MetricKDA:     0.25,
		MetricGold:    0.10,
		MetricVision:  0.10,
		MetricDamage:  0.10,
		MetricCS:      0.05,
	}
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithBenchmarks overrides benchmark ceilings from configuration. Unknown
// keys are ignored; non-positive ceilings keep the default.
func WithBenchmarks(benchmarks map[string]float64) Option {
	return func(s *Scorer) {
		for metric, ceiling := range benchmarks {
			if _, known := s.benchmarks[metric]; known && ceiling > 0 {
				s.benchmarks[metric] = ceiling
			}
		}
	}
}

// WithWeights overrides blend weights from configuration. Unknown keys are
// ignored; negative weights keep the default.
func WithWeights(weights map[string]float64) Option {
	return func(s *Scorer) {
		for metric, weight := range weights {
			if _, known := s.weights[metric]; known && weight >= 0 {
				s.weights[metric] = weight
			}
		}
	}
}

// WithWindowSize bounds the number of most recent matches scored per role.
func WithWindowSize(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.windowSize = n
		}
	}
}

// Scorer maps a role-scoped match window to a RoleScoreSnapshot.
// Safe for concurrent use; all state is read-only after construction.
type Scorer struct {
	benchmarks map[string]float64
	weights    map[string]float64
	windowSize int
}

// NewScorer creates a scorer with configuration options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		benchmarks: defaultBenchmarks(),
		weights:    defaultWeights(),
		windowSize: DefaultWindowSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WindowSize returns the configured per-role window bound.
func (s *Scorer) WindowSize() int { return s.windowSize }

// Window selects the scoring window from records ordered most recent first:
// the newest n records, reordered oldest-first with ties broken by match id.
func Window(recs []model.MatchParticipationRecord, n int) []model.MatchParticipationRecord {
	if n > 0 && len(recs) > n {
		recs = recs[:n]
	}
	window := make([]model.MatchParticipationRecord, len(recs))
	copy(window, recs)
	sort.Slice(window, func(i, j int) bool {
		if !window[i].PlayedAt.Equal(window[j].PlayedAt) {
			return window[i].PlayedAt.Before(window[j].PlayedAt)
		}
		return window[i].MatchID < window[j].MatchID
	})
	return window
}

// ScoreRole aggregates a subject's role window into a snapshot. An empty
// window is a valid, reportable state and yields a zero snapshot rather
// than an error. Malformed records surface feature.ErrInvalidRecord.
func (s *Scorer) ScoreRole(subjectID string, role model.Role, recs []model.MatchParticipationRecord) (model.RoleScoreSnapshot, error) {
	window := Window(recs, s.windowSize)
	if len(window) == 0 {
		return model.RoleScoreSnapshot{SubjectID: subjectID, Role: role}, nil
	}

	vectors, err := feature.ExtractAll(window)
	if err != nil {
		return model.RoleScoreSnapshot{}, err
	}

	games := float64(len(vectors))
	var wins, kda, gold, vision, damage, cs float64
	for _, fv := range vectors {
		if fv.Win {
			wins++
		}
		kda += fv.KDA
		// Per-game totals reconstructed from the rate metrics.
		gold += fv.GoldPerMin * fv.DurationMin
		vision += fv.VisionPerMin * fv.DurationMin
		damage += fv.DamagePerMin * fv.DurationMin
		cs += fv.CSPerMin * fv.DurationMin
	}

	winRate := wins / games * 100
	avgKDA := kda / games
	avgGold := gold / games
	avgVision := vision / games
	avgDamage := damage / games
	avgCS := cs / games

	subScores := map[string]float64{
		MetricWinRate: math.Min(maxScoreValue, winRate),
		MetricKDA:     s.subScore(MetricKDA, avgKDA),
		MetricGold:    s.subScore(MetricGold, avgGold),
		MetricVision:  s.subScore(MetricVision, avgVision),
		MetricDamage:  s.subScore(MetricDamage, avgDamage),
		MetricCS:      s.subScore(MetricCS, avgCS),
	}

	var score float64
	for metric, sub := range subScores {
		score += sub * s.weights[metric]
	}
	score = math.Max(0, math.Min(maxScoreValue, score))

	return model.RoleScoreSnapshot{
		SubjectID: subjectID,
		Role:      role,
		Score:     round1(score),
		WinRate:   round1(winRate),
		KDA:       round2(avgKDA),
		AvgGold:   round1(avgGold),
		AvgVision: round1(avgVision),
		Games:     len(vectors),
	}, nil
}

// subScore maps a metric average onto 0-100 against its ceiling.
func (s *Scorer) subScore(metric string, value float64) float64 {
	ceiling := s.benchmarks[metric]
	if ceiling <= 0 {
		return 0
	}
	return math.Min(maxScoreValue, value/ceiling*maxScoreValue)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
