// Package synergy estimates how well two subjects play together by
// blending style compatibility with joint match outcomes.
package synergy

import (
	"math"

	"github.com/riftlens/riftlens/internal/domain/model"
)

// Default blend configuration.
//
// The 0.6/0.4 split favors style compatibility because shared-match samples
// are usually tiny; the shrinkage constant of 6 means a duo needs about six
// shared games before their observed win rate outweighs the neutral prior.
const (
	DefaultStyleWeight       = 0.6
	DefaultPerformanceWeight = 0.4
	DefaultShrinkage         = 6.0
	neutralPerformance       = 0.5
	maxSynergyScore          = 100
)

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithBlendWeights sets the style/performance blend. Non-positive pairs
// keep the defaults; weights are normalized to sum to 1.
func WithBlendWeights(style, performance float64) Option {
	return func(c *Calculator) {
		if style > 0 && performance > 0 {
			total := style + performance
			c.styleWeight = style / total
			c.performanceWeight = performance / total
		}
	}
}

// WithShrinkage sets the pseudo-count pulling small shared-match samples
// toward the neutral performance prior.
func WithShrinkage(k float64) Option {
	return func(c *Calculator) {
		if k >= 0 {
			c.shrinkage = k
		}
	}
}

// Subject bundles one side's inputs: its averaged style profile, the size
// of the sample behind it, and the match history used for shared-match
// detection.
type Subject struct {
	ID      string
	Profile model.StyleVector
	Games   int
	Matches []model.MatchParticipationRecord
}

// Calculator combines two subjects into a DuoSynergyResult. Safe for
// concurrent use; all state is read-only after construction.
type Calculator struct {
	styleWeight       float64
	performanceWeight float64
	shrinkage         float64
}

// NewCalculator creates a calculator with configuration options.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		styleWeight:       DefaultStyleWeight,
		performanceWeight: DefaultPerformanceWeight,
		shrinkage:         DefaultShrinkage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute returns the synergy result for the pair. Every step is symmetric
// in a and b, so Compute(a,b) and Compute(b,a) agree on all scores and on
// the breakdown.
func (c *Calculator) Compute(a, b Subject) model.DuoSynergyResult {
	styleScore := compatibility(a.Profile, b.Profile)
	perfScore, together := c.jointPerformance(a.Matches, b.Matches)

	blended := c.styleWeight*styleScore + c.performanceWeight*perfScore
	score := int(math.Round(blended * maxSynergyScore))
	if score < 0 {
		score = 0
	}
	if score > maxSynergyScore {
		score = maxSynergyScore
	}

	return model.DuoSynergyResult{
		SubjectA:         a.ID,
		SubjectB:         b.ID,
		SynergyScore:     score,
		StyleScore:       styleScore,
		PerformanceScore: perfScore,
		Breakdown:        meanVector(a.Profile, b.Profile),
		GamesTogether:    together,
		SubjectAGames:    a.Games,
		SubjectBGames:    b.Games,
	}
}

// compatibility is one minus the normalized Euclidean distance between the
// two style vectors, clamped to [0,1]. Identical profiles score 1.
func compatibility(p, q model.StyleVector) float64 {
	pd, qd := p.Dims(), q.Dims()
	var sum float64
	for i := range pd {
		d := pd[i] - qd[i]
		sum += d * d
	}
	score := 1 - math.Sqrt(sum)/math.Sqrt(float64(len(pd)))
	return math.Max(0, math.Min(1, score))
}

// jointPerformance derives the shared-match sub-score: the duo's combined
// win rate shrunk toward the neutral prior. Zero shared matches yield the
// neutral value exactly, never an error.
func (c *Calculator) jointPerformance(a, b []model.MatchParticipationRecord) (float64, int) {
	byMatch := make(map[string]model.MatchParticipationRecord, len(a))
	for _, rec := range a {
		byMatch[rec.MatchID] = rec
	}

	var shared, wins float64
	for _, rec := range b {
		other, ok := byMatch[rec.MatchID]
		if !ok {
			continue
		}
		shared++
		// Both winning implies the same team; a split outcome means they
		// were opponents and counts against the duo.
		if rec.Win && other.Win {
			wins++
		}
	}

	if shared == 0 && c.shrinkage == 0 {
		return neutralPerformance, 0
	}
	perf := (wins + c.shrinkage*neutralPerformance) / (shared + c.shrinkage)
	return perf, int(shared)
}

// meanVector is the per-dimension average of the two profiles: the duo's
// combined tendency, not a delta.
func meanVector(p, q model.StyleVector) model.StyleVector {
	return model.StyleVector{
		Early:    (p.Early + q.Early) / 2,
		Late:     (p.Late + q.Late) / 2,
		Vision:   (p.Vision + q.Vision) / 2,
		Pressure: (p.Pressure + q.Pressure) / 2,
		Risk:     (p.Risk + q.Risk) / 2,
	}
}
