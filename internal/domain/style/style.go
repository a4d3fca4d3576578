// Package style classifies a subject's recurring playstyle from a
// role-agnostic window of recent matches.
//
// The classifier first reduces each match to a five-dimensional style
// vector (early, late, vision, pressure, risk), averages the vectors over
// the window, and then matches the averaged profile against a fixed tag
// catalog. Output is deterministic for a fixed (window, version) pair.
package style

import (
	"math"
	"time"

	"github.com/riftlens/riftlens/internal/domain/feature"
	"github.com/riftlens/riftlens/internal/domain/model"
)

// Version is the current classifier version. It is stamped on every
// snapshot write; a cached snapshot with a different version is stale.
const Version = "v2"

// Default classification configuration constants.
const (
	DefaultWindowSize = 30

	// Proxy normalization ceilings. A match at or above the ceiling
	// saturates the corresponding dimension at 1.
	takedownCeiling   = 15.0 // kills + 0.7*assists in one match
	csPerMinCeiling   = 9.0
	damagePerMin1     = 800.0
	goldPerMinCeiling = 500.0
	visionPerMin1     = 1.5
	assistCeiling     = 12.0
	deathCeiling      = 8.0
	kdaCeiling        = 6.0
)

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithVersion overrides the stamped classifier version.
func WithVersion(v string) Option {
	return func(c *Classifier) {
		if v != "" {
			c.version = v
		}
	}
}

// WithWindowSize bounds the number of most recent matches classified.
func WithWindowSize(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.windowSize = n
		}
	}
}

// WithCatalog replaces the tag catalog. Intended for tests and tuning.
func WithCatalog(catalog []TagDefinition) Option {
	return func(c *Classifier) {
		if len(catalog) > 0 {
			c.catalog = catalog
		}
	}
}

// Classifier derives playstyle tag snapshots. Safe for concurrent use;
// all state is read-only after construction.
type Classifier struct {
	version    string
	windowSize int
	catalog    []TagDefinition
}

// NewClassifier creates a classifier with configuration options.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		version:    Version,
		windowSize: DefaultWindowSize,
		catalog:    Catalog(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Version returns the stamped classifier version.
func (c *Classifier) Version() string { return c.version }

// WindowSize returns the configured window bound.
func (c *Classifier) WindowSize() int { return c.windowSize }

// VectorForMatch reduces one match to its style vector. Every dimension
// is clamped to [0,1].
func VectorForMatch(rec model.MatchParticipationRecord) (model.StyleVector, error) {
	fv, err := feature.Extract(rec)
	if err != nil {
		return model.StyleVector{}, err
	}

	takedowns := float64(rec.Kills) + 0.7*float64(rec.Assists)

	// Early-lane strength: takedown output plus farm tempo.
	early := 0.6*unit(takedowns/takedownCeiling) + 0.4*unit(fv.CSPerMin/csPerMinCeiling)

	// Late-game scaling: sustained damage and gold income.
	late := 0.5*unit(fv.DamagePerMin/damagePerMin1) + 0.5*unit(fv.GoldPerMin/goldPerMinCeiling)

	// Vision/objective control: vision score rate.
	vision := unit(fv.VisionPerMin / visionPerMin1)

	// Map pressure: cross-map participation (assists) plus damage tempo.
	pressure := 0.6*unit(float64(rec.Assists)/assistCeiling) + 0.4*unit(fv.DamagePerMin/damagePerMin1)

	// Risk: death rate discounted by KDA efficiency. A player who dies a
	// lot but trades well is less risky than one who just dies.
	risk := unit(float64(rec.Deaths)/deathCeiling) * (1 - unit(fv.KDA/kdaCeiling))

	return model.StyleVector{
		Early:    early,
		Late:     late,
		Vision:   vision,
		Pressure: pressure,
		Risk:     risk,
	}, nil
}

// Profile averages per-match style vectors over the newest windowSize
// records (input ordered most recent first) and reports the games counted.
func (c *Classifier) Profile(recs []model.MatchParticipationRecord) (model.StyleVector, int, error) {
	if c.windowSize > 0 && len(recs) > c.windowSize {
		recs = recs[:c.windowSize]
	}
	if len(recs) == 0 {
		return model.StyleVector{}, 0, nil
	}

	var sum model.StyleVector
	for _, rec := range recs {
		v, err := VectorForMatch(rec)
		if err != nil {
			return model.StyleVector{}, 0, err
		}
		sum.Early += v.Early
		sum.Late += v.Late
		sum.Vision += v.Vision
		sum.Pressure += v.Pressure
		sum.Risk += v.Risk
	}

	n := float64(len(recs))
	return model.StyleVector{
		Early:    sum.Early / n,
		Late:     sum.Late / n,
		Vision:   sum.Vision / n,
		Pressure: sum.Pressure / n,
		Risk:     sum.Risk / n,
	}, len(recs), nil
}

// Classify builds the full tag snapshot for a subject from its match
// window (ordered most recent first). now becomes the snapshot timestamp.
func (c *Classifier) Classify(subjectID string, recs []model.MatchParticipationRecord, now time.Time) (model.PlaystyleTagSnapshot, error) {
	profile, games, err := c.Profile(recs)
	if err != nil {
		return model.PlaystyleTagSnapshot{}, err
	}

	snapshot := model.PlaystyleTagSnapshot{
		SubjectID:    subjectID,
		Tags:         c.evaluate(profile, games),
		PrimaryRole:  primaryRole(recs, c.windowSize),
		GamesUsed:    games,
		CalculatedAt: &now,
		Version:      c.version,
	}
	return snapshot, nil
}

// evaluate matches the averaged profile against the catalog in catalog
// order, which keeps the tag set ordering deterministic.
func (c *Classifier) evaluate(profile model.StyleVector, games int) []model.PlaystyleTag {
	tags := make([]model.PlaystyleTag, 0, 4)
	if games == 0 {
		return tags
	}
	for _, def := range c.catalog {
		if games < def.MinGames {
			continue
		}
		if def.RiskMax > 0 && profile.Risk > def.RiskMax {
			continue
		}
		if def.score(profile) >= def.Threshold {
			tags = append(tags, model.PlaystyleTag{ID: def.ID, Label: def.Label, Color: def.Color})
		}
	}
	return tags
}

// primaryRole returns the most frequent role in the window, ties broken by
// display order.
func primaryRole(recs []model.MatchParticipationRecord, windowSize int) model.Role {
	if windowSize > 0 && len(recs) > windowSize {
		recs = recs[:windowSize]
	}
	counts := make(map[model.Role]int)
	for _, rec := range recs {
		counts[rec.Role]++
	}

	var best model.Role
	bestCount := 0
	for _, role := range model.Roles() {
		if n := counts[role]; n > bestCount {
			best, bestCount = role, n
		}
	}
	return best
}

// unit clamps v to [0,1]. NaN maps to 0.
func unit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(1, v)
}
