// Package feature converts raw match-participation records into
// rate-normalized per-match feature vectors.
package feature

import (
	"fmt"

	"github.com/riftlens/riftlens/internal/domain/model"
)

// Extract derives the per-match feature vector for a single record.
// It is a pure function: no side effects, no clock, no I/O.
//
// Rates are raw totals divided by match duration in minutes. KDA uses
// (kills+assists)/max(deaths,1). Aborted games are filtered upstream; a
// non-positive duration here means the record is malformed and is rejected
// with ErrInvalidRecord.
func Extract(rec model.MatchParticipationRecord) (model.FeatureVector, error) {
	if rec.Duration <= 0 {
		return model.FeatureVector{}, fmt.Errorf("match %s subject %s: non-positive duration %v: %w",
			rec.MatchID, rec.SubjectID, rec.Duration, ErrInvalidRecord)
	}

	minutes := rec.Duration.Minutes()
	deaths := rec.Deaths
	if deaths < 1 {
		deaths = 1
	}

	return model.FeatureVector{
		Role:         rec.Role,
		Win:          rec.Win,
		KDA:          float64(rec.Kills+rec.Assists) / float64(deaths),
		GoldPerMin:   float64(rec.GoldEarned) / minutes,
		VisionPerMin: float64(rec.VisionScore) / minutes,
		DamagePerMin: float64(rec.DamageToChampions) / minutes,
		CSPerMin:     float64(rec.MinionsKilled) / minutes,
		DurationMin:  minutes,
	}, nil
}

// ExtractAll extracts feature vectors for every record, failing on the
// first malformed one. Order is preserved.
func ExtractAll(recs []model.MatchParticipationRecord) ([]model.FeatureVector, error) {
	out := make([]model.FeatureVector, 0, len(recs))
	for _, rec := range recs {
		fv, err := Extract(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, fv)
	}
	return out, nil
}
