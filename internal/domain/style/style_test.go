package style_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/riftlens/riftlens/internal/domain/model"
	"github.com/riftlens/riftlens/internal/domain/style"
	"github.com/smartystreets/goconvey/convey"
)

// aggressiveMatch is a high-kill, low-death mid-lane stomp.
func aggressiveMatch(id string, daysAgo int, role model.Role) model.MatchParticipationRecord {
	return model.MatchParticipationRecord{
		MatchID:           id,
		SubjectID:         "subj-1",
		PlayedAt:          time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
		Role:              role,
		Win:               true,
		Kills:             12,
		Deaths:            2,
		Assists:           8,
		GoldEarned:        12000,
		DamageToChampions: 21000,
		VisionScore:       20,
		MinionsKilled:     255,
		Duration:          30 * time.Minute,
	}
}

func aggressiveWindow(n int, role model.Role) []model.MatchParticipationRecord {
	recs := make([]model.MatchParticipationRecord, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, aggressiveMatch(idFor(i), i, role))
	}
	return recs
}

func idFor(i int) string {
	return "m-" + string(rune('a'+i))
}

func TestVectorForMatch(t *testing.T) {
	convey.Convey("Given a single match record", t, func() {
		rec := aggressiveMatch("m-1", 0, model.RoleMiddle)

		convey.Convey("When reducing it to a style vector", func() {
			v, err := style.VectorForMatch(rec)

			convey.Convey("Then every dimension should be within [0,1]", func() {
				convey.So(err, convey.ShouldBeNil)
				for _, d := range v.Dims() {
					convey.So(d, convey.ShouldBeBetweenOrEqual, 0, 1)
				}
			})

			convey.Convey("Then an aggressive stomp should read as early-heavy and low-risk", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(v.Early, convey.ShouldBeGreaterThan, 0.8)
				convey.So(v.Risk, convey.ShouldBeLessThan, 0.2)
			})
		})

		convey.Convey("When the record is malformed", func() {
			rec.Duration = 0
			_, err := style.VectorForMatch(rec)

			convey.Convey("Then reduction should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestClassify(t *testing.T) {
	convey.Convey("Given a classifier with default configuration", t, func() {
		classifier := style.NewClassifier()
		now := time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)

		convey.Convey("When classifying a 12-game aggressive window", func() {
			recs := aggressiveWindow(12, model.RoleMiddle)
			snapshot, err := classifier.Classify("subj-1", recs, now)

			convey.Convey("Then the snapshot should carry the window metadata", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(snapshot.SubjectID, convey.ShouldEqual, "subj-1")
				convey.So(snapshot.GamesUsed, convey.ShouldEqual, 12)
				convey.So(snapshot.PrimaryRole, convey.ShouldEqual, model.RoleMiddle)
				convey.So(snapshot.Version, convey.ShouldEqual, style.Version)
				convey.So(snapshot.CalculatedAt, convey.ShouldNotBeNil)
				convey.So(*snapshot.CalculatedAt, convey.ShouldEqual, now)
			})

			convey.Convey("Then early aggression should be tagged and gambling should not", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(tagIDs(snapshot.Tags), convey.ShouldContain, "EARLY_PRESSURE_EXTREME")
				convey.So(tagIDs(snapshot.Tags), convey.ShouldNotContain, "COIN_FLIPPER")
			})

			convey.Convey("Then recomputing the same window should yield identical tags", func() {
				again, err2 := classifier.Classify("subj-1", recs, now)
				convey.So(err2, convey.ShouldBeNil)
				convey.So(reflect.DeepEqual(snapshot.Tags, again.Tags), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the window holds fewer games than any tag minimum", func() {
			snapshot, err := classifier.Classify("subj-1", aggressiveWindow(9, model.RoleMiddle), now)

			convey.Convey("Then no tags should be awarded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(snapshot.Tags, convey.ShouldBeEmpty)
				convey.So(snapshot.GamesUsed, convey.ShouldEqual, 9)
			})
		})

		convey.Convey("When the window is empty", func() {
			snapshot, err := classifier.Classify("subj-1", nil, now)

			convey.Convey("Then the snapshot should be empty but stamped", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(snapshot.Tags, convey.ShouldBeEmpty)
				convey.So(snapshot.GamesUsed, convey.ShouldEqual, 0)
				convey.So(snapshot.CalculatedAt, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When roles are mixed", func() {
			recs := aggressiveWindow(5, model.RoleMiddle)
			recs = append(recs, aggressiveWindow(4, model.RoleTop)[0:4]...)
			snapshot, err := classifier.Classify("subj-1", recs, now)

			convey.Convey("Then the most frequent role wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(snapshot.PrimaryRole, convey.ShouldEqual, model.RoleMiddle)
			})
		})

		convey.Convey("When role counts tie", func() {
			recs := aggressiveWindow(3, model.RoleJungle)
			recs = append(recs, aggressiveWindow(3, model.RoleTop)...)
			snapshot, err := classifier.Classify("subj-1", recs, now)

			convey.Convey("Then display order breaks the tie", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(snapshot.PrimaryRole, convey.ShouldEqual, model.RoleTop)
			})
		})
	})

	convey.Convey("Given a classifier with a custom window size", t, func() {
		classifier := style.NewClassifier(style.WithWindowSize(10))
		now := time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)

		convey.Convey("When more matches than the window are provided", func() {
			snapshot, err := classifier.Classify("subj-1", aggressiveWindow(25, model.RoleMiddle), now)

			convey.Convey("Then only the newest window should count", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(snapshot.GamesUsed, convey.ShouldEqual, 10)
			})
		})
	})

	convey.Convey("Given a classifier with a custom version", t, func() {
		classifier := style.NewClassifier(style.WithVersion("v3-test"))
		now := time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)

		convey.Convey("When classifying, the snapshot should carry that version", func() {
			snapshot, err := classifier.Classify("subj-1", aggressiveWindow(12, model.RoleMiddle), now)
			convey.So(err, convey.ShouldBeNil)
			convey.So(snapshot.Version, convey.ShouldEqual, "v3-test")
		})
	})
}

func TestProfile(t *testing.T) {
	convey.Convey("Given a classifier and a uniform window", t, func() {
		classifier := style.NewClassifier()
		recs := aggressiveWindow(6, model.RoleMiddle)

		convey.Convey("When profiling identical matches", func() {
			profile, games, err := classifier.Profile(recs)
			single, errSingle := style.VectorForMatch(recs[0])

			convey.Convey("Then the average should equal any single vector", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(errSingle, convey.ShouldBeNil)
				convey.So(games, convey.ShouldEqual, 6)
				convey.So(profile.Early, convey.ShouldAlmostEqual, single.Early)
				convey.So(profile.Late, convey.ShouldAlmostEqual, single.Late)
				convey.So(profile.Vision, convey.ShouldAlmostEqual, single.Vision)
				convey.So(profile.Pressure, convey.ShouldAlmostEqual, single.Pressure)
				convey.So(profile.Risk, convey.ShouldAlmostEqual, single.Risk)
			})
		})

		convey.Convey("When profiling an empty window", func() {
			profile, games, err := classifier.Profile(nil)

			convey.Convey("Then it should report zero games and a zero vector", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(games, convey.ShouldEqual, 0)
				convey.So(profile, convey.ShouldResemble, model.StyleVector{})
			})
		})
	})
}

func tagIDs(tags []model.PlaystyleTag) []string {
	ids := make([]string, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}
	return ids
}
