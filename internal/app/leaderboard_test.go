package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/riftlens/riftlens/internal/adapters/matchstore"
	"github.com/riftlens/riftlens/internal/adapters/snapshotcache"
	service "github.com/riftlens/riftlens/internal/app"
	"github.com/riftlens/riftlens/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestLeaderboard(t *testing.T) {
	convey.Convey("Given a service with subjects of varying activity", t, func() {
		ctx := context.Background()
		store := matchstore.NewMemoryStore()
		svc := service.New(store, snapshotcache.NewMemoryCache(),
			service.WithClock(fixedClock),
			service.WithLeaderboardWorkers(2),
		)

		store.AddSubject(model.Subject{ID: "subj-active", DisplayName: "Grinder", Level: 80})
		store.AddSubject(model.Subject{ID: "subj-idle", DisplayName: "Retired", Level: 200})
		store.AddRecords(
			match("act-1", "subj-active", model.RoleJungle, 1, true),
			match("act-2", "subj-active", model.RoleJungle, 2, true),
			// Idle subject last played a month and a half ago.
			match("idle-1", "subj-idle", model.RoleTop, 45, true),
		)

		convey.Convey("When building the weekly leaderboard", func() {
			entries, err := svc.Leaderboard(ctx, model.TimeframeWeek)

			convey.Convey("Then only recently active subjects should appear", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 1)
				convey.So(entries[0].SubjectID, convey.ShouldEqual, "subj-active")
				convey.So(entries[0].BestRole, convey.ShouldEqual, model.RoleJungle)
				convey.So(entries[0].GamesPlayed, convey.ShouldEqual, 2)
				convey.So(entries[0].DisplayName, convey.ShouldEqual, "Grinder")
			})
		})

		convey.Convey("When building the yearly leaderboard", func() {
			entries, err := svc.Leaderboard(ctx, model.TimeframeYear)

			convey.Convey("Then the idle subject should be included again", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 2)
			})
		})

		convey.Convey("When building the daily leaderboard", func() {
			entries, err := svc.Leaderboard(ctx, model.TimeframeDay)

			convey.Convey("Then only same-day matches should count", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 1)
				convey.So(entries[0].GamesPlayed, convey.ShouldEqual, 1)
			})
		})
	})

	convey.Convey("Given subjects with identical match histories", t, func() {
		ctx := context.Background()
		store := matchstore.NewMemoryStore()
		svc := service.New(store, snapshotcache.NewMemoryCache(), service.WithClock(fixedClock))

		for _, id := range []string{"subj-b", "subj-a", "subj-c"} {
			store.AddSubject(model.Subject{ID: id, DisplayName: id})
			store.AddRecords(
				match(id+"-1", id, model.RoleMiddle, 1, true),
				match(id+"-2", id, model.RoleMiddle, 2, false),
			)
		}

		convey.Convey("When building the leaderboard", func() {
			entries, err := svc.Leaderboard(ctx, model.TimeframeWeek)

			convey.Convey("Then tied scores should be ordered by subject id", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 3)
				convey.So(entries[0].SubjectID, convey.ShouldEqual, "subj-a")
				convey.So(entries[1].SubjectID, convey.ShouldEqual, "subj-b")
				convey.So(entries[2].SubjectID, convey.ShouldEqual, "subj-c")
				convey.So(entries[0].BestScore, convey.ShouldEqual, entries[2].BestScore)
			})
		})
	})

	convey.Convey("Given a subject who played multiple roles", t, func() {
		ctx := context.Background()
		store := matchstore.NewMemoryStore()
		svc := service.New(store, snapshotcache.NewMemoryCache(), service.WithClock(fixedClock))

		store.AddSubject(model.Subject{ID: "subj-flex", DisplayName: "Flex"})
		// Jungle games are all wins, middle games all losses.
		store.AddRecords(
			match("flex-1", "subj-flex", model.RoleJungle, 1, true),
			match("flex-2", "subj-flex", model.RoleJungle, 2, true),
			match("flex-3", "subj-flex", model.RoleMiddle, 3, false),
			match("flex-4", "subj-flex", model.RoleMiddle, 4, false),
		)

		convey.Convey("When building the leaderboard", func() {
			entries, err := svc.Leaderboard(ctx, model.TimeframeWeek)

			convey.Convey("Then the stronger role should be reported as best", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 1)
				convey.So(entries[0].BestRole, convey.ShouldEqual, model.RoleJungle)
				convey.So(entries[0].GamesPlayed, convey.ShouldEqual, 4)
			})
		})
	})

	convey.Convey("Given an empty subject registry", t, func() {
		svc := service.New(matchstore.NewMemoryStore(), snapshotcache.NewMemoryCache())

		convey.Convey("When building the leaderboard", func() {
			entries, err := svc.Leaderboard(context.Background(), model.TimeframeMonth)

			convey.Convey("Then it should be empty without error", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldBeEmpty)
			})
		})
	})
}

func TestSubjects(t *testing.T) {
	convey.Convey("Given a service with registered subjects", t, func() {
		store := matchstore.NewMemoryStore()
		svc := service.New(store, snapshotcache.NewMemoryCache())
		store.AddSubject(model.Subject{ID: "subj-2"})
		store.AddSubject(model.Subject{ID: "subj-1"})

		convey.Convey("When listing subjects", func() {
			subjects, err := svc.Subjects(context.Background())

			convey.Convey("Then all subjects should be returned ordered by id", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(subjects, convey.ShouldHaveLength, 2)
				convey.So(subjects[0].ID, convey.ShouldEqual, "subj-1")
			})
		})
	})
}

// Leaderboard timeframe boundary: a match exactly at the window edge counts.
func TestLeaderboardWindowBoundary(t *testing.T) {
	convey.Convey("Given a match played exactly one week ago", t, func() {
		store := matchstore.NewMemoryStore()
		svc := service.New(store, snapshotcache.NewMemoryCache(), service.WithClock(fixedClock))

		store.AddSubject(model.Subject{ID: "subj-1"})
		store.AddRecords(model.MatchParticipationRecord{
			MatchID:   "edge-1",
			SubjectID: "subj-1",
			PlayedAt:  fixedClock().AddDate(0, 0, -7),
			Role:      model.RoleTop,
			Win:       true,
			Kills:     3, Deaths: 2, Assists: 4,
			Duration: 25 * time.Minute,
		})

		convey.Convey("When building the weekly leaderboard", func() {
			entries, err := svc.Leaderboard(context.Background(), model.TimeframeWeek)

			convey.Convey("Then the edge match should be inside the window", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 1)
			})
		})
	})
}
