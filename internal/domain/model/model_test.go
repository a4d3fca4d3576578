package model_test

import (
	"testing"
	"time"

	"github.com/riftlens/riftlens/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseRole(t *testing.T) {
	convey.Convey("Given upstream lane spellings", t, func() {
		convey.Convey("When parsing canonical and aliased lanes", func() {
			cases := map[string]model.Role{
				"TOP":     model.RoleTop,
				"JUNGLE":  model.RoleJungle,
				"MID":     model.RoleMiddle,
				"MIDDLE":  model.RoleMiddle,
				"BOT":     model.RoleBottom,
				"ADC":     model.RoleBottom,
				"SUPPORT": model.RoleUtility,
				"UTILITY": model.RoleUtility,
			}

			convey.Convey("Then each should normalize to its canonical role", func() {
				for lane, want := range cases {
					role, ok := model.ParseRole(lane)
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(role, convey.ShouldEqual, want)
				}
			})
		})

		convey.Convey("When parsing an unknown lane", func() {
			_, ok := model.ParseRole("ARAM")

			convey.Convey("Then parsing should fail", func() {
				convey.So(ok, convey.ShouldBeFalse)
			})
		})
	})
}

func TestRoleIndex(t *testing.T) {
	convey.Convey("Given the canonical role order", t, func() {
		convey.Convey("Then indexes should follow display order", func() {
			convey.So(model.RoleIndex(model.RoleTop), convey.ShouldEqual, 0)
			convey.So(model.RoleIndex(model.RoleUtility), convey.ShouldEqual, 4)
			convey.So(model.RoleIndex(model.Role("NOPE")), convey.ShouldEqual, 5)
		})
	})
}

func TestTimeframe(t *testing.T) {
	convey.Convey("Given the supported timeframes", t, func() {
		now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)

		convey.Convey("When parsing valid tags", func() {
			for _, tag := range []string{"day", "week", "month", "year"} {
				tf, ok := model.ParseTimeframe(tag)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(string(tf), convey.ShouldEqual, tag)
			}
		})

		convey.Convey("When parsing an invalid tag", func() {
			_, ok := model.ParseTimeframe("fortnight")
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When computing window lower bounds", func() {
			convey.So(model.TimeframeDay.Since(now), convey.ShouldEqual, now.AddDate(0, 0, -1))
			convey.So(model.TimeframeWeek.Since(now), convey.ShouldEqual, now.AddDate(0, 0, -7))
			convey.So(model.TimeframeMonth.Since(now), convey.ShouldEqual, now.AddDate(0, -1, 0))
			convey.So(model.TimeframeYear.Since(now), convey.ShouldEqual, now.AddDate(-1, 0, 0))
		})
	})
}

func TestPlaystyleTagSnapshotComputed(t *testing.T) {
	convey.Convey("Given tag snapshots", t, func() {
		convey.Convey("Then only a stamped snapshot counts as computed", func() {
			now := time.Now()
			convey.So(model.PlaystyleTagSnapshot{}.Computed(), convey.ShouldBeFalse)
			convey.So(model.PlaystyleTagSnapshot{CalculatedAt: &now}.Computed(), convey.ShouldBeTrue)
		})
	})
}
