package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riftlens/riftlens/internal/adapters/http/api"
	"github.com/riftlens/riftlens/internal/adapters/matchstore"
	"github.com/riftlens/riftlens/internal/adapters/snapshotcache"
	service "github.com/riftlens/riftlens/internal/app"
	"github.com/riftlens/riftlens/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func newTestServer() (*httptest.Server, *matchstore.MemoryStore) {
	store := matchstore.NewMemoryStore()
	cache := snapshotcache.NewMemoryCache()
	svc := service.New(store, cache,
		service.WithClock(func() time.Time {
			return time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)
		}),
	)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(mux), store
}

func seedStore(store *matchstore.MemoryStore) {
	now := time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)
	store.AddSubject(model.Subject{ID: "subj-1", DisplayName: "Faker Jr", Level: 120})
	store.AddSubject(model.Subject{ID: "subj-2", DisplayName: "Rookie", Level: 40})
	for i := 0; i < 12; i++ {
		store.AddRecords(model.MatchParticipationRecord{
			MatchID:           "m-" + string(rune('a'+i)),
			SubjectID:         "subj-1",
			PlayedAt:          now.AddDate(0, 0, -i),
			Role:              model.RoleMiddle,
			Win:               i%2 == 0,
			Kills:             7,
			Deaths:            3,
			Assists:           6,
			GoldEarned:        11000,
			DamageToChampions: 18000,
			VisionScore:       25,
			MinionsKilled:     180,
			Duration:          28 * time.Minute,
		})
		store.AddRecords(model.MatchParticipationRecord{
			MatchID:           "m-" + string(rune('a'+i)),
			SubjectID:         "subj-2",
			PlayedAt:          now.AddDate(0, 0, -i),
			Role:              model.RoleUtility,
			Win:               i%2 == 0,
			Kills:             2,
			Deaths:            4,
			Assists:           14,
			GoldEarned:        7000,
			DamageToChampions: 6000,
			VisionScore:       55,
			MinionsKilled:     40,
			Duration:          28 * time.Minute,
		})
	}
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
	return resp.StatusCode
}

func TestSubjectRoutes(t *testing.T) {
	convey.Convey("Given a running API server", t, func() {
		srv, store := newTestServer()
		defer srv.Close()
		seedStore(store)

		convey.Convey("When listing subjects", func() {
			var subjects []model.Subject
			status := getJSON(t, srv.URL+"/subjects", &subjects)

			convey.Convey("Then all subjects should be returned", func() {
				convey.So(status, convey.ShouldEqual, http.StatusOK)
				convey.So(subjects, convey.ShouldHaveLength, 2)
			})
		})

		convey.Convey("When requesting role scores", func() {
			var scores []model.RoleScoreSnapshot
			status := getJSON(t, srv.URL+"/subjects/subj-1/scores", &scores)

			convey.Convey("Then the played role should be scored", func() {
				convey.So(status, convey.ShouldEqual, http.StatusOK)
				convey.So(scores, convey.ShouldHaveLength, 1)
				convey.So(scores[0].Role, convey.ShouldEqual, model.RoleMiddle)
				convey.So(scores[0].Games, convey.ShouldEqual, 12)
			})
		})

		convey.Convey("When requesting scores for an unknown subject", func() {
			status := getJSON(t, srv.URL+"/subjects/subj-404/scores", nil)

			convey.Convey("Then it should respond 404", func() {
				convey.So(status, convey.ShouldEqual, http.StatusNotFound)
			})
		})

		convey.Convey("When reading tags before any recalculation", func() {
			var snapshot model.PlaystyleTagSnapshot
			status := getJSON(t, srv.URL+"/subjects/subj-1/tags", &snapshot)

			convey.Convey("Then the empty state should be served", func() {
				convey.So(status, convey.ShouldEqual, http.StatusOK)
				convey.So(snapshot.GamesUsed, convey.ShouldEqual, 0)
				convey.So(snapshot.CalculatedAt, convey.ShouldBeNil)
				convey.So(snapshot.Tags, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When recalculating tags and reading them back", func() {
			var computed model.PlaystyleTagSnapshot
			recalcStatus := postJSON(t, srv.URL+"/subjects/subj-1/tags/recalculate?no_refresh=true", &computed)

			var read model.PlaystyleTagSnapshot
			readStatus := getJSON(t, srv.URL+"/subjects/subj-1/tags", &read)

			convey.Convey("Then the cached snapshot should be served on reads", func() {
				convey.So(recalcStatus, convey.ShouldEqual, http.StatusOK)
				convey.So(readStatus, convey.ShouldEqual, http.StatusOK)
				convey.So(computed.GamesUsed, convey.ShouldEqual, 12)
				convey.So(computed.CalculatedAt, convey.ShouldNotBeNil)
				convey.So(read.GamesUsed, convey.ShouldEqual, computed.GamesUsed)
				convey.So(read.Version, convey.ShouldEqual, computed.Version)
			})
		})

		convey.Convey("When recalculating with GET instead of POST", func() {
			status := getJSON(t, srv.URL+"/subjects/subj-1/tags/recalculate", nil)

			convey.Convey("Then it should respond 404", func() {
				convey.So(status, convey.ShouldEqual, http.StatusNotFound)
			})
		})

		convey.Convey("When hitting an unknown subject sub-route", func() {
			status := getJSON(t, srv.URL+"/subjects/subj-1/unknown", nil)

			convey.Convey("Then it should respond 404", func() {
				convey.So(status, convey.ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSynergyRoute(t *testing.T) {
	convey.Convey("Given a running API server", t, func() {
		srv, store := newTestServer()
		defer srv.Close()
		seedStore(store)

		convey.Convey("When requesting synergy for two known subjects", func() {
			var result model.DuoSynergyResult
			status := getJSON(t, srv.URL+"/synergy?a=subj-1&b=subj-2", &result)

			convey.Convey("Then a bounded symmetric estimate should be returned", func() {
				convey.So(status, convey.ShouldEqual, http.StatusOK)
				convey.So(result.SynergyScore, convey.ShouldBeBetweenOrEqual, 0, 100)
				convey.So(result.GamesTogether, convey.ShouldEqual, 12)

				var flipped model.DuoSynergyResult
				convey.So(getJSON(t, srv.URL+"/synergy?a=subj-2&b=subj-1", &flipped), convey.ShouldEqual, http.StatusOK)
				convey.So(flipped.SynergyScore, convey.ShouldEqual, result.SynergyScore)
			})
		})

		convey.Convey("When a query parameter is missing", func() {
			status := getJSON(t, srv.URL+"/synergy?a=subj-1", nil)

			convey.Convey("Then it should respond 400", func() {
				convey.So(status, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When both parameters name the same subject", func() {
			status := getJSON(t, srv.URL+"/synergy?a=subj-1&b=subj-1", nil)

			convey.Convey("Then it should respond 400", func() {
				convey.So(status, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When one subject is unknown", func() {
			status := getJSON(t, srv.URL+"/synergy?a=subj-1&b=subj-404", nil)

			convey.Convey("Then it should respond 404", func() {
				convey.So(status, convey.ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestLeaderboardRoute(t *testing.T) {
	convey.Convey("Given a running API server", t, func() {
		srv, store := newTestServer()
		defer srv.Close()
		seedStore(store)

		convey.Convey("When requesting the weekly leaderboard", func() {
			var entries []model.LeaderboardEntry
			status := getJSON(t, srv.URL+"/leaderboard?timeframe=week", &entries)

			convey.Convey("Then active subjects should be ranked", func() {
				convey.So(status, convey.ShouldEqual, http.StatusOK)
				convey.So(entries, convey.ShouldHaveLength, 2)
				convey.So(entries[0].BestScore, convey.ShouldBeGreaterThanOrEqualTo, entries[1].BestScore)
			})
		})

		convey.Convey("When omitting the timeframe", func() {
			var entries []model.LeaderboardEntry
			status := getJSON(t, srv.URL+"/leaderboard", &entries)

			convey.Convey("Then it should default to week", func() {
				convey.So(status, convey.ShouldEqual, http.StatusOK)
				convey.So(entries, convey.ShouldHaveLength, 2)
			})
		})

		convey.Convey("When requesting an unknown timeframe", func() {
			status := getJSON(t, srv.URL+"/leaderboard?timeframe=fortnight", nil)

			convey.Convey("Then it should respond 400", func() {
				convey.So(status, convey.ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestOperationalRoutes(t *testing.T) {
	convey.Convey("Given a running API server", t, func() {
		srv, _ := newTestServer()
		defer srv.Close()

		convey.Convey("When hitting /healthz", func() {
			resp, err := http.Get(srv.URL + "/healthz")

			convey.Convey("Then metrics should be served", func() {
				convey.So(err, convey.ShouldBeNil)
				defer resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When hitting /stats", func() {
			var stats map[string]any
			status := getJSON(t, srv.URL+"/stats", &stats)

			convey.Convey("Then service counters should be exposed", func() {
				convey.So(status, convey.ShouldEqual, http.StatusOK)
				convey.So(stats, convey.ShouldContainKey, "classifier_version")
			})
		})

		convey.Convey("When a response is written", func() {
			resp, err := http.Get(srv.URL + "/stats")

			convey.Convey("Then it should carry a request id", func() {
				convey.So(err, convey.ShouldBeNil)
				defer resp.Body.Close()
				convey.So(resp.Header.Get("X-Request-ID"), convey.ShouldNotBeEmpty)
			})
		})
	})
}
