// Package model contains domain models passed between layers.
package model

import "time"

// Role identifies the assigned lane of a participant in a match.
type Role string

// Canonical roles, in display order. The order doubles as the tiebreak
// when two roles have the same game count.
const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMiddle  Role = "MIDDLE"
	RoleBottom  Role = "BOTTOM"
	RoleUtility Role = "UTILITY"
)

// roleAliases maps upstream lane spellings onto canonical roles.
var roleAliases = map[string]Role{
	"TOP":     RoleTop,
	"JUNGLE":  RoleJungle,
	"MIDDLE":  RoleMiddle,
	"MID":     RoleMiddle,
	"BOTTOM":  RoleBottom,
	"BOT":     RoleBottom,
	"ADC":     RoleBottom,
	"UTILITY": RoleUtility,
	"SUPPORT": RoleUtility,
}

// Roles returns all canonical roles in display order.
func Roles() []Role {
	return []Role{RoleTop, RoleJungle, RoleMiddle, RoleBottom, RoleUtility}
}

// ParseRole normalizes an upstream lane string to a canonical role.
// Returns false when the lane is unknown.
func ParseRole(lane string) (Role, bool) {
	r, ok := roleAliases[lane]
	return r, ok
}

// RoleIndex returns the position of r in display order, or len(Roles())
// for unknown roles so they sort last.
func RoleIndex(r Role) int {
	for i, known := range Roles() {
		if known == r {
			return i
		}
	}
	return len(Roles())
}

// Timeframe selects the leaderboard time window.
type Timeframe string

// Supported leaderboard timeframes.
const (
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
)

// ParseTimeframe validates a timeframe tag.
func ParseTimeframe(s string) (Timeframe, bool) {
	switch Timeframe(s) {
	case TimeframeDay, TimeframeWeek, TimeframeMonth, TimeframeYear:
		return Timeframe(s), true
	}
	return "", false
}

// Since returns the inclusive lower bound of the window ending at now.
func (t Timeframe) Since(now time.Time) time.Time {
	switch t {
	case TimeframeDay:
		return now.AddDate(0, 0, -1)
	case TimeframeWeek:
		return now.AddDate(0, 0, -7)
	case TimeframeMonth:
		return now.AddDate(0, -1, 0)
	case TimeframeYear:
		return now.AddDate(-1, 0, 0)
	}
	return now
}

// MatchParticipationRecord is one subject's stats in one match. Records are
// owned by the external match store and read-only to this service.
type MatchParticipationRecord struct {
	MatchID           string        `json:"match_id"`
	SubjectID         string        `json:"subject_id"`
	PlayedAt          time.Time     `json:"played_at"`
	Role              Role          `json:"role"`
	Win               bool          `json:"win"`
	Kills             int           `json:"kills"`
	Deaths            int           `json:"deaths"`
	Assists           int           `json:"assists"`
	GoldEarned        int           `json:"gold_earned"`
	DamageToChampions int           `json:"damage_to_champions"`
	VisionScore       int           `json:"vision_score"`
	MinionsKilled     int           `json:"minions_killed"`
	Duration          time.Duration `json:"duration"`
}

// FeatureVector holds per-match rate-normalized metrics for one subject.
// Ephemeral; recomputed on demand and never persisted.
type FeatureVector struct {
	Role         Role
	Win          bool
	KDA          float64
	GoldPerMin   float64
	VisionPerMin float64
	DamagePerMin float64
	CSPerMin     float64
	DurationMin  float64
}

// StyleVector is the continuous five-dimensional tendency profile that
// underlies the discrete playstyle tags. Every dimension is in [0,1].
type StyleVector struct {
	Early    float64 `json:"early_game"`
	Late     float64 `json:"late_game"`
	Vision   float64 `json:"vision_objective"`
	Pressure float64 `json:"map_pressure"`
	Risk     float64 `json:"risk_control"`
}

// Dims returns the vector as a fixed-order slice for distance math.
func (v StyleVector) Dims() [5]float64 {
	return [5]float64{v.Early, v.Late, v.Vision, v.Pressure, v.Risk}
}

// RoleScoreSnapshot is the scored summary of a subject's recent matches in
// one role. Recomputed per request; it has no lifecycle of its own.
type RoleScoreSnapshot struct {
	SubjectID string  `json:"subject_id"`
	Role      Role    `json:"role"`
	Score     float64 `json:"score"`
	WinRate   float64 `json:"win_rate"`
	KDA       float64 `json:"kda"`
	AvgGold   float64 `json:"avg_gold"`
	AvgVision float64 `json:"avg_vision"`
	Games     int     `json:"games"`
}

// PlaystyleTag is one classified tendency. Color is a display hint consumed
// by the dashboard.
type PlaystyleTag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// PlaystyleTagSnapshot is the cached output of the tag classifier for one
// subject. A never-computed subject is represented by a snapshot with zero
// games and a nil timestamp, not by an error.
type PlaystyleTagSnapshot struct {
	SubjectID    string         `json:"subject_id"`
	Tags         []PlaystyleTag `json:"tags"`
	PrimaryRole  Role           `json:"primary_role,omitempty"`
	GamesUsed    int            `json:"games_used"`
	CalculatedAt *time.Time     `json:"calculated_at"`
	Version      string         `json:"version,omitempty"`
}

// Computed reports whether the snapshot holds a real classification.
func (s PlaystyleTagSnapshot) Computed() bool {
	return s.CalculatedAt != nil
}

// DuoSynergyResult is the pairwise synergy estimate for two subjects.
// Computed fresh per request; symmetric in the two subjects.
type DuoSynergyResult struct {
	SubjectA         string      `json:"subject_a"`
	SubjectB         string      `json:"subject_b"`
	SynergyScore     int         `json:"synergy_score"`
	StyleScore       float64     `json:"style_score"`
	PerformanceScore float64     `json:"performance_score"`
	Breakdown        StyleVector `json:"style_breakdown"`
	GamesTogether    int         `json:"games_together"`
	SubjectAGames    int         `json:"subject_a_games"`
	SubjectBGames    int         `json:"subject_b_games"`
}

// LeaderboardEntry is one subject's row in a windowed leaderboard.
type LeaderboardEntry struct {
	SubjectID   string  `json:"subject_id"`
	DisplayName string  `json:"display_name"`
	Level       int     `json:"level"`
	BestRole    Role    `json:"best_role"`
	BestScore   float64 `json:"best_score"`
	GamesPlayed int     `json:"games_played"`
}

// Subject is a registered player as known to the match store.
type Subject struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Level       int       `json:"level"`
	LastUpdated time.Time `json:"last_updated"`
}
