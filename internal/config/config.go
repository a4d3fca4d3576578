// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields flat with koanf tags so env and YAML keys line up.
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"time"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PostgresDSN points at the match participation store. Empty selects
	// the in-memory store, which is what tests and local dev use.
	PostgresDSN string `koanf:"postgres_dsn"`

	// Redis connection for the playstyle snapshot cache. Empty RedisAddr
	// selects the in-memory cache.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// ScoreWindowSize bounds how many recent matches feed a role score.
	ScoreWindowSize int `koanf:"score_window_size"`

	// StyleWindowSize bounds how many recent matches feed tag classification.
	StyleWindowSize int `koanf:"style_window_size"`

	// ScoreWeights overrides per-metric weights: win_rate, kda, gold,
	// vision, damage, cs. Missing keys keep their defaults.
	ScoreWeights map[string]float64 `koanf:"score_weights"`

	// ScoreBenchmarks overrides per-metric ceilings: kda, gold, vision,
	// damage, cs.
	ScoreBenchmarks map[string]float64 `koanf:"score_benchmarks"`

	// SynergyStyleWeight and SynergyPerformanceWeight blend the two
	// synergy components. They are normalized at construction.
	SynergyStyleWeight       float64 `koanf:"synergy_style_weight"`
	SynergyPerformanceWeight float64 `koanf:"synergy_performance_weight"`

	// SynergyShrinkage dampens joint win rate for small shared samples.
	SynergyShrinkage float64 `koanf:"synergy_shrinkage"`

	// RefreshTimeout bounds one upstream match-data refresh.
	RefreshTimeout time.Duration `koanf:"refresh_timeout"`

	// LeaderboardWorkers bounds per-subject fan-out during aggregation.
	LeaderboardWorkers int `koanf:"leaderboard_workers"`

	// SnapshotTTL expires cached playstyle snapshots in Redis. Zero means
	// snapshots never expire and are only replaced by recalculation.
	SnapshotTTL time.Duration `koanf:"snapshot_ttl"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:                 "info",
		Addr:                     ":9080",
		ScoreWindowSize:          20,
		StyleWindowSize:          30,
		SynergyStyleWeight:       0.6,
		SynergyPerformanceWeight: 0.4,
		SynergyShrinkage:         6,
		RefreshTimeout:           10 * time.Second,
		LeaderboardWorkers:       8,
	}
	return c
}
