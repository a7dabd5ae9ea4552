package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full report-run configuration, loaded from YAML with flag
// overrides applied by the CLI layer.
type Config struct {
	League  LeagueConfig  `yaml:"league"`
	API     APIConfig     `yaml:"api"`
	Output  OutputConfig  `yaml:"output"`
	Cache   CacheConfig   `yaml:"cache"`
	Archive ArchiveConfig `yaml:"archive"`
}

// LeagueConfig identifies the league and season being reported on.
type LeagueConfig struct {
	Platform      string `yaml:"platform"` // e.g. "fleaflicker"
	LeagueID      string `yaml:"league_id"`
	Season        int    `yaml:"season"`
	StartWeek     int    `yaml:"start_week"`      // first scoring week, normally 1
	NumWeeks      int    `yaml:"num_weeks"`       // regular season length
	WeekForReport int    `yaml:"week_for_report"` // target report week R
	// StartEpochMS overrides the scoreboard-derived season start when set.
	StartEpochMS int64 `yaml:"start_epoch_ms"`
	// BenchPositions are roster slots counted as bench for award eligibility.
	BenchPositions []string `yaml:"bench_positions"`
	// BestOfRest toggles the free-agent comparison section.
	BestOfRest bool `yaml:"best_of_rest"`
}

// APIConfig tunes the platform API client.
type APIConfig struct {
	BaseURL    string  `yaml:"base_url"`
	RPS        float64 `yaml:"rps"`         // requests per second
	Burst      int     `yaml:"burst"`       // burst capacity
	TimeoutSec int     `yaml:"timeout_sec"` // per-request timeout
	Retries    int     `yaml:"retries"`
	TTLSecs    int     `yaml:"ttl_secs"` // response cache TTL
}

// OutputConfig controls where artifacts and cached week data land.
type OutputConfig struct {
	Dir    string `yaml:"dir"`    // root for report artifacts
	Format string `yaml:"format"` // md or json
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	RedisAddr string `yaml:"redis_addr"` // empty means in-memory
}

// ArchiveConfig enables the optional Postgres report archive.
type ArchiveConfig struct {
	DSN string `yaml:"dsn"` // empty disables archiving
}

// ConfigError means the run cannot proceed: the season schedule or league
// identity is missing or invalid. Always fatal.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

// Default returns the built-in configuration before file and flag overrides.
func Default() Config {
	return Config{
		League: LeagueConfig{
			Platform:       "fleaflicker",
			StartWeek:      1,
			NumWeeks:       14,
			BenchPositions: []string{"BN", "IR"},
			BestOfRest:     true,
		},
		API: APIConfig{
			BaseURL:    "https://www.fleaflicker.com",
			RPS:        4,
			Burst:      8,
			TimeoutSec: 20,
			Retries:    3,
			TTLSecs:    300,
		},
		Output: OutputConfig{
			Dir:    "output",
			Format: "md",
		},
	}
}

// Load reads the YAML config at path over the defaults. A missing path is not
// an error; defaults plus flags may be enough.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields a report run cannot proceed without.
func (c *Config) Validate() error {
	if c.League.LeagueID == "" {
		return &ConfigError{Field: "league.league_id", Reason: "is required"}
	}
	if c.League.Season <= 0 {
		return &ConfigError{Field: "league.season", Reason: "must be a positive year"}
	}
	if c.League.NumWeeks <= 0 {
		return &ConfigError{Field: "league.num_weeks", Reason: "must be positive"}
	}
	if c.League.WeekForReport <= 0 || c.League.WeekForReport > c.League.NumWeeks {
		return &ConfigError{Field: "league.week_for_report", Reason: "must be within the season"}
	}
	if c.Output.Format != "md" && c.Output.Format != "json" {
		return &ConfigError{Field: "output.format", Reason: "must be md or json"}
	}
	return nil
}
