// Package bor builds the "best of the rest" comparison: an optimal lineup
// assembled from each week's free agents, scored against every real team.
package bor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/leaguewire/gridreport/internal/league"
)

// WeekStore persists one free-agent pool file per week under
// <root>/data/<season>/<platform>/<league>/week_<n>/free_agents.json.
// Files for weeks before the report week are read-only history: once written
// they are never refreshed, so past reports stay reproducible.
type WeekStore struct {
	root       string
	season     int
	platform   string
	leagueID   string
	reportWeek int
}

// NewWeekStore returns a store rooted at the output directory.
func NewWeekStore(outputDir string, season int, platform, leagueID string, reportWeek int) *WeekStore {
	return &WeekStore{
		root:       outputDir,
		season:     season,
		platform:   platform,
		leagueID:   leagueID,
		reportWeek: reportWeek,
	}
}

func (s *WeekStore) weekPath(week int) string {
	return filepath.Join(s.root, "data",
		fmt.Sprintf("%d", s.season), s.platform, s.leagueID,
		fmt.Sprintf("week_%d", week), "free_agents.json")
}

// Load reads a week's cached free-agent pool. The second return is false when
// no file exists for the week.
func (s *WeekStore) Load(week int) ([]league.Player, bool, error) {
	data, err := os.ReadFile(s.weekPath(week))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read free agent cache for week %d: %w", week, err)
	}
	var players []league.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, false, fmt.Errorf("failed to parse free agent cache for week %d: %w", week, err)
	}
	return players, true, nil
}

// Save writes a week's free-agent pool. Only the report week may be written;
// earlier weeks already on disk are never rewritten, and writing an earlier
// week with no file present is refused so history stays fetch-once.
func (s *WeekStore) Save(week int, players []league.Player) error {
	if week != s.reportWeek {
		return fmt.Errorf("free agent cache for week %d is read-only (report week is %d)", week, s.reportWeek)
	}
	sorted := make([]league.Player, len(players))
	copy(sorted, players)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	path := s.weekPath(week)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	data, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode free agents: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write free agent cache: %w", err)
	}
	return nil
}
