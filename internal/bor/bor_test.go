package bor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaguewire/gridreport/internal/league"
)

func fa(id, name, pos string, eligible []string, pts float64) league.Player {
	return league.Player{ID: id, Name: name, Position: pos, Eligible: eligible, Points: pts}
}

func TestOptimalLineupFillsBestEligible(t *testing.T) {
	pool := []league.Player{
		fa("qb1", "QB One", "QB", nil, 18.0),
		fa("qb2", "QB Two", "QB", nil, 25.0),
		fa("rb1", "RB One", "RB", nil, 12.0),
		fa("wr1", "WR One", "WR", nil, 16.0),
	}
	lineup, total := OptimalLineup(pool, SlotTemplate{"QB", "RB", "WR"})

	require.Len(t, lineup, 3)
	assert.InDelta(t, 25.0+12.0+16.0, total, 1e-9)
	byID := map[string]bool{}
	for _, p := range lineup {
		byID[p.ID] = true
	}
	assert.True(t, byID["qb2"], "higher-scoring QB picked")
	assert.False(t, byID["qb1"])
}

func TestOptimalLineupScarceSlotFirst(t *testing.T) {
	// One TE who is also flex-eligible: the flex spot must not take the
	// league's only TE.
	pool := []league.Player{
		fa("te1", "Lone TE", "TE", []string{"TE", "RB/WR/TE"}, 14.0),
		fa("wr1", "Flex WR", "WR", []string{"WR", "RB/WR/TE"}, 10.0),
	}
	lineup, total := OptimalLineup(pool, SlotTemplate{"RB/WR/TE", "TE"})

	require.Len(t, lineup, 2)
	assert.InDelta(t, 24.0, total, 1e-9)
	slots := map[string]string{}
	for _, p := range lineup {
		slots[p.Slot] = p.ID
	}
	assert.Equal(t, "te1", slots["TE"])
	assert.Equal(t, "wr1", slots["RB/WR/TE"])
}

func TestOptimalLineupLeavesSlotEmptyWhenPoolExhausted(t *testing.T) {
	pool := []league.Player{fa("rb1", "RB One", "RB", nil, 9.0)}
	lineup, total := OptimalLineup(pool, SlotTemplate{"RB", "QB"})
	assert.Len(t, lineup, 1)
	assert.InDelta(t, 9.0, total, 1e-9)
}

func weekView() *league.View {
	view := league.NewView()
	view.AddTeam(3, &league.Team{ID: "t1", Name: "Alpha", Points: 90.0, Roster: []league.Player{
		{ID: "s1", Position: "QB", Slot: "QB", Points: 20.0},
		{ID: "s2", Position: "RB", Slot: "RB", Points: 15.0},
	}})
	view.AddTeam(3, &league.Team{ID: "t2", Name: "Beta", Points: 30.0, Roster: []league.Player{
		{ID: "s3", Position: "QB", Slot: "QB", Points: 10.0},
		{ID: "s4", Position: "RB", Slot: "RB", Points: 8.0},
	}})
	view.FreeAgentsByWeek[3] = map[string]league.Player{
		"qb9": fa("qb9", "Street QB", "QB", nil, 22.0),
		"rb9": fa("rb9", "Street RB", "RB", nil, 18.0),
	}
	return view
}

func TestCompareWeekRecord(t *testing.T) {
	view := weekView()
	pool := []league.Player{view.FreeAgentsByWeek[3]["qb9"], view.FreeAgentsByWeek[3]["rb9"]}

	got := CompareWeek(view, 3, pool)
	assert.Equal(t, 3, got.Week)
	assert.InDelta(t, 40.0, got.Total, 1e-9)
	// Beats Beta (30), loses to Alpha (90).
	assert.Equal(t, Record{Wins: 1, Losses: 1}, got.Record)
}

func TestCompareWeekTie(t *testing.T) {
	view := weekView()
	view.Team(3, "t2").Points = 40.0
	pool := []league.Player{view.FreeAgentsByWeek[3]["qb9"], view.FreeAgentsByWeek[3]["rb9"]}

	got := CompareWeek(view, 3, pool)
	assert.Equal(t, Record{Wins: 0, Losses: 1, Ties: 1}, got.Record)
}

func TestSeasonAccumulates(t *testing.T) {
	view := weekView()
	view.AddTeam(4, &league.Team{ID: "t1", Name: "Alpha", Points: 10.0, Roster: []league.Player{
		{ID: "s1", Position: "QB", Slot: "QB", Points: 5.0},
	}})
	view.FreeAgentsByWeek[4] = map[string]league.Player{
		"qb9": fa("qb9", "Street QB", "QB", nil, 12.0),
	}

	got := Season(view, 3, 4)
	require.Len(t, got.Weeks, 2)
	assert.Equal(t, Record{Wins: 2, Losses: 1}, got.Record)
}

func TestWeekStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewWeekStore(dir, 2025, "fleaflicker", "12345", 4)

	_, ok, err := store.Load(4)
	require.NoError(t, err)
	assert.False(t, ok)

	pool := []league.Player{fa("p2", "Zed", "WR", nil, 7.0), fa("p1", "Abe", "RB", nil, 3.0)}
	require.NoError(t, store.Save(4, pool))

	loaded, ok, err := store.Load(4)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, loaded, 2)
	assert.Equal(t, "p1", loaded[0].ID, "stored sorted by ID")

	path := filepath.Join(dir, "data", "2025", "fleaflicker", "12345", "week_4", "free_agents.json")
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestWeekStoreRefusesPriorWeeks(t *testing.T) {
	store := NewWeekStore(t.TempDir(), 2025, "fleaflicker", "12345", 4)
	err := store.Save(3, []league.Player{fa("p1", "Abe", "RB", nil, 3.0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
}

func TestWeekStoreRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewWeekStore(dir, 2025, "fleaflicker", "12345", 4)
	path := filepath.Join(dir, "data", "2025", "fleaflicker", "12345", "week_4", "free_agents.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, _, err := store.Load(4)
	assert.Error(t, err)
}
