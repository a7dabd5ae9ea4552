package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaguewire/gridreport/internal/bor"
	"github.com/leaguewire/gridreport/internal/config"
	"github.com/leaguewire/gridreport/internal/diag"
	"github.com/leaguewire/gridreport/internal/platform"
)

// Tuesday 2025-09-02 00:00:00 UTC
const seasonStartMS = int64(1756771200000)

func leagueServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	serve := func(path, body string) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, body)
		})
	}

	serve("/api/FetchLeagueScoreboard", fmt.Sprintf(`{
		"schedulePeriod": {"value": 1, "low": {"startEpochMilli": %d}},
		"games": [{
			"home": {"id": 101, "name": "Alpha"},
			"away": {"id": 102, "name": "Beta"},
			"homeScore": {"score": {"value": 30.0}},
			"awayScore": {"score": {"value": 20.0}}
		}]}`, seasonStartMS))

	serve("/api/FetchLeagueStandings", `{
		"league": {"name": "Test League", "size": 2},
		"divisions": [{"id": 1, "name": "East", "teams": [
			{"id": 101, "name": "Alpha"},
			{"id": 102, "name": "Beta"}
		]}]}`)

	mux.HandleFunc("/api/FetchRoster", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("teamId") == "101" {
			fmt.Fprint(w, `{"groups": [{"slots": [
				{"position": {"label": "QB"},
				 "leaguePlayer": {"proPlayer": {"id": 700, "nameFull": "Alpha QB", "position": "QB"},
					"viewingActualPoints": {"value": 10.0}}},
				{"position": {"label": "WR"},
				 "leaguePlayer": {"proPlayer": {"id": 900, "nameFull": "Hot Hand", "position": "WR"},
					"viewingActualPoints": {"value": 15.0}}},
				{"position": {"label": "BN"},
				 "leaguePlayer": {"proPlayer": {"id": 701, "nameFull": "Alpha RB", "position": "RB"},
					"viewingActualPoints": {"value": 5.0}}}
			]}]}`)
			return
		}
		fmt.Fprint(w, `{"groups": [{"slots": [
			{"position": {"label": "QB"},
			 "leaguePlayer": {"proPlayer": {"id": 800, "nameFull": "Beta QB", "position": "QB"},
				"viewingActualPoints": {"value": 20.0}}}
		]}]}`)
	})

	serve("/api/FetchPlayerListing", `{"players": [
		{"proPlayer": {"id": 500, "nameFull": "Street QB", "position": "QB"},
		 "viewingActualPoints": {"value": 30.0}}
	]}`)

	serve("/api/FetchLeagueActivity", fmt.Sprintf(`{"items": [{
		"timeEpochMilli": %d,
		"transaction": {
			"type": "TRANSACTION_ADD",
			"team": {"id": 101, "name": "Alpha"},
			"player": {"proPlayer": {"id": 900, "nameFull": "Hot Hand", "position": "WR"}}
		}}]}`, seasonStartMS+86400000))

	serve("/api/FetchLeagueTransactions", `{"items": []}`)
	serve("/api/FetchTrades", `{"trades": []}`)

	return httptest.NewServer(mux)
}

func TestRunnerEndToEnd(t *testing.T) {
	srv := leagueServer(t)
	defer srv.Close()

	cfg := config.Default()
	cfg.League.LeagueID = "12345"
	cfg.League.Season = 2025
	cfg.League.NumWeeks = 2
	cfg.League.WeekForReport = 1
	cfg.League.BenchPositions = []string{"BN"}
	cfg.Output.Dir = t.TempDir()
	cfg.Output.Format = "json"
	require.NoError(t, cfg.Validate())

	client := platform.NewClient(platform.ClientOptions{BaseURL: srv.URL}, cfg.League.LeagueID, cfg.League.Season)
	counters := &diag.Counters{}
	runner := NewRunner(cfg, client, diag.Nop(), counters, nil, zerolog.Nop())

	data, path, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, data.Week)
	assert.Equal(t, 2025, data.Season)

	require.Len(t, data.Summaries, 1)
	assert.Equal(t, 1, data.Summaries[0].Adds)
	assert.Equal(t, 0, data.Summaries[0].Trades)

	require.NotNil(t, data.Pickups.Best)
	assert.Equal(t, "Hot Hand", data.Pickups.Best.PlayerName)
	assert.Equal(t, "Alpha", data.Pickups.Best.TeamName)
	assert.InDelta(t, 15.0, data.Pickups.Best.Points, 1e-9)

	assert.Nil(t, data.TradeLeader, "no trades in this league")

	require.Len(t, data.Standings, 2)
	assert.Equal(t, "Alpha", data.Standings[0].TeamName)
	assert.InDelta(t, 25.0, data.Medians[1], 1e-9)

	require.NotNil(t, data.BestOfRest)
	require.Len(t, data.BestOfRest.Weeks, 1)
	assert.InDelta(t, 30.0, data.BestOfRest.Weeks[0].Total, 1e-9)
	assert.Equal(t, bor.Record{Wins: 1, Ties: 1}, data.BestOfRest.Record)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"league_id": "12345"`)
}

func TestRunnerFreeAgentCacheHydration(t *testing.T) {
	srv := leagueServer(t)
	defer srv.Close()

	cfg := config.Default()
	cfg.League.LeagueID = "12345"
	cfg.League.Season = 2025
	cfg.League.NumWeeks = 2
	cfg.League.WeekForReport = 1
	cfg.Output.Dir = t.TempDir()

	client := platform.NewClient(platform.ClientOptions{BaseURL: srv.URL}, cfg.League.LeagueID, cfg.League.Season)
	runner := NewRunner(cfg, client, diag.Nop(), nil, nil, zerolog.Nop())

	_, _, err := runner.Run(context.Background())
	require.NoError(t, err)

	// The run wrote week 1's free-agent file; a second run must hydrate it
	// from disk rather than refetching.
	store := bor.NewWeekStore(cfg.Output.Dir, 2025, "fleaflicker", "12345", 1)
	pool, ok, err := store.Load(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, pool, 1)
	assert.Equal(t, "Street QB", pool[0].Name)
}
