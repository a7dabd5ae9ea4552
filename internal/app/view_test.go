package app

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaguewire/gridreport/internal/league"
	"github.com/leaguewire/gridreport/internal/platform"
)

func TestMapRosterSlotsAndBench(t *testing.T) {
	var raw platform.Roster
	require.NoError(t, json.Unmarshal([]byte(`{
		"groups": [
			{"slots": [
				{"position": {"label": "QB"},
				 "leaguePlayer": {"proPlayer": {"id": 11, "nameFull": "Arm Guy", "position": "QB",
					"proTeam": {"abbreviation": "KC"}},
				 "viewingActualPoints": {"value": 21.5}}},
				{"position": {"label": "WR"}, "leaguePlayer": null}
			]},
			{"slots": [
				{"position": {"label": "BN"},
				 "leaguePlayer": {"proPlayer": {"id": "12", "nameFull": "Bench Guy", "position": "RB",
					"positionEligibility": ["RB", "RB/WR/TE"], "proTeam": {"abbreviation": "SF"}},
				 "viewingActualPoints": {"value": 8.0}}}
			]}
		]}`), &raw))

	team := mapRoster(platform.TeamRef{ID: 101, Name: "Alpha"}, &raw, []string{"BN", "IR"})

	assert.Equal(t, "101", team.ID)
	assert.Equal(t, "Alpha", team.Name)
	require.Len(t, team.Roster, 2, "empty slot dropped")

	qb := team.Roster[0]
	assert.Equal(t, "11", qb.ID)
	assert.Equal(t, "QB", qb.Slot)
	assert.False(t, qb.Bench)
	assert.InDelta(t, 21.5, qb.Points, 1e-9)
	assert.Equal(t, "KC", qb.TeamAbbr)

	rb := team.Roster[1]
	assert.Equal(t, "12", rb.ID, "quoted numeric ID handled")
	assert.True(t, rb.Bench)
	assert.Equal(t, []string{"RB", "RB/WR/TE"}, rb.Eligible)
}

func TestMapFreeAgentsDropsOwned(t *testing.T) {
	listing := []platform.LeaguePlayer{
		{ProPlayer: &platform.ProPlayer{ID: 21, NameFull: "Street Guy", Position: "WR"},
			ViewingActualPoints: platform.FormattedValue{Value: 6.5}},
		{ProPlayer: &platform.ProPlayer{ID: 22, NameFull: "Owned Guy"},
			Owner: &platform.TeamRef{ID: 101}},
		{ProPlayer: nil},
	}

	out := mapFreeAgents(listing)
	require.Len(t, out, 1)
	assert.Equal(t, "21", out[0].ID)
	assert.InDelta(t, 6.5, out[0].Points, 1e-9)
}

func TestApplyMatchupTotals(t *testing.T) {
	view := league.NewView()
	view.AddTeam(2, &league.Team{ID: "101"})
	view.AddTeam(2, &league.Team{ID: "102"})

	sb := &platform.Scoreboard{Games: []platform.Game{{
		Home:      platform.TeamRef{ID: 101},
		Away:      platform.TeamRef{ID: 102},
		HomeScore: platform.GameScore{Score: platform.FormattedValue{Value: 98.2}},
		AwayScore: platform.GameScore{Score: platform.FormattedValue{Value: 77.4}},
	}}}
	applyMatchupTotals(view, 2, sb)

	assert.InDelta(t, 98.2, view.Team(2, "101").Points, 1e-9)
	assert.InDelta(t, 77.4, view.Team(2, "102").Points, 1e-9)
}
