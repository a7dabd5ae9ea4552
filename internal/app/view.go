package app

import (
	"github.com/leaguewire/gridreport/internal/league"
	"github.com/leaguewire/gridreport/internal/platform"
)

// mapRoster converts a raw weekly roster into the league view's team shape.
// Slots whose label appears in benchPositions count as bench; empty slots are
// dropped.
func mapRoster(team platform.TeamRef, raw *platform.Roster, benchPositions []string) *league.Team {
	bench := make(map[string]bool, len(benchPositions))
	for _, label := range benchPositions {
		bench[label] = true
	}

	out := &league.Team{ID: team.ID.String(), Name: team.Name}
	for _, group := range raw.Groups {
		for _, slot := range group.Slots {
			lp := slot.LeaguePlayer
			if lp == nil || lp.ProPlayer == nil {
				continue
			}
			label := slot.Position.Label
			out.Roster = append(out.Roster, league.Player{
				ID:       lp.ProPlayer.ID.String(),
				Name:     lp.ProPlayer.NameFull,
				Position: lp.ProPlayer.Position,
				Eligible: lp.ProPlayer.PositionEligibility,
				Slot:     label,
				Bench:    bench[label],
				Points:   lp.ViewingActualPoints.Value,
				TeamAbbr: lp.ProPlayer.ProTeam.Abbreviation,
			})
		}
	}
	return out
}

// mapFreeAgents converts a free-agent listing into view players, dropping
// entries that turn out to have an owner. The owner check matters because the
// broad listing endpoint occasionally leaks rostered players.
func mapFreeAgents(listing []platform.LeaguePlayer) []league.Player {
	var out []league.Player
	for _, lp := range listing {
		if lp.ProPlayer == nil || lp.Owner != nil {
			continue
		}
		out = append(out, league.Player{
			ID:       lp.ProPlayer.ID.String(),
			Name:     lp.ProPlayer.NameFull,
			Position: lp.ProPlayer.Position,
			Eligible: lp.ProPlayer.PositionEligibility,
			Points:   lp.ViewingActualPoints.Value,
			TeamAbbr: lp.ProPlayer.ProTeam.Abbreviation,
		})
	}
	return out
}

// applyMatchupTotals copies each team's actual weekly total from the
// scoreboard games onto the view.
func applyMatchupTotals(view *league.View, week int, sb *platform.Scoreboard) {
	for _, game := range sb.Games {
		if team := view.Team(week, game.Home.ID.String()); team != nil {
			team.Points = game.HomeScore.Score.Value
		}
		if team := view.Team(week, game.Away.ID.String()); team != nil {
			team.Points = game.AwayScore.Score.Value
		}
	}
}
