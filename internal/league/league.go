// Package league holds the materialized weekly view of a league: rosters,
// lineup slots, and free-agent pools, as mapped from platform records.
package league

// Player is one rostered or free-agent player in one week's view.
type Player struct {
	ID       string
	Name     string
	Position string
	// Eligible lists the lineup slot labels this player can fill,
	// including flex slots.
	Eligible []string
	// Slot is the lineup slot the player occupied that week; empty for
	// free agents.
	Slot   string
	Bench  bool
	Points float64
	// TeamAbbr is the player's pro team, for display.
	TeamAbbr string
}

// EligibleFor reports whether the player can fill the given slot label.
func (p Player) EligibleFor(slot string) bool {
	if p.Position == slot {
		return true
	}
	for _, e := range p.Eligible {
		if e == slot {
			return true
		}
	}
	return false
}

// Team is one fantasy team's weekly state.
type Team struct {
	ID     string
	Name   string
	Roster []Player
	// Points is the team's actual matchup total for the week.
	Points float64
}

// View is the full weekly picture the award selector and best-of-the-rest
// comparison read from. It is built once per run and not mutated afterwards.
type View struct {
	// TeamsByWeek maps week -> team ID -> team state.
	TeamsByWeek map[int]map[string]*Team
	// FreeAgentsByWeek maps week -> player ID -> free agent.
	FreeAgentsByWeek map[int]map[string]Player
}

// NewView returns an empty View.
func NewView() *View {
	return &View{
		TeamsByWeek:      make(map[int]map[string]*Team),
		FreeAgentsByWeek: make(map[int]map[string]Player),
	}
}

// AddTeam registers a team's weekly state.
func (v *View) AddTeam(week int, team *Team) {
	m := v.TeamsByWeek[week]
	if m == nil {
		m = make(map[string]*Team)
		v.TeamsByWeek[week] = m
	}
	m[team.ID] = team
}

// Team returns a team's state for a week, nil when unknown.
func (v *View) Team(week int, teamID string) *Team {
	return v.TeamsByWeek[week][teamID]
}

// OnRoster returns the player as rostered by a team in a week.
func (v *View) OnRoster(week int, teamID, playerID string) (Player, bool) {
	team := v.Team(week, teamID)
	if team == nil {
		return Player{}, false
	}
	for _, p := range team.Roster {
		if p.ID == playerID {
			return p, true
		}
	}
	return Player{}, false
}

// RosteredIDs returns the set of player IDs on any roster in a week.
func (v *View) RosteredIDs(week int) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, team := range v.TeamsByWeek[week] {
		for _, p := range team.Roster {
			ids[p.ID] = struct{}{}
		}
	}
	return ids
}

// PlayerInWeek finds a player on any roster in a week.
func (v *View) PlayerInWeek(week int, playerID string) (Player, bool) {
	for _, team := range v.TeamsByWeek[week] {
		for _, p := range team.Roster {
			if p.ID == playerID {
				return p, true
			}
		}
	}
	return Player{}, false
}
