// Package aggregate buckets attributed roster moves by week and team for
// award candidate generation.
package aggregate

import (
	"sort"

	"github.com/leaguewire/gridreport/internal/attribute"
	"github.com/leaguewire/gridreport/internal/diag"
	"github.com/leaguewire/gridreport/internal/event"
	"github.com/leaguewire/gridreport/internal/scoring"
)

// Key addresses one team's activity in one week.
type Key struct {
	Week   int
	TeamID string
}

// Counts are a team's transaction tallies for one week.
type Counts struct {
	Adds   int
	Claims int
	Drops  int
	Trades int
}

// Candidate is an add/claim/drop player with its attributed-week scoring,
// feeding pickup and drop awards.
type Candidate struct {
	TeamID   string
	PlayerID string
	Week     int
	Points   float64
	// Scored is false when no scoring row existed; points default to zero,
	// matching how a never-started pickup scores.
	Scored bool
}

// Summary is the per-week per-team aggregation of a season's moves.
type Summary struct {
	counts  map[Key]Counts
	pickups map[Key][]Candidate
	drops   map[Key][]Candidate
}

// Build aggregates attributed events. A player add/claim is excluded from
// pickup-award eligibility when the same player+team appears in a trade
// attributed to the same week: the trade takes precedence.
func Build(events []attribute.Attributed, scores scoring.Lookup) *Summary {
	s := &Summary{
		counts:  make(map[Key]Counts),
		pickups: make(map[Key][]Candidate),
		drops:   make(map[Key][]Candidate),
	}

	// trade-received players per (week, team), for the exclusion rule
	tradedIn := make(map[Key]map[string]struct{})
	for _, ev := range events {
		if ev.Type != event.Trade {
			continue
		}
		k := Key{Week: ev.Week, TeamID: ev.TeamID}
		set := tradedIn[k]
		if set == nil {
			set = make(map[string]struct{})
			tradedIn[k] = set
		}
		for _, pid := range ev.PlayersIn {
			set[pid] = struct{}{}
		}
	}

	for _, ev := range events {
		k := Key{Week: ev.Week, TeamID: ev.TeamID}
		c := s.counts[k]
		switch ev.Type {
		case event.Add, event.Claim:
			if ev.Type == event.Add {
				c.Adds++
			} else {
				c.Claims++
			}
			s.counts[k] = c
			for _, pid := range ev.PlayersIn {
				if _, traded := tradedIn[k][pid]; traded {
					continue
				}
				s.pickups[k] = append(s.pickups[k], candidate(k, pid, scores))
			}
		case event.Drop:
			c.Drops++
			s.counts[k] = c
			for _, pid := range ev.PlayersOut {
				s.drops[k] = append(s.drops[k], candidate(k, pid, scores))
			}
		case event.Trade:
			c.Trades++
			s.counts[k] = c
		}
	}
	return s
}

func candidate(k Key, playerID string, scores scoring.Lookup) Candidate {
	pts, ok := scores.PointsFor(playerID, k.Week)
	return Candidate{TeamID: k.TeamID, PlayerID: playerID, Week: k.Week, Points: pts, Scored: ok}
}

// Counts returns the tallies for a (week, team); zero value when none.
func (s *Summary) Counts(week int, teamID string) Counts {
	return s.counts[Key{Week: week, TeamID: teamID}]
}

// WeekCounts sums all teams' tallies for a week.
func (s *Summary) WeekCounts(week int) Counts {
	var total Counts
	for k, c := range s.counts {
		if k.Week != week {
			continue
		}
		total.Adds += c.Adds
		total.Claims += c.Claims
		total.Drops += c.Drops
		total.Trades += c.Trades
	}
	return total
}

// TeamCounts returns every team's tallies for a week.
func (s *Summary) TeamCounts(week int) map[string]Counts {
	out := make(map[string]Counts)
	for k, c := range s.counts {
		if k.Week == week {
			out[k.TeamID] = c
		}
	}
	return out
}

// Pickups returns a week's add/claim candidates across all teams, excluding
// trade-overlapped players, ordered by team then player for stable output.
func (s *Summary) Pickups(week int) []Candidate {
	return s.collect(s.pickups, week)
}

// Drops returns a week's drop candidates across all teams.
func (s *Summary) Drops(week int) []Candidate {
	return s.collect(s.drops, week)
}

func (s *Summary) collect(m map[Key][]Candidate, week int) []Candidate {
	var out []Candidate
	for k, cands := range m {
		if k.Week == week {
			out = append(out, cands...)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// LogWeekSummaries emits the per-week transaction summary lines for weeks
// startWeek..reportWeek.
func (s *Summary) LogWeekSummaries(startWeek, reportWeek int, sink diag.Sink) {
	for w := startWeek; w <= reportWeek; w++ {
		c := s.WeekCounts(w)
		sink.WeekSummary(w, c.Adds, c.Claims, c.Drops, c.Trades)
	}
}
