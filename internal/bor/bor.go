package bor

import (
	"sort"

	"github.com/leaguewire/gridreport/internal/league"
)

// Record is a head-to-head win/loss/tie tally.
type Record struct {
	Wins   int
	Losses int
	Ties   int
}

func (r *Record) add(other Record) {
	r.Wins += other.Wins
	r.Losses += other.Losses
	r.Ties += other.Ties
}

// WeekResult is the optimal free-agent lineup for one week and its record
// against every real team.
type WeekResult struct {
	Week   int
	Lineup []league.Player
	Total  float64
	Record Record
}

// SeasonResult accumulates weekly best-of-the-rest records.
type SeasonResult struct {
	Weeks  []WeekResult
	Record Record
}

// SlotTemplate lists the lineup slots to fill, one entry per starting spot.
// Duplicate labels mean multiple spots at that slot.
type SlotTemplate []string

// TemplateFromTeam derives the slot template from a real team's started
// lineup for the week. Any team works since the league shares one layout.
func TemplateFromTeam(team *league.Team) SlotTemplate {
	var slots SlotTemplate
	for _, p := range team.Roster {
		if !p.Bench && p.Slot != "" {
			slots = append(slots, p.Slot)
		}
	}
	return slots
}

// OptimalLineup greedily fills the template from the free-agent pool: slots
// with the fewest eligible players are filled first, each taking its
// highest-scoring unused candidate.
func OptimalLineup(pool []league.Player, template SlotTemplate) ([]league.Player, float64) {
	byPoints := make([]league.Player, len(pool))
	copy(byPoints, pool)
	sort.Slice(byPoints, func(i, j int) bool {
		if byPoints[i].Points != byPoints[j].Points {
			return byPoints[i].Points > byPoints[j].Points
		}
		return byPoints[i].ID < byPoints[j].ID
	})

	// Scarce slots first so a flex spot never steals the only eligible
	// player from a dedicated position.
	slots := make([]string, len(template))
	copy(slots, template)
	eligibleCount := func(slot string) int {
		n := 0
		for _, p := range byPoints {
			if p.EligibleFor(slot) {
				n++
			}
		}
		return n
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return eligibleCount(slots[i]) < eligibleCount(slots[j])
	})

	used := make(map[string]bool)
	var lineup []league.Player
	total := 0.0
	for _, slot := range slots {
		for _, p := range byPoints {
			if used[p.ID] || !p.EligibleFor(slot) {
				continue
			}
			used[p.ID] = true
			filled := p
			filled.Slot = slot
			lineup = append(lineup, filled)
			total += p.Points
			break
		}
	}
	return lineup, total
}

// CompareWeek scores the optimal free-agent lineup against every team's
// actual weekly total.
func CompareWeek(view *league.View, week int, pool []league.Player) WeekResult {
	teams := view.TeamsByWeek[week]
	var template SlotTemplate
	for _, id := range sortedIDs(teams) {
		template = TemplateFromTeam(teams[id])
		if len(template) > 0 {
			break
		}
	}

	lineup, total := OptimalLineup(pool, template)
	result := WeekResult{Week: week, Lineup: lineup, Total: total}
	for _, id := range sortedIDs(teams) {
		switch pts := teams[id].Points; {
		case total > pts:
			result.Record.Wins++
		case total < pts:
			result.Record.Losses++
		default:
			result.Record.Ties++
		}
	}
	return result
}

// Season accumulates the weekly comparisons for weeks startWeek..reportWeek
// using the per-week free-agent pools in the view.
func Season(view *league.View, startWeek, reportWeek int) SeasonResult {
	var season SeasonResult
	for week := startWeek; week <= reportWeek; week++ {
		pool := make([]league.Player, 0, len(view.FreeAgentsByWeek[week]))
		for _, p := range view.FreeAgentsByWeek[week] {
			pool = append(pool, p)
		}
		wr := CompareWeek(view, week, pool)
		season.Weeks = append(season.Weeks, wr)
		season.Record.add(wr.Record)
	}
	return season
}

func sortedIDs(teams map[string]*league.Team) []string {
	ids := make([]string, 0, len(teams))
	for id := range teams {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
