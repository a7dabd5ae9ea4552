// Package report assembles the weekly report payload and renders it to
// markdown or JSON artifacts.
package report

import (
	"sort"
	"time"

	"github.com/leaguewire/gridreport/internal/awards"
	"github.com/leaguewire/gridreport/internal/bor"
	"github.com/leaguewire/gridreport/internal/diag"
	"github.com/leaguewire/gridreport/internal/league"
)

// WeekSummary is one week's transaction volume across the league.
type WeekSummary struct {
	Week   int `json:"week"`
	Adds   int `json:"adds"`
	Claims int `json:"claims"`
	Drops  int `json:"drops"`
	Trades int `json:"trades"`
}

// TradeLeader is the season's most lopsided trade through the report week.
type TradeLeader struct {
	TradeID           string             `json:"trade_id"`
	ExecutionWeek     int                `json:"execution_week"`
	TeamID            string             `json:"team_id"`
	TeamName          string             `json:"team_name"`
	Net               float64            `json:"net"`
	PerTeamNet        map[string]float64 `json:"per_team_net"`
	ContributingWeeks []int              `json:"contributing_weeks"`
}

// MedianRecord counts weeks scored over, under, and at the league median.
type MedianRecord struct {
	Over  int `json:"over"`
	Under int `json:"under"`
	At    int `json:"at"`
}

// StandingRow is one team's season line: cumulative points plus the median
// record across the covered weeks.
type StandingRow struct {
	TeamID    string       `json:"team_id"`
	TeamName  string       `json:"team_name"`
	PointsFor float64      `json:"points_for"`
	Median    MedianRecord `json:"median"`
}

// Data is the fully assembled report for one week.
type Data struct {
	Season      int       `json:"season"`
	Week        int       `json:"week"`
	LeagueID    string    `json:"league_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Summaries []WeekSummary `json:"summaries"`

	Pickups    awards.PickupAwards `json:"pickups"`
	BestDrop   *awards.Award       `json:"best_drop,omitempty"`
	WorstDrop  *awards.Award       `json:"worst_drop,omitempty"`
	StartSit   *awards.StartSit    `json:"start_sit,omitempty"`
	BestTrade  *awards.TradeAward  `json:"best_trade,omitempty"`
	WorstTrade *awards.TradeAward  `json:"worst_trade,omitempty"`

	TradeLeader *TradeLeader `json:"trade_leader,omitempty"`

	Standings  []StandingRow     `json:"standings"`
	Medians    map[int]float64   `json:"medians"`
	BestOfRest *bor.SeasonResult `json:"best_of_rest,omitempty"`

	Counters diag.CounterTotals `json:"counters"`
}

// WeeklyMedians computes the league median team score for each week in
// startWeek..reportWeek.
func WeeklyMedians(view *league.View, startWeek, reportWeek int) map[int]float64 {
	medians := make(map[int]float64)
	for week := startWeek; week <= reportWeek; week++ {
		teams := view.TeamsByWeek[week]
		if len(teams) == 0 {
			continue
		}
		scores := make([]float64, 0, len(teams))
		for _, team := range teams {
			scores = append(scores, team.Points)
		}
		sort.Float64s(scores)
		mid := len(scores) / 2
		if len(scores)%2 == 1 {
			medians[week] = scores[mid]
		} else {
			medians[week] = (scores[mid-1] + scores[mid]) / 2
		}
	}
	return medians
}

// Standings builds the season standings rows with per-team median records,
// sorted by cumulative points descending.
func Standings(view *league.View, medians map[int]float64, startWeek, reportWeek int) []StandingRow {
	rows := make(map[string]*StandingRow)
	for week := startWeek; week <= reportWeek; week++ {
		median, hasMedian := medians[week]
		for id, team := range view.TeamsByWeek[week] {
			row := rows[id]
			if row == nil {
				row = &StandingRow{TeamID: id}
				rows[id] = row
			}
			// Latest known name wins.
			if team.Name != "" {
				row.TeamName = team.Name
			}
			row.PointsFor += team.Points
			if !hasMedian {
				continue
			}
			switch {
			case team.Points > median:
				row.Median.Over++
			case team.Points < median:
				row.Median.Under++
			default:
				row.Median.At++
			}
		}
	}

	out := make([]StandingRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PointsFor != out[j].PointsFor {
			return out[i].PointsFor > out[j].PointsFor
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}
