// Package awards selects the weekly transaction and lineup awards from
// aggregated candidate sets. Selection is stateless given a week's candidates
// and a scoring lookup.
package awards

import (
	"sort"
	"strings"

	"github.com/leaguewire/gridreport/internal/aggregate"
	"github.com/leaguewire/gridreport/internal/attribute"
	"github.com/leaguewire/gridreport/internal/diag"
	"github.com/leaguewire/gridreport/internal/event"
	"github.com/leaguewire/gridreport/internal/league"
	"github.com/leaguewire/gridreport/internal/scoring"
)

// Award is one winner row: team, player, and the points that decided it.
type Award struct {
	TeamID     string
	TeamName   string
	PlayerID   string
	PlayerName string
	Points     float64
}

// PickupAwards are the week's best/worst free-agent pickup results. Mentions
// are nil unless a benched candidate strictly beat (or undercut) the started
// winner.
type PickupAwards struct {
	Best         *Award
	BestMention  *Award
	Worst        *Award
	WorstMention *Award
}

// StartSit is the week's worst start/sit call: a benched player outscoring
// the starter at a slot they were eligible for, same team.
type StartSit struct {
	TeamID      string
	TeamName    string
	BenchName   string
	BenchPoints float64
	StartName   string
	StartPoints float64
	Delta       float64
}

// TradeAward is one team side's weekly trade result.
type TradeAward struct {
	TeamID   string
	TeamName string
	TradeID  string
	Detail   string
	Net      float64
}

// Selector computes award results against the weekly league view.
type Selector struct {
	view    *league.View
	scores  scoring.Lookup
	resolve *NameResolver
	sink    diag.Sink
}

// NewSelector builds a Selector for one report week.
func NewSelector(view *league.View, scores scoring.Lookup, week int, sink diag.Sink) *Selector {
	return &Selector{
		view:    view,
		scores:  scores,
		resolve: NewNameResolver(view, week, sink),
		sink:    sink,
	}
}

// Pickups selects best/worst free-agent pickup from a week's candidates.
// Started pickups compete for the win; a benched pickup appears only as an
// honorable mention, unless nothing was started at all.
func (s *Selector) Pickups(week int, candidates []aggregate.Candidate) PickupAwards {
	var started, benched []aggregate.Candidate
	for _, c := range candidates {
		if p, ok := s.view.OnRoster(week, c.TeamID, c.PlayerID); ok && !p.Bench && p.Slot != "" {
			started = append(started, c)
		} else {
			benched = append(benched, c)
		}
	}

	var out PickupAwards
	if len(started) > 0 {
		best := maxBy(started)
		out.Best = s.award(week, best)
		if len(benched) > 0 {
			if hm := maxBy(benched); hm.Points > best.Points {
				out.BestMention = s.award(week, hm)
			}
		}
		worst := minBy(started)
		out.Worst = s.award(week, worst)
		if len(benched) > 0 {
			if hm := minBy(benched); hm.Points < worst.Points {
				out.WorstMention = s.award(week, hm)
			}
		}
		return out
	}
	if len(benched) > 0 {
		out.Best = s.award(week, maxBy(benched))
		out.Worst = s.award(week, minBy(benched))
	}
	return out
}

// Drops selects best and worst drop. The dropped player's points for the
// attributed week count regardless of current roster status: best is the
// lowest total (the drop cost nothing), worst the highest.
func (s *Selector) Drops(week int, candidates []aggregate.Candidate) (best, worst *Award) {
	if len(candidates) == 0 {
		return nil, nil
	}
	return s.award(week, minBy(candidates)), s.award(week, maxBy(candidates))
}

// StartSit finds the league's single largest positive bench-over-starter
// delta at an eligible slot. Nil when every lineup was optimal.
func (s *Selector) StartSit(week int) *StartSit {
	var worst *StartSit
	for _, teamID := range sortedTeamIDs(s.view, week) {
		team := s.view.Team(week, teamID)
		var starters, bench []league.Player
		for _, p := range team.Roster {
			if p.Bench {
				bench = append(bench, p)
			} else if p.Slot != "" {
				starters = append(starters, p)
			}
		}
		for _, b := range bench {
			for _, st := range starters {
				if !b.EligibleFor(st.Slot) {
					continue
				}
				delta := b.Points - st.Points
				if delta <= 0 || (worst != nil && delta <= worst.Delta) {
					continue
				}
				worst = &StartSit{
					TeamID:      team.ID,
					TeamName:    team.Name,
					BenchName:   b.Name,
					BenchPoints: b.Points,
					StartName:   st.Name,
					StartPoints: st.Points,
					Delta:       delta,
				}
			}
		}
	}
	return worst
}

// Trades selects the week's best and worst trade side among trades that
// moved at least one real player in each direction.
func (s *Selector) Trades(week int, events []attribute.Attributed) (best, worst *TradeAward) {
	var rows []TradeAward
	for _, ev := range events {
		if ev.Type != event.Trade || ev.Week != week || !ev.SideHasRealPlayersBothWays() {
			continue
		}
		net := s.sumPoints(ev.PlayersIn, week) - s.sumPoints(ev.PlayersOut, week)
		rows = append(rows, TradeAward{
			TeamID:   ev.TeamID,
			TeamName: s.teamName(week, ev.TeamID),
			TradeID:  ev.TradeID,
			Detail:   s.tradeDetail(ev),
			Net:      net,
		})
	}
	if len(rows) == 0 {
		return nil, nil
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Net > rows[j].Net })
	b, w := rows[0], rows[len(rows)-1]
	return &b, &w
}

func (s *Selector) sumPoints(players []string, week int) float64 {
	total := 0.0
	for _, pid := range players {
		if pts, ok := s.scores.PointsFor(pid, week); ok {
			total += pts
		}
	}
	return total
}

func (s *Selector) tradeDetail(ev attribute.Attributed) string {
	return s.nameList(ev.PlayersIn) + " vs " + s.nameList(ev.PlayersOut)
}

func (s *Selector) nameList(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	shown := ids
	if len(shown) > 2 {
		shown = shown[:2]
	}
	names := make([]string, len(shown))
	for i, id := range shown {
		names[i] = s.resolve.Resolve(id)
	}
	return strings.Join(names, ", ")
}

func (s *Selector) award(week int, c aggregate.Candidate) *Award {
	return &Award{
		TeamID:     c.TeamID,
		TeamName:   s.teamName(week, c.TeamID),
		PlayerID:   c.PlayerID,
		PlayerName: s.resolve.Resolve(c.PlayerID),
		Points:     c.Points,
	}
}

func (s *Selector) teamName(week int, teamID string) string {
	if team := s.view.Team(week, teamID); team != nil {
		return team.Name
	}
	return teamID
}

// maxBy returns the highest-points candidate; earlier candidates win ties so
// the aggregator's stable ordering decides.
func maxBy(cands []aggregate.Candidate) aggregate.Candidate {
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Points > best.Points {
			best = c
		}
	}
	return best
}

func minBy(cands []aggregate.Candidate) aggregate.Candidate {
	worst := cands[0]
	for _, c := range cands[1:] {
		if c.Points < worst.Points {
			worst = c
		}
	}
	return worst
}

func sortedTeamIDs(view *league.View, week int) []string {
	ids := make([]string, 0, len(view.TeamsByWeek[week]))
	for id := range view.TeamsByWeek[week] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
