// Package ledger tracks each trade's net point contribution per team from its
// execution week through the current report week, with exact attribution back
// to the originating trade ID.
package ledger

import (
	"math"
	"sort"

	"github.com/leaguewire/gridreport/internal/attribute"
	"github.com/leaguewire/gridreport/internal/diag"
	"github.com/leaguewire/gridreport/internal/event"
	"github.com/leaguewire/gridreport/internal/scoring"
)

// Entry is the season-to-date record for one qualifying trade. Identity is
// immutable; PerTeamNet grows additively as report weeks are folded in.
// Entries are never deleted within a season.
type Entry struct {
	TradeID       string
	ExecutionWeek int
	TradeTS       int64
	// PerTeamNet maps team ID to its signed season-to-date point total.
	PerTeamNet map[string]float64
	// sides holds each team's in/out player lists, frozen at creation.
	sides map[string]tradeSide
	// contributed marks weeks already folded into PerTeamNet.
	contributed map[int]struct{}
}

type tradeSide struct {
	in  []string
	out []string
}

// ContributingWeeks returns the weeks folded in so far, ascending.
func (e *Entry) ContributingWeeks() []int {
	weeks := make([]int, 0, len(e.contributed))
	for w := range e.contributed {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	return weeks
}

// Ledger owns the season's trade entries. It is mutated only by
// AccumulateThrough, called once per report week in increasing order within a
// single run; it must not be used concurrently for the same season.
type Ledger struct {
	entries map[string]*Entry
	scores  scoring.Lookup
	sink    diag.Sink
}

// New builds the ledger from attributed trade events. Pick-only sides are
// excluded at creation; a trade whose sides are all pick-only never gets an
// entry. Non-trade events are ignored.
func New(events []attribute.Attributed, scores scoring.Lookup, sink diag.Sink) *Ledger {
	l := &Ledger{entries: make(map[string]*Entry), scores: scores, sink: sink}
	for _, ev := range events {
		if ev.Type != event.Trade || ev.PickOnly {
			continue
		}
		// season trade-leader eligibility requires real players moving in
		// both directions through this side
		if !ev.SideHasRealPlayersBothWays() {
			continue
		}
		entry := l.entries[ev.TradeID]
		if entry == nil {
			entry = &Entry{
				TradeID:       ev.TradeID,
				ExecutionWeek: ev.Week,
				TradeTS:       ev.TradeTS,
				PerTeamNet:    make(map[string]float64),
				sides:         make(map[string]tradeSide),
				contributed:   make(map[int]struct{}),
			}
			l.entries[ev.TradeID] = entry
		}
		entry.sides[ev.TeamID] = tradeSide{
			in:  append([]string(nil), ev.PlayersIn...),
			out: append([]string(nil), ev.PlayersOut...),
		}
	}
	return l
}

// Len reports the number of qualifying trade entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Entry returns the entry for a trade ID, nil when the trade never qualified.
func (l *Ledger) Entry(tradeID string) *Entry { return l.entries[tradeID] }

// Entries returns every entry ordered by execution week then trade ID.
func (l *Ledger) Entries() []*Entry { return l.sortedEntries() }

// AccumulateThrough folds every missing week from each entry's execution week
// through reportWeek into PerTeamNet. Calling twice with the same reportWeek
// is a no-op; calling with a larger one adds only the delta weeks.
func (l *Ledger) AccumulateThrough(reportWeek int) {
	for _, entry := range l.sortedEntries() {
		if entry.ExecutionWeek > reportWeek {
			continue
		}
		for w := entry.ExecutionWeek; w <= reportWeek; w++ {
			if _, done := entry.contributed[w]; done {
				continue
			}
			for _, teamID := range sortedTeams(entry) {
				side := entry.sides[teamID]
				net := l.weekPoints(side.in, w) - l.weekPoints(side.out, w)
				entry.PerTeamNet[teamID] += net
				l.sink.TradeContribution(entry.TradeID, w, teamID, net, entry.TradeTS)
			}
			entry.contributed[w] = struct{}{}
		}
	}
}

func (l *Ledger) weekPoints(players []string, week int) float64 {
	total := 0.0
	for _, pid := range players {
		if pts, ok := l.scores.PointsFor(pid, week); ok {
			total += pts
		}
	}
	return total
}

// Leader is the season trade-leader result: the most lopsided team side.
type Leader struct {
	TradeID       string
	ExecutionWeek int
	TeamID        string
	Net           float64
	// PerTeamNet is a snapshot of every side's season-to-date net.
	PerTeamNet map[string]float64
}

// LeaderAsOf returns the team side with the largest |net| among entries whose
// execution week is at most reportWeek. Ties break by earliest execution
// week, then lexicographically smallest trade ID. ok is false when no trade
// qualifies.
func (l *Ledger) LeaderAsOf(reportWeek int) (Leader, bool) {
	var best Leader
	found := false
	for _, entry := range l.sortedEntries() {
		if entry.ExecutionWeek > reportWeek {
			continue
		}
		for _, teamID := range sortedTeams(entry) {
			net := entry.PerTeamNet[teamID]
			if !found || math.Abs(net) > math.Abs(best.Net) {
				best = Leader{
					TradeID:       entry.TradeID,
					ExecutionWeek: entry.ExecutionWeek,
					TeamID:        teamID,
					Net:           net,
					PerTeamNet:    snapshotNet(entry),
				}
				found = true
			}
		}
	}
	return best, found
}

// sortedEntries orders entries by execution week then trade ID so that both
// accumulation logging and tie-breaking are deterministic.
func (l *Ledger) sortedEntries() []*Entry {
	entries := make([]*Entry, 0, len(l.entries))
	for _, e := range l.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ExecutionWeek != entries[j].ExecutionWeek {
			return entries[i].ExecutionWeek < entries[j].ExecutionWeek
		}
		return entries[i].TradeID < entries[j].TradeID
	})
	return entries
}

func sortedTeams(e *Entry) []string {
	teams := make([]string, 0, len(e.sides))
	for t := range e.sides {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	return teams
}

func snapshotNet(e *Entry) map[string]float64 {
	out := make(map[string]float64, len(e.PerTeamNet))
	for t, n := range e.PerTeamNet {
		out[t] = n
	}
	return out
}
