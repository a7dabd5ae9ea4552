package awards

import (
	"github.com/leaguewire/gridreport/internal/diag"
	"github.com/leaguewire/gridreport/internal/league"
)

// Resolver is one lookup tier for turning a player ID into a display name.
type Resolver interface {
	Resolve(playerID string) (string, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(playerID string) (string, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(playerID string) (string, bool) { return f(playerID) }

// NameResolver tries a fixed priority order of lookup tiers; the first hit
// wins. Resolution is for display only, never scoring, and never fails: an
// unresolved ID is returned as-is with a fallback diagnostic.
type NameResolver struct {
	tiers []Resolver
	sink  diag.Sink
}

// NewNameResolver builds the tier chain for a report week: current week
// roster, previous week roster, current free-agent cache, then a scan of all
// weeks' rosters.
func NewNameResolver(view *league.View, week int, sink diag.Sink) *NameResolver {
	tiers := []Resolver{
		rosterTier(view, week),
		rosterTier(view, week-1),
		freeAgentTier(view, week),
		allWeeksTier(view),
	}
	return &NameResolver{tiers: tiers, sink: sink}
}

// Resolve returns the display name for a player ID.
func (r *NameResolver) Resolve(playerID string) string {
	for _, tier := range r.tiers {
		if name, ok := tier.Resolve(playerID); ok && name != "" {
			return name
		}
	}
	r.sink.ResolutionFallback(playerID)
	return playerID
}

func rosterTier(view *league.View, week int) Resolver {
	return ResolverFunc(func(playerID string) (string, bool) {
		p, ok := view.PlayerInWeek(week, playerID)
		if !ok {
			return "", false
		}
		return p.Name, true
	})
}

func freeAgentTier(view *league.View, week int) Resolver {
	return ResolverFunc(func(playerID string) (string, bool) {
		p, ok := view.FreeAgentsByWeek[week][playerID]
		if !ok {
			return "", false
		}
		return p.Name, true
	})
}

func allWeeksTier(view *league.View) Resolver {
	return ResolverFunc(func(playerID string) (string, bool) {
		for week := range view.TeamsByWeek {
			if p, ok := view.PlayerInWeek(week, playerID); ok {
				return p.Name, true
			}
		}
		for _, pool := range view.FreeAgentsByWeek {
			if p, ok := pool[playerID]; ok {
				return p.Name, true
			}
		}
		return "", false
	})
}
