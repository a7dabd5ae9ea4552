package awards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leaguewire/gridreport/internal/diag"
	"github.com/leaguewire/gridreport/internal/league"
)

// fallbackSink records unresolved player IDs.
type fallbackSink struct {
	diag.Sink
	unresolved []string
}

func (s *fallbackSink) ResolutionFallback(playerID string) {
	s.unresolved = append(s.unresolved, playerID)
}

func resolverView() *league.View {
	view := league.NewView()
	view.AddTeam(4, &league.Team{ID: "t1", Roster: []league.Player{
		{ID: "p1", Name: "Current Week"},
	}})
	view.AddTeam(3, &league.Team{ID: "t1", Roster: []league.Player{
		{ID: "p1", Name: "Stale Name"},
		{ID: "p2", Name: "Previous Week"},
	}})
	view.AddTeam(1, &league.Team{ID: "t2", Roster: []league.Player{
		{ID: "p4", Name: "Ancient Roster"},
	}})
	view.FreeAgentsByWeek[4] = map[string]league.Player{
		"p3": {ID: "p3", Name: "Free Agent"},
	}
	return view
}

func TestResolveCurrentWeekRosterWinsOverStale(t *testing.T) {
	r := NewNameResolver(resolverView(), 4, diag.Nop())
	assert.Equal(t, "Current Week", r.Resolve("p1"))
}

func TestResolvePreviousWeekRoster(t *testing.T) {
	r := NewNameResolver(resolverView(), 4, diag.Nop())
	assert.Equal(t, "Previous Week", r.Resolve("p2"))
}

func TestResolveFreeAgentPool(t *testing.T) {
	r := NewNameResolver(resolverView(), 4, diag.Nop())
	assert.Equal(t, "Free Agent", r.Resolve("p3"))
}

func TestResolveAllWeeksScan(t *testing.T) {
	r := NewNameResolver(resolverView(), 4, diag.Nop())
	assert.Equal(t, "Ancient Roster", r.Resolve("p4"))
}

func TestResolveFallbackReturnsRawID(t *testing.T) {
	sink := &fallbackSink{Sink: diag.Nop()}
	r := NewNameResolver(resolverView(), 4, sink)

	assert.Equal(t, "p99", r.Resolve("p99"))
	assert.Equal(t, []string{"p99"}, sink.unresolved)
}
