// Package attribute maps normalized events onto week windows. The timestamp
// always wins over a platform-supplied week ordinal; disagreements are logged
// as overrides, never silently dropped.
package attribute

import (
	"fmt"
	"time"

	"github.com/leaguewire/gridreport/internal/diag"
	"github.com/leaguewire/gridreport/internal/event"
	"github.com/leaguewire/gridreport/internal/schedule"
)

// Attributed is an event pinned to exactly one week window.
type Attributed struct {
	event.Event
	Week int
}

// Error means an event's timestamp falls beyond the known window table.
// Silent mis-attribution would corrupt every downstream total, so this is
// fatal for the season.
type Error struct {
	Season      int
	TimestampMS int64
	LastWeek    int
}

func (e *Error) Error() string {
	return fmt.Sprintf(
		"attribution: event at %s falls beyond week %d of season %d; window table is incomplete",
		time.UnixMilli(e.TimestampMS).UTC().Format(time.RFC3339), e.LastWeek, e.Season,
	)
}

// Attributor assigns events to the season's window table.
type Attributor struct {
	season  int
	windows []schedule.Window
	sink    diag.Sink
}

// New returns an Attributor over a season's window table.
func New(season int, windows []schedule.Window, sink diag.Sink) *Attributor {
	return &Attributor{season: season, windows: windows, sink: sink}
}

// Assign maps one event to its week. Events predating week 1 are carried
// forward to week 1 (offseason rule). Events past the last window fail, as
// does an Attributor built over an empty window table.
func (a *Attributor) Assign(ev event.Event) (Attributed, error) {
	if len(a.windows) == 0 {
		return Attributed{}, &Error{Season: a.season, TimestampMS: ev.TimestampMS}
	}
	ts := ev.TimestampMS
	if ts < a.windows[0].StartMS {
		a.logAssigned(ev, 1)
		return Attributed{Event: ev, Week: 1}, nil
	}
	last := a.windows[len(a.windows)-1]
	if ts >= last.EndMS {
		return Attributed{}, &Error{Season: a.season, TimestampMS: ts, LastWeek: last.Week}
	}

	// windows are contiguous from windows[0].StartMS in WeekMS strides
	idx := int((ts - a.windows[0].StartMS) / schedule.WeekMS)
	w := a.windows[idx]
	if ev.PlatformOrdinal != 0 && ev.PlatformOrdinal != w.Week {
		a.sink.Override(string(ev.Type), ev.PlatformOrdinal, w.Week, ts)
	}
	a.logAssigned(ev, w.Week)
	return Attributed{Event: ev, Week: w.Week}, nil
}

// AssignAll maps a batch of events, failing on the first out-of-table event.
func (a *Attributor) AssignAll(events []event.Event) ([]Attributed, error) {
	out := make([]Attributed, 0, len(events))
	for _, ev := range events {
		at, err := a.Assign(ev)
		if err != nil {
			return nil, err
		}
		out = append(out, at)
	}
	return out, nil
}

func (a *Attributor) logAssigned(ev event.Event, week int) {
	player := ""
	if len(ev.PlayersIn) > 0 {
		player = ev.PlayersIn[0]
	} else if len(ev.PlayersOut) > 0 {
		player = ev.PlayersOut[0]
	}
	a.sink.Attribution(string(ev.Type), ev.TeamID, player, ev.TimestampMS, week)
}
