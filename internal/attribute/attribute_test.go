package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaguewire/gridreport/internal/diag"
	"github.com/leaguewire/gridreport/internal/event"
	"github.com/leaguewire/gridreport/internal/schedule"
)

const seasonStart int64 = 1756771200000 // 2025-09-02 UTC, a Tuesday

const dayMS int64 = 24 * 60 * 60 * 1000

func testWindows(t *testing.T, weeks int) []schedule.Window {
	t.Helper()
	windows, err := schedule.Build(2025, seasonStart, weeks, diag.Nop())
	require.NoError(t, err)
	return windows
}

// overrideSink records Override calls.
type overrideSink struct {
	diag.Sink
	overrides int
}

func (s *overrideSink) Override(string, int, int, int64) { s.overrides++ }

func TestAssign_TimestampInsideWindow(t *testing.T) {
	a := New(2025, testWindows(t, 14), diag.Nop())

	at, err := a.Assign(event.Event{Type: event.Add, TimestampMS: seasonStart + 3*dayMS})
	require.NoError(t, err)
	assert.Equal(t, 1, at.Week)

	at, err = a.Assign(event.Event{Type: event.Drop, TimestampMS: seasonStart + 9*dayMS})
	require.NoError(t, err)
	assert.Equal(t, 2, at.Week)
}

func TestAssign_WindowBoundaries(t *testing.T) {
	a := New(2025, testWindows(t, 2), diag.Nop())

	// exact start of week 2 belongs to week 2 (end is exclusive)
	at, err := a.Assign(event.Event{Type: event.Add, TimestampMS: seasonStart + 7*dayMS})
	require.NoError(t, err)
	assert.Equal(t, 2, at.Week)

	at, err = a.Assign(event.Event{Type: event.Add, TimestampMS: seasonStart + 7*dayMS - 1})
	require.NoError(t, err)
	assert.Equal(t, 1, at.Week)
}

func TestAssign_TimestampOverridesPlatformOrdinal(t *testing.T) {
	sink := &overrideSink{Sink: diag.Nop()}
	a := New(2025, testWindows(t, 14), sink)

	// scenario from the schedule contract: E + 8 days with ordinal 1 maps to week 2
	at, err := a.Assign(event.Event{
		Type:            event.Add,
		TimestampMS:     seasonStart + 8*dayMS,
		PlatformOrdinal: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, at.Week)
	assert.Equal(t, 1, sink.overrides, "override is recorded, not silently dropped")
}

func TestAssign_AgreeingOrdinalLogsNoOverride(t *testing.T) {
	sink := &overrideSink{Sink: diag.Nop()}
	a := New(2025, testWindows(t, 14), sink)

	at, err := a.Assign(event.Event{Type: event.Add, TimestampMS: seasonStart + dayMS, PlatformOrdinal: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, at.Week)
	assert.Zero(t, sink.overrides)
}

func TestAssign_PreSeasonMapsToWeekOne(t *testing.T) {
	a := New(2025, testWindows(t, 14), diag.Nop())

	at, err := a.Assign(event.Event{Type: event.Trade, TimestampMS: seasonStart - 30*dayMS})
	require.NoError(t, err)
	assert.Equal(t, 1, at.Week, "offseason events carry forward to week 1")
}

func TestAssign_BeyondTableFails(t *testing.T) {
	a := New(2025, testWindows(t, 14), diag.Nop())

	_, err := a.Assign(event.Event{Type: event.Add, TimestampMS: seasonStart + 14*7*dayMS})
	require.Error(t, err)
	var attrErr *Error
	require.ErrorAs(t, err, &attrErr)
	assert.Equal(t, 2025, attrErr.Season)
	assert.Equal(t, 14, attrErr.LastWeek)
}

func TestAssign_EmptyWindowTableFails(t *testing.T) {
	a := New(2025, nil, diag.Nop())

	_, err := a.Assign(event.Event{Type: event.Add, TimestampMS: seasonStart})
	require.Error(t, err)
	var attrErr *Error
	require.ErrorAs(t, err, &attrErr)
	assert.Equal(t, 2025, attrErr.Season)
}

func TestAssignAll_PropagatesFirstError(t *testing.T) {
	a := New(2025, testWindows(t, 2), diag.Nop())

	_, err := a.AssignAll([]event.Event{
		{Type: event.Add, TimestampMS: seasonStart},
		{Type: event.Add, TimestampMS: seasonStart + 100*dayMS},
	})
	var attrErr *Error
	assert.ErrorAs(t, err, &attrErr)
}
