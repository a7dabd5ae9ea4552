// Package schedule derives the canonical week windows a season's events are
// attributed against.
package schedule

import (
	"github.com/leaguewire/gridreport/internal/config"
	"github.com/leaguewire/gridreport/internal/diag"
)

// WeekMS is the span of one scoring week. Windows run Tuesday to Tuesday UTC,
// anchored on the scoreboard's week 1 start epoch.
const WeekMS int64 = 7 * 24 * 60 * 60 * 1000

// Window is one scoring week. End is exclusive.
type Window struct {
	Week    int
	StartMS int64
	EndMS   int64
}

// Contains reports whether tsMS falls inside the window.
func (w Window) Contains(tsMS int64) bool {
	return tsMS >= w.StartMS && tsMS < w.EndMS
}

// Build derives numWeeks contiguous windows starting at startEpochMS, week
// numbers 1..numWeeks. window[n].EndMS == window[n+1].StartMS.
func Build(season int, startEpochMS int64, numWeeks int, sink diag.Sink) ([]Window, error) {
	if startEpochMS <= 0 {
		return nil, &config.ConfigError{Field: "season start epoch", Reason: "is missing or non-positive"}
	}
	if numWeeks <= 0 {
		return nil, &config.ConfigError{Field: "season week count", Reason: "must be positive"}
	}

	windows := make([]Window, numWeeks)
	lines := make([]diag.WindowLine, numWeeks)
	for i := 0; i < numWeeks; i++ {
		start := startEpochMS + int64(i)*WeekMS
		windows[i] = Window{Week: i + 1, StartMS: start, EndMS: start + WeekMS}
		lines[i] = diag.WindowLine{Week: i + 1, StartMS: start, EndMS: start + WeekMS}
	}
	sink.WindowTable(season, lines)
	return windows, nil
}
