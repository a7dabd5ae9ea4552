// Package diag carries the diagnostic contract of a report run. Components
// receive an explicit Sink instead of reaching for a global logger, which
// keeps attribution and ledger logic independent of logger lifecycle.
package diag

import (
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Sink receives per-decision diagnostics during a report run. Lines are for
// debuggability, not machine parsing.
type Sink interface {
	// WindowTable logs the full derived week window table for a season.
	WindowTable(season int, weeks []WindowLine)
	// Attribution logs a single mapped event.
	Attribution(kind string, teamID string, playerID string, tsMS int64, week int)
	// Override logs a platform-ordinal vs timestamp-window disagreement.
	Override(kind string, ordinal int, mappedWeek int, tsMS int64)
	// Skip logs a malformed record excluded from the run.
	Skip(reason string, detail string)
	// ResolutionFallback logs a player name that resolved to its raw identifier.
	ResolutionFallback(playerID string)
	// WeekSummary logs per-week transaction counts.
	WeekSummary(week int, adds, claims, drops, trades int)
	// TradeContribution logs one week's carry-forward fold for a trade.
	TradeContribution(tradeID string, week int, teamID string, net float64, tradeTS int64)
}

// WindowLine is one row of the derived window table.
type WindowLine struct {
	Week    int
	StartMS int64
	EndMS   int64
}

// Counters tallies non-fatal conditions for the end-of-run summary.
type Counters struct {
	mu          sync.Mutex
	Skipped     int
	Overrides   int
	Fallbacks   int
	SkipReasons map[string]int
}

// CounterTotals is a lock-free copy of the tallies, safe to embed in run
// output and marshal.
type CounterTotals struct {
	Skipped     int            `json:"skipped"`
	Overrides   int            `json:"overrides"`
	Fallbacks   int            `json:"fallbacks"`
	SkipReasons map[string]int `json:"skip_reasons,omitempty"`
}

// Snapshot returns the current totals.
func (c *Counters) Snapshot() CounterTotals {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := CounterTotals{
		Skipped:   c.Skipped,
		Overrides: c.Overrides,
		Fallbacks: c.Fallbacks,
	}
	if len(c.SkipReasons) > 0 {
		out.SkipReasons = make(map[string]int, len(c.SkipReasons))
		for reason, n := range c.SkipReasons {
			out.SkipReasons[reason] = n
		}
	}
	return out
}

func (c *Counters) skip(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Skipped++
	if c.SkipReasons == nil {
		c.SkipReasons = make(map[string]int)
	}
	c.SkipReasons[reason]++
}

func (c *Counters) override() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Overrides++
}

func (c *Counters) fallback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Fallbacks++
}

type logSink struct {
	log      zerolog.Logger
	counters *Counters
}

// NewLogSink returns a Sink writing structured lines through the given logger.
func NewLogSink(log zerolog.Logger, counters *Counters) Sink {
	if counters == nil {
		counters = &Counters{}
	}
	return &logSink{log: log, counters: counters}
}

func (s *logSink) WindowTable(season int, weeks []WindowLine) {
	arr := zerolog.Arr()
	for _, w := range weeks {
		arr.Str(windowLineString(w))
	}
	s.log.Info().Int("season", season).Array("windows", arr).Msg("derived week windows")
}

func windowLineString(w WindowLine) string {
	start := time.UnixMilli(w.StartMS).UTC().Format("2006-01-02")
	end := time.UnixMilli(w.EndMS).UTC().Format("2006-01-02")
	return "W" + strconv.Itoa(w.Week) + " " + start + ".." + end
}

func (s *logSink) Attribution(kind, teamID, playerID string, tsMS int64, week int) {
	s.log.Debug().
		Str("kind", kind).
		Str("team", teamID).
		Str("player", playerID).
		Int64("ts_ms", tsMS).
		Int("week", week).
		Msg("event attributed")
}

func (s *logSink) Override(kind string, ordinal, mappedWeek int, tsMS int64) {
	s.counters.override()
	s.log.Info().
		Str("kind", kind).
		Int("platform_ordinal", ordinal).
		Int("mapped_week", mappedWeek).
		Int64("ts_ms", tsMS).
		Msg("ordinal mismatch: timestamp window wins")
}

func (s *logSink) Skip(reason, detail string) {
	s.counters.skip(reason)
	s.log.Warn().Str("reason", reason).Str("detail", detail).Msg("record skipped")
}

func (s *logSink) ResolutionFallback(playerID string) {
	s.counters.fallback()
	s.log.Debug().Str("player", playerID).Msg("name unresolved, using raw identifier")
}

func (s *logSink) WeekSummary(week, adds, claims, drops, trades int) {
	s.log.Info().
		Int("week", week).
		Int("adds", adds).
		Int("claims", claims).
		Int("drops", drops).
		Int("trades", trades).
		Msg("transaction summary")
}

func (s *logSink) TradeContribution(tradeID string, week int, teamID string, net float64, tradeTS int64) {
	s.log.Info().
		Str("trade_id", tradeID).
		Int("week", week).
		Str("team", teamID).
		Float64("net", net).
		Int64("trade_ts", tradeTS).
		Msg("trade carry-forward contribution")
}

// Nop returns a Sink that discards everything; used in tests.
func Nop() Sink { return nop{} }

type nop struct{}

func (nop) WindowTable(int, []WindowLine)                         {}
func (nop) Attribution(string, string, string, int64, int)        {}
func (nop) Override(string, int, int, int64)                      {}
func (nop) Skip(string, string)                                   {}
func (nop) ResolutionFallback(string)                             {}
func (nop) WeekSummary(int, int, int, int, int)                   {}
func (nop) TradeContribution(string, int, string, float64, int64) {}
