package diag

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotTotals(t *testing.T) {
	counters := &Counters{}
	sink := NewLogSink(zerolog.Nop(), counters)

	sink.Skip("missing_team", "x")
	sink.Skip("missing_team", "y")
	sink.Skip("missing_timestamp", "z")
	sink.Override("add", 3, 4, 1000)
	sink.ResolutionFallback("p1")

	got := counters.Snapshot()
	assert.Equal(t, 3, got.Skipped)
	assert.Equal(t, 1, got.Overrides)
	assert.Equal(t, 1, got.Fallbacks)
	assert.Equal(t, map[string]int{"missing_team": 2, "missing_timestamp": 1}, got.SkipReasons)
}

func TestSnapshotIsDetached(t *testing.T) {
	counters := &Counters{}
	sink := NewLogSink(zerolog.Nop(), counters)
	sink.Skip("missing_team", "x")

	snap := counters.Snapshot()
	sink.Skip("missing_team", "y")

	require.Equal(t, 1, snap.Skipped)
	assert.Equal(t, 1, snap.SkipReasons["missing_team"], "snapshot map not shared with live counters")
}

func TestSnapshotEmpty(t *testing.T) {
	got := (&Counters{}).Snapshot()
	assert.Zero(t, got.Skipped)
	assert.Nil(t, got.SkipReasons)
}
