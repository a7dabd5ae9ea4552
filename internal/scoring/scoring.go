// Package scoring holds the per-player-per-week point lookup shared by the
// aggregator, ledger, and award selection.
package scoring

// Lookup reports a player's points for a week. The second return is false
// when no scoring row exists for that player/week.
type Lookup interface {
	PointsFor(playerID string, week int) (float64, bool)
}

type key struct {
	playerID string
	week     int
}

// Index is a map-backed Lookup populated from weekly rosters and free-agent
// pools before the pipeline runs.
type Index struct {
	points map[key]float64
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{points: make(map[key]float64)}
}

// Set records points for a player/week. Later sets win; rosters and
// free-agent pools never overlap on a player, so write order between the two
// does not matter.
func (x *Index) Set(playerID string, week int, pts float64) {
	x.points[key{playerID: playerID, week: week}] = pts
}

// PointsFor implements Lookup.
func (x *Index) PointsFor(playerID string, week int) (float64, bool) {
	pts, ok := x.points[key{playerID: playerID, week: week}]
	return pts, ok
}
