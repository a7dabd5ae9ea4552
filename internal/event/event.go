// Package event converts heterogeneous raw platform records into the uniform
// event shape the attribution pipeline works on.
package event

// Type classifies a normalized event.
type Type string

// Event types.
const (
	Add   Type = "add"
	Claim Type = "claim"
	Drop  Type = "drop"
	Trade Type = "trade"
)

// Event is one normalized roster move. Trade events are emitted once per
// participating team side.
type Event struct {
	Type        Type
	TimestampMS int64
	TeamID      string
	// PlatformOrdinal is the platform-supplied week ordinal, 0 when absent.
	// Attribution prefers the timestamp-derived window over it.
	PlatformOrdinal int

	// PlayersIn / PlayersOut are platform player IDs. For a trade side,
	// PlayersIn is that side's received list and PlayersOut the union of
	// every other side's received list.
	PlayersIn  []string
	PlayersOut []string

	// Trade-only fields.
	TradeID string
	TradeTS int64
	// PickOnly marks a trade side whose PlayersIn and PlayersOut both hold
	// zero non-pick assets. Pick-only sides never enter the season ledger.
	PickOnly bool
}

// SideHasRealPlayersBothWays reports whether this trade side moved at least
// one real player in each direction, the weekly trade-award requirement.
func (e Event) SideHasRealPlayersBothWays() bool {
	return e.Type == Trade && len(e.PlayersIn) > 0 && len(e.PlayersOut) > 0
}
