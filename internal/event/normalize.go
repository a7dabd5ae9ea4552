package event

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/leaguewire/gridreport/internal/diag"
	"github.com/leaguewire/gridreport/internal/platform"
)

// tradeIDSpace namespaces deterministic trade IDs derived for records the
// platform returns without one. Same trade, same ID, across runs.
var tradeIDSpace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("gridreport/trade"))

// Normalizer turns raw platform records into Events, skipping malformed
// records with a logged reason; it never aborts the run.
type Normalizer struct {
	sink diag.Sink
	// seen deduplicates moves that arrive through both the league activity
	// feed and the per-team transaction pages.
	seen map[string]struct{}
}

// NewNormalizer returns a Normalizer reporting through sink.
func NewNormalizer(sink diag.Sink) *Normalizer {
	return &Normalizer{sink: sink, seen: make(map[string]struct{})}
}

// Moves normalizes add/claim/drop records from an activity or per-team
// transaction feed. Records with a null or missing type normalize to Add.
// Trade entries in these feeds are dropped here; the trades feed is the
// authoritative source for trade events.
func (n *Normalizer) Moves(items []platform.ActivityItem) []Event {
	var out []Event
	for _, item := range items {
		ts := item.TimeEpochMilli.Int64()
		if ts <= 0 {
			n.sink.Skip("missing_timestamp", "activity item without timeEpochMilli")
			continue
		}
		tx := item.Transaction
		if tx == nil {
			n.sink.Skip("missing_transaction", fmt.Sprintf("activity item at ts=%d", ts))
			continue
		}

		typ := moveType(tx.Type)
		if typ == Trade {
			// counted and normalized from the trades feed instead
			continue
		}

		teamID := ""
		if tx.Team != nil {
			teamID = tx.Team.ID.String()
		}
		if teamID == "" {
			n.sink.Skip("missing_team", fmt.Sprintf("%s at ts=%d", tx.Type, ts))
			continue
		}
		playerID, ordinal := playerAndOrdinal(tx)
		if playerID == "" {
			n.sink.Skip("missing_player", fmt.Sprintf("%s team=%s ts=%d", tx.Type, teamID, ts))
			continue
		}

		key := fmt.Sprintf("%s|%s|%s|%d", typ, teamID, playerID, ts)
		if _, dup := n.seen[key]; dup {
			continue
		}
		n.seen[key] = struct{}{}

		ev := Event{
			Type:            typ,
			TimestampMS:     ts,
			TeamID:          teamID,
			PlatformOrdinal: ordinal,
		}
		switch typ {
		case Drop:
			ev.PlayersOut = []string{playerID}
		default:
			ev.PlayersIn = []string{playerID}
		}
		out = append(out, ev)
	}
	return out
}

// moveType maps the platform's transaction type string. A null or missing
// type is an add; the platform omits it on some legacy waiver records.
func moveType(raw string) Type {
	switch {
	case strings.Contains(raw, "TRADE"):
		return Trade
	case strings.Contains(raw, "DROP"):
		return Drop
	case strings.Contains(raw, "CLAIM"):
		return Claim
	default:
		return Add
	}
}

func playerAndOrdinal(tx *platform.Transaction) (string, int) {
	var block *platform.PlayerBlock
	if tx.Player != nil {
		block = tx.Player
	} else if len(tx.Players) > 0 {
		block = &tx.Players[0]
	}
	if block == nil || block.ProPlayer == nil {
		return "", 0
	}
	ordinal := 0
	if len(block.RequestedGames) > 0 {
		ordinal = block.RequestedGames[0].Period.Ordinal
	}
	return block.ProPlayer.ID.String(), ordinal
}

// Trades normalizes completed trade records into one Event per team side.
// Each side's PlayersOut is derived as the union of every other side's
// received players, which stays correct for trades among three or more teams.
func (n *Normalizer) Trades(trades []platform.Trade) []Event {
	var out []Event
	for _, tr := range trades {
		sides := tradeSides(tr)
		if len(sides) < 2 {
			n.sink.Skip("malformed_trade", fmt.Sprintf("trade %s has %d resolvable team sides", tr.ID.String(), len(sides)))
			continue
		}
		ts := tradeTimestamp(tr, sides)
		if ts <= 0 {
			n.sink.Skip("missing_timestamp", fmt.Sprintf("trade %s has no usable timestamp", tr.ID.String()))
			continue
		}
		id := tr.ID.String()
		if id == "" {
			id = derivedTradeID(sides, ts)
		}

		for i, side := range sides {
			var playersOut []string
			for j, other := range sides {
				if j == i {
					continue
				}
				playersOut = append(playersOut, other.players...)
			}
			out = append(out, Event{
				Type:        Trade,
				TimestampMS: ts,
				TeamID:      side.teamID,
				PlayersIn:   append([]string(nil), side.players...),
				PlayersOut:  playersOut,
				TradeID:     id,
				TradeTS:     ts,
				PickOnly:    len(side.players) == 0 && len(playersOut) == 0,
			})
		}
	}
	return out
}

type side struct {
	teamID string
	// players received by this side; picks are not player assets
	players []string
	// earliestGameMS is the fallback timestamp source
	earliestGameMS int64
}

func tradeSides(tr platform.Trade) []side {
	var sides []side
	for _, raw := range tr.Teams {
		if raw.Team == nil || raw.Team.ID.String() == "" {
			continue
		}
		s := side{teamID: raw.Team.ID.String()}
		for _, p := range raw.PlayersObtained {
			if p.ProPlayer == nil || p.ProPlayer.ID.String() == "" {
				continue
			}
			s.players = append(s.players, p.ProPlayer.ID.String())
			for _, g := range p.RequestedGames {
				start := g.Period.StartEpochMilli.Int64()
				if start > 0 && (s.earliestGameMS == 0 || start < s.earliestGameMS) {
					s.earliestGameMS = start
				}
			}
		}
		sides = append(sides, s)
	}
	return sides
}

// tradeTimestamp takes the earliest of the platform's explicit trade
// timestamps, falling back to the earliest requested-game start across all
// sides.
func tradeTimestamp(tr platform.Trade, sides []side) int64 {
	explicit := int64(0)
	for _, n := range []platform.Num{tr.ApprovedOn, tr.ExecutionTimeEpochMilli, tr.ProposedOn} {
		if ts := n.Int64(); ts > 0 && (explicit == 0 || ts < explicit) {
			explicit = ts
		}
	}
	if explicit > 0 {
		return explicit
	}
	earliest := int64(0)
	for _, s := range sides {
		if s.earliestGameMS > 0 && (earliest == 0 || s.earliestGameMS < earliest) {
			earliest = s.earliestGameMS
		}
	}
	return earliest
}

func derivedTradeID(sides []side, ts int64) string {
	teams := make([]string, 0, len(sides))
	for _, s := range sides {
		teams = append(teams, s.teamID)
	}
	sort.Strings(teams)
	seed := fmt.Sprintf("%d|%s", ts, strings.Join(teams, ","))
	return uuid.NewSHA1(tradeIDSpace, []byte(seed)).String()
}
