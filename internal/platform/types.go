// Package platform talks to the fantasy platform's public JSON API and
// exposes the raw record shapes the normalizer consumes. Numeric fields come
// back inconsistently as strings or numbers, hence Num throughout.
package platform

// Scoreboard is one week's FetchLeagueScoreboard response.
type Scoreboard struct {
	Games          []Game         `json:"games"`
	SchedulePeriod SchedulePeriod `json:"schedulePeriod"`
}

// SchedulePeriod carries the scoring period ordinal and its start epoch.
type SchedulePeriod struct {
	Value int         `json:"value"`
	Low   PeriodBound `json:"low"`
}

// PeriodBound is the low edge of a schedule period.
type PeriodBound struct {
	StartEpochMilli Num `json:"startEpochMilli"`
}

// Game is a single scoreboard matchup.
type Game struct {
	Home       TeamRef   `json:"home"`
	Away       TeamRef   `json:"away"`
	HomeScore  GameScore `json:"homeScore"`
	AwayScore  GameScore `json:"awayScore"`
	HomeResult string    `json:"homeResult"`
	AwayResult string    `json:"awayResult"`
	FinalScore bool      `json:"isFinalScore"`
}

// GameScore wraps the platform's nested score value.
type GameScore struct {
	Score FormattedValue `json:"score"`
}

// FormattedValue is the platform's {value, formatted} pair.
type FormattedValue struct {
	Value float64 `json:"value"`
}

// Standings is the FetchLeagueStandings response.
type Standings struct {
	League    LeagueInfo `json:"league"`
	Divisions []Division `json:"divisions"`
}

// LeagueInfo is league metadata from the standings payload.
type LeagueInfo struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Division groups teams in the standings payload.
type Division struct {
	ID    Num       `json:"id"`
	Name  string    `json:"name"`
	Teams []TeamRef `json:"teams"`
}

// TeamRef identifies a league team.
type TeamRef struct {
	ID   Num    `json:"id"`
	Name string `json:"name"`
}

// ActivityPage is one page of the league activity feed.
type ActivityPage struct {
	Items            []ActivityItem `json:"items"`
	ResultOffsetNext Num            `json:"resultOffsetNext"`
}

// ActivityItem is a single timestamped feed entry.
type ActivityItem struct {
	TimeEpochMilli Num          `json:"timeEpochMilli"`
	Transaction    *Transaction `json:"transaction"`
}

// Transaction is the add/claim/drop/trade payload of an activity item.
// Type is empty for some legacy records; those normalize to an add.
type Transaction struct {
	Type    string        `json:"type"`
	Team    *TeamRef      `json:"team"`
	Player  *PlayerBlock  `json:"player"`
	Players []PlayerBlock `json:"players"`
}

// PlayerBlock wraps a pro player plus the games the transaction requested.
type PlayerBlock struct {
	ProPlayer      *ProPlayer      `json:"proPlayer"`
	RequestedGames []RequestedGame `json:"requestedGames"`
}

// ProPlayer is the platform's player identity record.
type ProPlayer struct {
	ID                  Num      `json:"id"`
	NameFull            string   `json:"nameFull"`
	Position            string   `json:"position"`
	PositionEligibility []string `json:"positionEligibility"`
	ProTeam             ProTeam  `json:"proTeam"`
}

// ProTeam is the player's NFL team.
type ProTeam struct {
	Abbreviation string `json:"abbreviation"`
}

// RequestedGame ties a transaction to a scoring period.
type RequestedGame struct {
	Period Period `json:"period"`
}

// Period is a scoring period reference.
type Period struct {
	Ordinal         int `json:"ordinal"`
	StartEpochMilli Num `json:"startEpochMilli"`
}

// TradesPage is one page of FetchTrades.
type TradesPage struct {
	Trades           []Trade `json:"trades"`
	ResultOffsetNext Num     `json:"resultOffsetNext"`
}

// Trade is a completed trade with one entry per participating team.
type Trade struct {
	ID                      Num         `json:"id"`
	ApprovedOn              Num         `json:"approvedOn"`
	ProposedOn              Num         `json:"proposedOn"`
	ExecutionTimeEpochMilli Num         `json:"executionTimeEpochMilli"`
	Teams                   []TradeSide `json:"teams"`
}

// TradeSide is one team's half of a trade: what it obtained.
type TradeSide struct {
	Team            *TeamRef      `json:"team"`
	PlayersObtained []PlayerBlock `json:"playersObtained"`
	PicksObtained   []DraftPick   `json:"picksObtained"`
}

// DraftPick is a traded draft-pick asset.
type DraftPick struct {
	Season Num `json:"season"`
	Slot   Num `json:"slot"`
}

// TransactionsPage is one page of per-team FetchLeagueTransactions.
type TransactionsPage struct {
	Items            []ActivityItem `json:"items"`
	ResultOffsetNext Num            `json:"resultOffsetNext"`
}

// Roster is a team's FetchRoster response for one week.
type Roster struct {
	Groups []RosterGroup `json:"groups"`
}

// RosterGroup is a positional grouping of roster slots.
type RosterGroup struct {
	Slots []RosterSlot `json:"slots"`
}

// RosterSlot is one lineup slot; LeaguePlayer is nil for empty slots.
type RosterSlot struct {
	Position     PositionLabel `json:"position"`
	LeaguePlayer *LeaguePlayer `json:"leaguePlayer"`
}

// PositionLabel is the slot's display label (QB, RB, BN, ...).
type PositionLabel struct {
	Label string `json:"label"`
}

// LeaguePlayer joins a pro player to its in-league scoring.
type LeaguePlayer struct {
	ProPlayer           *ProPlayer     `json:"proPlayer"`
	ViewingActualPoints FormattedValue `json:"viewingActualPoints"`
	Owner               *TeamRef       `json:"owner"`
}

// PlayerListingPage is one page of the free-agent listing.
type PlayerListingPage struct {
	Players          []LeaguePlayer `json:"players"`
	ResultOffsetNext Num            `json:"resultOffsetNext"`
}
