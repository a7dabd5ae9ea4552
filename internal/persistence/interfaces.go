// Package persistence defines the optional report archive: weekly summaries
// and trade-ledger snapshots written after each successful run so prior weeks
// can be queried without regenerating reports.
package persistence

import (
	"context"
	"time"
)

// WeeklySummary is one archived (season, week, team) transaction line.
type WeeklySummary struct {
	ID        int64     `json:"id" db:"id"`
	Season    int       `json:"season" db:"season"`
	Week      int       `json:"week" db:"week"`
	TeamID    string    `json:"team_id" db:"team_id"`
	Adds      int       `json:"adds" db:"adds"`
	Claims    int       `json:"claims" db:"claims"`
	Drops     int       `json:"drops" db:"drops"`
	Trades    int       `json:"trades" db:"trades"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LedgerSnapshot is one trade's carry-forward state as of a report week.
type LedgerSnapshot struct {
	ID            int64  `json:"id" db:"id"`
	Season        int    `json:"season" db:"season"`
	ReportWeek    int    `json:"report_week" db:"report_week"`
	TradeID       string `json:"trade_id" db:"trade_id"`
	ExecutionWeek int    `json:"execution_week" db:"execution_week"`
	// PerTeamNet is the signed net per team, stored as JSONB.
	PerTeamNet map[string]float64 `json:"per_team_net" db:"-"`
	CreatedAt  time.Time          `json:"created_at" db:"created_at"`
}

// SummaryRepo archives weekly transaction summaries. Re-running a report
// week replaces that week's rows.
type SummaryRepo interface {
	UpsertBatch(ctx context.Context, summaries []WeeklySummary) error
	ListBySeason(ctx context.Context, season int) ([]WeeklySummary, error)
}

// LedgerRepo archives trade-ledger snapshots keyed by report week.
type LedgerRepo interface {
	InsertSnapshots(ctx context.Context, snaps []LedgerSnapshot) error
	ListAsOf(ctx context.Context, season, reportWeek int) ([]LedgerSnapshot, error)
}

// Archive bundles the repositories a run writes to.
type Archive struct {
	Summaries SummaryRepo
	Ledger    LedgerRepo
}
