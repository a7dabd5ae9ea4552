package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/leaguewire/gridreport/internal/persistence"
)

// summaryRepo implements SummaryRepo for PostgreSQL.
type summaryRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewSummaryRepo creates a PostgreSQL weekly summary repository.
func NewSummaryRepo(db *sqlx.DB, timeout time.Duration) persistence.SummaryRepo {
	return &summaryRepo{db: db, timeout: timeout}
}

// UpsertBatch writes a run's summary rows atomically. Rows for a
// (season, week, team) already present are replaced, so re-running a report
// week is safe.
func (r *summaryRepo) UpsertBatch(ctx context.Context, summaries []persistence.WeeklySummary) error {
	if len(summaries) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO weekly_summaries (season, week, team_id, adds, claims, drops, trades)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (season, week, team_id) DO UPDATE
		SET adds = EXCLUDED.adds, claims = EXCLUDED.claims,
		    drops = EXCLUDED.drops, trades = EXCLUDED.trades`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, s := range summaries {
		if _, err := stmt.ExecContext(ctx,
			s.Season, s.Week, s.TeamID, s.Adds, s.Claims, s.Drops, s.Trades); err != nil {
			return fmt.Errorf("failed to upsert summary for week %d team %s: %w", s.Week, s.TeamID, err)
		}
	}

	return tx.Commit()
}

// ListBySeason retrieves every archived summary row for a season, ordered by
// week then team.
func (r *summaryRepo) ListBySeason(ctx context.Context, season int) ([]persistence.WeeklySummary, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, season, week, team_id, adds, claims, drops, trades, created_at
		FROM weekly_summaries
		WHERE season = $1
		ORDER BY week, team_id`

	var out []persistence.WeeklySummary
	if err := r.db.SelectContext(ctx, &out, query, season); err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	return out, nil
}
