package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/leaguewire/gridreport/internal/persistence"
)

// ledgerRepo implements LedgerRepo for PostgreSQL.
type ledgerRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewLedgerRepo creates a PostgreSQL ledger snapshot repository.
func NewLedgerRepo(db *sqlx.DB, timeout time.Duration) persistence.LedgerRepo {
	return &ledgerRepo{db: db, timeout: timeout}
}

// InsertSnapshots stores one run's ledger state. A duplicate
// (season, report_week, trade_id) means the week was already archived.
func (r *ledgerRepo) InsertSnapshots(ctx context.Context, snaps []persistence.LedgerSnapshot) error {
	if len(snaps) == 0 {
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
		INSERT INTO ledger_snapshots (season, report_week, trade_id, execution_week, per_team_net)
		VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, snap := range snaps {
		netJSON, err := json.Marshal(snap.PerTeamNet)
		if err != nil {
			return fmt.Errorf("failed to marshal per-team net: %w", err)
		}
		_, err = stmt.ExecContext(ctx,
			snap.Season, snap.ReportWeek, snap.TradeID, snap.ExecutionWeek, netJSON)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return fmt.Errorf("ledger snapshot already archived for week %d trade %s: %w",
					snap.ReportWeek, snap.TradeID, err)
			}
			return fmt.Errorf("failed to insert ledger snapshot: %w", err)
		}
	}

	return tx.Commit()
}

// ListAsOf retrieves the archived ledger state for one report week.
func (r *ledgerRepo) ListAsOf(ctx context.Context, season, reportWeek int) ([]persistence.LedgerSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, season, report_week, trade_id, execution_week, per_team_net, created_at
		FROM ledger_snapshots
		WHERE season = $1 AND report_week = $2
		ORDER BY execution_week, trade_id`

	rows, err := r.db.QueryxContext(ctx, query, season, reportWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger snapshots: %w", err)
	}
	defer rows.Close()

	var out []persistence.LedgerSnapshot
	for rows.Next() {
		var snap persistence.LedgerSnapshot
		var netJSON []byte
		if err := rows.Scan(&snap.ID, &snap.Season, &snap.ReportWeek, &snap.TradeID,
			&snap.ExecutionWeek, &netJSON, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger snapshot: %w", err)
		}
		if len(netJSON) > 0 {
			if err := json.Unmarshal(netJSON, &snap.PerTeamNet); err != nil {
				return nil, fmt.Errorf("failed to unmarshal per-team net: %w", err)
			}
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}
