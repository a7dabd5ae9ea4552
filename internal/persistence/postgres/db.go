// Package postgres implements the report archive repositories on PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/leaguewire/gridreport/internal/persistence"
)

const defaultQueryTimeout = 10 * time.Second

// Open connects to the archive database and returns the repository bundle.
func Open(ctx context.Context, dsn string) (*persistence.Archive, *sqlx.DB, error) {
	if dsn == "" {
		return nil, nil, fmt.Errorf("archive DSN is required")
	}

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	archive := &persistence.Archive{
		Summaries: NewSummaryRepo(db, defaultQueryTimeout),
		Ledger:    NewLedgerRepo(db, defaultQueryTimeout),
	}
	return archive, db, nil
}
