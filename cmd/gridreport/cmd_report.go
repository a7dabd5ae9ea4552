package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/leaguewire/gridreport/internal/app"
	"github.com/leaguewire/gridreport/internal/cache"
	"github.com/leaguewire/gridreport/internal/diag"
	"github.com/leaguewire/gridreport/internal/persistence"
	"github.com/leaguewire/gridreport/internal/persistence/postgres"
	"github.com/leaguewire/gridreport/internal/platform"
)

// reportCmd generates the full weekly report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the weekly awards report for a league",
	Long: `Fetch the league's transactions, trades, rosters, and free agents,
attribute every move to a scoring week, and write the weekly report artifact.

Examples:
  gridreport report --league 123456 --season 2025 --week 4
  gridreport report --config league.yaml --week 7 --format json`,
	RunE: runReportCommand,
}

var (
	reportLeague     string
	reportSeason     int
	reportWeek       int
	reportFormat     string
	reportOutDir     string
	reportRedisAddr  string
	reportArchiveDSN string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportLeague, "league", "", "League ID (overrides config)")
	reportCmd.Flags().IntVar(&reportSeason, "season", 0, "Season year (overrides config)")
	reportCmd.Flags().IntVar(&reportWeek, "week", 0, "Report week (overrides config)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "", "Output format: md or json (overrides config)")
	reportCmd.Flags().StringVar(&reportOutDir, "out", "", "Output directory (overrides config)")
	reportCmd.Flags().StringVar(&reportRedisAddr, "redis", "", "Redis address for the API response cache")
	reportCmd.Flags().StringVar(&reportArchiveDSN, "archive-dsn", "", "Postgres DSN for the report archive")
}

func runReportCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if reportLeague != "" {
		cfg.League.LeagueID = reportLeague
	}
	if reportSeason > 0 {
		cfg.League.Season = reportSeason
	}
	if reportWeek > 0 {
		cfg.League.WeekForReport = reportWeek
	}
	if reportFormat != "" {
		cfg.Output.Format = reportFormat
	}
	if reportOutDir != "" {
		cfg.Output.Dir = reportOutDir
	}
	if reportRedisAddr != "" {
		cfg.Cache.RedisAddr = reportRedisAddr
	}
	if reportArchiveDSN != "" {
		cfg.Archive.DSN = reportArchiveDSN
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := platform.NewClient(platform.ClientOptions{
		BaseURL: cfg.API.BaseURL,
		RPS:     cfg.API.RPS,
		Burst:   cfg.API.Burst,
		Timeout: time.Duration(cfg.API.TimeoutSec) * time.Second,
		Retries: cfg.API.Retries,
		TTL:     time.Duration(cfg.API.TTLSecs) * time.Second,
		Cache:   cache.NewAuto(cfg.Cache.RedisAddr),
	}, cfg.League.LeagueID, cfg.League.Season)

	counters := &diag.Counters{}
	sink := diag.NewLogSink(log.Logger, counters)

	var archive *persistence.Archive
	if cfg.Archive.DSN != "" {
		arc, db, err := postgres.Open(ctx, cfg.Archive.DSN)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer db.Close()
		archive = arc
	}

	runner := app.NewRunner(cfg, client, sink, counters, archive, log.Logger)
	started := time.Now()
	data, path, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	totals := counters.Snapshot()
	log.Info().
		Int("season", data.Season).
		Int("week", data.Week).
		Str("artifact", path).
		Int("skipped", totals.Skipped).
		Int("overrides", totals.Overrides).
		Dur("elapsed", time.Since(started)).
		Msg("report complete")
	return nil
}
