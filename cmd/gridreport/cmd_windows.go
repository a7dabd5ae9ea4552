package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/leaguewire/gridreport/internal/cache"
	"github.com/leaguewire/gridreport/internal/diag"
	"github.com/leaguewire/gridreport/internal/platform"
	"github.com/leaguewire/gridreport/internal/schedule"
)

// windowsCmd prints the derived week window table, an audit aid for
// attribution questions.
var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "Print the season's week window table",
	Long: `Derive and print the Tuesday-to-Tuesday week windows used for
transaction attribution. The start epoch comes from the flag when set,
otherwise from the league's first scoreboard.

Examples:
  gridreport windows --season 2025 --start-epoch-ms 1756771200000 --weeks 14
  gridreport windows --config league.yaml`,
	RunE: runWindowsCommand,
}

var (
	windowsSeason  int
	windowsStartMS int64
	windowsWeeks   int
)

func init() {
	rootCmd.AddCommand(windowsCmd)

	windowsCmd.Flags().IntVar(&windowsSeason, "season", 0, "Season year (overrides config)")
	windowsCmd.Flags().Int64Var(&windowsStartMS, "start-epoch-ms", 0, "Season start epoch in ms UTC (overrides config and scoreboard)")
	windowsCmd.Flags().IntVar(&windowsWeeks, "weeks", 0, "Number of weeks (overrides config)")
}

func runWindowsCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if windowsSeason > 0 {
		cfg.League.Season = windowsSeason
	}
	if windowsStartMS > 0 {
		cfg.League.StartEpochMS = windowsStartMS
	}
	if windowsWeeks > 0 {
		cfg.League.NumWeeks = windowsWeeks
	}

	startMS := cfg.League.StartEpochMS
	if startMS <= 0 {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		client := platform.NewClient(platform.ClientOptions{
			BaseURL: cfg.API.BaseURL,
			RPS:     cfg.API.RPS,
			Burst:   cfg.API.Burst,
			Retries: cfg.API.Retries,
			Cache:   cache.NewMemory(),
		}, cfg.League.LeagueID, cfg.League.Season)
		sb, err := client.Scoreboard(ctx, cfg.League.StartWeek)
		if err != nil {
			return fmt.Errorf("failed to fetch scoreboard: %w", err)
		}
		startMS = sb.SchedulePeriod.Low.StartEpochMilli.Int64()
	}

	windows, err := schedule.Build(cfg.League.Season, startMS, cfg.League.NumWeeks, diag.Nop())
	if err != nil {
		return err
	}

	fmt.Printf("Season %d week windows (UTC, end exclusive)\n", cfg.League.Season)
	for _, w := range windows {
		fmt.Printf("  week %2d  %s .. %s\n", w.Week,
			time.UnixMilli(w.StartMS).UTC().Format("2006-01-02 15:04"),
			time.UnixMilli(w.EndMS).UTC().Format("2006-01-02 15:04"))
	}
	log.Debug().Int("weeks", len(windows)).Msg("window table printed")
	return nil
}
