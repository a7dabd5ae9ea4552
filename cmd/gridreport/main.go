package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leaguewire/gridreport/internal/config"
)

const (
	appName = "gridreport"
	version = "v1.2.0"
)

var rootCmd = &cobra.Command{
	Use:     appName,
	Short:   "Weekly fantasy league report generator",
	Version: version,
	Long: `gridreport builds the weekly awards report for a fantasy league:
free-agent pickups, drops, start/sit calls, trades, the season trade
leader, and the best-of-the-rest free-agent lineup.

Examples:
  gridreport report --league 123456 --season 2025 --week 4
  gridreport windows --season 2025 --start-epoch-ms 1756771200000 --weeks 14`,
}

var (
	flagConfig  string
	flagVerbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies logging level from flags.
func loadConfig() (config.Config, error) {
	if flagVerbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
