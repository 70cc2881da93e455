package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nhlpxp/pkg/config"
	"nhlpxp/pkg/logger"
)

var (
	version = "1.0.0"

	// Global flags
	configFile   string
	databasePath string
	logLevel     string

	// Effective configuration, built in PersistentPreRunE
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nhlpxp",
	Short: "NHL play-by-play collector and SQLite builder",
	Long: `nhlpxp collects NHL play-by-play data from the public stats API and
persists it into a single SQLite file for analytical queries.

Collection is incremental and resumable: each fully-processed date is
recorded in a ledger, game upserts are idempotent, and the expensive
per-game endpoint is rate limited. An interrupted multi-year backfill
picks up from the day after the last completed date.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		if databasePath != "" {
			cfg.Database.Path = databasePath
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		return logger.Initialize(&cfg.Logging)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&databasePath, "database", "d", "", "SQLite database path (default nhl_pxp.db)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
