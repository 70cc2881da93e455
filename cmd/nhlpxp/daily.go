package main

import (
	"time"

	"github.com/spf13/cobra"

	"nhlpxp/pkg/scraper"
)

// dailyCmd collects yesterday's games. It always re-fetches: yesterday's
// log is final by now and supersedes any in-progress snapshot captured
// while games were still running.
var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Collect the previous calendar day's games",
	Example: `  # Nightly cron entry
  nhlpxp daily -d pxp.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yesterday := time.Now().AddDate(0, 0, -1)
		return runScrape(cmd, func(s *scraper.Scraper) (scraper.Stats, error) {
			return s.RunDailyUpdate(yesterday)
		})
	},
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}
