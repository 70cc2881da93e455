package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nhlpxp/pkg/logger"
	"nhlpxp/pkg/nhl"
	"nhlpxp/pkg/ratelimit"
	"nhlpxp/pkg/scraper"
	"nhlpxp/pkg/storage"
)

var (
	startDate string
	endDate   string
	noResume  bool
	refetch   bool
)

// backfillCmd collects a historical date range
var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Collect play-by-play data for a historical date range",
	Long: `Walk every calendar day from the start date to the end date, discover
the games scheduled each day and fetch their play-by-play logs under
the configured rate limit.

Runs are resumable: unless --no-resume is given, collection restarts
from the day after the last fully-collected date in the ledger. Games
already persisted are skipped unless --refetch is given.`,
	Example: `  # Backfill the full history into the default database
  nhlpxp backfill

  # Backfill one season into a specific file
  nhlpxp backfill -d pxp.db --start-date 2018-09-01 --end-date 2019-07-01

  # Re-fetch everything in the range, ignoring existing rows
  nhlpxp backfill --start-date 2023-01-01 --end-date 2023-01-31 --refetch --no-resume`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("start-date") && cfg.Scrape.StartDate != "" {
			startDate = cfg.Scrape.StartDate
		}
		skipExisting := cfg.Scrape.SkipExisting && !refetch

		start, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", startDate, err)
		}
		end, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return fmt.Errorf("invalid end date %q: %w", endDate, err)
		}

		return runScrape(cmd, func(s *scraper.Scraper) (scraper.Stats, error) {
			if !noResume {
				resumed, err := s.ResumeFrom(start)
				if err != nil {
					return scraper.Stats{}, err
				}
				if !resumed.Equal(start) {
					logger.GetLogger().InfoWithFields("resuming from ledger", map[string]interface{}{
						"configured_start": start.Format("2006-01-02"),
						"resume_from":      resumed.Format("2006-01-02"),
					})
					start = resumed
				}
				if start.After(end) {
					logger.GetLogger().Info("date range already fully collected")
					return scraper.Stats{}, nil
				}
			}
			return s.Backfill(start, end, skipExisting)
		})
	},
}

func init() {
	rootCmd.AddCommand(backfillCmd)

	backfillCmd.Flags().StringVar(&startDate, "start-date", "2007-09-01", "first date to collect (YYYY-MM-DD)")
	backfillCmd.Flags().StringVar(&endDate, "end-date", time.Now().Format("2006-01-02"), "last date to collect (YYYY-MM-DD)")
	backfillCmd.Flags().BoolVar(&noResume, "no-resume", false, "ignore the ledger and start from --start-date")
	backfillCmd.Flags().BoolVar(&refetch, "refetch", false, "re-fetch games that are already persisted")
}

// runScrape wires the client, limiter and repository together, runs the
// defensive legacy migration, executes the given run and prints its
// statistics on stdout.
func runScrape(cmd *cobra.Command, run func(*scraper.Scraper) (scraper.Stats, error)) error {
	log := logger.GetLogger()

	repo, err := storage.Open(cfg.Database.Path, log)
	if err != nil {
		return err
	}
	defer repo.Close()

	// Repair any tables left behind by the old ingestion path before
	// new writes land next to them.
	migrated, err := repo.DeduplicateLegacyTables()
	if err != nil {
		return err
	}
	if migrated > 0 {
		log.InfoWithFields("migrated legacy tables", map[string]interface{}{
			"tables": migrated,
		})
	}

	limiter := ratelimit.NewInterval(cfg.RateLimit.GameLogInterval)
	client := nhl.NewClient(cfg.API.BaseURL, cfg.API.RequestTimeout, limiter, log)

	stats, err := run(scraper.New(client, repo, log))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), stats)
	return nil
}
