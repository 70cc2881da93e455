package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nhlpxp/pkg/logger"
	"nhlpxp/pkg/storage"
)

var maxTOISeconds int

// auditCmd runs the advisory data-quality checks over the persisted
// player statistics. Findings are reported, never raised as errors.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report data-quality findings over persisted player stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := storage.Open(cfg.Database.Path, logger.GetLogger())
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := repo.InitializeStatsSchema(); err != nil {
			return err
		}

		report, err := repo.ValidateStatsQuality(maxTOISeconds)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "duplicate_player_game_rows=%d\n", report.DuplicatePlayerGameRows)
		fmt.Fprintf(out, "negative_toi_rows=%d\n", report.NegativeTOIRows)
		fmt.Fprintf(out, "toi_above_max_rows=%d\n", report.TOIAboveMaxRows)
		fmt.Fprintf(out, "invalid_position_group_rows=%d\n", report.InvalidPositionGroupRows)
		if report.Clean() {
			fmt.Fprintln(out, "no findings")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().IntVar(&maxTOISeconds, "max-toi", 3600, "sane per-game time-on-ice ceiling in seconds")
}
