package scraper

import (
	"fmt"
	"time"

	"nhlpxp/pkg/errors"
	"nhlpxp/pkg/logger"
)

// Stats aggregates the outcome of a run
type Stats struct {
	DatesScanned  int
	GameIDsFound  int
	GamesUpserted int
	GamesSkipped  int
}

func (s Stats) String() string {
	return fmt.Sprintf("dates_scanned=%d game_ids_found=%d games_upserted=%d games_skipped=%d",
		s.DatesScanned, s.GameIDsFound, s.GamesUpserted, s.GamesSkipped)
}

// Scraper walks a date range, discovers games and drives the fetch +
// upsert cycle. Processing is strictly sequential: one date, one game
// at a time. The only suspension point is the rate limiter's sleep
// inside the game-log fetch.
type Scraper struct {
	api    APIClient
	repo   Repository
	logger logger.Logger
}

// New creates a Scraper
func New(api APIClient, repo Repository, log logger.Logger) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Scraper{api: api, repo: repo, logger: log}
}

// Backfill collects every date from start to end inclusive. With
// skipExisting, games already persisted are not re-fetched, which makes
// re-running over a partially-collected day cheap. Each date is marked
// in the collection ledger only after all of its games are processed;
// an error on any game leaves the date unmarked, so the next run's
// resume logic retries it.
func (s *Scraper) Backfill(start, end time.Time, skipExisting bool) (Stats, error) {
	var stats Stats

	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return stats, errors.NewInvalidRange(fmt.Sprintf(
			"end date %s is before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02")))
	}

	if err := s.repo.InitializeSchema(); err != nil {
		return stats, err
	}

	s.logger.InfoWithFields("starting backfill", map[string]interface{}{
		"start":         start.Format("2006-01-02"),
		"end":           end.Format("2006-01-02"),
		"skip_existing": skipExisting,
	})

	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		if err := s.collectDate(current, skipExisting, &stats); err != nil {
			return stats, err
		}
	}

	s.logger.InfoWithFields("backfill finished", map[string]interface{}{
		"dates_scanned":  stats.DatesScanned,
		"game_ids_found": stats.GameIDsFound,
		"games_upserted": stats.GamesUpserted,
		"games_skipped":  stats.GamesSkipped,
	})

	return stats, nil
}

// collectDate processes one calendar day and marks it in the ledger
func (s *Scraper) collectDate(date time.Time, skipExisting bool, stats *Stats) error {
	stats.DatesScanned++

	gameIDs, err := s.api.GameIDsForDate(date)
	if err != nil {
		return err
	}
	stats.GameIDsFound += len(gameIDs)

	collected := 0
	for _, gameID := range gameIDs {
		if skipExisting {
			exists, err := s.repo.GameExists(gameID)
			if err != nil {
				return err
			}
			if exists {
				stats.GamesSkipped++
				collected++
				continue
			}
		}

		gameLog, raw, err := s.api.GameLog(gameID)
		if err != nil {
			return err
		}
		if err := s.repo.UpsertGameAndEvents(gameID, gameLog, raw); err != nil {
			return err
		}
		stats.GamesUpserted++
		collected++
	}

	if err := s.repo.MarkDateCollected(date, len(gameIDs), collected); err != nil {
		return err
	}

	s.logger.DebugWithFields("date collected", map[string]interface{}{
		"date":      date.Format("2006-01-02"),
		"found":     len(gameIDs),
		"collected": collected,
	})

	return nil
}

// RunDailyUpdate collects a single date without skip checks. A daily
// run targets yesterday's now-final game log, so it always re-fetches
// rather than trusting an earlier in-progress snapshot.
func (s *Scraper) RunDailyUpdate(date time.Time) (Stats, error) {
	return s.Backfill(date, date, false)
}

// ResumeFrom computes where an interrupted backfill should restart:
// the day after the last fully-collected date, never earlier than the
// configured start. Within-day game-level skip checks still
// short-circuit redundant fetches on partially-completed days.
func (s *Scraper) ResumeFrom(configuredStart time.Time) (time.Time, error) {
	configuredStart = truncateToDay(configuredStart)

	last, ok, err := s.repo.LastCollectedDate()
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return configuredStart, nil
	}

	next := last.AddDate(0, 0, 1)
	if next.After(configuredStart) {
		return next, nil
	}
	return configuredStart, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
