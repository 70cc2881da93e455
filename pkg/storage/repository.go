package storage

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"nhlpxp/pkg/errors"
	"nhlpxp/pkg/logger"
	"nhlpxp/pkg/nhl"
)

// Repository persists games, events and collection progress into a
// single SQLite file.
type Repository struct {
	db     *sql.DB
	logger logger.Logger
}

// Open opens (creating if necessary) the SQLite database at path
func Open(path string, log logger.Logger) (*Repository, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStorage(fmt.Sprintf("failed to open database %s", path), err)
	}

	// The ingestion loop is single-threaded; one connection avoids
	// SQLITE_BUSY between the upsert and ledger write paths.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, errors.NewStorage("failed to enable WAL mode", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, errors.NewStorage("failed to enable foreign keys", err)
	}

	log.DebugWithFields("database opened", map[string]interface{}{
		"path": path,
	})

	return &Repository{db: db, logger: log}, nil
}

// Close closes the underlying database
func (r *Repository) Close() error {
	return r.db.Close()
}

// DB exposes the underlying handle for read-only query helpers
func (r *Repository) DB() *sql.DB {
	return r.db
}

// InitializeSchema idempotently ensures all tables and indexes exist.
// Safe to call on every process start.
func (r *Repository) InitializeSchema() error {
	if _, err := r.db.Exec(Schema); err != nil {
		return errors.NewStorage("failed to initialize schema", err)
	}
	return nil
}

// GameExists reports whether a game row exists for the identifier
func (r *Repository) GameExists(gameID int) (bool, error) {
	var one int
	err := r.db.QueryRow("SELECT 1 FROM games WHERE game_id = ?", gameID).Scan(&one)
	if stderrors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.NewStorage(fmt.Sprintf("failed to check game %d", gameID), err)
	}
	return true, nil
}

// UpsertGameAndEvents writes the game row and all of its event rows in
// a single transaction. Re-running with the same identifier overwrites
// scalar fields in place and never duplicates rows, so a crash at any
// point is repaired by the next attempt.
func (r *Repository) UpsertGameAndEvents(gameID int, gameLog *nhl.GameLog, raw []byte) error {
	tx, err := r.db.Begin()
	if err != nil {
		return errors.NewStorage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	gameDate := gameLog.GameData.Datetime.DateTime
	if len(gameDate) >= 10 {
		gameDate = gameDate[:10]
	}
	home := gameLog.GameData.Teams.Home
	away := gameLog.GameData.Teams.Away

	if _, err := tx.Exec(upsertGameSQL,
		gameID,
		gameDate,
		gameLog.GameData.Game.Season,
		gameLog.GameData.Game.Type,
		home.ID,
		away.ID,
		home.Name,
		away.Name,
		string(raw),
	); err != nil {
		return errors.NewStorage(fmt.Sprintf("failed to upsert game %d", gameID), err)
	}

	stmt, err := tx.Prepare(upsertEventSQL)
	if err != nil {
		return errors.NewStorage("failed to prepare event upsert", err)
	}
	defer stmt.Close()

	for i := range gameLog.LiveData.Plays.AllPlays {
		play := &gameLog.LiveData.Plays.AllPlays[i]

		var player1, player2 *int
		if len(play.Players) > 0 && play.Players[0].Player != nil {
			player1 = &play.Players[0].Player.ID
		}
		if len(play.Players) > 1 && play.Players[1].Player != nil {
			player2 = &play.Players[1].Player.ID
		}

		var teamID *int
		var teamName *string
		if play.Team != nil {
			teamID = play.Team.ID
			teamName = play.Team.Name
		}

		var x, y *float64
		if play.Coordinates != nil {
			x = play.Coordinates.X
			y = play.Coordinates.Y
		}

		playRaw, err := json.Marshal(play)
		if err != nil {
			return errors.NewStorage(fmt.Sprintf("failed to encode event %d of game %d", play.About.EventIdx, gameID), err)
		}

		if _, err := stmt.Exec(
			gameID,
			play.About.EventIdx,
			play.About.Period,
			play.About.PeriodTime,
			play.Result.EventTypeID,
			teamID,
			teamName,
			player1,
			player2,
			play.Result.Description,
			x,
			y,
			string(playRaw),
		); err != nil {
			return errors.NewStorage(fmt.Sprintf("failed to upsert event %d of game %d", play.About.EventIdx, gameID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorage(fmt.Sprintf("failed to commit game %d", gameID), err)
	}

	r.logger.DebugWithFields("game upserted", map[string]interface{}{
		"game_id": gameID,
		"events":  len(gameLog.LiveData.Plays.AllPlays),
	})

	return nil
}

// MarkDateCollected records a completed date in the collection ledger,
// replacing any earlier row for the same date and stamping the
// completion time. A date without this stamp is treated as not
// collected and re-attempted on the next run.
func (r *Repository) MarkDateCollected(date time.Time, gamesFound, gamesCollected int) error {
	_, err := r.db.Exec(
		"INSERT OR REPLACE INTO collection_log (date, games_found, games_collected, completed_at) VALUES (?, ?, ?, ?)",
		date.Format("2006-01-02"),
		gamesFound,
		gamesCollected,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return errors.NewStorage(fmt.Sprintf("failed to mark date %s collected", date.Format("2006-01-02")), err)
	}
	return nil
}

// LastCollectedDate returns the maximum fully-collected date, or ok
// false when the ledger has no completed rows.
func (r *Repository) LastCollectedDate() (time.Time, bool, error) {
	var dateStr sql.NullString
	err := r.db.QueryRow("SELECT MAX(date) FROM collection_log WHERE completed_at IS NOT NULL").Scan(&dateStr)
	if err != nil {
		return time.Time{}, false, errors.NewStorage("failed to read last collected date", err)
	}
	if !dateStr.Valid {
		return time.Time{}, false, nil
	}

	d, err := time.Parse("2006-01-02", dateStr.String)
	if err != nil {
		return time.Time{}, false, errors.NewStorage(fmt.Sprintf("malformed ledger date %q", dateStr.String), err)
	}
	return d, true, nil
}

// IsDateRangeCollected reports whether every calendar day in the
// inclusive range has a completed ledger row.
func (r *Repository) IsDateRangeCollected(start, end time.Time) (bool, error) {
	// Count civil days, not wall-clock duration: a daylight-saving
	// transition makes the span a non-multiple of 24 hours.
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	totalDays := int(endDay.Sub(startDay).Hours()/24) + 1

	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM collection_log WHERE date >= ? AND date <= ? AND completed_at IS NOT NULL",
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	).Scan(&count)
	if err != nil {
		return false, errors.NewStorage("failed to count collected dates", err)
	}

	return count == totalDays, nil
}
