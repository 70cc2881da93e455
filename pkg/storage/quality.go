package storage

import (
	"nhlpxp/pkg/errors"
)

// statsSchema holds the dimension and per-player aggregate tables the
// downstream analytics read from. They are populated by separate
// processing jobs; this package only guarantees their shape.
const statsSchema = `
CREATE TABLE IF NOT EXISTS players (
	player_id INTEGER PRIMARY KEY,
	first_name TEXT,
	last_name TEXT,
	shoots_catches TEXT,
	position TEXT,
	team_id INTEGER
);

CREATE TABLE IF NOT EXISTS teams (
	team_id INTEGER PRIMARY KEY,
	team_abbrev TEXT,
	team_name TEXT
);

CREATE TABLE IF NOT EXISTS player_game_stats (
	player_id INTEGER NOT NULL,
	game_id INTEGER NOT NULL,
	team_id INTEGER,
	position_group TEXT NOT NULL,
	toi_seconds INTEGER NOT NULL DEFAULT 0,
	goals INTEGER NOT NULL DEFAULT 0,
	assists INTEGER NOT NULL DEFAULT 0,
	shots INTEGER NOT NULL DEFAULT 0,
	blocks INTEGER NOT NULL DEFAULT 0,
	hits INTEGER NOT NULL DEFAULT 0,
	penalties_drawn INTEGER NOT NULL DEFAULT 0,
	penalties_taken INTEGER NOT NULL DEFAULT 0,
	faceoff_wins INTEGER NOT NULL DEFAULT 0,
	faceoff_losses INTEGER NOT NULL DEFAULT 0,
	xgf REAL NOT NULL DEFAULT 0,
	xga REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (player_id, game_id)
);

CREATE INDEX IF NOT EXISTS idx_player_game_stats_game_id ON player_game_stats(game_id);
CREATE INDEX IF NOT EXISTS idx_player_game_stats_position_group_game_id ON player_game_stats(position_group, game_id);

CREATE TABLE IF NOT EXISTS player_game_features (
	player_id INTEGER NOT NULL,
	game_id INTEGER NOT NULL,
	season TEXT,
	game_number_for_player INTEGER,
	toi_rank_pos_5g REAL,
	toi_rank_pos_10g REAL,
	toi_rolling_mean_5g REAL,
	points_rolling_10g REAL,
	feature_set_version TEXT DEFAULT 'v1',
	PRIMARY KEY (player_id, game_id)
);
`

// QualityReport summarizes data-quality findings over the persisted
// player stats. Findings are advisory, not errors: they feed periodic
// audits, never abort a run.
type QualityReport struct {
	DuplicatePlayerGameRows  int
	NegativeTOIRows          int
	TOIAboveMaxRows          int
	InvalidPositionGroupRows int
}

// Clean reports whether the audit found nothing to flag
func (q QualityReport) Clean() bool {
	return q.DuplicatePlayerGameRows == 0 &&
		q.NegativeTOIRows == 0 &&
		q.TOIAboveMaxRows == 0 &&
		q.InvalidPositionGroupRows == 0
}

// InitializeStatsSchema idempotently ensures the analytics tables exist
func (r *Repository) InitializeStatsSchema() error {
	if _, err := r.db.Exec(statsSchema); err != nil {
		return errors.NewStorage("failed to initialize stats schema", err)
	}
	return nil
}

// ValidateStatsQuality audits the player_game_stats table for duplicate
// keys, out-of-bound time-on-ice values and unrecognized position
// groups. maxTOISeconds is the sane per-game ceiling (a full game is
// 3600 seconds plus overtime).
func (r *Repository) ValidateStatsQuality(maxTOISeconds int) (QualityReport, error) {
	var report QualityReport

	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM (
			SELECT player_id, game_id
			FROM player_game_stats
			GROUP BY player_id, game_id
			HAVING COUNT(*) > 1
		)`).Scan(&report.DuplicatePlayerGameRows)
	if err != nil {
		return report, errors.NewStorage("failed to count duplicate stat rows", err)
	}

	err = r.db.QueryRow("SELECT COUNT(*) FROM player_game_stats WHERE toi_seconds < 0").
		Scan(&report.NegativeTOIRows)
	if err != nil {
		return report, errors.NewStorage("failed to count negative TOI rows", err)
	}

	err = r.db.QueryRow("SELECT COUNT(*) FROM player_game_stats WHERE toi_seconds > ?", maxTOISeconds).
		Scan(&report.TOIAboveMaxRows)
	if err != nil {
		return report, errors.NewStorage("failed to count out-of-bound TOI rows", err)
	}

	err = r.db.QueryRow("SELECT COUNT(*) FROM player_game_stats WHERE position_group NOT IN ('F', 'D', 'G')").
		Scan(&report.InvalidPositionGroupRows)
	if err != nil {
		return report, errors.NewStorage("failed to count invalid position groups", err)
	}

	return report, nil
}
