package storage

// Schema defines the normalized play-by-play database structure. Events
// are keyed by (game_id, event_idx): the upstream's ordinal position is
// stable and is the natural sort key within a game. The raw payloads
// are kept alongside the extracted columns so future re-parses do not
// need to hit the network again.
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id INTEGER PRIMARY KEY,
	game_date TEXT,
	season TEXT,
	game_type TEXT,
	home_team_id INTEGER,
	away_team_id INTEGER,
	home_team_name TEXT,
	away_team_name TEXT,
	raw_json TEXT NOT NULL,
	inserted_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS events (
	game_id INTEGER NOT NULL,
	event_idx INTEGER NOT NULL,
	period INTEGER,
	period_time TEXT,
	event_type TEXT,
	team_id INTEGER,
	team_name TEXT,
	player_1_id INTEGER,
	player_2_id INTEGER,
	description TEXT,
	x_coord REAL,
	y_coord REAL,
	raw_json TEXT NOT NULL,
	PRIMARY KEY (game_id, event_idx),
	FOREIGN KEY (game_id) REFERENCES games(game_id)
);

CREATE INDEX IF NOT EXISTS idx_events_game_id ON events(game_id);
CREATE INDEX IF NOT EXISTS idx_events_team_id ON events(team_id);
CREATE INDEX IF NOT EXISTS idx_events_event_type ON events(event_type);

CREATE TABLE IF NOT EXISTS collection_log (
	date TEXT PRIMARY KEY,
	games_found INTEGER NOT NULL,
	games_collected INTEGER NOT NULL,
	completed_at TEXT
);
`

const upsertGameSQL = `
INSERT INTO games (
	game_id, game_date, season, game_type, home_team_id, away_team_id,
	home_team_name, away_team_name, raw_json
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(game_id) DO UPDATE SET
	game_date=excluded.game_date,
	season=excluded.season,
	game_type=excluded.game_type,
	home_team_id=excluded.home_team_id,
	away_team_id=excluded.away_team_id,
	home_team_name=excluded.home_team_name,
	away_team_name=excluded.away_team_name,
	raw_json=excluded.raw_json
`

const upsertEventSQL = `
INSERT INTO events (
	game_id, event_idx, period, period_time, event_type, team_id, team_name,
	player_1_id, player_2_id, description, x_coord, y_coord, raw_json
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(game_id, event_idx) DO UPDATE SET
	period=excluded.period,
	period_time=excluded.period_time,
	event_type=excluded.event_type,
	team_id=excluded.team_id,
	team_name=excluded.team_name,
	player_1_id=excluded.player_1_id,
	player_2_id=excluded.player_2_id,
	description=excluded.description,
	x_coord=excluded.x_coord,
	y_coord=excluded.y_coord,
	raw_json=excluded.raw_json
`
