package storage

import (
	"database/sql"
	stderrors "errors"
	"strings"

	"nhlpxp/pkg/errors"
)

// EventRow is one persisted play event. Pointer fields are NULL-able
// columns.
type EventRow struct {
	GameID      int
	EventIdx    int
	Period      *int
	PeriodTime  *string
	EventType   *string
	TeamID      *int
	TeamName    *string
	Player1ID   *int
	Player2ID   *int
	Description *string
	XCoord      *float64
	YCoord      *float64
}

// GameRow is one persisted game
type GameRow struct {
	GameID       int
	GameDate     *string
	Season       *string
	GameType     *string
	HomeTeamID   *int
	AwayTeamID   *int
	HomeTeamName *string
	AwayTeamName *string
}

// EventFilter narrows an event query. Nil fields are not applied;
// Limit <= 0 means no limit.
type EventFilter struct {
	GameID    *int
	TeamID    *int
	EventType *string
	Limit     int
}

// GameFilter narrows a game query
type GameFilter struct {
	Season *string
	Limit  int
}

// Events returns persisted events matching the filter, ordered by game
// and event index so in-game ordering is preserved.
func (r *Repository) Events(filter EventFilter) ([]EventRow, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT game_id, event_idx, period, period_time, event_type, team_id, team_name,
		player_1_id, player_2_id, description, x_coord, y_coord FROM events WHERE 1=1`)
	var args []interface{}

	if filter.GameID != nil {
		sb.WriteString(" AND game_id = ?")
		args = append(args, *filter.GameID)
	}
	if filter.TeamID != nil {
		sb.WriteString(" AND team_id = ?")
		args = append(args, *filter.TeamID)
	}
	if filter.EventType != nil {
		sb.WriteString(" AND event_type = ?")
		args = append(args, *filter.EventType)
	}

	sb.WriteString(" ORDER BY game_id, event_idx")

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(sb.String(), args...)
	if err != nil {
		return nil, errors.NewStorage("failed to query events", err)
	}
	defer rows.Close()

	var events []EventRow
	for rows.Next() {
		var e EventRow
		if err := rows.Scan(
			&e.GameID, &e.EventIdx, &e.Period, &e.PeriodTime, &e.EventType,
			&e.TeamID, &e.TeamName, &e.Player1ID, &e.Player2ID,
			&e.Description, &e.XCoord, &e.YCoord,
		); err != nil {
			return nil, errors.NewStorage("failed to scan event row", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorage("failed to iterate event rows", err)
	}

	return events, nil
}

// Games returns persisted games matching the filter, ordered by date
// then identifier.
func (r *Repository) Games(filter GameFilter) ([]GameRow, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT game_id, game_date, season, game_type, home_team_id, away_team_id,
		home_team_name, away_team_name FROM games WHERE 1=1`)
	var args []interface{}

	if filter.Season != nil {
		sb.WriteString(" AND season = ?")
		args = append(args, *filter.Season)
	}

	sb.WriteString(" ORDER BY game_date, game_id")

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(sb.String(), args...)
	if err != nil {
		return nil, errors.NewStorage("failed to query games", err)
	}
	defer rows.Close()

	var games []GameRow
	for rows.Next() {
		var g GameRow
		if err := rows.Scan(
			&g.GameID, &g.GameDate, &g.Season, &g.GameType,
			&g.HomeTeamID, &g.AwayTeamID, &g.HomeTeamName, &g.AwayTeamName,
		); err != nil {
			return nil, errors.NewStorage("failed to scan game row", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorage("failed to iterate game rows", err)
	}

	return games, nil
}

// EventCount returns the number of events persisted for a game
func (r *Repository) EventCount(gameID int) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM events WHERE game_id = ?", gameID).Scan(&count)
	if err != nil && !stderrors.Is(err, sql.ErrNoRows) {
		return 0, errors.NewStorage("failed to count events", err)
	}
	return count, nil
}
