package scraper

import (
	"time"

	"nhlpxp/pkg/nhl"
)

// APIClient defines the upstream operations the orchestrator drives
type APIClient interface {
	GameIDsForDate(date time.Time) ([]int, error)
	GameLog(gameID int) (*nhl.GameLog, []byte, error)
}

// Repository defines the persistence operations the orchestrator drives
type Repository interface {
	InitializeSchema() error
	GameExists(gameID int) (bool, error)
	UpsertGameAndEvents(gameID int, gameLog *nhl.GameLog, raw []byte) error
	MarkDateCollected(date time.Time, gamesFound, gamesCollected int) error
	LastCollectedDate() (time.Time, bool, error)
}
