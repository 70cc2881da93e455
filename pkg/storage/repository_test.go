package storage

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhlpxp/pkg/nhl"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "pxp.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.InitializeSchema())
	return repo
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

// testGameLog builds a two-play payload with fully populated optional
// fields on the first play and none on the second.
func testGameLog() *nhl.GameLog {
	return &nhl.GameLog{
		GameData: nhl.GameData{
			Game:     nhl.GameInfo{Pk: 2023020001, Season: "20232024", Type: "R"},
			Datetime: nhl.GameDatetime{DateTime: "2023-10-10T23:00:00Z"},
			Teams: nhl.GameTeams{
				Home: nhl.TeamRef{ID: intPtr(10), Name: strPtr("Toronto Maple Leafs")},
				Away: nhl.TeamRef{ID: intPtr(8), Name: strPtr("Montréal Canadiens")},
			},
		},
		LiveData: nhl.LiveData{
			Plays: nhl.Plays{
				AllPlays: []nhl.Play{
					{
						About:  nhl.PlayAbout{EventIdx: 0, Period: intPtr(1), PeriodTime: "00:00"},
						Result: nhl.PlayResult{EventTypeID: "FACEOFF", Description: "Faceoff won"},
						Team:   &nhl.TeamRef{ID: intPtr(10), Name: strPtr("Toronto Maple Leafs")},
						Players: []nhl.PlayerRef{
							{Player: &nhl.PlayerID{ID: 8479318, FullName: "Auston Matthews"}, PlayerType: "Winner"},
							{Player: &nhl.PlayerID{ID: 8480018, FullName: "Nick Suzuki"}, PlayerType: "Loser"},
						},
						Coordinates: &nhl.PlayCoordinates{X: floatPtr(0), Y: floatPtr(0)},
					},
					{
						About:  nhl.PlayAbout{EventIdx: 1, Period: intPtr(1), PeriodTime: "00:12"},
						Result: nhl.PlayResult{EventTypeID: "STOP", Description: "Puck frozen"},
					},
				},
			},
		},
	}
}

func rawFor(t *testing.T, gameLog *nhl.GameLog) []byte {
	t.Helper()
	raw, err := json.Marshal(gameLog)
	require.NoError(t, err)
	return raw
}

func TestInitializeSchemaIsIdempotent(t *testing.T) {
	repo := openTestRepo(t)
	assert.NoError(t, repo.InitializeSchema())
	assert.NoError(t, repo.InitializeSchema())
}

func TestGameExists(t *testing.T) {
	repo := openTestRepo(t)

	exists, err := repo.GameExists(2023020001)
	require.NoError(t, err)
	assert.False(t, exists)

	gameLog := testGameLog()
	require.NoError(t, repo.UpsertGameAndEvents(2023020001, gameLog, rawFor(t, gameLog)))

	exists, err = repo.GameExists(2023020001)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUpsertIsIdempotent(t *testing.T) {
	repo := openTestRepo(t)
	gameLog := testGameLog()
	raw := rawFor(t, gameLog)

	require.NoError(t, repo.UpsertGameAndEvents(2023020001, gameLog, raw))
	require.NoError(t, repo.UpsertGameAndEvents(2023020001, gameLog, raw))

	games, err := repo.Games(GameFilter{})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, 2023020001, games[0].GameID)
	require.NotNil(t, games[0].GameDate)
	assert.Equal(t, "2023-10-10", *games[0].GameDate)

	count, err := repo.EventCount(2023020001)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUpsertUpdatesScalarsInPlace(t *testing.T) {
	repo := openTestRepo(t)
	gameLog := testGameLog()
	require.NoError(t, repo.UpsertGameAndEvents(2023020001, gameLog, rawFor(t, gameLog)))

	gameLog.LiveData.Plays.AllPlays[1].Result.Description = "Puck frozen by goalie"
	require.NoError(t, repo.UpsertGameAndEvents(2023020001, gameLog, rawFor(t, gameLog)))

	events, err := repo.Events(EventFilter{GameID: intPtr(2023020001)})
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.NotNil(t, events[1].Description)
	assert.Equal(t, "Puck frozen by goalie", *events[1].Description)
}

func TestUpsertStoresMissingOptionalFieldsAsNull(t *testing.T) {
	repo := openTestRepo(t)
	gameLog := testGameLog()
	require.NoError(t, repo.UpsertGameAndEvents(2023020001, gameLog, rawFor(t, gameLog)))

	events, err := repo.Events(EventFilter{GameID: intPtr(2023020001)})
	require.NoError(t, err)
	require.Len(t, events, 2)

	// The stoppage play carries no team, participants or location
	stop := events[1]
	assert.Nil(t, stop.TeamID)
	assert.Nil(t, stop.TeamName)
	assert.Nil(t, stop.Player1ID)
	assert.Nil(t, stop.Player2ID)
	assert.Nil(t, stop.XCoord)
	assert.Nil(t, stop.YCoord)

	// The faceoff carries all of them
	faceoff := events[0]
	require.NotNil(t, faceoff.TeamID)
	assert.Equal(t, 10, *faceoff.TeamID)
	require.NotNil(t, faceoff.Player1ID)
	assert.Equal(t, 8479318, *faceoff.Player1ID)
	require.NotNil(t, faceoff.Player2ID)
	assert.Equal(t, 8480018, *faceoff.Player2ID)
	require.NotNil(t, faceoff.XCoord)
}

func TestEventsPreserveOrderAndFilter(t *testing.T) {
	repo := openTestRepo(t)
	gameLog := testGameLog()
	require.NoError(t, repo.UpsertGameAndEvents(2023020001, gameLog, rawFor(t, gameLog)))

	events, err := repo.Events(EventFilter{EventType: strPtr("FACEOFF")})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 0, events[0].EventIdx)

	events, err = repo.Events(EventFilter{GameID: intPtr(2023020001)})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Less(t, events[0].EventIdx, events[1].EventIdx)
}

func TestCollectionLedger(t *testing.T) {
	repo := openTestRepo(t)

	_, ok, err := repo.LastCollectedDate()
	require.NoError(t, err)
	assert.False(t, ok)

	d1 := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.MarkDateCollected(d1, 5, 5))
	require.NoError(t, repo.MarkDateCollected(d3, 3, 3))

	// Max, not last contiguous: d2 is missing but d3 still wins
	last, ok, err := repo.LastCollectedDate()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, d3, last)

	complete, err := repo.IsDateRangeCollected(d1, d3)
	require.NoError(t, err)
	assert.False(t, complete, "range with a gap must not count as collected")

	require.NoError(t, repo.MarkDateCollected(d2, 0, 0))
	complete, err = repo.IsDateRangeCollected(d1, d3)
	require.NoError(t, err)
	assert.True(t, complete)
}

func TestIsDateRangeCollectedSpansClockChange(t *testing.T) {
	repo := openTestRepo(t)

	for day := 8; day <= 12; day++ {
		require.NoError(t, repo.MarkDateCollected(time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC), 2, 2))
	}

	// Local midnights around a spring-forward transition: the wall-clock
	// span is one hour short of five full days.
	start := time.Date(2024, 3, 8, 0, 0, 0, 0, time.FixedZone("EST", -5*3600))
	end := time.Date(2024, 3, 12, 0, 0, 0, 0, time.FixedZone("EDT", -4*3600))

	complete, err := repo.IsDateRangeCollected(start, end)
	require.NoError(t, err)
	assert.True(t, complete, "all five days are marked; range must report collected")
}

func TestMarkDateCollectedReplacesExistingRow(t *testing.T) {
	repo := openTestRepo(t)
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.MarkDateCollected(d, 10, 8))
	require.NoError(t, repo.MarkDateCollected(d, 10, 10))

	var found, collected int
	err := repo.DB().QueryRow(
		"SELECT games_found, games_collected FROM collection_log WHERE date = ?",
		"2024-01-01",
	).Scan(&found, &collected)
	require.NoError(t, err)
	assert.Equal(t, 10, found)
	assert.Equal(t, 10, collected)

	var rows int
	require.NoError(t, repo.DB().QueryRow("SELECT COUNT(*) FROM collection_log").Scan(&rows))
	assert.Equal(t, 1, rows)
}
