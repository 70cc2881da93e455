package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateTeamGame(t *testing.T) {
	events := []GameEvent{
		{EventType: "GOAL", Description: "Goal for 10"},
		{EventType: "GOAL", Description: "Goal against 10"},
		{EventType: "SHOT", Description: "Shot for 10"},
		{EventType: "MISS", Description: "Miss for 10"},
		{EventType: "BLOCKED_SHOT", Description: "Blocked shot for 10"},
		{EventType: "SHOT", Description: "Shot against 10"},
		{EventType: "HIT", Description: "Hit for 10"},
	}

	data := AggregateTeamGame(events, 10)

	assert.Equal(t, 1, data.GoalsFor)
	assert.Equal(t, 1, data.GoalsAgainst)
	// Goals count as unblocked attempts too; blocked shots never do
	assert.Equal(t, 3, data.UnblockedShotsFor)
	assert.Equal(t, 2, data.UnblockedShotsAgainst)
}

func TestComputePerformanceSplit(t *testing.T) {
	games := []SplitGame{
		{Data: TeamGameData{GoalsFor: 4, GoalsAgainst: 1}, PlayerDressed: true},
		{Data: TeamGameData{GoalsFor: 2, GoalsAgainst: 3}, PlayerDressed: true},
		{Data: TeamGameData{GoalsFor: 1, GoalsAgainst: 4}, PlayerDressed: false},
	}

	split := ComputePerformanceSplit(games)

	assert.Equal(t, 2, split.GamesWith)
	assert.Equal(t, 1, split.GamesWithout)
	assert.Equal(t, 6, split.GoalsForWith)
	assert.Equal(t, 4, split.GoalsAgainstWith)

	// Without the player: 1 for, 4 against per game.
	// With: 3 for, 2 against per game.
	assert.InDelta(t, -2.0, split.MarginalGoalsScored, 0.0001)
	assert.InDelta(t, 2.0, split.MarginalGoalsConceded, 0.0001)
}

func TestComputePerformanceSplitEmptySampleHasNoMarginals(t *testing.T) {
	games := []SplitGame{
		{Data: TeamGameData{GoalsFor: 3}, PlayerDressed: true},
	}

	split := ComputePerformanceSplit(games)
	assert.Zero(t, split.MarginalGoalsScored)
	assert.Zero(t, split.MarginalGoalsConceded)
}

func TestIceTimeScore(t *testing.T) {
	score := IceTimeScore(20, 8, 4, 1, 0.5, 0.5)
	assert.InDelta(t, 26, score, 0.0001)
}
