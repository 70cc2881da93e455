package analysis

import (
	"fmt"
	"strings"
)

// GameEvent is the slice of an event the team aggregations read
type GameEvent struct {
	EventType   string
	Description string
}

// TeamGameData aggregates a single game's events for one team
type TeamGameData struct {
	TeamID                int
	GoalsFor              int
	GoalsAgainst          int
	UnblockedShotsFor     int
	UnblockedShotsAgainst int
}

// unblockedShotTypes are the event types counted as unblocked shot
// attempts: shots on goal, misses and goals. Blocked attempts never
// reach the net and are excluded.
var unblockedShotTypes = map[string]bool{
	"SHOT": true,
	"MISS": true,
	"GOAL": true,
}

// AggregateTeamGame folds a game's events into per-team counts. Event
// descriptions attribute the event "for" or "against" a team.
func AggregateTeamGame(events []GameEvent, teamID int) TeamGameData {
	data := TeamGameData{TeamID: teamID}
	forMarker := fmt.Sprintf("for %d", teamID)
	againstMarker := fmt.Sprintf("against %d", teamID)

	for _, event := range events {
		isFor := strings.Contains(event.Description, forMarker)
		isAgainst := strings.Contains(event.Description, againstMarker)

		if event.EventType == "GOAL" {
			if isFor {
				data.GoalsFor++
			} else if isAgainst {
				data.GoalsAgainst++
			}
		}
		if unblockedShotTypes[event.EventType] {
			if isFor {
				data.UnblockedShotsFor++
			} else if isAgainst {
				data.UnblockedShotsAgainst++
			}
		}
	}

	return data
}

// PerformanceSplit compares a team's results in games with and without
// a key player in the lineup.
type PerformanceSplit struct {
	GamesWith    int
	GamesWithout int

	GoalsForWith        int
	GoalsAgainstWith    int
	GoalsForWithout     int
	GoalsAgainstWithout int

	// Per-game goal differentials while the player was missing,
	// relative to games played. Zero when either sample is empty.
	MarginalGoalsScored   float64
	MarginalGoalsConceded float64
}

// SplitGame is one game's team aggregate plus lineup presence
type SplitGame struct {
	Data          TeamGameData
	PlayerDressed bool
}

// ComputePerformanceSplit accumulates with/without splits over a set of
// games and derives the marginal per-game goal numbers.
func ComputePerformanceSplit(games []SplitGame) PerformanceSplit {
	var split PerformanceSplit

	for _, g := range games {
		if g.PlayerDressed {
			split.GamesWith++
			split.GoalsForWith += g.Data.GoalsFor
			split.GoalsAgainstWith += g.Data.GoalsAgainst
		} else {
			split.GamesWithout++
			split.GoalsForWithout += g.Data.GoalsFor
			split.GoalsAgainstWithout += g.Data.GoalsAgainst
		}
	}

	if split.GamesWith > 0 && split.GamesWithout > 0 {
		split.MarginalGoalsScored = float64(split.GoalsForWithout)/float64(split.GamesWithout) -
			float64(split.GoalsForWith)/float64(split.GamesWith)
		split.MarginalGoalsConceded = float64(split.GoalsAgainstWithout)/float64(split.GamesWithout) -
			float64(split.GoalsAgainstWith)/float64(split.GamesWith)
	}

	return split
}

// IceTimeScore ranks a defenseman by weighted ice time: total minutes
// plus situational minutes while leading or trailing.
func IceTimeScore(totalIceTime, leadingIceTime, trailingIceTime, weightTotal, weightLeading, weightTrailing float64) float64 {
	return totalIceTime*weightTotal + leadingIceTime*weightLeading + trailingIceTime*weightTrailing
}
