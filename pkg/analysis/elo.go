package analysis

import "math"

// DefaultK is the Elo K-factor used for faceoff rating updates
const DefaultK = 32

// DefaultRating is the rating assigned to players not yet seen
const DefaultRating = 1500

// FaceoffOutcome records one faceoff: who won the draw and who lost it
type FaceoffOutcome struct {
	Winner int
	Loser  int
}

// Ratings maps player identifier to Elo-style faceoff rating
type Ratings map[int]float64

// Get returns a player's rating, defaulting for unseen players
func (r Ratings) Get(playerID int) float64 {
	if rating, ok := r[playerID]; ok {
		return rating
	}
	return DefaultRating
}

// EloChange returns the post-faceoff ratings for a winner and loser
// using the standard logistic expectation with the given K-factor.
func EloChange(winnerElo, loserElo, k float64) (float64, float64) {
	probWinnerWins := 1 / (1 + math.Pow(10, (loserElo-winnerElo)/400))

	newWinner := winnerElo + k*(1-probWinnerWins)
	newLoser := loserElo + k*(0-(1-probWinnerWins))
	return newWinner, newLoser
}

// UpdateRatings folds a game's faceoff outcomes into the ratings map.
// Only players with at least minFaceoffs draws in the game are rated,
// and a game with four or fewer such players is skipped entirely: tiny
// samples would let a single line dominate the ratings.
func UpdateRatings(ratings Ratings, outcomes []FaceoffOutcome, minFaceoffs int, k float64) Ratings {
	counts := make(map[int]int)
	for _, o := range outcomes {
		counts[o.Winner]++
		counts[o.Loser]++
	}

	significant := make(map[int]bool)
	for playerID, count := range counts {
		if count >= minFaceoffs {
			significant[playerID] = true
		}
	}
	if len(significant) <= 4 {
		return ratings
	}

	for _, o := range outcomes {
		if !significant[o.Winner] || !significant[o.Loser] {
			continue
		}
		newWinner, newLoser := EloChange(ratings.Get(o.Winner), ratings.Get(o.Loser), k)
		ratings[o.Winner] = newWinner
		ratings[o.Loser] = newLoser
	}

	return ratings
}

// TeammateFaceoffs filters outcomes down to draws between players on
// the same team. Player identifiers encode the team in their leading
// digits, so same-team membership is an integer-division check.
func TeammateFaceoffs(outcomes []FaceoffOutcome) []FaceoffOutcome {
	var teammates []FaceoffOutcome
	for _, o := range outcomes {
		if o.Winner/1000000 == o.Loser/1000000 {
			teammates = append(teammates, o)
		}
	}
	return teammates
}
