package analysis

// Faceoff is one faceoff taken by a player at a point in the game,
// timed in seconds from the start of play.
type Faceoff struct {
	PlayerID    int
	GameSeconds float64
}

// FaceoffsPerMinute computes each player's faceoff rate over the span
// of play covered by the sample. Returns nil for an empty or zero-span
// sample.
func FaceoffsPerMinute(faceoffs []Faceoff) map[int]float64 {
	if len(faceoffs) == 0 {
		return nil
	}

	counts := make(map[int]int)
	var totalSeconds float64
	for _, f := range faceoffs {
		counts[f.PlayerID]++
		totalSeconds += f.GameSeconds
	}
	if totalSeconds <= 0 {
		return nil
	}

	minutes := totalSeconds / 60
	rates := make(map[int]float64, len(counts))
	for playerID, count := range counts {
		rates[playerID] = float64(count) / minutes
	}
	return rates
}
