package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFaceoffsPerMinute(t *testing.T) {
	faceoffs := []Faceoff{
		{PlayerID: 1, GameSeconds: 30},
		{PlayerID: 1, GameSeconds: 60},
		{PlayerID: 2, GameSeconds: 30},
	}

	rates := FaceoffsPerMinute(faceoffs)

	// 120 sampled seconds = 2 minutes of play
	assert.InDelta(t, 1.0, rates[1], 0.0001)
	assert.InDelta(t, 0.5, rates[2], 0.0001)
}

func TestFaceoffsPerMinuteEmptySample(t *testing.T) {
	assert.Nil(t, FaceoffsPerMinute(nil))
	assert.Nil(t, FaceoffsPerMinute([]Faceoff{}))
}

func TestFaceoffsPerMinuteZeroSpan(t *testing.T) {
	assert.Nil(t, FaceoffsPerMinute([]Faceoff{{PlayerID: 1, GameSeconds: 0}}))
}
