package audio

import (
	"math"
	"strings"
)

// Narration pacing: the synthetic timeline assumes a fixed reading rate, with
// a floor so even a one-line summary gets a usable scrubber.
const (
	wordsPerMinute     = 150
	minNarrationLength = 60
)

// EstimateNarration returns the synthetic duration in seconds for narrating
// the given text: word count at 150 words/minute, never less than 60 seconds.
func EstimateNarration(text string) float64 {
	words := len(strings.Fields(text))
	seconds := math.Round(float64(words) / wordsPerMinute * 60)
	return math.Max(minNarrationLength, seconds)
}
