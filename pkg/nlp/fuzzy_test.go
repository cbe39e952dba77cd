package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistanceCountsRunes(t *testing.T) {
	assert.Equal(t, 0, EditDistance("борщ", "борщ"))
	assert.Equal(t, 1, EditDistance("борщ", "борш"))
	assert.Equal(t, 4, EditDistance("", "суши"))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("привет", "привет"), 1e-9)
	assert.InDelta(t, 1-1.0/6, Similarity("привт", "привет"), 1e-9)
	assert.Less(t, Similarity("очень длинная фраза про погоду", "да"), 0.0)
	assert.InDelta(t, -1.0, Similarity("ab", ""), 1e-9)
}

func TestWeightedDistance(t *testing.T) {
	assert.InDelta(t, 0.25, WeightedDistance("борш", "борщ"), 1e-9)
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 100, Ratio("суп", "суп"), 1e-9)
	assert.InDelta(t, 100, Ratio("", ""), 1e-9)
	assert.InDelta(t, 0, Ratio("абв", "где"), 1e-9)
}

func TestPartialRatio(t *testing.T) {
	assert.InDelta(t, 100, PartialRatio("хочу борщ со сметаной", "борщ"), 1e-9)
	assert.InDelta(t, 100, PartialRatio("борщ", "хочу борщ со сметаной"), 1e-9)
	assert.Greater(t, PartialRatio("хочу цезар", "цезарь"), 85.0)
	assert.Less(t, PartialRatio("привет", "борщ"), 85.0)
	assert.Equal(t, 0.0, PartialRatio("", "борщ"))
}
