package retrieval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTFIDF_IdenticalTextScoresOne(t *testing.T) {
	scores, err := TFIDF{}.Similarities("black wallet", []string{"black wallet", "Black Wallet!"})
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.InDelta(t, 1.0, scores[0], 1e-9)
	assert.InDelta(t, 1.0, scores[1], 1e-9)
}

func TestTFIDF_DisjointTextScoresZero(t *testing.T) {
	scores, err := TFIDF{}.Similarities("black wallet", []string{"blue umbrella"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, scores[0])
}

func TestTFIDF_ScoresAreCosines(t *testing.T) {
	docs := []string{
		"black leather wallet lost in library",
		"wallet",
		"umbrella umbrella umbrella",
		"",
	}
	scores, err := TFIDF{}.Similarities("black wallet library", docs)
	require.NoError(t, err)
	for i, s := range scores {
		assert.False(t, math.IsNaN(s), "doc %d", i)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0+1e-9)
	}
	assert.Greater(t, scores[0], 0.0)
	assert.Equal(t, 0.0, scores[2])
	assert.Equal(t, 0.0, scores[3])
}

func TestTFIDF_BigramsBreakTies(t *testing.T) {
	scores, err := TFIDF{}.Similarities("red bag", []string{"bag red", "red bag"})
	require.NoError(t, err)
	assert.Greater(t, scores[1], scores[0])
}

func TestTFIDF_EmptyVocabulary(t *testing.T) {
	_, err := TFIDF{}.Similarities("a", []string{"b", "!"})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestBigramTokeniser(t *testing.T) {
	got := bigramTokeniser{}.Tokenise("Red bag, red BAG")
	assert.Equal(t, []string{"red", "bag", "red bag", "red", "bag red", "bag", "red bag"}, got)
	assert.Empty(t, bigramTokeniser{}.Tokenise("a ! b"))
}

func TestTFIDF_SharedTermsKeepWeight(t *testing.T) {
	// Every text contains "wallet"; it must still count towards similarity.
	scores, err := TFIDF{}.Similarities("wallet", []string{"wallet", "wallet wallet"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, scores[0], 1e-9)
	assert.InDelta(t, 1.0, scores[1], 1e-9)
}

func TestTFIDF_DigitsAreTerms(t *testing.T) {
	scores, err := TFIDF{}.Similarities("gate 12", []string{"gate 7", "gate 12"})
	require.NoError(t, err)
	assert.Greater(t, scores[1], scores[0])
}
