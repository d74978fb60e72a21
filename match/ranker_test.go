package match

import (
	"fmt"
	"testing"

	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/retrieval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRanker(t *testing.T, opts ...Option) *Ranker {
	r, err := NewRanker(NewScorer(nil), opts...)
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r
}

func resultIDs(results []core.MatchResult) []core.ID {
	ids := make([]core.ID, len(results))
	for i, res := range results {
		ids[i] = res.OtherId
	}
	return ids
}

func TestNewRanker(t *testing.T) {
	t.Run("requires scorer", func(t *testing.T) {
		r, err := NewRanker(nil)
		assert.ErrorIs(t, err, ErrScorerRequired)
		assert.Nil(t, r)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		r, err := NewRanker(NewScorer(nil), WithConfig(NewConfig(WithTopK(0))))
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Nil(t, r)
	})

	t.Run("defaults", func(t *testing.T) {
		r := newTestRanker(t, WithConfig(nil), WithRetriever(nil), WithLogger(nil))
		assert.Equal(t, DefaultConfig(), r.Config())
		assert.IsType(t, retrieval.Prefix{}, r.retriever)
		assert.NotNil(t, r.Scorer())
	})
}

func TestRank(t *testing.T) {
	current := newReport(1, core.KindLost, "black leather wallet", "student id inside", "central library", "2025-03-01T10:00:00Z")
	candidates := []*core.Report{
		newReport(11, core.KindFound, "red umbrella", "", "bus stop", ""),
		newReport(12, core.KindFound, "black wallet", "leather, id card", "library", "2025-03-01T15:00:00Z"),
		newReport(13, core.KindFound, "wallet", "brown", "cafeteria", ""),
		newReport(14, core.KindFound, "samsung phone", "", "gate 2", ""),
	}

	r := newTestRanker(t)
	results := r.Rank(current, candidates, 3)
	require.Len(t, results, 3)
	assert.Equal(t, core.ID(12), results[0].OtherId)
	assert.Equal(t, core.ID(13), results[1].OtherId)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}

	assert.Nil(t, r.Rank(current, candidates, 0))
	assert.Nil(t, r.Rank(current, nil, 5))
}

func TestRank_TiesKeepShortlistOrder(t *testing.T) {
	current := newReport(1, core.KindLost, "keys", "", "", "")
	var candidates []*core.Report
	for i := 0; i < 8; i++ {
		candidates = append(candidates, newReport(core.ID(100+i), core.KindFound, "keys", "", "", ""))
	}

	r := newTestRanker(t, WithConfig(NewConfig(WithWorkers(4))))
	results := r.Rank(current, candidates, 8)
	assert.Equal(t, []core.ID{100, 101, 102, 103, 104, 105, 106, 107}, resultIDs(results))
}

func TestRank_IsDeterministicUnderConcurrency(t *testing.T) {
	current := newReport(1, core.KindLost, "blue samsung phone", "cracked screen", "gate 2", "")
	var candidates []*core.Report
	titles := []string{"phone", "blue phone", "samsung", "blue bag", "umbrella", "samsung phone"}
	for i := 0; i < 60; i++ {
		candidates = append(candidates, newReport(core.ID(i+1), core.KindFound, titles[i%len(titles)], fmt.Sprintf("item %d", i), "gate", ""))
	}

	r := newTestRanker(t, WithConfig(NewConfig(WithWorkers(8))))
	first := r.Rank(current, candidates, 20)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, r.Rank(current, candidates, 20))
	}
}

func TestRank_ScoresOnlyTheShortlist(t *testing.T) {
	current := newReport(1, core.KindLost, "black wallet", "", "", "")
	candidates := []*core.Report{
		newReport(11, core.KindFound, "red umbrella", "", "", ""),
		newReport(12, core.KindFound, "blue bottle", "", "", ""),
		newReport(13, core.KindFound, "black wallet", "", "", ""),
	}

	prefix := newTestRanker(t, WithConfig(NewConfig(WithShortlistSize(2))))
	assert.NotContains(t, resultIDs(prefix.Rank(current, candidates, 5)), core.ID(13))

	ranked := newTestRanker(t,
		WithConfig(NewConfig(WithShortlistSize(2))),
		WithRetriever(retrieval.New(retrieval.TFIDF{})),
	)
	results := ranked.Rank(current, candidates, 5)
	require.NotEmpty(t, results)
	assert.Equal(t, core.ID(13), results[0].OtherId)
}

func TestFindDuplicate(t *testing.T) {
	submitted := newReport(0, core.KindLost, "black wallet", "brown stitching", "central library", "")

	t.Run("identical same-kind report", func(t *testing.T) {
		recent := []*core.Report{
			newReport(20, core.KindLost, "red umbrella", "", "bus stop", ""),
			newReport(21, core.KindLost, "black wallet", "brown stitching", "central library", ""),
		}
		dup, ok := newTestRanker(t).FindDuplicate(submitted, recent)
		require.True(t, ok)
		assert.Equal(t, core.ID(21), dup.Of)
		assert.GreaterOrEqual(t, dup.Score, 0.85)
	})

	t.Run("earliest wins a tie", func(t *testing.T) {
		recent := []*core.Report{
			newReport(30, core.KindLost, "black wallet", "brown stitching", "central library", ""),
			newReport(31, core.KindLost, "black wallet", "brown stitching", "central library", ""),
		}
		dup, ok := newTestRanker(t).FindDuplicate(submitted, recent)
		require.True(t, ok)
		assert.Equal(t, core.ID(30), dup.Of)
	})

	t.Run("opposite kind is ignored", func(t *testing.T) {
		recent := []*core.Report{
			newReport(22, core.KindFound, "black wallet", "brown stitching", "central library", ""),
		}
		_, ok := newTestRanker(t).FindDuplicate(submitted, recent)
		assert.False(t, ok)
	})

	t.Run("below threshold", func(t *testing.T) {
		recent := []*core.Report{
			newReport(23, core.KindLost, "black bag", "", "gym", ""),
		}
		_, ok := newTestRanker(t).FindDuplicate(submitted, recent)
		assert.False(t, ok)
	})

	t.Run("no reports", func(t *testing.T) {
		_, ok := newTestRanker(t).FindDuplicate(submitted, nil)
		assert.False(t, ok)
	})

	t.Run("scan limit", func(t *testing.T) {
		recent := []*core.Report{
			newReport(24, core.KindLost, "red umbrella", "", "", ""),
			newReport(25, core.KindLost, "black wallet", "brown stitching", "central library", ""),
		}
		r := newTestRanker(t, WithConfig(NewConfig(WithDuplicateScanLimit(1))))
		_, ok := r.FindDuplicate(submitted, recent)
		assert.False(t, ok)
	})

	t.Run("custom threshold", func(t *testing.T) {
		recent := []*core.Report{
			newReport(26, core.KindLost, "black wallet", "", "", ""),
		}
		r := newTestRanker(t, WithConfig(NewConfig(WithDuplicateThreshold(0.3))))
		dup, ok := r.FindDuplicate(submitted, recent)
		require.True(t, ok)
		assert.Equal(t, core.ID(26), dup.Of)
	})
}
