package clarify

import (
	"testing"

	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	q := Catalog()
	require.Len(t, q, 4)
	assert.Equal(t, []core.FieldKey{core.FieldBrand, core.FieldColors, core.FieldItemType, core.FieldUniqueMarks},
		[]core.FieldKey{q[0].FieldKey, q[1].FieldKey, q[2].FieldKey, q[3].FieldKey})

	q[0].Text = "changed"
	assert.Equal(t, "What brand is it? (e.g., Samsung, Apple, Xiaomi)", Catalog()[0].Text)
}

func TestQuestionFor(t *testing.T) {
	q, ok := QuestionFor(core.FieldUniqueMarks)
	require.True(t, ok)
	assert.Equal(t, "Any unique mark? (sticker / scratch / engraved text)", q.Text)

	_, ok = QuestionFor("size")
	assert.False(t, ok)
}

func TestChooseQuestion(t *testing.T) {
	black := []string{"black"}

	tests := []struct {
		name       string
		current    *core.FeatureRecord
		candidates []*core.FeatureRecord
		limit      int
		want       core.FieldKey
		ok         bool
	}{
		{
			name:    "brand separates candidates",
			current: &core.FeatureRecord{ItemType: "phone"},
			candidates: []*core.FeatureRecord{
				{Brand: "apple", Colors: black},
				{Brand: "apple", Colors: black},
				{Brand: "samsung", Colors: black},
			},
			want: core.FieldBrand,
			ok:   true,
		},
		{
			name:    "known fields are skipped",
			current: &core.FeatureRecord{Brand: "apple"},
			candidates: []*core.FeatureRecord{
				{Brand: "apple", Colors: black},
				{Brand: "samsung", Colors: []string{"blue"}},
			},
			want: core.FieldColors,
			ok:   true,
		},
		{
			name:    "colors compared as whole lists",
			current: &core.FeatureRecord{},
			candidates: []*core.FeatureRecord{
				{Colors: []string{"black", "blue"}},
				{Colors: []string{"black"}},
				{Colors: []string{"blue"}},
			},
			want: core.FieldColors,
			ok:   true,
		},
		{
			name:    "catalog order breaks ties",
			current: &core.FeatureRecord{},
			candidates: []*core.FeatureRecord{
				{ItemType: "phone", UniqueMarks: []string{"sticker"}},
				{ItemType: "tablet", UniqueMarks: []string{"scratch"}},
			},
			want: core.FieldItemType,
			ok:   true,
		},
		{
			name:    "no diversity",
			current: &core.FeatureRecord{},
			candidates: []*core.FeatureRecord{
				{Brand: "apple", Colors: black},
				{Brand: "apple", Colors: black},
			},
		},
		{
			name:    "every field already known",
			current: &core.FeatureRecord{Brand: "a", Colors: black, ItemType: "phone", UniqueMarks: []string{"sticker"}},
			candidates: []*core.FeatureRecord{
				{Brand: "apple"},
				{Brand: "samsung"},
			},
		},
		{
			name:    "no candidates",
			current: &core.FeatureRecord{},
		},
		{
			name:    "only the first candidates count",
			current: &core.FeatureRecord{},
			candidates: []*core.FeatureRecord{
				{Brand: "apple"},
				{Brand: "apple"},
				{Brand: "samsung"},
			},
			limit: 2,
		},
		{
			name:    "nil current record",
			current: nil,
			candidates: []*core.FeatureRecord{
				{ItemType: "keys"},
				{ItemType: "wallet"},
			},
			want: core.FieldItemType,
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := ChooseQuestion(tt.current, tt.candidates, tt.limit)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, q.FieldKey)
			if ok {
				want, _ := QuestionFor(tt.want)
				assert.Equal(t, want.Text, q.Text)
			}
		})
	}
}

func TestChooseQuestion_DefaultPoolSize(t *testing.T) {
	var candidates []*core.FeatureRecord
	for i := 0; i < match.DefaultQuestionPoolSize; i++ {
		candidates = append(candidates, &core.FeatureRecord{Brand: "apple"})
	}
	candidates = append(candidates, &core.FeatureRecord{Brand: "samsung"})

	_, ok := ChooseQuestion(&core.FeatureRecord{}, candidates, 0)
	assert.False(t, ok)
}

func TestShouldAsk(t *testing.T) {
	results := func(scores ...float64) []core.MatchResult {
		out := make([]core.MatchResult, len(scores))
		for i, s := range scores {
			out[i] = core.MatchResult{OtherId: core.ID(i + 1), Score: s}
		}
		return out
	}

	tests := []struct {
		name    string
		results []core.MatchResult
		want    bool
	}{
		{"no matches", nil, true},
		{"single strong", results(0.9), false},
		{"single weak", results(0.4), true},
		{"clear winner", results(0.9, 0.5), false},
		{"weak top", results(0.5, 0.1), true},
		{"close race", results(0.9, 0.85), true},
		{"gap exactly at threshold", results(0.9, 0.8), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldAsk(tt.results, nil))
		})
	}

	t.Run("custom thresholds", func(t *testing.T) {
		cfg := match.NewConfig(match.WithAskTopScore(0.95), match.WithAskGap(0.01))
		assert.True(t, ShouldAsk(results(0.9, 0.1), cfg))
		assert.False(t, ShouldAsk(results(0.99, 0.97), cfg))
	})
}
