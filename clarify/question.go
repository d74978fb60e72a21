package clarify

import (
	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/match"
)

// minDiversity is the number of distinct candidate values a field needs
// before asking about it can discriminate.
const minDiversity = 2

// catalog is the fixed, ordered set of questions. Order breaks diversity ties.
var catalog = []core.ClarifyingQuestion{
	{FieldKey: core.FieldBrand, Text: "What brand is it? (e.g., Samsung, Apple, Xiaomi)"},
	{FieldKey: core.FieldColors, Text: "What color is it? (e.g., black/blue/red/transparent)"},
	{FieldKey: core.FieldItemType, Text: "What is the item type? (phone/wallet/keys/bag/umbrella/etc.)"},
	{FieldKey: core.FieldUniqueMarks, Text: "Any unique mark? (sticker / scratch / engraved text)"},
}

// Catalog returns every question in catalog order.
func Catalog() []core.ClarifyingQuestion {
	out := make([]core.ClarifyingQuestion, len(catalog))
	copy(out, catalog)
	return out
}

// QuestionFor returns the catalog question for key.
func QuestionFor(key core.FieldKey) (core.ClarifyingQuestion, bool) {
	for _, q := range catalog {
		if q.FieldKey == key {
			return q, true
		}
	}
	return core.ClarifyingQuestion{}, false
}

// ChooseQuestion returns the question about a field absent from current whose
// values vary the most across the first limit candidates. A limit of zero or
// less uses match.DefaultQuestionPoolSize. No question is returned when there
// are no candidates or when the best field has fewer than two distinct values.
func ChooseQuestion(current *core.FeatureRecord, candidates []*core.FeatureRecord, limit int) (core.ClarifyingQuestion, bool) {
	if limit <= 0 {
		limit = match.DefaultQuestionPoolSize
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	if len(candidates) == 0 {
		return core.ClarifyingQuestion{}, false
	}

	var best core.ClarifyingQuestion
	bestDiversity := -1
	for _, q := range catalog {
		if current.FieldValue(q.FieldKey) != "" {
			continue
		}
		if d := diversity(q.FieldKey, candidates); d > bestDiversity {
			best, bestDiversity = q, d
		}
	}

	if bestDiversity < minDiversity {
		return core.ClarifyingQuestion{}, false
	}
	return best, true
}

// diversity counts the distinct non-empty values of key across candidates.
func diversity(key core.FieldKey, candidates []*core.FeatureRecord) int {
	values := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if v := c.FieldValue(key); v != "" {
			values[v] = struct{}{}
		}
	}
	return len(values)
}

// ShouldAsk reports whether the ranked results are ambiguous enough to warrant
// a clarifying question: the best score is weak, the two best scores are too
// close, or nothing matched at all. A nil cfg uses match.DefaultConfig().
func ShouldAsk(results []core.MatchResult, cfg *match.Config) bool {
	if cfg == nil {
		cfg = match.DefaultConfig()
	}
	switch len(results) {
	case 0:
		return true
	case 1:
		return results[0].Score < cfg.AskTopScore
	default:
		top, second := results[0].Score, results[1].Score
		return top < cfg.AskTopScore || top-second < cfg.AskGap
	}
}
