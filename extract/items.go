package extract

import (
	"sort"
	"strings"
)

// InferItemType scores every item type against the tokens and normalized text
// and returns the best one, or "" when nothing matched.
//
// A synonym token adds one point and a multi-word phrase found in the text adds
// three. Ties go to the type earlier in the preference order.
func InferItemType(tokens []string, normalized string) string {
	scores := make(map[string]int, len(itemCategories))

	for itype, phrases := range itemPhrases {
		for _, p := range phrases {
			if strings.Contains(normalized, p) {
				scores[itype] += phraseWeight
			}
		}
	}

	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		if seen[t] {
			continue
		}
		seen[t] = true
		for _, c := range itemCategories {
			if categorySynonyms[c.name][t] {
				scores[c.name]++
			}
		}
	}

	best, bestScore := "", 0
	for _, itype := range itemPreference {
		if sc := scores[itype]; sc > bestScore {
			best, bestScore = itype, sc
		}
	}
	return best
}

// ExtractBrand returns the first token that names a known brand, or "".
func ExtractBrand(tokens []string) string {
	for _, t := range tokens {
		if brands[t] {
			return t
		}
	}
	return ""
}

// ExtractMarks returns the sorted unique marks the tokens mention.
func ExtractMarks(tokens []string) []string {
	present := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		present[t] = true
	}

	var marks []string
	for _, mk := range markKeywords {
		for _, w := range mk.words {
			if present[w] {
				marks = append(marks, mk.mark)
				break
			}
		}
	}
	sort.Strings(marks)
	return marks
}
