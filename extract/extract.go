package extract

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/normalize"
	"github.com/poiesic/lostfound/privacy"
)

// containsRE finds a "contains ..." clause running to the end of the text.
var containsRE = regexp.MustCompile(`\bcontains\b(.+)$`)

// ExpandTokens appends to tokens the canonical item type of every item
// synonym and the canonical color of every color alias. Tokens that jointly
// say "see" and "through" also get "transparent". Duplicates are dropped and
// first-seen order is kept.
func ExpandTokens(tokens []string) []string {
	set := normalize.NewOrderedSet(tokens...)
	hasSee, hasThrough := false, false

	for _, t := range tokens {
		if canon := tokenCategory[t]; canon != "" {
			set.Add(canon)
		}
		if ct := CanonicalColor(t); ct != t {
			set.Add(ct)
		}
		hasSee = hasSee || t == "see"
		hasThrough = hasThrough || t == "through"
	}
	if hasSee && hasThrough {
		set.Add("transparent")
	}

	return set.Items()
}

// ExtractContained parses the comma separated list following the word
// "contains", e.g. "black wallet, contains id card, cash". The list is split
// on commas before each entry is normalized, and empty entries are dropped.
func ExtractContained(text string) []string {
	flat := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	m := containsRE.FindStringSubmatch(flat)
	if m == nil {
		return nil
	}

	var items []string
	for _, part := range strings.Split(m[1], ",") {
		if item := normalize.Normalize(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Extract derives the FeatureRecord of raw report text.
//
// The inferred item type is appended to the tokens when the text never
// names it directly, so reports describing the same thing in different words
// still share a token.
func Extract(text string) *core.FeatureRecord {
	norm := normalize.Normalize(text)
	tokens := ExpandTokens(normalize.Tokenize(text))

	fr := &core.FeatureRecord{
		Colors:      ExtractColors(tokens, norm),
		Brand:       ExtractBrand(tokens),
		ItemType:    InferItemType(tokens, norm),
		Contained:   ExtractContained(text),
		Identifiers: privacy.ExtractIdentifiers(text),
	}
	if fr.ItemType != "" && !slices.Contains(tokens, fr.ItemType) {
		tokens = append(tokens, fr.ItemType)
	}
	fr.Tokens = tokens
	fr.UniqueMarks = ExtractMarks(tokens)

	return fr
}

// ApplyClarification merges a reporter's answer for one field into record.
//
// The answer's expanded tokens are always appended to record.Tokens. Colors,
// item type and unique marks are re-extracted from the answer alone and
// replace the existing value. A brand answer takes the first known brand it
// names, else its first token, else the trimmed lowercased answer.
func ApplyClarification(record *core.FeatureRecord, key core.FieldKey, answer string) error {
	if record == nil {
		return ErrNilRecord
	}
	switch key {
	case core.FieldBrand, core.FieldColors, core.FieldItemType, core.FieldUniqueMarks:
	default:
		return fmt.Errorf("%w: %q", core.ErrUnknownField, key)
	}

	ansTokens := ExpandTokens(normalize.Tokenize(answer))
	norm := normalize.Normalize(answer)

	record.Tokens = ExpandTokens(append(append([]string(nil), record.Tokens...), ansTokens...))

	switch key {
	case core.FieldBrand:
		record.Brand = ExtractBrand(ansTokens)
		if record.Brand == "" {
			record.Brand = firstOr(ansTokens, strings.ToLower(strings.TrimSpace(answer)))
		}
	case core.FieldColors:
		record.Colors = ExtractColors(ansTokens, norm)
	case core.FieldItemType:
		record.ItemType = InferItemType(ansTokens, norm)
		if record.ItemType == "" {
			record.ItemType = firstOr(ansTokens, "")
		}
	case core.FieldUniqueMarks:
		record.UniqueMarks = ExtractMarks(ansTokens)
	}

	if record.ItemType != "" && !slices.Contains(record.Tokens, record.ItemType) {
		record.Tokens = append(record.Tokens, record.ItemType)
	}
	return nil
}

func firstOr(s []string, fallback string) string {
	if len(s) > 0 {
		return s[0]
	}
	return fallback
}
