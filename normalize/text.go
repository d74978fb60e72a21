package normalize

import "strings"

// Stopwords dropped by Tokenize. Boilerplate such as "lost" and "found" appears
// in nearly every report and would otherwise dominate overlap scores.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"with": true, "without": true, "near": true, "at": true, "in": true, "on": true,
	"to": true, "from": true, "of": true, "for": true, "my": true, "our": true,
	"your": true, "is": true, "was": true, "were": true, "it": true, "this": true,
	"that": true, "i": true, "we": true, "they": true,
	"yesterday": true, "today": true, "tomorrow": true, "evening": true, "morning": true, "night": true,
	"lost": true, "found": true, "missing": true, "pickup": true, "pick": true, "picked": true,
	"drop": true, "dropped": true,
}

// IsStopword reports whether Tokenize would drop word.
func IsStopword(word string) bool {
	return stopWords[word]
}

// Normalize lowercases text, replaces every character outside [a-z0-9-] with a
// space, collapses runs of whitespace and trims the result.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return ' '
		}
	}, strings.ToLower(text))
	return strings.Join(strings.Fields(mapped), " ")
}

// Tokenize normalizes text and splits it into words. Hyphenated words are split
// into their parts. Empty parts and stopwords are dropped.
func Tokenize(text string) []string {
	words := strings.Fields(Normalize(text))
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		for _, part := range strings.Split(word, "-") {
			if part == "" || stopWords[part] {
				continue
			}
			tokens = append(tokens, part)
		}
	}

	return tokens
}

// TokenSet returns the distinct tokens of text.
func TokenSet(text string) map[string]struct{} {
	return SetOf(Tokenize(text))
}

// SetOf collects items into a membership set.
func SetOf(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
