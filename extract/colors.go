package extract

import (
	"regexp"
	"sort"
	"strings"
)

var baseColors = map[string]bool{
	"black": true, "white": true, "gray": true, "red": true, "blue": true, "green": true,
	"yellow": true, "orange": true, "pink": true, "purple": true, "brown": true,
	"silver": true, "gold": true, "navy": true, "maroon": true,
	"beige": true, "cream": true, "ivory": true, "tan": true, "khaki": true,
	"teal": true, "turquoise": true, "cyan": true, "aqua": true,
	"magenta": true, "lavender": true, "violet": true, "indigo": true,
	"lime": true, "mint": true, "olive": true,
	"burgundy": true, "peach": true, "mustard": true,
	"bronze": true, "copper": true, "charcoal": true,
}

var colorAliases = map[string]string{
	"grey":        "gray",
	"offwhite":    "off white",
	"off-white":   "off white",
	"offwhitee":   "off white",
	"golden":      "gold",
	"bluish":      "blue",
	"reddish":     "red",
	"greenish":    "green",
	"pinkish":     "pink",
	"purplish":    "purple",
	"violetish":   "violet",
	"transparent": "transparent",
	"clear":       "transparent",
	"translucent": "transparent",
	"seethrough":  "transparent",
	"see-through": "transparent",
}

// specialColor is a multi-word color with the base colors it implies.
type specialColor struct {
	phrase    string
	canonical string
	implies   []string
}

var specialColors = []specialColor{
	{"rose gold", "rose gold", []string{"gold"}},
	{"space gray", "space gray", []string{"gray"}},
	{"space grey", "space gray", []string{"gray"}},
	{"off white", "off white", []string{"white"}},
	{"see through", "transparent", nil},
	{"see-through", "transparent", nil},
}

const (
	shadeGroup = `(light|dark|deep|pale|bright|neon)`
	shadeBases = `(black|white|gray|grey|red|blue|green|yellow|orange|pink|purple|brown|navy|maroon|` +
		`beige|cream|ivory|tan|khaki|teal|turquoise|cyan|aqua|magenta|lavender|violet|indigo|` +
		`lime|mint|olive|burgundy|peach|mustard|silver|gold|bronze|copper|charcoal)`
)

var (
	shadeRE       = regexp.MustCompile(`\b` + shadeGroup + `\s+` + shadeBases + `\b`)
	shadeJoinedRE = regexp.MustCompile(`\b` + shadeGroup + shadeBases + `\b`)
)

// CanonicalColor maps a color alias to its canonical name.
// Anything that is not an alias is returned as is.
func CanonicalColor(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colorAliases[s]; ok {
		return c
	}
	return s
}

// ExtractColors returns the sorted set of colors mentioned in normalized text
// and its tokens. A shaded color such as "light blue" also yields its base
// color "blue", and special phrases like "rose gold" yield the base color they imply.
func ExtractColors(tokens []string, normalized string) []string {
	colors := make(map[string]bool)

	for _, sc := range specialColors {
		if strings.Contains(normalized, sc.phrase) {
			colors[sc.canonical] = true
			for _, c := range sc.implies {
				colors[c] = true
			}
		}
	}

	addShades := func(re *regexp.Regexp, text string) {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			base := CanonicalColor(m[2])
			colors[m[1]+" "+base] = true
			colors[base] = true
		}
	}
	addShades(shadeRE, normalized)
	addShades(shadeJoinedRE, strings.ReplaceAll(normalized, "-", ""))

	for _, t := range tokens {
		ct := CanonicalColor(t)
		if baseColors[ct] || ct == "transparent" || ct == "off white" {
			colors[ct] = true
		}
	}

	if len(colors) == 0 {
		return nil
	}
	out := make([]string, 0, len(colors))
	for c := range colors {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
