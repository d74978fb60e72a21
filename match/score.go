package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/extract"
	"github.com/poiesic/lostfound/normalize"
	"github.com/poiesic/lostfound/storage"
)

// Score bounds. Every MatchResult score lies within [MinScore, MaxScore].
const (
	MinScore = -0.5
	MaxScore = 1.5
)

// Rule weights.
const (
	textWeight      = 0.55
	textReasonAbove = 0.15

	itemTypeMatch  = 0.20
	itemTypeDiffer = -0.05

	colorOverlap   = 0.12
	colorDisjoint  = -0.03
	brandMatch     = 0.12
	brandDiffer    = -0.02
	identifierHit  = 0.35
	locationWeight = 0.10

	locationReasonAbove = 0.20

	timeInconsistent = -0.15
	timeClose        = 0.15
	timeWide         = 0.05
)

// NoSignals is the explanation used when no rule produced a reason.
const NoSignals = "No strong signals; mostly general text similarity."

// Contribution is the effect of a single scoring rule. Reason is empty when the
// rule adjusts the score silently or does not fire.
type Contribution struct {
	Delta  float64
	Reason string
}

// Decoder turns a stored feature encoding into a record. It must never fail;
// undecodable input yields an empty record.
type Decoder func(encoded string) *core.FeatureRecord

// Scorer computes match scores between reports.
type Scorer struct {
	decode Decoder
}

// NewScorer creates a Scorer decoding feature records with decode.
// A nil decode uses storage.DecodeFeatureRecordOrEmpty.
func NewScorer(decode Decoder) *Scorer {
	if decode == nil {
		decode = storage.DecodeFeatureRecordOrEmpty
	}
	return &Scorer{decode: decode}
}

// ComputeMatch scores candidate against current. The rules run in a fixed
// order and the final score is clamped to [MinScore, MaxScore].
func (s *Scorer) ComputeMatch(current, candidate *core.Report) core.MatchResult {
	return s.Score(current, candidate, s.decode(current.Features), s.decode(candidate.Features))
}

// Score is ComputeMatch over already decoded feature records.
func (s *Scorer) Score(current, candidate *core.Report, cur, cand *core.FeatureRecord) core.MatchResult {
	if cur == nil {
		cur = &core.FeatureRecord{}
	}
	if cand == nil {
		cand = &core.FeatureRecord{}
	}

	lostTime, foundTime := current.EventTime, candidate.EventTime
	if current.Kind == core.KindFound {
		lostTime, foundTime = foundTime, lostTime
	}

	contributions := []Contribution{
		TextSimilarity(tokenSet(current, cur), tokenSet(candidate, cand)),
		ItemTypeAgreement(cur.ItemType, cand.ItemType),
		ColorOverlap(cur.Colors, cand.Colors),
		BrandAgreement(cur.Brand, cand.Brand),
		LocationSimilarity(current.LocationText, candidate.LocationText),
		TimePlausibility(lostTime, foundTime),
		IdentifierOverlap(cur.Identifiers, cand.Identifiers),
	}

	result := core.MatchResult{OtherId: candidate.Id}
	for _, c := range contributions {
		result.Score += c.Delta
		if c.Reason != "" {
			result.Reasons = append(result.Reasons, c.Reason)
		}
	}
	result.Score = clamp(result.Score)
	return result
}

// tokenSet prefers the record's tokens and falls back to the report text.
func tokenSet(report *core.Report, fr *core.FeatureRecord) map[string]struct{} {
	if len(fr.Tokens) > 0 {
		return normalize.SetOf(fr.Tokens)
	}
	return normalize.SetOf(extract.ExpandTokens(normalize.Tokenize(report.SearchText())))
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	inter := 0
	for item := range a {
		if _, ok := b[item]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// TextSimilarity weighs the token Jaccard similarity.
func TextSimilarity(a, b map[string]struct{}) Contribution {
	sim := Jaccard(a, b)
	c := Contribution{Delta: textWeight * sim}
	if sim > textReasonAbove {
		c.Reason = fmt.Sprintf("Text overlap looks similar (Jaccard %.2f).", sim)
	}
	return c
}

// ItemTypeAgreement rewards equal item types and penalizes different ones.
func ItemTypeAgreement(a, b string) Contribution {
	switch {
	case a == "" || b == "":
		return Contribution{}
	case a == b:
		return Contribution{Delta: itemTypeMatch, Reason: fmt.Sprintf("Item type matches: %s.", a)}
	default:
		return Contribution{Delta: itemTypeDiffer, Reason: fmt.Sprintf("Item type differs (%s vs %s).", a, b)}
	}
}

// ColorOverlap rewards shared colors and penalizes disjoint color sets.
func ColorOverlap(a, b []string) Contribution {
	if len(a) == 0 || len(b) == 0 {
		return Contribution{}
	}
	overlap := intersect(a, b)
	if len(overlap) == 0 {
		return Contribution{Delta: colorDisjoint, Reason: "Colors don’t overlap."}
	}
	return Contribution{Delta: colorOverlap, Reason: fmt.Sprintf("Color overlap: %s.", strings.Join(overlap, ", "))}
}

// BrandAgreement rewards equal brands. Different brands cost a little without a reason.
func BrandAgreement(a, b string) Contribution {
	switch {
	case a == "" || b == "":
		return Contribution{}
	case a == b:
		return Contribution{Delta: brandMatch, Reason: fmt.Sprintf("Brand matches: %s.", a)}
	default:
		return Contribution{Delta: brandDiffer}
	}
}

// LocationSimilarity weighs the Jaccard similarity of the location texts.
func LocationSimilarity(a, b string) Contribution {
	sim := Jaccard(normalize.TokenSet(a), normalize.TokenSet(b))
	c := Contribution{Delta: locationWeight * sim}
	if sim > locationReasonAbove {
		c.Reason = fmt.Sprintf("Location text seems close (Jaccard %.2f).", sim)
	}
	return c
}

// TimePlausibility judges whether an item found at foundTime could be the one
// lost at lostTime. Unparseable or missing timestamps contribute nothing.
func TimePlausibility(lostTime, foundTime string) Contribution {
	lt, ok := core.ParseEventTime(lostTime)
	if !ok {
		return Contribution{}
	}
	ft, ok := core.ParseEventTime(foundTime)
	if !ok {
		return Contribution{}
	}

	hours := ft.Sub(lt).Hours()
	switch {
	case hours < -1:
		return Contribution{Delta: timeInconsistent, Reason: "Time seems inconsistent (found before lost)."}
	case hours >= 0 && hours <= 72:
		return Contribution{Delta: timeClose, Reason: fmt.Sprintf("Time plausible: found ~%.1fh after lost.", hours)}
	case hours > 72 && hours <= 240:
		return Contribution{Delta: timeWide, Reason: fmt.Sprintf("Time plausible but wide gap (~%.1f days).", hours/24)}
	default:
		return Contribution{}
	}
}

// IdentifierOverlap rewards a shared identifier hash. The reason never names it.
func IdentifierOverlap(a, b []string) Contribution {
	if len(intersect(a, b)) == 0 {
		return Contribution{}
	}
	return Contribution{Delta: identifierHit, Reason: "Hidden identifier signal matches (not displayed)."}
}

// Explain renders the reasons of a result for display.
func Explain(result core.MatchResult) string {
	if len(result.Reasons) == 0 {
		return NoSignals
	}
	return strings.Join(result.Reasons, " • ")
}

// intersect returns the sorted distinct values present in both a and b.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inB := normalize.SetOf(b)
	seen := make(map[string]struct{}, len(a))
	var out []string
	for _, item := range a {
		if _, ok := inB[item]; !ok {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

func clamp(score float64) float64 {
	return max(MinScore, min(MaxScore, score))
}
