package privacy

import (
	"regexp"
	"strings"
)

// digitGroupRE matches digit groups joined by single spaces or hyphens, with
// an optional leading plus. Mobile numbers are often written in chunks.
var digitGroupRE = regexp.MustCompile(`\+?\b\d+(?:[ \-]\d+)*\b`)

const (
	countryCode    = "880"
	localPrefix    = "01"
	localLen       = 11
	maxPhoneDigits = len(countryCode) + localLen
)

// phoneSpan is a mobile number found in a text, as byte offsets into it.
type phoneSpan struct {
	start, end int
	digits     string
}

// local returns the number without its country code.
func (p phoneSpan) local() string {
	return p.digits[len(p.digits)-localLen:]
}

// isPhoneDigits reports whether digits form a mobile number: 01 followed by
// nine digits, optionally preceded by the 880 country code.
func isPhoneDigits(digits string) bool {
	local := strings.TrimPrefix(digits, countryCode)
	if len(digits) == localLen {
		local = digits
	}
	if len(local) != localLen || !strings.HasPrefix(local, localPrefix) {
		return false
	}
	for i := 0; i < len(local); i++ {
		if local[i] < '0' || local[i] > '9' {
			return false
		}
	}
	return true
}

// findPhones returns the mobile numbers in text, left to right.
// A number may be split across several adjacent digit groups, but a digit
// group is never split.
func findPhones(text string) []phoneSpan {
	var spans []phoneSpan
	for _, loc := range digitGroupRE.FindAllStringIndex(text, -1) {
		spans = append(spans, phonesInRun(text, loc[0], loc[1])...)
	}
	return spans
}

type digitGroup struct {
	start, end int
}

func phonesInRun(text string, start, end int) []phoneSpan {
	var groups []digitGroup
	for i := start; i < end; {
		if text[i] < '0' || text[i] > '9' {
			i++
			continue
		}
		j := i
		for j < end && text[j] >= '0' && text[j] <= '9' {
			j++
		}
		groups = append(groups, digitGroup{start: i, end: j})
		i = j
	}

	var spans []phoneSpan
	for i := 0; i < len(groups); {
		var sb strings.Builder
		matched := -1
		for j := i; j < len(groups); j++ {
			sb.WriteString(text[groups[j].start:groups[j].end])
			if sb.Len() > maxPhoneDigits {
				break
			}
			if isPhoneDigits(sb.String()) {
				matched = j
				break
			}
		}
		if matched < 0 {
			i++
			continue
		}

		spanStart := groups[i].start
		if spanStart > start && text[spanStart-1] == '+' {
			spanStart--
		}
		spans = append(spans, phoneSpan{start: spanStart, end: groups[matched].end, digits: sb.String()})
		i = matched + 1
	}
	return spans
}
