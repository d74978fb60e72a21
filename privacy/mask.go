package privacy

import (
	"regexp"
	"strings"
)

// RedactedID replaces long digit runs in masked text.
const RedactedID = "[REDACTED_ID]"

// maskDigitsRE has no upper bound, unlike the identifier pattern.
var maskDigitsRE = regexp.MustCompile(`\b\d{10,}\b`)

// MaskSensitive obscures contact details in text meant for display.
//
// The local part of an email keeps its first and last character and the
// domain is left alone. Mobile numbers keep their last two digits. Any other
// run of 10 or more digits becomes RedactedID. Text without such values is
// returned unchanged.
func MaskSensitive(text string) string {
	text = emailRE.ReplaceAllStringFunc(text, maskEmail)
	text = maskPhones(text)
	return maskDigitsRE.ReplaceAllString(text, RedactedID)
}

func maskEmail(email string) string {
	user, domain, _ := strings.Cut(email, "@")
	if len(user) <= 2 {
		return strings.Repeat("*", len(user)) + "@" + domain
	}
	return user[:1] + strings.Repeat("*", len(user)-2) + user[len(user)-1:] + "@" + domain
}

func maskPhones(text string) string {
	spans := findPhones(text)
	if len(spans) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for _, span := range spans {
		sb.WriteString(text[last:span.start])
		sb.WriteString(strings.Repeat("*", len(span.digits)-2))
		sb.WriteString(span.digits[len(span.digits)-2:])
		last = span.end
	}
	sb.WriteString(text[last:])
	return sb.String()
}
