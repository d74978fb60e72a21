// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/relvacode/iso8601"
)

// ParseEventTime parses an ISO-8601 timestamp.
//
// The date is YYYY-MM-DD or YYYYMMDD. An optional time follows after any
// single separator character, as HH, HH:MM, HH:MM:SS or their basic forms
// (HHMM, HHMMSS), with an optional fraction after "." or ",". The offset is
// Z, ±HH, ±HHMM or ±HH:MM and may be preceded by spaces. Timestamps without an
// offset are read as UTC.
func ParseEventTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	canonical, ok := canonicalTimestamp(s)
	if !ok {
		return time.Time{}, false
	}
	t, err := iso8601.ParseString(canonical)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// canonicalTimestamp rewrites s as YYYY-MM-DDTHH:MM:SS[.fff](Z|±HH:MM).
func canonicalTimestamp(s string) (string, bool) {
	date, rest, ok := canonicalDate(s)
	if !ok {
		return "", false
	}
	if rest == "" {
		return date + "T00:00:00Z", true
	}

	// Any single character separates the date from the time.
	_, size := utf8.DecodeRuneInString(rest)
	rest = rest[size:]

	clock, zone := rest, ""
	if i := strings.IndexAny(rest, "Zz+-"); i >= 0 {
		clock, zone = rest[:i], rest[i:]
	}

	clock, ok = canonicalClock(strings.TrimRight(clock, " "))
	if !ok {
		return "", false
	}
	zone, ok = canonicalZone(zone)
	if !ok {
		return "", false
	}
	return date + "T" + clock + zone, true
}

func canonicalDate(s string) (date, rest string, ok bool) {
	var y, m, d string
	switch {
	case len(s) >= 10 && s[4] == '-' && s[7] == '-':
		y, m, d, rest = s[:4], s[5:7], s[8:10], s[10:]
	case len(s) >= 8 && allDigits(s[:8]):
		y, m, d, rest = s[:4], s[4:6], s[6:8], s[8:]
	default:
		return "", "", false
	}
	if rest != "" && isDigit(rest[0]) {
		return "", "", false
	}

	year, err1 := strconv.Atoi(y)
	month, err2 := strconv.Atoi(m)
	day, err3 := strconv.Atoi(d)
	if err1 != nil || err2 != nil || err3 != nil || !allDigits(y+m+d) {
		return "", "", false
	}
	if month < 1 || month > 12 || day < 1 {
		return "", "", false
	}
	// time.Date normalizes overflowing days, e.g. February 30th.
	if time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Day() != day {
		return "", "", false
	}
	return y + "-" + m + "-" + d, rest, true
}

func canonicalClock(clock string) (string, bool) {
	frac := ""
	if i := strings.IndexAny(clock, ".,"); i >= 0 {
		clock, frac = clock[:i], clock[i+1:]
		if frac == "" || !allDigits(frac) {
			return "", false
		}
		frac = frac[:min(len(frac), 9)]
	}

	var parts []string
	if strings.Contains(clock, ":") {
		parts = strings.Split(clock, ":")
	} else {
		if len(clock)%2 != 0 {
			return "", false
		}
		for i := 0; i+2 <= len(clock); i += 2 {
			parts = append(parts, clock[i:i+2])
		}
	}
	if len(parts) == 0 || len(parts) > 3 || (frac != "" && len(parts) != 3) {
		return "", false
	}

	limits := []int{23, 59, 59}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if len(p) != 2 || !allDigits(p) || err != nil || n > limits[i] {
			return "", false
		}
	}
	for len(parts) < 3 {
		parts = append(parts, "00")
	}

	out := strings.Join(parts, ":")
	if frac != "" {
		out += "." + frac
	}
	return out, true
}

func canonicalZone(zone string) (string, bool) {
	switch zone {
	case "", "Z", "z":
		return "Z", true
	}

	sign, digits := zone[:1], strings.Replace(zone[1:], ":", "", 1)
	if !allDigits(digits) {
		return "", false
	}
	switch len(digits) {
	case 2:
		digits += "00"
	case 4:
	default:
		return "", false
	}

	hours, _ := strconv.Atoi(digits[:2])
	minutes, _ := strconv.Atoi(digits[2:])
	if hours > 23 || minutes > 59 {
		return "", false
	}
	return fmt.Sprintf("%s%s:%s", sign, digits[:2], digits[2:]), true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
