package privacy

import (
	"encoding/hex"
	"regexp"
	"sort"
	"strings"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/lostfound/normalize"
)

// Type tags prefixed to a detected value before hashing, so equal digits
// found as a phone and as an ID number never collide.
const (
	TagEmail = "email:"
	TagPhone = "phone:"
	TagNum   = "num:"
)

// hashSalt is mixed into every digest. Changing it invalidates every stored identifier.
const hashSalt = "LFv1:"

var (
	emailRE      = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[\w.\-]+\.[A-Za-z]{2,}\b`)
	longDigitsRE = regexp.MustCompile(`\b\d{10,20}\b`)
)

// HashIdentifier returns the 16 hex character digest of a tagged value.
func HashIdentifier(tagged string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 16 hex chars
	h.Write([]byte(hashSalt + tagged))
	return hex.EncodeToString(h.Sum(nil))
}

// ExtractIdentifiers finds emails, mobile numbers and standalone runs of 10 to
// 20 digits in text and returns their digests, sorted and duplicate-free.
// The raw values never leave this function.
func ExtractIdentifiers(text string) []string {
	norm := normalize.Normalize(text)
	digests := make(map[string]struct{})

	for _, email := range emailRE.FindAllString(text, -1) {
		digests[HashIdentifier(TagEmail+strings.ToLower(email))] = struct{}{}
	}
	for _, p := range findPhones(norm) {
		digests[HashIdentifier(TagPhone+p.local())] = struct{}{}
	}
	for _, num := range longDigitsRE.FindAllString(norm, -1) {
		digests[HashIdentifier(TagNum+num)] = struct{}{}
	}

	if len(digests) == 0 {
		return nil
	}
	out := make([]string, 0, len(digests))
	for d := range digests {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
