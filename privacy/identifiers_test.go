package privacy

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestHashIdentifier(t *testing.T) {
	a := HashIdentifier(TagEmail + "john.doe@example.com")
	b := HashIdentifier(TagEmail + "john.doe@example.com")
	c := HashIdentifier(TagNum + "john.doe@example.com")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c, "type tag must be part of the digest")
	assert.Regexp(t, hexDigest, a)
}

func TestExtractIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no identifiers",
			text: "blue umbrella near library",
		},
		{
			name: "email is case-insensitive",
			text: "contact John.Doe@Example.com",
			want: []string{HashIdentifier(TagEmail + "john.doe@example.com")},
		},
		{
			name: "phone also counts as long number",
			text: "call 01712345678",
			want: []string{
				HashIdentifier(TagPhone + "01712345678"),
				HashIdentifier(TagNum + "01712345678"),
			},
		},
		{
			name: "chunked phone",
			text: "call 01712-345 678 after 5",
			want: []string{HashIdentifier(TagPhone + "01712345678")},
		},
		{
			name: "country code is dropped before hashing",
			text: "call +880 01712345678",
			want: []string{
				HashIdentifier(TagPhone + "01712345678"),
				HashIdentifier(TagNum + "01712345678"),
			},
		},
		{
			name: "student id",
			text: "student id 2019331045",
			want: []string{HashIdentifier(TagNum + "2019331045")},
		},
		{
			name: "short numbers ignored",
			text: "room 304 gate 2",
		},
		{
			name: "runs over 20 digits ignored",
			text: "ref 12345678901234567890123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractIdentifiers(tt.text)
			assert.ElementsMatch(t, tt.want, got)
			assert.True(t, sortedUnique(got), "digests must be sorted and unique: %v", got)
		})
	}
}

func TestExtractIdentifiersNeverLeaksRawValues(t *testing.T) {
	texts := []string{
		"email me at someone@mail.example.org",
		"my number is 01812345678",
		"card 1234567890123456 and a@b.co",
	}
	raw := []string{"someone", "mail.example.org", "01812345678", "1234567890123456", "a@b.co"}

	for _, text := range texts {
		ids := ExtractIdentifiers(text)
		require.NotEmpty(t, ids, text)
		for _, id := range ids {
			assert.Regexp(t, hexDigest, id)
			for _, r := range raw {
				assert.NotContains(t, id, r)
			}
		}
		assert.NotContains(t, strings.Join(ids, ""), "@")
	}
}

func TestExtractIdentifiersLinksSameContact(t *testing.T) {
	a := ExtractIdentifiers("lost wallet, owner phone 01712345678")
	b := ExtractIdentifiers("found a wallet, card says 01712 345678")
	assert.Contains(t, b, HashIdentifier(TagPhone+"01712345678"))
	assert.Contains(t, a, HashIdentifier(TagPhone+"01712345678"))
}

func sortedUnique(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] >= s[i] {
			return false
		}
	}
	return true
}
