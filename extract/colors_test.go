package extract

import (
	"testing"

	"github.com/poiesic/lostfound/normalize"
	"github.com/stretchr/testify/assert"
)

func colorsOf(text string) []string {
	return ExtractColors(ExpandTokens(normalize.Tokenize(text)), normalize.Normalize(text))
}

func TestExtractColors(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "light blue wallet", want: []string{"blue", "light blue"}},
		{in: "space grey iphone", want: []string{"gray", "space gray"}},
		{in: "Rose Gold watch", want: []string{"gold", "rose gold"}},
		{in: "off white umbrella", want: []string{"off white", "white"}},
		{in: "darkgreen bottle", want: []string{"dark green", "green"}},
		{in: "dark-red jacket", want: []string{"dark red", "red"}},
		{in: "see-through pouch", want: []string{"transparent"}},
		{in: "clear plastic bottle", want: []string{"transparent"}},
		{in: "golden bracelet", want: []string{"gold"}},
		{in: "bluish grey bag", want: []string{"blue", "gray"}},
		{in: "a wallet", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, colorsOf(tt.in))
		})
	}
}

func TestCanonicalColor(t *testing.T) {
	assert.Equal(t, "gray", CanonicalColor("Grey"))
	assert.Equal(t, "off white", CanonicalColor("offwhite"))
	assert.Equal(t, "magenta", CanonicalColor("magenta"))
}
