package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedSet(t *testing.T) {
	s := NewOrderedSet("phone", "blue", "phone")
	assert.Equal(t, []string{"phone", "blue"}, s.Items())
	assert.Equal(t, 2, s.Len())

	assert.Equal(t, 1, s.Add("blue", "samsung"))
	assert.Equal(t, []string{"phone", "blue", "samsung"}, s.Items())
	assert.True(t, s.Contains("samsung"))
	assert.False(t, s.Contains("apple"))
}

func TestOrderedSetZeroValue(t *testing.T) {
	var s OrderedSet
	assert.False(t, s.Contains("x"))
	s.Add("x", "x")
	assert.Equal(t, []string{"x"}, s.Items())
}

func TestOrderedSetItemsIsCopy(t *testing.T) {
	s := NewOrderedSet("a")
	items := s.Items()
	items[0] = "b"
	assert.Equal(t, []string{"a"}, s.Items())
}
