package storage

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/poiesic/lostfound/core"
	"github.com/stretchr/testify/assert"
)

func TestFeatureCache_Decode(t *testing.T) {
	cache := NewFeatureCache()
	encoded := EncodeFeatureRecord(&core.FeatureRecord{Tokens: []string{"red", "bag"}, ItemType: "bag"})

	first := cache.Decode(encoded)
	assert.Equal(t, "bag", first.ItemType)
	assert.Equal(t, 1, cache.Len())

	// Mutating a returned record must not leak into the cache.
	first.Tokens[0] = "blue"
	first.ItemType = "wallet"

	second := cache.Decode(encoded)
	assert.Equal(t, []string{"red", "bag"}, second.Tokens)
	assert.Equal(t, "bag", second.ItemType)
	assert.Equal(t, 1, cache.Len())
}

func TestFeatureCache_Undecodable(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	cache := NewFeatureCache(WithCacheLogger(logger))

	fr := cache.Decode("garbage")
	assert.True(t, fr.IsEmpty())
	assert.Contains(t, buf.String(), "substituting empty feature record")

	buf.Reset()
	cache.Decode("garbage")
	assert.Empty(t, buf.String(), "undecodable record is only reported once")
}

func TestFeatureCache_Flush(t *testing.T) {
	cache := NewFeatureCache()
	cache.Decode(EncodeFeatureRecord(&core.FeatureRecord{Brand: "apple"}))
	cache.Flush()
	assert.Equal(t, 0, cache.Len())
}
