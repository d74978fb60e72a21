package storage

import (
	"log/slog"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/poiesic/lostfound/core"
)

const (
	defaultFeatureTTL      = 10 * time.Minute
	defaultCleanupInterval = 15 * time.Minute
)

// FeatureCache memoizes decoded feature records by the content of their
// encoded form. Callers always get their own copy.
type FeatureCache struct {
	cache  *gocache.Cache
	logger *slog.Logger
}

// CacheOption configures a FeatureCache.
type CacheOption func(*FeatureCache)

// WithCacheLogger sets the logger used to report undecodable records.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *FeatureCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCacheTTL sets how long a decoded record is kept.
func WithCacheTTL(ttl, cleanupInterval time.Duration) CacheOption {
	return func(c *FeatureCache) {
		c.cache = gocache.New(ttl, cleanupInterval)
	}
}

// NewFeatureCache creates a feature cache.
func NewFeatureCache(opts ...CacheOption) *FeatureCache {
	c := &FeatureCache{
		cache:  gocache.New(defaultFeatureTTL, defaultCleanupInterval),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode returns the decoded feature record for encoded. A record that cannot
// be decoded is logged once and served as an empty record.
func (c *FeatureCache) Decode(encoded string) *core.FeatureRecord {
	key := strconv.FormatUint(uint64(core.IDFromContent(encoded)), 16)
	if val, found := c.cache.Get(key); found {
		return val.(*core.FeatureRecord).Clone()
	}

	fr, err := DecodeFeatureRecord(encoded)
	if err != nil {
		c.logger.Warn("substituting empty feature record", "error", err, "length", len(encoded))
		fr = &core.FeatureRecord{}
	}
	c.cache.SetDefault(key, fr)
	return fr.Clone()
}

// Len returns the number of cached records, including expired ones not yet cleaned up.
func (c *FeatureCache) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every cached record.
func (c *FeatureCache) Flush() {
	c.cache.Flush()
}
