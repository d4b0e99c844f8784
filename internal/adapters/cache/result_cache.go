package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/bebektakip/carefinder/internal/domain/entities"
	"github.com/bebektakip/carefinder/internal/domain/providers"
)

// DefaultResultTTL is how long a cached search page stays fresh.
const DefaultResultTTL = 300 * time.Second

const resultKeyPrefix = "search:v1"

// SearchKey identifies one cacheable first-page search. Coordinates are
// rounded to 4 decimal places and the radius to 1, so nearby-identical
// requests share an entry.
type SearchKey struct {
	Kind         entities.ProviderKind
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Query        string
}

// String renders the composite cache key.
func (k SearchKey) String() string {
	return fmt.Sprintf("%s:%s:%.4f:%.4f:%.1f:%s",
		resultKeyPrefix, k.Kind, k.Latitude, k.Longitude, k.RadiusMeters, k.Query)
}

// ResultCache is a typed, time-bounded memoization layer for search results
// on top of a CacheProvider. Only first pages are ever stored; entries older
// than the TTL are treated as misses and overwritten lazily.
type ResultCache struct {
	cache providers.CacheProvider
	clock clockwork.Clock
	ttl   time.Duration
}

// NewResultCache creates a result cache with the default TTL.
func NewResultCache(cache providers.CacheProvider, clock clockwork.Clock) *ResultCache {
	return NewResultCacheWithTTL(cache, clock, DefaultResultTTL)
}

// NewResultCacheWithTTL creates a result cache with an explicit TTL.
func NewResultCacheWithTTL(cache providers.CacheProvider, clock clockwork.Clock, ttl time.Duration) *ResultCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ResultCache{
		cache: cache,
		clock: clock,
		ttl:   ttl,
	}
}

// Get returns the stored result for the key if it is still fresh.
func (c *ResultCache) Get(ctx context.Context, key SearchKey) (*entities.SearchResult, bool) {
	data, err := c.cache.Get(ctx, key.String())
	if err != nil {
		return nil, false
	}

	var result entities.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Warn().Err(err).Str("key", key.String()).Msg("failed to unmarshal cached search result")
		return nil, false
	}

	// The backing store may outlive the freshness window, so CapturedAt is
	// checked here as well.
	if c.clock.Now().Sub(result.CapturedAt) > c.ttl {
		return nil, false
	}
	return &result, true
}

// Put unconditionally overwrites the entry for the key, stamping CapturedAt.
func (c *ResultCache) Put(ctx context.Context, key SearchKey, result *entities.SearchResult) error {
	result.CapturedAt = c.clock.Now()

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal search result: %w", err)
	}
	if err := c.cache.Set(ctx, key.String(), data, int(c.ttl.Seconds())); err != nil {
		return fmt.Errorf("failed to cache search result: %w", err)
	}
	return nil
}

// Clear drops all cached search results.
func (c *ResultCache) Clear(ctx context.Context) error {
	return c.cache.DeletePattern(ctx, resultKeyPrefix+":*")
}
