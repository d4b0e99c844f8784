package cache

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bebektakip/carefinder/internal/domain/providers"
)

// MemoryAdapter implements the CacheProvider interface with an in-process map.
// It is used when Redis is unavailable and in unit tests. Expired entries are
// reported as misses and overwritten on the next write; there is no sweeper.
type MemoryAdapter struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   clockwork.Clock
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// NewMemoryAdapter creates a new in-memory cache adapter
func NewMemoryAdapter(clock clockwork.Clock) providers.CacheProvider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryAdapter{
		entries: make(map[string]memoryEntry),
		clock:   clock,
	}
}

// Get retrieves a value from cache
func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	entry, ok := a.entries[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	if !entry.expiresAt.IsZero() && a.clock.Now().After(entry.expiresAt) {
		// Stale entries are left in place and overwritten by the next Set.
		return nil, fmt.Errorf("key not found: %s", key)
	}

	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

// Set stores a value in cache with expiration
func (a *MemoryAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	entry := memoryEntry{value: stored}
	if expirationSeconds > 0 {
		entry.expiresAt = a.clock.Now().Add(time.Duration(expirationSeconds) * time.Second)
	}

	a.mu.Lock()
	a.entries[key] = entry
	a.mu.Unlock()
	return nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	delete(a.entries, key)
	a.mu.Unlock()
	return nil
}

// DeletePattern removes all keys matching a glob pattern
func (a *MemoryAdapter) DeletePattern(ctx context.Context, pattern string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for key := range a.entries {
		if matched, err := path.Match(pattern, key); err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		} else if matched {
			delete(a.entries, key)
		}
	}
	return nil
}

// Exists checks if a key exists in cache
func (a *MemoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	entry, ok := a.entries[key]
	if !ok {
		return false, nil
	}
	if !entry.expiresAt.IsZero() && a.clock.Now().After(entry.expiresAt) {
		return false, nil
	}
	return true, nil
}
