package utils

import (
	"sync"
	"time"
)

type cacheEntry[T any] struct {
	value      T
	cachedAt   time.Time
	expiration time.Time
}

// KeyedCache is an in-memory cache holding one immutable value per key, each
// with its own expiration. Entries are replaced wholesale on Set, never
// mutated in place, so concurrent readers see either the old or the new value.
type KeyedCache[T any] struct {
	entries map[string]cacheEntry[T]
	mutex   sync.RWMutex
}

// NewKeyedCache initializes a new empty keyed cache.
func NewKeyedCache[T any]() *KeyedCache[T] {
	return &KeyedCache[T]{
		entries: map[string]cacheEntry[T]{},
	}
}

// Set stores a value under key with an expiration time.
func (c *KeyedCache[T]) Set(key string, value T, duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = cacheEntry[T]{
		value:      value,
		cachedAt:   time.Now(),
		expiration: time.Now().Add(duration),
	}
}

// Get retrieves the cached value for key, reporting a miss when the entry is
// absent or expired.
func (c *KeyedCache[T]) Get(key string) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiration) {
		var zero T
		return zero, false
	}
	return entry.value, true
}

// CachedAt returns the time the entry for key was stored.
func (c *KeyedCache[T]) CachedAt(key string) (time.Time, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return time.Time{}, false
	}
	return entry.cachedAt, true
}

// Clear removes every cached entry.
func (c *KeyedCache[T]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = map[string]cacheEntry[T]{}
}
