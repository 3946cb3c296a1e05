package ibx

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/coocood/freecache"
)

// Cache is the interface for caching reflection results.
// Users may implement this interface with their preferred caching solution
// (e.g., Redis, Memcached); NewMemoryCache provides an in-process default.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL.
	// If ttl is 0, the value should not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes all values with the given prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// Clear removes all values from the cache.
	Clear(ctx context.Context) error
}

// CacheKey identifies one reflection call.
type CacheKey struct {
	Operation string
	Table     string
	Schema    string
}

// String returns the string representation of the cache key. Keys sort by
// schema, then table, so TablePrefix and SchemaPrefix select them with
// DeletePrefix.
func (k CacheKey) String() string {
	return k.Schema + ":" + k.Table + ":" + k.Operation
}

// SchemaPrefix is the key prefix of every entry in schema.
func SchemaPrefix(schema string) string { return schema + ":" }

// TablePrefix is the key prefix of the entries about table in schema. Calls
// not about one table use the empty table name.
func TablePrefix(schema, table string) string { return schema + ":" + table + ":" }

// MemoryCache is a Cache backed by a fixed-size freecache arena.
//
// The arena refuses entries larger than 1/1024 of its size. Those are kept
// in an overflow map instead, so results of any size stay cached.
type MemoryCache struct {
	c *freecache.Cache

	mu    sync.RWMutex
	large map[string]largeEntry
}

type largeEntry struct {
	value   []byte
	expires time.Time
}

func (e largeEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// DefaultCacheSize is the arena size used when NewMemoryCache gets a non-positive size.
const DefaultCacheSize = 32 << 20

// NewMemoryCache returns a MemoryCache with an arena of size bytes.
func NewMemoryCache(size int) *MemoryCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &MemoryCache{c: freecache.NewCache(size), large: make(map[string]largeEntry)}
}

// Get implements Cache.
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	v, err := m.c.Get([]byte(key))
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, freecache.ErrNotFound) {
		return nil, err
	}
	m.mu.RLock()
	e, ok := m.large[key]
	m.mu.RUnlock()
	if !ok || e.expired(time.Now()) {
		return nil, nil
	}
	return e.value, nil
}

// Set implements Cache. A positive ttl under one second lasts one second.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	err := m.c.Set([]byte(key), value, expireSeconds(ttl))
	switch {
	case errors.Is(err, freecache.ErrLargeEntry):
		e := largeEntry{value: append([]byte(nil), value...)}
		if ttl > 0 {
			e.expires = time.Now().Add(ttl)
		}
		m.mu.Lock()
		m.large[key] = e
		m.mu.Unlock()
		return nil
	case err != nil:
		return err
	}
	m.mu.Lock()
	delete(m.large, key)
	m.mu.Unlock()
	return nil
}

// expireSeconds converts ttl to freecache seconds, where 0 never expires.
func expireSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int((ttl + time.Second - 1) / time.Second)
}

// Delete implements Cache.
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.c.Del([]byte(key))
	m.mu.Lock()
	delete(m.large, key)
	m.mu.Unlock()
	return nil
}

// DeletePrefix implements Cache.
func (m *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	var (
		p    = []byte(prefix)
		keys [][]byte
		it   = m.c.NewIterator()
	)
	for e := it.Next(); e != nil; e = it.Next() {
		if bytes.HasPrefix(e.Key, p) {
			keys = append(keys, e.Key)
		}
	}
	for _, k := range keys {
		m.c.Del(k)
	}
	m.mu.Lock()
	for k := range m.large {
		if strings.HasPrefix(k, prefix) {
			delete(m.large, k)
		}
	}
	m.mu.Unlock()
	return nil
}

// Clear implements Cache.
func (m *MemoryCache) Clear(context.Context) error {
	m.c.Clear()
	m.mu.Lock()
	clear(m.large)
	m.mu.Unlock()
	return nil
}

// Len returns the number of entries currently stored.
func (m *MemoryCache) Len() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.EntryCount() + int64(len(m.large))
}

var _ Cache = (*MemoryCache)(nil)
