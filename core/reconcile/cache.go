package reconcile

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// typeCacheEntry holds one resolved alias set.
type typeCacheEntry struct {
	ids   map[string]int
	built time.Time
}

// TypeCache caches relation type lookups across scopes.
// Relation types are immutable during a reconciliation, so a short TTL keeps
// repeated saves from hitting the registry table every time.
type TypeCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]*typeCacheEntry
	sf      singleflight.Group
}

// NewTypeCache creates a cache. A zero TTL disables caching.
func NewTypeCache(ttl time.Duration) *TypeCache {
	return &TypeCache{
		ttl:     ttl,
		entries: make(map[string]*typeCacheEntry),
	}
}

// Enabled reports whether lookups are cached at all.
func (c *TypeCache) Enabled() bool {
	return c != nil && c.ttl > 0
}

// Registry wraps a registry so lookups go through the cache.
// When caching is disabled the registry is returned unchanged.
func (c *TypeCache) Registry(next RelationTypeRegistry) RelationTypeRegistry {
	if !c.Enabled() {
		return next
	}
	return &cachedRegistry{cache: c, next: next}
}

// Invalidate drops every cached entry.
func (c *TypeCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]*typeCacheEntry)
	c.mu.Unlock()
}

func (c *TypeCache) get(key string) (map[string]int, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Since(entry.built) > c.ttl {
		return nil, false
	}
	return entry.ids, true
}

func (c *TypeCache) put(key string, ids map[string]int) {
	c.mu.Lock()
	c.entries[key] = &typeCacheEntry{ids: ids, built: time.Now()}
	c.mu.Unlock()
}

// cachedRegistry resolves through the cache, falling back to the wrapped registry.
type cachedRegistry struct {
	cache *TypeCache
	next  RelationTypeRegistry
}

func (r *cachedRegistry) ResolveRelationTypeIDs(ctx context.Context, aliases []string) (map[string]int, error) {
	key := cacheKey(aliases)

	// Fast path
	if ids, ok := r.cache.get(key); ok {
		return copyIDs(ids), nil
	}

	// Slow path: one lookup per key, concurrent callers share it
	result, err, _ := r.cache.sf.Do(key, func() (interface{}, error) {
		if ids, ok := r.cache.get(key); ok {
			return ids, nil
		}

		ids, err := r.next.ResolveRelationTypeIDs(ctx, aliases)
		if err != nil {
			return nil, err
		}

		r.cache.put(key, ids)
		return ids, nil
	})
	if err != nil {
		return nil, err
	}

	return copyIDs(result.(map[string]int)), nil
}

// cacheKey builds an order-independent key for an alias list.
func cacheKey(aliases []string) string {
	sorted := append([]string(nil), aliases...)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}

func copyIDs(ids map[string]int) map[string]int {
	out := make(map[string]int, len(ids))
	for k, v := range ids {
		out[k] = v
	}
	return out
}

// cachedScope overrides the registry of a scope.
type cachedScope struct {
	Scope
	types RelationTypeRegistry
}

func (s *cachedScope) RelationTypes() RelationTypeRegistry {
	return s.types
}

// WithTypeCache returns a scope whose relation type lookups use the cache.
func WithTypeCache(scope Scope, cache *TypeCache) Scope {
	if !cache.Enabled() {
		return scope
	}
	return &cachedScope{Scope: scope, types: cache.Registry(scope.RelationTypes())}
}
