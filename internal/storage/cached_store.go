package storage

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is used when NewCachedLogoStore gets a non-positive TTL
const DefaultCacheTTL = 1 * time.Hour

// CachedLogoStore keeps recently read logos in memory. Writes go through
// to the backing store and refresh the cache entry.
type CachedLogoStore struct {
	next    LogoStore
	ttl     time.Duration
	now     func() time.Time
	cache   map[string]*cachedLogo
	cacheMu sync.RWMutex
}

type cachedLogo struct {
	data      []byte
	expiresAt time.Time
}

// NewCachedLogoStore wraps next with a TTL cache
func NewCachedLogoStore(next LogoStore, ttl time.Duration) *CachedLogoStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedLogoStore{
		next:  next,
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[string]*cachedLogo),
	}
}

func (c *CachedLogoStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := c.next.Put(ctx, key, data, contentType); err != nil {
		return err
	}
	c.store(key, data)
	return nil
}

// Get serves from the cache while the entry is fresh
func (c *CachedLogoStore) Get(ctx context.Context, key string) ([]byte, error) {
	c.cacheMu.RLock()
	if cached, ok := c.cache[key]; ok && c.now().Before(cached.expiresAt) {
		c.cacheMu.RUnlock()
		return cached.data, nil
	}
	c.cacheMu.RUnlock()

	data, err := c.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	c.store(key, data)
	return data, nil
}

// Delete evicts the entry before removing the object from the backing store
func (c *CachedLogoStore) Delete(ctx context.Context, key string) error {
	c.cacheMu.Lock()
	delete(c.cache, key)
	c.cacheMu.Unlock()

	return c.next.Delete(ctx, key)
}

func (c *CachedLogoStore) store(key string, data []byte) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	now := c.now()
	for k, v := range c.cache {
		if !now.Before(v.expiresAt) {
			delete(c.cache, k)
		}
	}
	c.cache[key] = &cachedLogo{data: data, expiresAt: now.Add(c.ttl)}
}
