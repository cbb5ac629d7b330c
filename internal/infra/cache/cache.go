package cache

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/ristretto"
	"golang.org/x/sync/singleflight"
)

var ErrInvalidValue = errors.New("invalid cached value")

// Cache is a byte-oriented TTL cache. Callers own the encoding of values,
// which keeps the in-process and the Redis implementations interchangeable.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool
	Delete(ctx context.Context, key string)
	GetOrSet(ctx context.Context, key string, ttl time.Duration, loader func() ([]byte, error)) ([]byte, error)
}

var _ Cache = (*RistrettoCache)(nil)

// RistrettoCache provides an in-process cache backed by Ristretto
type RistrettoCache struct {
	store       *ristretto.Cache
	singleGroup singleflight.Group
	config      *CacheConfig
}

// CacheConfig holds configuration for the cache
type CacheConfig struct {
	// MaxCost is the maximum cost of the cache (in bytes)
	MaxCost int64
	// NumCounters is the number of counters for the cache
	NumCounters int64
	// BufferItems is the number of items to buffer
	BufferItems int64
}

// DefaultConfig sizes the cache for a few hundred form templates.
func DefaultConfig() *CacheConfig {
	return &CacheConfig{
		MaxCost:     64 << 20,
		NumCounters: 1e5,
		BufferItems: 64,
	}
}

func New(config *CacheConfig) (*RistrettoCache, error) {
	if config == nil {
		config = DefaultConfig()
	}

	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: config.NumCounters,
		MaxCost:     config.MaxCost,
		BufferItems: config.BufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &RistrettoCache{
		store:  store,
		config: config,
	}, nil
}

func (c *RistrettoCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	value, found := c.store.Get(key)
	if !found {
		return nil, false
	}

	data, ok := value.([]byte)
	return data, ok
}

// Set stores the value using its length as cost. The write is visible to
// readers once it returns.
func (c *RistrettoCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}

	stored := c.store.SetWithTTL(key, value, int64(len(value))+1, ttl)
	c.store.Wait()
	return stored
}

func (c *RistrettoCache) Delete(ctx context.Context, key string) {
	if ctx.Err() != nil {
		return
	}
	c.store.Del(key)
}

// GetOrSet uses singleflight to prevent cache stampede
func (c *RistrettoCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, loader func() ([]byte, error)) ([]byte, error) {
	if value, found := c.Get(ctx, key); found {
		return value, nil
	}

	value, err, _ := c.singleGroup.Do(key, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if value, found := c.Get(ctx, key); found {
			return value, nil
		}

		value, err := loader()
		if err != nil {
			return nil, err
		}

		c.Set(ctx, key, value, ttl)
		return value, nil
	})
	if err != nil {
		return nil, err
	}

	data, ok := value.([]byte)
	if !ok {
		return nil, ErrInvalidValue
	}

	return data, nil
}

func (c *RistrettoCache) Close() {
	c.store.Close()
}
