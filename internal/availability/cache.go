package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// Cache stores computed slot sequences keyed by link and range. Entries
// are best-effort; a miss or a cache error just recomputes.
type Cache interface {
	Get(ctx context.Context, key string) ([]Slot, bool)
	Set(ctx context.Context, key string, slots []Slot)
	InvalidateOwner(ctx context.Context, ownerID string)
}

func cacheKey(ownerID, linkID string, from, to time.Time) string {
	return fmt.Sprintf("slots:%s:%s:%d:%d", ownerID, linkID, from.Unix(), to.Unix())
}

func ownerKeyPrefix(ownerID string) string {
	return "slots:" + ownerID + ":"
}

type lruCache struct {
	inner *lru.LRU[string, []Slot]
}

// NewLRUCache returns an in-process cache with per-entry expiry.
func NewLRUCache(size int, ttl time.Duration) Cache {
	return &lruCache{inner: lru.NewLRU[string, []Slot](size, nil, ttl)}
}

func (c *lruCache) Get(_ context.Context, key string) ([]Slot, bool) {
	return c.inner.Get(key)
}

func (c *lruCache) Set(_ context.Context, key string, slots []Slot) {
	c.inner.Add(key, slots)
}

func (c *lruCache) InvalidateOwner(_ context.Context, ownerID string) {
	prefix := ownerKeyPrefix(ownerID)
	for _, key := range c.inner.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.inner.Remove(key)
		}
	}
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache returns a cache shared across instances. Slot payloads
// are stored as JSON.
func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]Slot, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *redisCache) Set(ctx context.Context, key string, slots []Slot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, c.ttl)
}

func (c *redisCache) InvalidateOwner(ctx context.Context, ownerID string) {
	iter := c.client.Scan(ctx, 0, ownerKeyPrefix(ownerID)+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}

type noopCache struct{}

// NewNoopCache disables caching entirely.
func NewNoopCache() Cache { return noopCache{} }

func (noopCache) Get(context.Context, string) ([]Slot, bool) { return nil, false }
func (noopCache) Set(context.Context, string, []Slot)        {}
func (noopCache) InvalidateOwner(context.Context, string)    {}
