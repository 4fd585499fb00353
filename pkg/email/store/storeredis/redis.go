// Package storeredis is the Redis implementation of the draft cache.
package storeredis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abraxas-365/mailcraft/pkg/email/store"
)

const defaultTTL = 24 * time.Hour

// RedisDraftCache implements store.DraftCache backed by Redis.
type RedisDraftCache struct {
	rdb *redis.Client
}

// NewRedisDraftCache creates a new Redis-backed draft cache.
func NewRedisDraftCache(rdb *redis.Client) *RedisDraftCache {
	return &RedisDraftCache{rdb: rdb}
}

func draftKey(id string) string { return fmt.Sprintf("mailcraft:draft:%s", id) }

// Put stores the draft under its id with the given TTL. A zero TTL falls
// back to 24 hours so abandoned wizards age out.
func (c *RedisDraftCache) Put(ctx context.Context, draft store.Draft, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	draft.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(draft)
	if err != nil {
		return storeRedisErrors.NewWithCause(ErrMarshal, err).WithDetail("id", draft.ID)
	}
	if err := c.rdb.Set(ctx, draftKey(draft.ID), data, ttl).Err(); err != nil {
		return storeRedisErrors.NewWithCause(ErrCacheWrite, err).WithDetail("id", draft.ID)
	}
	return nil
}

// Get loads a draft, mapping a missing key to the store's not-found error.
func (c *RedisDraftCache) Get(ctx context.Context, id string) (*store.Draft, error) {
	data, err := c.rdb.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, store.DraftNotFound(id)
		}
		return nil, storeRedisErrors.NewWithCause(ErrCacheRead, err).WithDetail("id", id)
	}

	var draft store.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, storeRedisErrors.NewWithCause(ErrMarshal, err).WithDetail("id", id)
	}
	return &draft, nil
}

// Drop removes a draft. Dropping an absent draft is not an error.
func (c *RedisDraftCache) Drop(ctx context.Context, id string) error {
	if err := c.rdb.Del(ctx, draftKey(id)).Err(); err != nil {
		return storeRedisErrors.NewWithCause(ErrCacheWrite, err).WithDetail("id", id)
	}
	return nil
}
