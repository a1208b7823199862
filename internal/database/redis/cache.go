package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KadakWNL/crowd-connect/internal/entity"

	"github.com/go-redis/redis/v8"
)

const listingKey = "events:listing"

// CacheRepository keeps the public event listing in Redis for a short TTL.
// Any event mutation invalidates it, so a stale listing never outlives the TTL.
type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	return &CacheRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CacheRepository) SetListing(ctx context.Context, events []*entity.EventWithHost) error {
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, listingKey, data, r.ttl).Err()
}

func (r *CacheRepository) GetListing(ctx context.Context) ([]*entity.EventWithHost, error) {
	data, err := r.client.Get(ctx, listingKey).Result()
	if err != nil {
		return nil, err
	}

	var events []*entity.EventWithHost
	err = json.Unmarshal([]byte(data), &events)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *CacheRepository) InvalidateListing(ctx context.Context) error {
	return r.client.Del(ctx, listingKey).Err()
}
