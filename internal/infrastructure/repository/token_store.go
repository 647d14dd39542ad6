package repository

import (
	"context"
	"errors"
	"time"

	"statuspulse-integration-layer/internal/ports"

	"github.com/redis/go-redis/v9"
)

const shopTokenKeyPrefix = "shoptoken:"

// RedisShopTokenStore implements ShopTokenStore on Redis. Token expiry is
// delegated to Redis key TTLs.
type RedisShopTokenStore struct {
	rdb *redis.Client
}

// NewRedisShopTokenStore creates a new Redis-backed shop token store
func NewRedisShopTokenStore(rdb *redis.Client) ports.ShopTokenStore {
	return &RedisShopTokenStore{rdb: rdb}
}

// Save stores a token to shop-id association with the given TTL
func (s *RedisShopTokenStore) Save(ctx context.Context, token, shopID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, shopTokenKeyPrefix+token, shopID, ttl).Err(); err != nil {
		return storageErr("failed to save shop token", err)
	}
	return nil
}

// Resolve returns the shop id for a token, or an empty string when the token
// is unknown or has expired
func (s *RedisShopTokenStore) Resolve(ctx context.Context, token string) (string, error) {
	shopID, err := s.rdb.Get(ctx, shopTokenKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", storageErr("failed to resolve shop token", err)
	}
	return shopID, nil
}
