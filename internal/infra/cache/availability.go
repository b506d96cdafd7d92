package cache

import (
	"context"
	"strconv"
	"time"

	"cineapp/internal/pkg/config"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cineapp:room:"

func capacityKey(roomID uuid.UUID) string {
	return keyPrefix + roomID.String() + ":capacity"
}

type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAvailabilityCache(client *redis.Client, cfg config.RedisConfig) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client, ttl: cfg.TTL}
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, roomID uuid.UUID) (int, bool, error) {
	raw, err := c.client.Get(ctx, capacityKey(roomID)).Result()
	if errs.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errs.Wrap(err, "redis get capacity")
	}

	capacity, err := strconv.Atoi(raw)
	if err != nil {
		// unreadable entry, treat as a miss
		return 0, false, errs.Wrapf(err, "corrupt capacity entry for room %s", roomID)
	}
	return capacity, true, nil
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, roomID uuid.UUID, capacity int) error {
	if err := c.client.Set(ctx, capacityKey(roomID), capacity, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "redis set capacity")
	}
	return nil
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, roomIDs ...uuid.UUID) error {
	if len(roomIDs) == 0 {
		return nil
	}
	keys := make([]string, len(roomIDs))
	for i, id := range roomIDs {
		keys[i] = capacityKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return errs.Wrap(err, "redis delete capacity")
	}
	return nil
}

// NoopAvailabilityCache always misses.
type NoopAvailabilityCache struct{}

func (NoopAvailabilityCache) Get(context.Context, uuid.UUID) (int, bool, error) { return 0, false, nil }
func (NoopAvailabilityCache) Set(context.Context, uuid.UUID, int) error         { return nil }
func (NoopAvailabilityCache) Invalidate(context.Context, ...uuid.UUID) error    { return nil }

var (
	_ shared.AvailabilityCache = (*RedisAvailabilityCache)(nil)
	_ shared.AvailabilityCache = NoopAvailabilityCache{}
)
