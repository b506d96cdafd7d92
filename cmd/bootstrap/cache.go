package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"cineapp/internal/infra/cache"
	"cineapp/internal/pkg/config"
	"cineapp/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewAvailabilityCache,
	),
)

// NewAvailabilityCache falls back to a cache that always misses when Redis
// is disabled. An unreachable Redis is logged but does not stop startup.
func NewAvailabilityCache(lc fx.Lifecycle, cfg config.RedisConfig, logger *slog.Logger) shared.AvailabilityCache {
	if !cfg.Enabled {
		logger.Info("availability cache disabled")
		return cache.NoopAvailabilityCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := client.Ping(pingCtx).Err(); err != nil {
				logger.Warn("redis not reachable, availability reads go to postgres", "addr", cfg.Addr, "error", err.Error())
				return nil
			}
			logger.Info("redis connected", "addr", cfg.Addr)
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return cache.NewRedisAvailabilityCache(client, cfg)
}
