package components

import (
	"context"
	"log/slog"

	"cineapp/internal/pkg/config"
	"cineapp/internal/usecase/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewOutboxRelay,
		worker.NewIdempotencySweeper,
	),
	fx.Invoke(startOutboxRelay, startIdempotencySweeper),
)

// Without a broker the jobs stay queued until one is configured.
func startOutboxRelay(lc fx.Lifecycle, cfg config.BrokerConfig, relay *worker.OutboxRelay, logger *slog.Logger) {
	if !cfg.Enabled {
		logger.Info("broker disabled, outbox relay not started")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			relay.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return relay.Stop(ctx)
		},
	})
}

func startIdempotencySweeper(lc fx.Lifecycle, sweeper *worker.IdempotencySweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return sweeper.Stop(ctx)
		},
	})
}
