package bootstrap

import (
	"context"
	"log/slog"

	"cineapp/internal/infra/broker"
	"cineapp/internal/pkg/config"
	"cineapp/internal/usecase/worker"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewPublisher,
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.BrokerConfig, logger *slog.Logger) worker.Publisher {
	pub := broker.NewRabbitPublisher(cfg, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub
}
