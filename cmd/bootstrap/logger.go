package bootstrap

import (
	"log/slog"

	"cineapp/internal/handler/middleware"
	"cineapp/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger(cfg config.LogConfig) *slog.Logger {
	return middleware.NewLogger(cfg)
}
