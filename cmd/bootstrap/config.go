package bootstrap

import (
	"errors"
	"io/fs"
	"log/slog"

	"cineapp/internal/pkg/config"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(LoadConfig),
	ConfigSections,
)

// ConfigSections exposes the parts of config.Config that components depend on
// directly. Tests that build their own config.Config reuse it.
var ConfigSections = fx.Provide(
	func(cfg config.Config) config.RedisConfig { return cfg.Redis },
	func(cfg config.Config) config.BrokerConfig { return cfg.Broker },
	func(cfg config.Config) config.IdempotencyConfig { return cfg.Idempotency },
	func(cfg config.Config) config.LogConfig { return cfg.Log },
)

// LoadConfig reads an optional .env file first. Variables already set in the
// environment take precedence over the file.
func LoadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err.Error())
	}
	return config.LoadConfig()
}
