package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"cineapp/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Browsers must be able to send Idempotency-Key and read Location, whatever
// the environment lists.
var (
	requiredAllowHeaders  = []string{"Content-Type", "Idempotency-Key"}
	requiredExposeHeaders = []string{"Location"}
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeaders(cfg.AllowHeaders, requiredAllowHeaders...),
		ExposeHeaders:    withHeaders(cfg.ExposeHeaders, requiredExposeHeaders...),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("cors configured",
		"allow_origins", cfg.AllowOrigins,
		"allow_headers", corsCfg.AllowHeaders)
	return cors.New(corsCfg)
}

func withHeaders(configured []string, required ...string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.ContainsFunc(out, func(c string) bool { return strings.EqualFold(c, h) }) {
			out = append(out, h)
		}
	}
	return out
}
