package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"sdc_backend/internals/configs"
	"sdc_backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App, cfg *configs.Config) {
	app.Use(RecoveryMiddleware(!cfg.IsProduction()))
	// aligned with the DB statement_timeout
	app.Use(RequestID(5 * time.Second))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.AllowedOrigins))
	app.Use(GlobalRateLimiter())
	app.Use(WriteRateLimiter())
}
