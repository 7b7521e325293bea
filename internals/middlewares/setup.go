package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"protokolku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar dalam urutan:
// recovery → logger → CORS → rate limiter global.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use("/api/", GlobalRateLimiter())
}
