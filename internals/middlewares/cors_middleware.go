package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"protokolku_backend/internals/configs"
)

// CorsMiddleware membuat middleware CORS. Origin frontend publik bisa
// di-override lewat PUBLIC_FRONTEND_ORIGIN.
func CorsMiddleware() fiber.Handler {
	origin := configs.GetEnv("PUBLIC_FRONTEND_ORIGIN", "*")
	return cors.New(cors.Config{
		AllowOrigins: origin,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With",
	})
}
