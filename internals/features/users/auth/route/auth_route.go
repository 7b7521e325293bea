package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "protokolku_backend/internals/features/users/auth/controller"
	"protokolku_backend/internals/middlewares"
)

func AuthRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	// login dibatasi per-IP; percobaan sukses tidak dihitung
	app.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	app.Get("/logout", ctrl.Logout)
}
