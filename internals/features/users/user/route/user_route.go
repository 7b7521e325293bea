package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"protokolku_backend/internals/constants"
	userController "protokolku_backend/internals/features/users/user/controller"
	"protokolku_backend/internals/middlewares/auth"
)

// UserRoutes: manajemen user, khusus admin.
func UserRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := app.Group("/users",
		auth.RequireAuth(db),
		auth.OnlyRoles(constants.RoleErrorAdmin("manajemen user"), constants.AdminOnly...),
	)

	users.Get("/", ctrl.List)
	users.Post("/", ctrl.Create)
	users.Post("/:id/toggle-status", ctrl.ToggleStatus)
	users.Post("/:id/reset-password", ctrl.ResetPassword)
}
