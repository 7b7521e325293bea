package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"protokolku_backend/internals/constants"
	dashboardController "protokolku_backend/internals/features/dashboard/controller"
	"protokolku_backend/internals/middlewares/auth"
)

// DashboardRoutes: ringkasan + analitik, operator ke atas.
func DashboardRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := dashboardController.NewDashboardController(db)

	requireAuth := auth.RequireAuth(db)
	operatorUp := auth.OnlyRoles(
		constants.RoleErrorOperator("dashboard"),
		constants.OperatorAndAbove...,
	)

	app.Get("/dashboard", requireAuth, operatorUp, ctrl.Overview)
	app.Get("/api/analytics", requireAuth, operatorUp, ctrl.AdvancedAnalytics)
}
