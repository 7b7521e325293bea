package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"protokolku_backend/internals/constants"
	partnerController "protokolku_backend/internals/features/partners/controller"
	"protokolku_backend/internals/middlewares/auth"
)

// PartnerRoutes: halaman mitra (operator ke atas) + API pendukung form.
func PartnerRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := partnerController.NewPartnerController(db)

	operatorUp := auth.OnlyRoles(
		constants.RoleErrorOperator("manajemen mitra"),
		constants.OperatorAndAbove...,
	)
	adminOnly := auth.OnlyRoles(
		constants.RoleErrorAdmin("manajemen mitra"),
		constants.AdminOnly...,
	)

	partner := app.Group("/partner", auth.RequireAuth(db))
	partner.Get("/", operatorUp, ctrl.List)
	partner.Post("/", operatorUp, ctrl.Create)
	partner.Post("/:id/toggle-status", adminOnly, ctrl.ToggleStatus)

	api := app.Group("/api", auth.RequireAuth(db))
	api.Get("/partner/:provinceCode", operatorUp, ctrl.ByProvince)
	api.Post("/partner", operatorUp, ctrl.Create)
	api.Get("/stock", operatorUp, ctrl.Stock)
}
