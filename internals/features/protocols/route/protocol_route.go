package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"protokolku_backend/internals/constants"
	protocolController "protokolku_backend/internals/features/protocols/controller"
	"protokolku_backend/internals/middlewares/auth"
	"protokolku_backend/internals/realtime"
)

// ProtocolRoutes: lifecycle protokol + QR + scanner API.
func ProtocolRoutes(app fiber.Router, db *gorm.DB, hub realtime.Broadcaster) {
	ctrl := protocolController.NewProtocolController(db, hub)
	barcode := protocolController.NewBarcodeController()

	requireAuth := auth.RequireAuth(db)
	operatorUp := auth.OnlyRoles(
		constants.RoleErrorOperator("manajemen protokol"),
		constants.OperatorAndAbove...,
	)

	// pembuatan & transisi manual dari dashboard
	app.Get("/create-protocol", requireAuth, operatorUp, ctrl.CreateForm)
	protocols := app.Group("/protocols", requireAuth, operatorUp)
	protocols.Post("/", ctrl.CreateBatch)
	protocols.Post("/:id/status", ctrl.UpdateStatus)

	// scanner & lookup: semua role terautentikasi (termasuk distribusi)
	app.Get("/scanner", requireAuth, ctrl.ScannerHome)
	app.Get("/scan/:code", requireAuth, ctrl.Scan)
	app.Get("/barcode/:code.png", requireAuth, barcode.Render)
	app.Get("/download/barcode/:code.png", requireAuth, barcode.Download)

	api := app.Group("/api", requireAuth)
	api.Post("/confirm-usage/:code", ctrl.ConfirmUsage)
	api.Post("/update-patient-data/:code", ctrl.UpdatePatientData)
	api.Get("/patient-data/:code", ctrl.PatientData)
}
