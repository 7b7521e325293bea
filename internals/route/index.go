package routes

import (
	"os"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	dashboardRoute "protokolku_backend/internals/features/dashboard/route"
	partnerRoute "protokolku_backend/internals/features/partners/route"
	protocolRoute "protokolku_backend/internals/features/protocols/route"
	authRoute "protokolku_backend/internals/features/users/auth/route"
	userRoute "protokolku_backend/internals/features/users/user/route"
	"protokolku_backend/internals/middlewares/auth"
	"protokolku_backend/internals/realtime"
)

var startTime = time.Now()

// SetupRoutes mendaftarkan seluruh endpoint aplikasi.
func SetupRoutes(app *fiber.App, db *gorm.DB, hub *realtime.Hub) {
	baseRoutes(app, db, hub)

	authRoute.AuthRoutes(app, db)
	dashboardRoute.DashboardRoutes(app, db)
	partnerRoute.PartnerRoutes(app, db)
	protocolRoute.ProtocolRoutes(app, db, hub)
	userRoute.UserRoutes(app, db)
}

func baseRoutes(app *fiber.App, db *gorm.DB, hub *realtime.Hub) {
	// redirect sesuai status sesi
	app.Get("/", func(c *fiber.Ctx) error {
		if c.Cookies(auth.SessionCookieName) != "" {
			return c.Redirect("/dashboard")
		}
		return c.Redirect("/login")
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"pid":            os.Getpid(),
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"ws_clients":     hub.ClientCount(),
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// upgrade guard: selain websocket ditolak 426
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/updates", websocket.New(hub.Handler()))
}
