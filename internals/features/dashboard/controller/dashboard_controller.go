package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"protokolku_backend/internals/features/activity/model"
	activityService "protokolku_backend/internals/features/activity/service"
	"protokolku_backend/internals/features/dashboard/service"
	partnerService "protokolku_backend/internals/features/partners/service"
	helper "protokolku_backend/internals/helpers"
	"protokolku_backend/internals/middlewares/auth"
)

type DashboardController struct {
	DB        *gorm.DB
	Analytics *service.AnalyticsService
	Partners  *partnerService.PartnerService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{
		DB:        db,
		Analytics: service.NewAnalyticsService(db),
		Partners:  partnerService.NewPartnerService(db),
	}
}

// Overview: GET /dashboard. Window mengikuti query ?period=today|week|month|custom
// (custom memakai start_date/end_date, format YYYY-MM-DD).
func (ctrl *DashboardController) Overview(c *fiber.Ctx) error {
	ident := auth.MustIdentity(c)

	period := c.Query("period", "today")
	from, to, err := ctrl.Analytics.PeriodRange(period, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// rollup harian sebelum membaca, supaya analytics_daily selalu segar
	ctrl.Analytics.RollupToday()

	stats := ctrl.Analytics.Stats(from, to)
	stock := ctrl.Analytics.StockSummary()
	recent := ctrl.Analytics.RecentProtocols(from, to)
	partners, err := ctrl.Partners.List()
	if err != nil {
		partners = nil
	}

	activityService.RecordFromRequest(ctrl.DB, c, model.ActionViewDashboard, "system", "", fiber.Map{
		"period": period,
	})

	return helper.Success(c, "Dashboard berhasil dimuat", fiber.Map{
		"user": fiber.Map{
			"id":        ident.UserID,
			"username":  ident.Username,
			"full_name": ident.FullName,
			"role":      ident.Role,
		},
		"period":    period,
		"stats":     stats,
		"stock":     stock,
		"protocols": recent,
		"partners":  partners,
		"success":   c.Query("success"),
	})
}

// AdvancedAnalytics: GET /api/analytics — enam rollup untuk panel analitik.
func (ctrl *DashboardController) AdvancedAnalytics(c *fiber.Ctx) error {
	return helper.Success(c, "Analitik berhasil dimuat", ctrl.Analytics.Advanced())
}
