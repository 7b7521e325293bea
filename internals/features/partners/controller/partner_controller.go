package controller

import (
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"protokolku_backend/internals/constants"
	activityService "protokolku_backend/internals/features/activity/service"
	"protokolku_backend/internals/features/partners/dto"
	"protokolku_backend/internals/features/partners/service"
	helper "protokolku_backend/internals/helpers"
	authMiddleware "protokolku_backend/internals/middlewares/auth"
)

var validate = validator.New()

type PartnerController struct {
	DB      *gorm.DB
	Service *service.PartnerService
}

func NewPartnerController(db *gorm.DB) *PartnerController {
	return &PartnerController{
		DB:      db,
		Service: service.NewPartnerService(db),
	}
}

func (ctrl *PartnerController) actor(c *fiber.Ctx) service.Actor {
	id := authMiddleware.MustIdentity(c)
	ip, ua := activityService.RequestMeta(c)
	return service.Actor{
		UserID:    id.UserID,
		Username:  id.Username,
		IPAddress: ip,
		UserAgent: ua,
	}
}

// List: GET /partner — daftar mitra + daftar provinsi untuk form.
func (ctrl *PartnerController) List(c *fiber.Ctx) error {
	partners, err := ctrl.Service.List()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Daftar mitra berhasil dimuat", fiber.Map{
		"partners":  partners,
		"provinces": constants.Provinces,
		"success":   c.Query("success"),
		"error":     c.Query("error"),
	})
}

// Create: POST /partner (form) dan POST /api/partner (JSON).
func (ctrl *PartnerController) Create(c *fiber.Ctx) error {
	var req dto.CreatePartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	partner, err := ctrl.Service.Create(req, ctrl.actor(c))
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok && !helper.WantsJSON(c) {
			return c.Redirect("/partner?error=" + url.QueryEscape(fe.Message))
		}
		return helper.FromFiberError(c, err)
	}

	if helper.WantsJSON(c) {
		return helper.SuccessWithCode(c, fiber.StatusCreated, "Mitra berhasil ditambahkan", partner)
	}
	return c.Redirect("/partner?success=" + url.QueryEscape("Mitra berhasil ditambahkan"))
}

// ToggleStatus: POST /partner/:id/toggle-status (admin).
func (ctrl *PartnerController) ToggleStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	partner, err := ctrl.Service.ToggleActive(uint(id))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	msg := "Mitra berhasil dinonaktifkan"
	if partner.IsActive {
		msg = "Mitra berhasil diaktifkan"
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   msg,
		"is_active": partner.IsActive,
	})
}

// ByProvince: GET /api/partner/:provinceCode — dropdown mitra aktif.
func (ctrl *PartnerController) ByProvince(c *fiber.Ctx) error {
	code := c.Params("provinceCode")
	if _, ok := constants.FindProvince(code); !ok {
		return helper.Error(c, fiber.StatusBadRequest, "Kode provinsi tidak dikenal")
	}
	options, err := ctrl.Service.ActiveByProvince(code)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return c.JSON(options)
}

// Stock: GET /api/stock — snapshot ledger seluruh mitra aktif.
func (ctrl *PartnerController) Stock(c *fiber.Ctx) error {
	snapshots, err := ctrl.Service.StockSnapshots()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return c.JSON(snapshots)
}
