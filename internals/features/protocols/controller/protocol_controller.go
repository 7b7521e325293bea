package controller

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"protokolku_backend/internals/constants"
	activityModel "protokolku_backend/internals/features/activity/model"
	activityService "protokolku_backend/internals/features/activity/service"
	"protokolku_backend/internals/features/protocols/dto"
	"protokolku_backend/internals/features/protocols/model"
	"protokolku_backend/internals/features/protocols/service"
	helper "protokolku_backend/internals/helpers"
	authMiddleware "protokolku_backend/internals/middlewares/auth"
	"protokolku_backend/internals/observability"
	"protokolku_backend/internals/realtime"
)

var validate = validator.New()

type ProtocolController struct {
	DB      *gorm.DB
	Service *service.ProtocolService
}

func NewProtocolController(db *gorm.DB, hub realtime.Broadcaster) *ProtocolController {
	return &ProtocolController{
		DB:      db,
		Service: service.NewProtocolService(db, hub),
	}
}

func (ctrl *ProtocolController) actor(c *fiber.Ctx) service.Actor {
	id := authMiddleware.MustIdentity(c)
	ip, ua := activityService.RequestMeta(c)
	return service.Actor{
		UserID:    id.UserID,
		Username:  id.Username,
		IPAddress: ip,
		UserAgent: ua,
	}
}

// CreateForm: GET /create-protocol — data halaman form pembuatan.
func (ctrl *ProtocolController) CreateForm(c *fiber.Ctx) error {
	activityService.RecordFromRequest(ctrl.DB, c, activityModel.ActionViewCreateForm,
		"system", "", nil)
	return helper.Success(c, "Form pembuatan protokol", fiber.Map{
		"provinces": constants.Provinces,
		"success":   c.Query("success"),
	})
}

// ScannerHome: GET /scanner — halaman masuk scanner, tujuan redirect
// role distribusi setelah login.
func (ctrl *ProtocolController) ScannerHome(c *fiber.Ctx) error {
	id := authMiddleware.MustIdentity(c)
	activityService.RecordFromRequest(ctrl.DB, c, activityModel.ActionViewScanner,
		"system", "", nil)
	return helper.Success(c, "Scanner siap digunakan", fiber.Map{
		"username": id.Username,
		"role":     id.Role,
		"endpoints": fiber.Map{
			"lookup":  "/scan/:code",
			"confirm": "/api/confirm-usage/:code",
			"patient": "/api/update-patient-data/:code",
		},
	})
}

// CreateBatch: POST /protocols (form dashboard).
// Quantity diparse manual: input non-numerik harus 400, bukan default 1.
func (ctrl *ProtocolController) CreateBatch(c *fiber.Ctx) error {
	req := dto.CreateBatchRequest{
		Province: strings.TrimSpace(c.FormValue("province")),
	}

	if raw := strings.TrimSpace(c.FormValue("partner_id")); raw != "" {
		pid, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Partner tidak valid")
		}
		req.PartnerID = uint(pid)
	}

	qtyRaw := strings.TrimSpace(c.FormValue("quantity", "1"))
	qty, err := strconv.Atoi(qtyRaw)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Quantity must be a number")
	}
	req.Quantity = qty

	codes, err := ctrl.Service.CreateBatch(req, ctrl.actor(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if helper.WantsJSON(c) {
		return helper.SuccessWithCode(c, fiber.StatusCreated,
			fmt.Sprintf("%d protocol(s) created successfully!", len(codes)),
			fiber.Map{"codes": codes})
	}
	msg := url.QueryEscape(fmt.Sprintf("%d protocol(s) created successfully!", len(codes)))
	return c.Redirect("/dashboard?success=" + msg)
}

// UpdateStatus: POST /protocols/:id/status (transisi manual).
func (ctrl *ProtocolController) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	p, err := ctrl.Service.TransitionByID(uint(id), req.Status, ctrl.actor(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if helper.WantsJSON(c) {
		return helper.Success(c, "Status updated to "+p.Status, p)
	}
	return c.Redirect("/dashboard")
}

// ConfirmUsage: POST /api/confirm-usage/:code (scanner).
func (ctrl *ProtocolController) ConfirmUsage(c *fiber.Ctx) error {
	code := c.Params("code")

	var req dto.ConfirmUsageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	var newStatus string
	switch req.Action {
	case "mark_terpakai":
		newStatus = model.StatusTerpakai
	case "mark_delivered":
		newStatus = model.StatusDelivered
	default:
		return helper.Error(c, fiber.StatusBadRequest, "Invalid action")
	}

	if _, err := ctrl.Service.TransitionByCode(code, newStatus, ctrl.actor(c)); err != nil {
		return helper.FromFiberError(c, err)
	}

	row, err := ctrl.Service.FindByCode(code)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Status updated to " + newStatus,
		"protocol": row,
	})
}

// Scan: GET /scan/:code — lookup + timestamp berformat lokal id-ID.
func (ctrl *ProtocolController) Scan(c *fiber.Ctx) error {
	row, err := ctrl.Service.FindByCode(c.Params("code"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	observability.ScanLookups.Inc()

	return c.JSON(fiber.Map{
		"id":                   row.ID,
		"code":                 row.Code,
		"province_code":        row.ProvinceCode,
		"partner_id":           row.PartnerID,
		"partner_name":         row.PartnerName,
		"partner_type":         row.PartnerType,
		"status":               row.Status,
		"created_at":           helper.FormatWIBTimestamp(row.CreatedAt),
		"created_at_formatted": helper.FormatTanggalIndonesia(row.CreatedAt),
	})
}

// UpdatePatientData: POST /api/update-patient-data/:code.
func (ctrl *ProtocolController) UpdatePatientData(c *fiber.Ctx) error {
	var req dto.UpdatePatientDataRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Patient name and healthcare facility are required")
	}

	if err := ctrl.Service.UpdatePatientData(c.Params("code"), req, ctrl.actor(c)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Patient data updated successfully",
	})
}

// PatientData: GET /api/patient-data/:code.
func (ctrl *ProtocolController) PatientData(c *fiber.Ctx) error {
	p, err := ctrl.Service.PatientData(c.Params("code"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    p,
	})
}
