package service

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"protokolku_backend/internals/constants"
	activityModel "protokolku_backend/internals/features/activity/model"
	activityService "protokolku_backend/internals/features/activity/service"
	"protokolku_backend/internals/features/partners/dto"
	"protokolku_backend/internals/features/partners/model"
	helper "protokolku_backend/internals/helpers"
)

// PartnerService mengelola CRUD mitra + inisialisasi ledger-nya.
type PartnerService struct {
	DB    *gorm.DB
	Stock StockService
}

func NewPartnerService(db *gorm.DB) *PartnerService {
	return &PartnerService{DB: db}
}

// Actor adalah atribusi + metadata audit dari request yang sedang jalan.
type Actor struct {
	UserID    uint
	Username  string
	IPAddress string
	UserAgent string
}

// Create memvalidasi lalu membuat mitra + baris stock_tracking 0/0/0
// dalam satu transaksi. Kode di-uppercase; duplikat → Conflict (400)
// tanpa menyentuh ledger.
func (s *PartnerService) Create(req dto.CreatePartnerRequest, actor Actor) (*model.PartnerModel, error) {
	if !model.ValidPartnerType(req.Type) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Jenis mitra tidak valid")
	}
	if !alphanumericCode(req.Code) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kode harus berupa alfanumerik")
	}
	if _, ok := constants.FindProvince(req.ProvinceCode); !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kode provinsi tidak dikenal")
	}

	partner := model.PartnerModel{
		Name:         req.Name,
		Type:         req.Type,
		Code:         strings.ToUpper(req.Code),
		ProvinceCode: req.ProvinceCode,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		IsActive:     true,
		CreatedAt:    helper.NowWIB(),
		UpdatedAt:    helper.NowWIB(),
	}
	if actor.UserID > 0 {
		uid := actor.UserID
		partner.CreatedBy = &uid
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&partner).Error; err != nil {
			if IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Kode mitra sudah digunakan")
			}
			log.Printf("[ERROR] Gagal membuat mitra: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Database error")
		}
		if err := s.Stock.InitStock(tx, partner.ID); err != nil {
			log.Printf("[ERROR] Gagal inisialisasi stock tracking: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Database error")
		}
		return activityService.Record(tx, activityService.Entry{
			UserID:     actor.UserID,
			Action:     activityModel.ActionCreatePartner,
			TargetType: "partner",
			TargetID:   partner.Code,
			Details:    fiber.Map{"name": partner.Name, "type": partner.Type},
			IPAddress:  actor.IPAddress,
			UserAgent:  actor.UserAgent,
		})
	})
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// ToggleActive membalik is_active mitra (soft-deactivate, tanpa delete).
func (s *PartnerService) ToggleActive(partnerID uint) (*model.PartnerModel, error) {
	var partner model.PartnerModel
	if err := s.DB.First(&partner, partnerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Mitra tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}

	err := s.DB.Model(&partner).Updates(map[string]interface{}{
		"is_active":  !partner.IsActive,
		"updated_at": helper.NowWIB(),
	}).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	partner.IsActive = !partner.IsActive
	return &partner, nil
}

// List mengembalikan semua mitra + username pembuat + jumlah protokolnya.
func (s *PartnerService) List() ([]dto.PartnerListItem, error) {
	type row struct {
		model.PartnerModel
		CreatedByUsername *string `gorm:"column:created_by_username"`
		ProtocolCount     int     `gorm:"column:protocol_count"`
	}
	var rows []row
	err := s.DB.Table("partner AS p").
		Select(`p.*, u.username AS created_by_username,
			(SELECT COUNT(*) FROM protocols WHERE partner_id = p.id) AS protocol_count`).
		Joins("LEFT JOIN users u ON p.created_by = u.id").
		Order("p.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}

	items := make([]dto.PartnerListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.PartnerListItem{
			ID:                r.ID,
			Name:              r.Name,
			Type:              r.Type,
			Code:              r.Code,
			ProvinceCode:      r.ProvinceCode,
			Address:           r.Address,
			Phone:             r.Phone,
			Email:             r.Email,
			IsActive:          r.IsActive,
			CreatedAt:         helper.FormatWIBTimestamp(r.CreatedAt),
			CreatedByUsername: r.CreatedByUsername,
			ProtocolCount:     r.ProtocolCount,
		})
	}
	return items, nil
}

// ActiveByProvince mengembalikan opsi dropdown mitra aktif di satu provinsi.
func (s *PartnerService) ActiveByProvince(provinceCode string) ([]dto.PartnerOption, error) {
	var options []dto.PartnerOption
	err := s.DB.Model(&model.PartnerModel{}).
		Select("id, name, type, code").
		Where("province_code = ? AND is_active = ?", provinceCode, true).
		Order("name").
		Scan(&options).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	return options, nil
}

// StockSnapshots membangun respon GET /api/stock: counter per mitra aktif.
func (s *PartnerService) StockSnapshots() ([]dto.StockSnapshot, error) {
	type row struct {
		ID             uint
		Name           string
		Type           string
		Code           string
		ProvinceCode   string  `gorm:"column:province_code"`
		TotalAllocated int     `gorm:"column:total_allocated"`
		TotalUsed      int     `gorm:"column:total_used"`
		TotalAvailable int     `gorm:"column:total_available"`
		LastUpdated    *string `gorm:"column:last_updated"`
	}
	var rows []row
	err := s.DB.Table("partner AS p").
		Select(`p.id, p.name, p.type, p.code, p.province_code,
			COALESCE(st.total_allocated, 0) AS total_allocated,
			COALESCE(st.total_used, 0) AS total_used,
			COALESCE(st.total_available, 0) AS total_available,
			st.last_updated`).
		Joins("LEFT JOIN stock_tracking st ON p.id = st.partner_id").
		Where("p.is_active = ?", true).
		Order("p.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}

	out := make([]dto.StockSnapshot, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockSnapshot{
			ID:             r.ID,
			Name:           r.Name,
			Type:           r.Type,
			Code:           r.Code,
			ProvinceCode:   r.ProvinceCode,
			TotalAllocated: r.TotalAllocated,
			TotalUsed:      r.TotalUsed,
			TotalAvailable: r.TotalAvailable,
			LastUpdated:    r.LastUpdated,
		})
	}
	return out, nil
}

// IsUniqueViolation mendeteksi pelanggaran unique constraint lintas
// driver (sqlite & postgres).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "SQLSTATE 23505")
}

func alphanumericCode(code string) bool {
	stripped := strings.NewReplacer("-", "", "_", "").Replace(code)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
