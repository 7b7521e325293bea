package service

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"protokolku_backend/internals/constants"
	activityModel "protokolku_backend/internals/features/activity/model"
	activityService "protokolku_backend/internals/features/activity/service"
	partnerModel "protokolku_backend/internals/features/partners/model"
	partnerService "protokolku_backend/internals/features/partners/service"
	"protokolku_backend/internals/features/protocols/dto"
	"protokolku_backend/internals/features/protocols/model"
	helper "protokolku_backend/internals/helpers"
	"protokolku_backend/internals/observability"
	"protokolku_backend/internals/realtime"
)

// Actor: atribusi + metadata audit dari request yang sedang jalan.
type Actor struct {
	UserID    uint
	Username  string
	IPAddress string
	UserAgent string
}

// ProtocolService memegang seluruh lifecycle protokol. Setiap urutan
// multi-statement (insert/update → ledger → audit) jalan dalam satu
// transaksi; event realtime baru disiarkan SETELAH commit.
type ProtocolService struct {
	DB    *gorm.DB
	Stock partnerService.StockService
	Hub   realtime.Broadcaster
}

func NewProtocolService(db *gorm.DB, hub realtime.Broadcaster) *ProtocolService {
	return &ProtocolService{DB: db, Hub: hub}
}

// CreateBatch membuat qty protokol status created untuk satu mitra aktif,
// menaikkan allocated+available mitra sebesar qty, meng-append satu baris
// audit, lalu menyiarkan protocol_created. Mengembalikan kode terurut
// sesuai pembuatan (item 1..N).
func (s *ProtocolService) CreateBatch(req dto.CreateBatchRequest, actor Actor) ([]string, error) {
	if _, ok := constants.FindProvince(req.Province); !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid province")
	}
	if req.PartnerID == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Partner is required")
	}
	if req.Quantity < 1 || req.Quantity > 100 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Quantity must be between 1 and 100")
	}

	var partner partnerModel.PartnerModel
	err := s.DB.Where("id = ? AND is_active = ?", req.PartnerID, true).First(&partner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid or inactive partner")
		}
		log.Printf("[ERROR] Lookup mitra gagal: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}

	now := helper.NowWIB()
	codes := GenerateCodes(now, req.Province, partner.Code, req.Quantity)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		partnerID := partner.ID
		rows := make([]model.ProtocolModel, 0, len(codes))
		for _, code := range codes {
			rows = append(rows, model.ProtocolModel{
				Code:         code,
				ProvinceCode: req.Province,
				PartnerID:    &partnerID,
				Status:       model.StatusCreated,
				CreatedAt:    now,
				CreatedBy:    actor.UserID,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			if partnerService.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Kode protokol bentrok, silakan coba lagi")
			}
			log.Printf("[ERROR] Gagal insert batch protokol: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Database error")
		}

		if err := s.Stock.IncrementAllocation(tx, partner.ID, req.Quantity); err != nil {
			log.Printf("[ERROR] Gagal update stock: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Database error")
		}

		return activityService.Record(tx, activityService.Entry{
			UserID:     actor.UserID,
			Action:     activityModel.ActionCreateProtocol,
			TargetType: "protocol",
			TargetID:   codes[0],
			Details: fiber.Map{
				"quantity": req.Quantity,
				"partner":  partner.Name,
				"province": req.Province,
			},
			IPAddress: actor.IPAddress,
			UserAgent: actor.UserAgent,
		})
	})
	if err != nil {
		return nil, err
	}

	observability.ProtocolsCreated.Add(float64(req.Quantity))
	s.broadcast("protocol_created", dto.ProtocolCreatedEvent{
		Codes:    codes,
		Quantity: req.Quantity,
		Partner:  partner.Name,
		Province: req.Province,
	})
	return codes, nil
}

// TransitionByID: transisi manual dari dashboard (POST /protocols/:id/status).
func (s *ProtocolService) TransitionByID(id uint, newStatus string, actor Actor) (*model.ProtocolModel, error) {
	var p model.ProtocolModel
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Protocol not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	return s.transition(&p, newStatus, actor, activityModel.ActionUpdateStatus)
}

// TransitionByCode: transisi dari scanner (POST /api/confirm-usage/:code).
// action mark_terpakai/mark_delivered sudah dipetakan controller ke status.
func (s *ProtocolService) TransitionByCode(code, newStatus string, actor Actor) (*model.ProtocolModel, error) {
	var p model.ProtocolModel
	if err := s.DB.Where("code = ?", code).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Code not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	action := activityModel.ActionScanTerpakai
	if newStatus == model.StatusDelivered {
		action = activityModel.ActionScanDelivered
	}
	return s.transition(&p, newStatus, actor, action)
}

// transition menerapkan perubahan status + delta ledger + audit secara
// transaksional, lalu menyiarkan status_updated setelah commit.
//
// Delta stok murni fungsi pasangan status lama→baru: masuk terpakai
// = +1 used / -1 available, keluar terpakai = kebalikannya, selain itu
// nol. delivered sengaja tidak punya bobot stok ("available" berarti
// belum terpakai, bukan belum terkirim).
//
// Status lama dibaca controller di luar transaksi, jadi bisa basi kalau
// dua request menyentuh kode yang sama (double-click / double scan).
// Update status karenanya kondisional pada status lama; kalau tidak kena,
// status dibaca ulang di dalam transaksi dan delta dihitung ulang, supaya
// scan ganda terpakai→terpakai menghasilkan delta nol, bukan +2.
func (s *ProtocolService) transition(p *model.ProtocolModel, newStatus string, actor Actor, action string) (*model.ProtocolModel, error) {
	if !model.ValidStatus(newStatus) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid status")
	}

	oldStatus := p.Status
	delta := 0

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for attempt := 0; ; attempt++ {
			delta = stockDelta(oldStatus, newStatus)
			updates := map[string]interface{}{
				"status":     newStatus,
				"updated_by": actor.UserID,
			}
			if delta > 0 {
				updates["used_date"] = helper.NowWIB()
			}
			res := tx.Model(&model.ProtocolModel{}).
				Where("id = ? AND status = ?", p.ID, oldStatus).
				Updates(updates)
			if res.Error != nil {
				log.Printf("[ERROR] Gagal update status: %v", res.Error)
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to update status")
			}
			if res.RowsAffected > 0 {
				break
			}
			if attempt > 0 {
				return fiber.NewError(fiber.StatusConflict, "Status protokol berubah, silakan coba lagi")
			}
			var cur model.ProtocolModel
			if err := tx.First(&cur, p.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Protocol not found")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Database error")
			}
			oldStatus = cur.Status
		}

		if p.PartnerID != nil && delta != 0 {
			if err := s.Stock.ApplyDelta(tx, *p.PartnerID, delta, -delta); err != nil {
				log.Printf("[ERROR] Gagal update stock: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Database error")
			}
		}

		return activityService.Record(tx, activityService.Entry{
			UserID:     actor.UserID,
			Action:     action,
			TargetType: "protocol",
			TargetID:   p.Code,
			Details:    fiber.Map{"old_status": oldStatus, "new_status": newStatus},
			IPAddress:  actor.IPAddress,
			UserAgent:  actor.UserAgent,
		})
	})
	if err != nil {
		return nil, err
	}

	p.Status = newStatus
	uid := actor.UserID
	p.UpdatedBy = &uid
	if delta > 0 {
		t := helper.NowWIB()
		p.UsedDate = &t
	}

	observability.StatusTransitions.WithLabelValues(newStatus).Inc()
	s.broadcast("status_updated", dto.StatusUpdatedEvent{
		ID:        p.ID,
		Code:      p.Code,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	})
	return p, nil
}

// stockDelta: +1 saat masuk terpakai, -1 saat keluar terpakai, selain itu 0.
func stockDelta(oldStatus, newStatus string) int {
	switch {
	case oldStatus != model.StatusTerpakai && newStatus == model.StatusTerpakai:
		return 1
	case oldStatus == model.StatusTerpakai && newStatus != model.StatusTerpakai:
		return -1
	default:
		return 0
	}
}

// FindByCode: lookup untuk endpoint scan, join info mitra.
func (s *ProtocolService) FindByCode(code string) (*model.ProtocolWithPartner, error) {
	var row model.ProtocolWithPartner
	err := s.DB.Table("protocols AS p").
		Select("p.*, pt.name AS partner_name, pt.type AS partner_type, pt.code AS partner_code").
		Joins("LEFT JOIN partner pt ON p.partner_id = pt.id").
		Where("p.code = ?", code).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	return &row, nil
}

// UpdatePatientData mengisi kolom data pasien (free text) untuk satu kode.
func (s *ProtocolService) UpdatePatientData(code string, req dto.UpdatePatientDataRequest, actor Actor) error {
	updates := map[string]interface{}{
		"patient_name":        req.PatientName,
		"healthcare_facility": req.HealthcareFacility,
		"occupation":          nilIfEmpty(req.Occupation),
		"marital_status":      nilIfEmpty(req.MaritalStatus),
		"gpa":                 nilIfEmpty(req.GPA),
		"address":             nilIfEmpty(req.Address),
		"phone":               nilIfEmpty(req.Phone),
		"age":                 nilIfEmpty(req.Age),
		"notes":               nilIfEmpty(req.Notes),
		"updated_by":          actor.UserID,
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ProtocolModel{}).Where("code = ?", code).Updates(updates)
		if res.Error != nil {
			log.Printf("[ERROR] Gagal update data pasien: %v", res.Error)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update patient data")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Protocol not found")
		}
		return activityService.Record(tx, activityService.Entry{
			UserID:     actor.UserID,
			Action:     activityModel.ActionUpdatePatientData,
			TargetType: "protocol",
			TargetID:   code,
			Details:    fiber.Map{"patient_name": req.PatientName, "facility": req.HealthcareFacility},
			IPAddress:  actor.IPAddress,
			UserAgent:  actor.UserAgent,
		})
	})
}

// PatientData membaca kolom pasien satu kode (read-only).
func (s *ProtocolService) PatientData(code string) (*model.ProtocolModel, error) {
	var p model.ProtocolModel
	if err := s.DB.Where("code = ?", code).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Protocol not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	return &p, nil
}

func (s *ProtocolService) broadcast(event string, payload interface{}) {
	if s.Hub != nil {
		s.Hub.Broadcast(event, payload)
	}
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
