package service

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"protokolku_backend/internals/features/activity/model"
	helper "protokolku_backend/internals/helpers"
	authMiddleware "protokolku_backend/internals/middlewares/auth"
)

// Entry adalah satu baris audit yang akan di-append.
type Entry struct {
	UserID     uint
	Action     string
	TargetType string
	TargetID   string
	Details    interface{} // di-serialize ke JSON, boleh nil
	IPAddress  string
	UserAgent  string
}

// Record meng-append satu baris audit. Dipanggil DI DALAM transaksi
// lifecycle (tx) supaya audit ikut rollback bila operasinya gagal.
func Record(tx *gorm.DB, e Entry) error {
	row := model.ActivityLogModel{
		UserID:     e.UserID,
		Action:     e.Action,
		TargetType: e.TargetType,
		TargetID:   e.TargetID,
		IPAddress:  e.IPAddress,
		UserAgent:  e.UserAgent,
		CreatedAt:  helper.NowWIB(),
	}
	if row.TargetType == "" {
		row.TargetType = "system"
	}
	if e.Details != nil {
		raw, err := json.Marshal(e.Details)
		if err != nil {
			log.Printf("[WARN] Gagal serialize detail audit: %v", err)
		} else {
			row.Details = raw
		}
	}
	return tx.Create(&row).Error
}

// RecordFromRequest melengkapi Entry dengan identitas + metadata request,
// lalu meng-append di luar transaksi (untuk aksi read-only seperti
// view_dashboard). Kegagalan hanya dicatat, tidak menggagalkan request.
func RecordFromRequest(db *gorm.DB, c *fiber.Ctx, action, targetType, targetID string, details interface{}) {
	id, ok := authMiddleware.GetIdentity(c)
	if !ok {
		return
	}
	ip, ua := RequestMeta(c)
	err := Record(db, Entry{
		UserID:     id.UserID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
		IPAddress:  ip,
		UserAgent:  ua,
	})
	if err != nil {
		log.Printf("[ERROR] Activity log error: %v", err)
	}
}

// RequestMeta mengambil (ip, user agent) dari request untuk Entry
// yang dicatat di dalam transaksi service.
func RequestMeta(c *fiber.Ctx) (string, string) {
	return c.IP(), c.Get(fiber.HeaderUserAgent)
}
