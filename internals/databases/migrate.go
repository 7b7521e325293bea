package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	activityModel "protokolku_backend/internals/features/activity/model"
	dashboardModel "protokolku_backend/internals/features/dashboard/model"
	partnerModel "protokolku_backend/internals/features/partners/model"
	protocolModel "protokolku_backend/internals/features/protocols/model"
	userModel "protokolku_backend/internals/features/users/user/model"
)

// Migrate menjalankan migrasi aditif-idempotent saat startup:
// AutoMigrate hanya menambah tabel/kolom yang belum ada, tidak pernah drop.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&partnerModel.PartnerModel{},
		&partnerModel.StockTrackingModel{},
		&protocolModel.ProtocolModel{},
		&activityModel.ActivityLogModel{},
		&dashboardModel.AnalyticsDailyModel{},
	); err != nil {
		return err
	}

	// Migrasi data lama: role 'viewer' sudah tidak dikenal
	if err := db.Exec(`UPDATE users SET role = 'operator' WHERE role = 'viewer'`).Error; err != nil {
		log.Printf("[WARN] Role migration note: %v", err)
	}

	return seedDefaultAdmin(db)
}

// seedDefaultAdmin membuat akun admin default sekali saja bila belum ada.
func seedDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&userModel.UserModel{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), 10)
	if err != nil {
		return err
	}

	admin := userModel.UserModel{
		Username:     "admin",
		Email:        "admin@system.local",
		PasswordHash: string(hash),
		FullName:     "System Administrator",
		Role:         "admin",
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("✅ Akun admin default dibuat (username: admin)")
	return nil
}
