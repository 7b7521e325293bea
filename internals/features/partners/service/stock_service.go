package service

import (
	"gorm.io/gorm"

	"protokolku_backend/internals/features/partners/model"
	helper "protokolku_backend/internals/helpers"
)

// StockService adalah satu-satunya pintu mutasi counter stock_tracking.
// Semua mutasi berbentuk UPDATE aditif (col = col + delta) di dalam
// transaksi pemanggil — tidak pernah read-modify-write, supaya dua
// request konkuren pada mitra yang sama tidak saling menimpa.
type StockService struct{}

// InitStock membuat baris ledger 0/0/0 untuk mitra baru.
func (StockService) InitStock(tx *gorm.DB, partnerID uint) error {
	row := model.StockTrackingModel{
		PartnerID:   partnerID,
		LastUpdated: helper.NowWIB(),
	}
	return tx.Create(&row).Error
}

// ApplyDelta menambahkan delta used/available secara atomik + refresh
// last_updated. Dipanggil berpasangan dengan setiap penulisan
// protocols.status yang punya partner_id.
func (StockService) ApplyDelta(tx *gorm.DB, partnerID uint, usedDelta, availableDelta int) error {
	if usedDelta == 0 && availableDelta == 0 {
		return nil
	}
	res := tx.Model(&model.StockTrackingModel{}).
		Where("partner_id = ?", partnerID).
		Updates(map[string]interface{}{
			"total_used":      gorm.Expr("total_used + ?", usedDelta),
			"total_available": gorm.Expr("total_available + ?", availableDelta),
			"last_updated":    helper.NowWIB(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// mitra lama tanpa baris ledger: buat dulu, lalu terapkan delta
		row := model.StockTrackingModel{
			PartnerID:      partnerID,
			TotalUsed:      usedDelta,
			TotalAvailable: availableDelta,
			LastUpdated:    helper.NowWIB(),
		}
		return tx.Create(&row).Error
	}
	return nil
}

// IncrementAllocation menaikkan allocated+available sebesar qty
// (dipanggil saat batch protokol dibuat).
func (StockService) IncrementAllocation(tx *gorm.DB, partnerID uint, qty int) error {
	res := tx.Model(&model.StockTrackingModel{}).
		Where("partner_id = ?", partnerID).
		Updates(map[string]interface{}{
			"total_allocated": gorm.Expr("total_allocated + ?", qty),
			"total_available": gorm.Expr("total_available + ?", qty),
			"last_updated":    helper.NowWIB(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		row := model.StockTrackingModel{
			PartnerID:      partnerID,
			TotalAllocated: qty,
			TotalAvailable: qty,
			LastUpdated:    helper.NowWIB(),
		}
		return tx.Create(&row).Error
	}
	return nil
}

// Snapshot membaca counter mitra apa adanya (read-only).
func (StockService) Snapshot(db *gorm.DB, partnerID uint) (model.StockTrackingModel, error) {
	var row model.StockTrackingModel
	err := db.Where("partner_id = ?", partnerID).First(&row).Error
	return row, err
}
