package model

import "time"

// StockTrackingModel: satu baris per mitra. Counter hanya boleh dimutasi
// lewat StockService (UPDATE aditif), tidak pernah read-modify-write.
// Invariant: total_allocated = total_used + total_available.
type StockTrackingModel struct {
	ID             uint      `json:"id" gorm:"column:id;primaryKey"`
	PartnerID      uint      `json:"partner_id" gorm:"column:partner_id;uniqueIndex;not null"`
	TotalAllocated int       `json:"total_allocated" gorm:"column:total_allocated;default:0"`
	TotalUsed      int       `json:"total_used" gorm:"column:total_used;default:0"`
	TotalAvailable int       `json:"total_available" gorm:"column:total_available;default:0"`
	LastUpdated    time.Time `json:"last_updated" gorm:"column:last_updated"`
}

func (StockTrackingModel) TableName() string {
	return "stock_tracking"
}
