package model

import "time"

// AnalyticsDailyModel: rollup harian idempoten, diisi ulang saat dashboard
// dibuka (tidak ada scheduler).
type AnalyticsDailyModel struct {
	ID             uint      `json:"id" gorm:"column:id;primaryKey"`
	Date           string    `json:"date" gorm:"column:date;uniqueIndex;not null"`
	TotalProtocols int       `json:"total_protocols" gorm:"column:total_protocols;default:0"`
	CreatedCount   int       `json:"created_count" gorm:"column:created_count;default:0"`
	DeliveredCount int       `json:"delivered_count" gorm:"column:delivered_count;default:0"`
	TerpakaiCount  int       `json:"terpakai_count" gorm:"column:terpakai_count;default:0"`
	UniqueUsers    int       `json:"unique_users" gorm:"column:unique_users;default:0"`
	ScanCount      int       `json:"scan_count" gorm:"column:scan_count;default:0"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (AnalyticsDailyModel) TableName() string {
	return "analytics_daily"
}
