package service

import (
	"log"
	"time"

	"gorm.io/gorm/clause"

	"protokolku_backend/internals/features/dashboard/model"
	helper "protokolku_backend/internals/helpers"
)

// RollupToday mengisi ulang baris analytics_daily untuk hari ini (WIB).
// Idempoten: upsert on conflict(date), dipanggil setiap dashboard dibuka.
func (s *AnalyticsService) RollupToday() {
	now := helper.NowWIB()
	start := helper.StartOfDayWIB(now)
	end := start.AddDate(0, 0, 1)

	var counts struct {
		Total       int
		Created     int
		Delivered   int
		Terpakai    int
		UniqueUsers int
	}
	if err := s.DB.Table("protocols").
		Where("created_at >= ? AND created_at < ?", start, end).
		Select(`COUNT(*) AS total,
			SUM(CASE WHEN status = 'created' THEN 1 ELSE 0 END) AS created,
			SUM(CASE WHEN status = 'delivered' THEN 1 ELSE 0 END) AS delivered,
			SUM(CASE WHEN status = 'terpakai' THEN 1 ELSE 0 END) AS terpakai,
			COUNT(DISTINCT created_by) AS unique_users`).
		Scan(&counts).Error; err != nil {
		log.Printf("[ERROR] Gagal rollup harian: %v", err)
		return
	}

	var scans int64
	if err := s.DB.Table("activity_logs").
		Where("action IN ? AND created_at >= ? AND created_at < ?",
			[]string{"scan_delivered", "scan_terpakai"}, start, end).
		Count(&scans).Error; err != nil {
		log.Printf("[ERROR] Gagal hitung scan harian: %v", err)
	}

	row := model.AnalyticsDailyModel{
		Date:           helper.FormatWIBDate(now),
		TotalProtocols: counts.Total,
		CreatedCount:   counts.Created,
		DeliveredCount: counts.Delivered,
		TerpakaiCount:  counts.Terpakai,
		UniqueUsers:    counts.UniqueUsers,
		ScanCount:      int(scans),
		CreatedAt:      time.Now(),
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_protocols", "created_count", "delivered_count",
			"terpakai_count", "unique_users", "scan_count",
		}),
	}).Create(&row).Error
	if err != nil {
		log.Printf("[ERROR] Gagal upsert analytics_daily: %v", err)
	}
}
