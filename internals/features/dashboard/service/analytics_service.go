package service

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"protokolku_backend/internals/constants"
	dashboardDTO "protokolku_backend/internals/features/dashboard/dto"
	helper "protokolku_backend/internals/helpers"
)

// AnalyticsService: read-side dashboard. Seluruh query di sini hanya
// membaca; mutasi ledger tetap lewat StockService.
type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

// PeriodRange menerjemahkan period dashboard ke rentang waktu WIB.
// Period tidak dikenal jatuh ke "today". Return nil berarti tanpa filter.
// period=custom wajib membawa start_date DAN end_date valid (YYYY-MM-DD);
// rentang sebelah saja ditolak 400.
func (s *AnalyticsService) PeriodRange(period, startDate, endDate string) (*time.Time, *time.Time, error) {
	now := helper.NowWIB()
	switch period {
	case "week":
		// minggu dimulai hari Minggu
		start := helper.StartOfDayWIB(now.AddDate(0, 0, -int(now.Weekday())))
		return &start, nil, nil
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, helper.WIB)
		return &start, nil, nil
	case "custom":
		from, err := helper.ParseWIBDate(startDate)
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest,
				"start_date dan end_date wajib diisi bersama (YYYY-MM-DD)")
		}
		endDay, err := helper.ParseWIBDate(endDate)
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest,
				"start_date dan end_date wajib diisi bersama (YYYY-MM-DD)")
		}
		// to eksklusif: satu hari setelah end_date
		to := endDay.AddDate(0, 0, 1)
		return &from, &to, nil
	default: // today
		start := helper.StartOfDayWIB(now)
		return &start, nil, nil
	}
}

func (s *AnalyticsService) rangedProtocols(from, to *time.Time) *gorm.DB {
	q := s.DB.Table("protocols")
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at < ?", *to)
	}
	return q
}

// Stats menghitung jumlah per status plus top-5 provinsi pada window aktif.
func (s *AnalyticsService) Stats(from, to *time.Time) dashboardDTO.DashboardStats {
	stats := dashboardDTO.DashboardStats{TopProvinces: []dashboardDTO.ProvinceCount{}}

	var rows []struct {
		Status string
		Count  int
	}
	if err := s.rangedProtocols(from, to).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		log.Printf("[ERROR] Gagal hitung status dashboard: %v", err)
		return stats
	}
	for _, r := range rows {
		stats.Total += r.Count
		switch r.Status {
		case "created":
			stats.Created = r.Count
		case "delivered":
			stats.Delivered = r.Count
		case "terpakai":
			stats.Terpakai = r.Count
		}
	}

	var provinces []struct {
		ProvinceCode string
		Count        int
	}
	if err := s.rangedProtocols(from, to).
		Select("province_code, COUNT(*) AS count").
		Group("province_code").
		Order("count DESC").
		Limit(5).
		Scan(&provinces).Error; err != nil {
		log.Printf("[ERROR] Gagal hitung top provinsi: %v", err)
		return stats
	}
	for _, p := range provinces {
		stats.TopProvinces = append(stats.TopProvinces, dashboardDTO.ProvinceCount{
			ProvinceCode: p.ProvinceCode,
			Name:         constants.ProvinceName(p.ProvinceCode),
			Count:        p.Count,
		})
	}
	return stats
}

// StockSummary: agregat ledger seluruh mitra aktif.
func (s *AnalyticsService) StockSummary() dashboardDTO.StockSummary {
	var out dashboardDTO.StockSummary
	err := s.DB.Table("stock_tracking st").
		Joins("JOIN partner p ON p.id = st.partner_id").
		Where("p.is_active = ?", true).
		Select(`COALESCE(SUM(st.total_allocated),0) AS total_allocated,
			COALESCE(SUM(st.total_used),0) AS total_used,
			COALESCE(SUM(st.total_available),0) AS total_available,
			COUNT(*) AS active_partner`).
		Scan(&out).Error
	if err != nil {
		log.Printf("[ERROR] Gagal hitung ringkasan stok: %v", err)
		return dashboardDTO.StockSummary{}
	}
	return out
}

// RecentProtocols: 100 protokol terbaru berikut nama mitra (untuk tabel dashboard).
func (s *AnalyticsService) RecentProtocols(from, to *time.Time) []map[string]interface{} {
	var rows []map[string]interface{}
	q := s.DB.Table("protocols pr").
		Joins("LEFT JOIN partner p ON p.id = pr.partner_id").
		Select(`pr.id, pr.code, pr.province_code, pr.status, pr.created_at,
			pr.created_by, pr.patient_name, p.name AS partner_name,
			p.type AS partner_type, p.code AS partner_code`)
	if from != nil {
		q = q.Where("pr.created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("pr.created_at < ?", *to)
	}
	if err := q.Order("pr.created_at DESC").Limit(100).Scan(&rows).Error; err != nil {
		log.Printf("[ERROR] Gagal ambil protokol terbaru: %v", err)
		return []map[string]interface{}{}
	}
	return rows
}

// Advanced menjalankan enam rollup analitik. SQL mentah di bawah memakai
// strftime karena store embedded adalah sqlite.
func (s *AnalyticsService) Advanced() dashboardDTO.Analytics {
	out := dashboardDTO.Analytics{
		DailyTrends:         []dashboardDTO.DailyTrend{},
		HourlyDistribution:  []dashboardDTO.HourlyBucket{},
		PartnerPerformance:  []dashboardDTO.PartnerPerformance{},
		ProvincePerformance: []dashboardDTO.ProvincePerformance{},
		StatusTrends:        []dashboardDTO.StatusTrend{},
	}

	if err := s.DB.Raw(`
		SELECT DATE(created_at) AS date,
			COUNT(*) AS total,
			SUM(CASE WHEN status = 'created' THEN 1 ELSE 0 END) AS created,
			SUM(CASE WHEN status = 'delivered' THEN 1 ELSE 0 END) AS delivered,
			SUM(CASE WHEN status = 'terpakai' THEN 1 ELSE 0 END) AS terpakai,
			COUNT(DISTINCT partner_id) AS unique_partner
		FROM protocols
		WHERE created_at >= DATE('now', '-30 days')
		GROUP BY DATE(created_at)
		ORDER BY date DESC`).Scan(&out.DailyTrends).Error; err != nil {
		log.Printf("[ERROR] Gagal hitung tren harian: %v", err)
	}

	if err := s.DB.Raw(`
		SELECT strftime('%H', created_at) AS hour, COUNT(*) AS count
		FROM protocols
		WHERE created_at >= DATE('now', '-7 days')
		GROUP BY strftime('%H', created_at)
		ORDER BY hour`).Scan(&out.HourlyDistribution).Error; err != nil {
		log.Printf("[ERROR] Gagal hitung distribusi jam: %v", err)
	}

	if err := s.DB.Raw(`
		SELECT p.name AS partner_name, p.type AS partner_type, p.code AS partner_code,
			p.province_code,
			COUNT(pr.id) AS total_protocols,
			SUM(CASE WHEN pr.status = 'terpakai' THEN 1 ELSE 0 END) AS used_protocols,
			ROUND(SUM(CASE WHEN pr.status = 'terpakai' THEN 1.0 ELSE 0 END) * 100.0 / COUNT(pr.id), 1) AS usage_rate,
			MAX(pr.updated_at) AS last_activity
		FROM partner p
		JOIN protocols pr ON pr.partner_id = p.id
		WHERE p.is_active = 1
		GROUP BY p.id
		HAVING COUNT(pr.id) > 0
		ORDER BY usage_rate DESC, total_protocols DESC
		LIMIT 10`).Scan(&out.PartnerPerformance).Error; err != nil {
		log.Printf("[ERROR] Gagal hitung performa mitra: %v", err)
	}

	if err := s.DB.Raw(`
		SELECT pr.province_code,
			COUNT(*) AS count,
			SUM(CASE WHEN pr.status = 'created' THEN 1 ELSE 0 END) AS created,
			SUM(CASE WHEN pr.status = 'delivered' THEN 1 ELSE 0 END) AS delivered,
			SUM(CASE WHEN pr.status = 'terpakai' THEN 1 ELSE 0 END) AS terpakai,
			ROUND(SUM(CASE WHEN pr.status = 'terpakai' THEN 1.0 ELSE 0 END) * 100.0 / COUNT(*), 1) AS usage_rate,
			COUNT(DISTINCT pr.partner_id) AS active_partner
		FROM protocols pr
		GROUP BY pr.province_code
		ORDER BY count DESC
		LIMIT 10`).Scan(&out.ProvincePerformance).Error; err != nil {
		log.Printf("[ERROR] Gagal hitung performa provinsi: %v", err)
	}

	if err := s.DB.Raw(`
		SELECT DATE(created_at) AS date, status, COUNT(*) AS count
		FROM protocols
		WHERE created_at >= DATE('now', '-14 days')
		GROUP BY DATE(created_at), status
		ORDER BY date DESC`).Scan(&out.StatusTrends).Error; err != nil {
		log.Printf("[ERROR] Gagal hitung tren status: %v", err)
	}

	if err := s.DB.Raw(`
		SELECT COUNT(*) AS total_protocols,
			COUNT(DISTINCT province_code) AS unique_provinces,
			COUNT(DISTINCT partner_id) AS active_partner,
			ROUND(COUNT(*) * 1.0 / MAX(1, JULIANDAY('now') - JULIANDAY(MIN(created_at)) + 1), 1) AS avg_per_day,
			ROUND(SUM(CASE WHEN status = 'terpakai' THEN 1.0 ELSE 0 END) * 100.0 / MAX(1, COUNT(*)), 1) AS completion_rate,
			MIN(created_at) AS first_protocol,
			MAX(created_at) AS latest_protocol
		FROM protocols`).Scan(&out.Metrics).Error; err != nil {
		log.Printf("[ERROR] Gagal hitung metrik global: %v", err)
	}

	return out
}
