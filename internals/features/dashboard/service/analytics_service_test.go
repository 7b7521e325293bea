package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	activityModel "protokolku_backend/internals/features/activity/model"
	dashboardModel "protokolku_backend/internals/features/dashboard/model"
	partnerModel "protokolku_backend/internals/features/partners/model"
	protocolModel "protokolku_backend/internals/features/protocols/model"
	helper "protokolku_backend/internals/helpers"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("buka sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&partnerModel.PartnerModel{},
		&partnerModel.StockTrackingModel{},
		&protocolModel.ProtocolModel{},
		&activityModel.ActivityLogModel{},
		&dashboardModel.AnalyticsDailyModel{},
	)
	if err != nil {
		t.Fatalf("migrasi: %v", err)
	}
	return db
}

func seedProtocol(t *testing.T, db *gorm.DB, code, province, status string, partnerID *uint, createdAt time.Time) {
	t.Helper()
	p := protocolModel.ProtocolModel{
		Code:         code,
		ProvinceCode: province,
		PartnerID:    partnerID,
		Status:       status,
		CreatedAt:    createdAt,
		CreatedBy:    1,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed protokol %s: %v", code, err)
	}
}

func TestStatsCountsByStatusAndProvince(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	now := helper.NowWIB()

	seedProtocol(t, db, "A1", "ACE", "created", nil, now)
	seedProtocol(t, db, "A2", "ACE", "delivered", nil, now)
	seedProtocol(t, db, "A3", "ACE", "terpakai", nil, now)
	seedProtocol(t, db, "B1", "JKT", "created", nil, now)
	// di luar window hari ini
	seedProtocol(t, db, "OLD", "JKT", "created", nil, now.AddDate(0, 0, -3))

	from := helper.StartOfDayWIB(now)
	stats := svc.Stats(&from, nil)

	if stats.Total != 4 {
		t.Fatalf("total = %d, mau 4 (baris lama ikut terhitung?)", stats.Total)
	}
	if stats.Created != 2 || stats.Delivered != 1 || stats.Terpakai != 1 {
		t.Fatalf("created/delivered/terpakai = %d/%d/%d, mau 2/1/1",
			stats.Created, stats.Delivered, stats.Terpakai)
	}
	if len(stats.TopProvinces) == 0 || stats.TopProvinces[0].ProvinceCode != "ACE" {
		t.Fatalf("top provinsi = %+v, mau ACE teratas", stats.TopProvinces)
	}
	if stats.TopProvinces[0].Name != "Aceh" {
		t.Errorf("nama provinsi = %s, mau Aceh", stats.TopProvinces[0].Name)
	}
}

func TestStockSummaryOnlyActivePartners(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)

	active := partnerModel.PartnerModel{Name: "A", Type: "klinik", Code: "A01", ProvinceCode: "ACE", IsActive: true}
	inactive := partnerModel.PartnerModel{Name: "B", Type: "klinik", Code: "B01", ProvinceCode: "ACE", IsActive: false}
	if err := db.Create(&active).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatal(err)
	}
	db.Create(&partnerModel.StockTrackingModel{PartnerID: active.ID, TotalAllocated: 10, TotalUsed: 4, TotalAvailable: 6, LastUpdated: helper.NowWIB()})
	db.Create(&partnerModel.StockTrackingModel{PartnerID: inactive.ID, TotalAllocated: 99, TotalUsed: 0, TotalAvailable: 99, LastUpdated: helper.NowWIB()})

	sum := svc.StockSummary()
	if sum.TotalAllocated != 10 || sum.TotalUsed != 4 || sum.TotalAvailable != 6 {
		t.Fatalf("summary = %+v, mitra nonaktif ikut terhitung?", sum)
	}
	if sum.ActivePartner != 1 {
		t.Errorf("active_partner = %d, mau 1", sum.ActivePartner)
	}
}

func TestPeriodRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)

	from, to, err := svc.PeriodRange("today", "", "")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if from == nil || to != nil {
		t.Fatal("today: mau from saja")
	}
	if from.Hour() != 0 || from.Minute() != 0 {
		t.Errorf("today harus mulai 00:00, dapat %v", from)
	}

	from, _, err = svc.PeriodRange("week", "", "")
	if err != nil {
		t.Fatalf("week: %v", err)
	}
	if from == nil || from.Weekday() != time.Sunday {
		t.Errorf("week harus mulai hari Minggu, dapat %v", from)
	}

	from, _, err = svc.PeriodRange("month", "", "")
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	if from == nil || from.Day() != 1 {
		t.Errorf("month harus mulai tanggal 1, dapat %v", from)
	}

	from, to, err = svc.PeriodRange("custom", "2025-07-01", "2025-07-14")
	if err != nil {
		t.Fatalf("custom: %v", err)
	}
	if from == nil || to == nil {
		t.Fatal("custom: mau from dan to terisi")
	}
	if got := helper.FormatWIBDate(*from); got != "2025-07-01" {
		t.Errorf("custom from = %s", got)
	}
	// to eksklusif: satu hari setelah end_date
	if got := helper.FormatWIBDate(*to); got != "2025-07-15" {
		t.Errorf("custom to = %s", got)
	}

	// period tidak dikenal jatuh ke today
	from, to, err = svc.PeriodRange("bulanan", "", "")
	if err != nil {
		t.Fatalf("period tidak dikenal: %v", err)
	}
	if from == nil || to != nil {
		t.Fatal("period tidak dikenal harus jatuh ke today")
	}
}

func TestPeriodRangeCustomRequiresBothDates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)

	cases := []struct {
		name       string
		start, end string
	}{
		{"hanya start_date", "2025-07-01", ""},
		{"hanya end_date", "", "2025-07-14"},
		{"dua-duanya kosong", "", ""},
		{"format salah", "01-07-2025", "2025-07-14"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.PeriodRange("custom", tc.start, tc.end)
			if err == nil {
				t.Fatal("mau error, dapat nil")
			}
			fe, ok := err.(*fiber.Error)
			if !ok {
				t.Fatalf("bukan *fiber.Error: %v", err)
			}
			if fe.Code != fiber.StatusBadRequest {
				t.Fatalf("code = %d, mau 400", fe.Code)
			}
		})
	}
}

func TestAdvancedOnEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)

	// database kosong: semua bagian default, tanpa panic/error
	out := svc.Advanced()
	if out.DailyTrends == nil || out.PartnerPerformance == nil || out.StatusTrends == nil {
		t.Fatal("slice hasil tidak boleh nil")
	}
	if len(out.DailyTrends) != 0 {
		t.Errorf("dailyTrends = %d baris, mau 0", len(out.DailyTrends))
	}
	if out.Metrics.TotalProtocols != 0 {
		t.Errorf("total_protocols = %d, mau 0", out.Metrics.TotalProtocols)
	}
}

func TestRollupTodayIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	now := helper.NowWIB()

	seedProtocol(t, db, "A1", "ACE", "created", nil, now)
	seedProtocol(t, db, "A2", "ACE", "terpakai", nil, now)

	svc.RollupToday()
	svc.RollupToday() // kedua kali harus update, bukan baris baru

	var rows []dashboardModel.AnalyticsDailyModel
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("baca analytics_daily: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("baris rollup = %d, mau 1", len(rows))
	}
	if rows[0].TotalProtocols != 2 || rows[0].TerpakaiCount != 1 {
		t.Fatalf("rollup = %+v", rows[0])
	}
	if rows[0].Date != helper.FormatWIBDate(now) {
		t.Errorf("tanggal rollup = %s", rows[0].Date)
	}
}
