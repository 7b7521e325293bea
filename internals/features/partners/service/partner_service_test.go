package service

import (
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	activityModel "protokolku_backend/internals/features/activity/model"
	"protokolku_backend/internals/features/partners/dto"
	"protokolku_backend/internals/features/partners/model"
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
		&model.PartnerModel{},
		&model.StockTrackingModel{},
		&activityModel.ActivityLogModel{},
	)
	if err != nil {
		t.Fatalf("migrasi: %v", err)
	}
	return db
}

var testActor = Actor{UserID: 1, Username: "admin", IPAddress: "10.0.0.1"}

func validRequest() dto.CreatePartnerRequest {
	return dto.CreatePartnerRequest{
		Name:         "Puskesmas Banda Raya",
		Type:         model.PartnerTypePuskesmas,
		Code:         "pkm-br01",
		ProvinceCode: "ACE",
	}
}

func TestCreatePartnerInitializesLedger(t *testing.T) {
	db := newTestDB(t)
	svc := NewPartnerService(db)

	partner, err := svc.Create(validRequest(), testActor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if partner.Code != "PKM-BR01" {
		t.Errorf("kode = %s, mau uppercase PKM-BR01", partner.Code)
	}
	if !partner.IsActive {
		t.Error("mitra baru harus aktif")
	}

	stock, err := (StockService{}).Snapshot(db, partner.ID)
	if err != nil {
		t.Fatalf("ledger tidak dibuat: %v", err)
	}
	if stock.TotalAllocated != 0 || stock.TotalUsed != 0 || stock.TotalAvailable != 0 {
		t.Errorf("ledger awal = %+v, mau 0/0/0", stock)
	}

	var audits int64
	db.Model(&activityModel.ActivityLogModel{}).
		Where("action = ?", activityModel.ActionCreatePartner).Count(&audits)
	if audits != 1 {
		t.Errorf("baris audit = %d, mau 1", audits)
	}
}

func TestCreatePartnerDuplicateCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewPartnerService(db)

	if _, err := svc.Create(validRequest(), testActor); err != nil {
		t.Fatalf("Create pertama: %v", err)
	}

	// kode sama beda huruf besar-kecil: di-uppercase → bentrok
	req := validRequest()
	req.Code = "PKM-br01"
	req.Name = "Puskesmas Lain"
	_, err := svc.Create(req, testActor)
	if err == nil {
		t.Fatal("mau error duplikat, dapat nil")
	}
	fe, ok := err.(*fiber.Error)
	if !ok || fe.Code != fiber.StatusBadRequest {
		t.Fatalf("error = %v, mau 400", err)
	}

	// rollback bersih: tetap satu mitra, satu ledger
	var partners, ledgers int64
	db.Model(&model.PartnerModel{}).Count(&partners)
	db.Model(&model.StockTrackingModel{}).Count(&ledgers)
	if partners != 1 || ledgers != 1 {
		t.Errorf("partners=%d ledgers=%d, mau 1/1", partners, ledgers)
	}
}

func TestCreatePartnerValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPartnerService(db)

	cases := []struct {
		name   string
		mutate func(*dto.CreatePartnerRequest)
	}{
		{"jenis tidak dikenal", func(r *dto.CreatePartnerRequest) { r.Type = "apotek" }},
		{"kode non-alfanumerik", func(r *dto.CreatePartnerRequest) { r.Code = "PKM 01!" }},
		{"kode kosong", func(r *dto.CreatePartnerRequest) { r.Code = "" }},
		{"provinsi tidak dikenal", func(r *dto.CreatePartnerRequest) { r.ProvinceCode = "ZZZ" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Create(req, testActor)
			if err == nil {
				t.Fatal("mau error, dapat nil")
			}
			fe, ok := err.(*fiber.Error)
			if !ok || fe.Code != fiber.StatusBadRequest {
				t.Fatalf("error = %v, mau 400", err)
			}
		})
	}
}

func TestToggleActive(t *testing.T) {
	db := newTestDB(t)
	svc := NewPartnerService(db)

	partner, err := svc.Create(validRequest(), testActor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	toggled, err := svc.ToggleActive(partner.ID)
	if err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	if toggled.IsActive {
		t.Error("mau nonaktif setelah toggle pertama")
	}

	toggled, err = svc.ToggleActive(partner.ID)
	if err != nil {
		t.Fatalf("ToggleActive kedua: %v", err)
	}
	if !toggled.IsActive {
		t.Error("mau aktif kembali setelah toggle kedua")
	}

	_, err = svc.ToggleActive(9999)
	fe, ok := err.(*fiber.Error)
	if !ok || fe.Code != fiber.StatusNotFound {
		t.Fatalf("mitra tidak ada: %v, mau 404", err)
	}
}

func TestAlphanumericCode(t *testing.T) {
	valid := []string{"KLN001", "pkm-br01", "RS_JKT_01", "a1"}
	for _, c := range valid {
		if !alphanumericCode(c) {
			t.Errorf("alphanumericCode(%q) = false, mau true", c)
		}
	}
	invalid := []string{"", "-", "_-_", "KLN 001", "KLN#01", "ÉKLN"}
	for _, c := range invalid {
		if alphanumericCode(c) {
			t.Errorf("alphanumericCode(%q) = true, mau false", c)
		}
	}
}
