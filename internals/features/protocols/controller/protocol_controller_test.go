package controller

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"protokolku_backend/internals/constants"
	activityModel "protokolku_backend/internals/features/activity/model"
	partnerModel "protokolku_backend/internals/features/partners/model"
	protocolModel "protokolku_backend/internals/features/protocols/model"
	authMiddleware "protokolku_backend/internals/middlewares/auth"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
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
	)
	if err != nil {
		t.Fatalf("migrasi: %v", err)
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		authMiddleware.StoreIdentity(c, authMiddleware.Identity{
			Kind: authMiddleware.KindStoredUser, UserID: 1,
			Username: "operator1", Role: constants.RoleOperator,
		})
		return c.Next()
	})
	ctrl := NewProtocolController(db, nil)
	app.Post("/protocols", ctrl.CreateBatch)
	app.Get("/scanner", ctrl.ScannerHome)
	return app, db
}

func postBatch(t *testing.T, app *fiber.App, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/protocols", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestCreateBatchNonNumericQuantity(t *testing.T) {
	app, db := newTestApp(t)

	partner := partnerModel.PartnerModel{
		Name: "Klinik A", Type: partnerModel.PartnerTypeKlinik,
		Code: "KLN001", ProvinceCode: "ACE", IsActive: true,
	}
	if err := db.Create(&partner).Error; err != nil {
		t.Fatal(err)
	}

	// quantity bukan angka: 400, BUKAN default 1
	resp := postBatch(t, app, url.Values{
		"province":   {"ACE"},
		"partner_id": {"1"},
		"quantity":   {"banyak"},
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, mau 400", resp.StatusCode)
	}

	var count int64
	db.Model(&protocolModel.ProtocolModel{}).Count(&count)
	if count != 0 {
		t.Errorf("protocols = %d, input non-numerik tidak boleh membuat apa pun", count)
	}

	// quantity kosong jatuh ke default form "1" dan berhasil
	resp = postBatch(t, app, url.Values{
		"province":   {"ACE"},
		"partner_id": {"1"},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, mau 201", resp.StatusCode)
	}
	db.Model(&protocolModel.ProtocolModel{}).Count(&count)
	if count != 1 {
		t.Errorf("protocols = %d, mau 1", count)
	}
}

func TestCreateBatchInvalidPartnerID(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postBatch(t, app, url.Values{
		"province":   {"ACE"},
		"partner_id": {"abc"},
		"quantity":   {"1"},
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, mau 400", resp.StatusCode)
	}
}

func TestScannerHome(t *testing.T) {
	app, db := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/scanner", nil)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, mau 200", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("baca body: %v", err)
	}
	for _, want := range []string{"operator1", "/api/confirm-usage/:code"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("body tanpa %q: %s", want, body)
		}
	}

	var audits int64
	db.Model(&activityModel.ActivityLogModel{}).
		Where("action = ?", activityModel.ActionViewScanner).Count(&audits)
	if audits != 1 {
		t.Errorf("baris audit = %d, mau 1", audits)
	}
}
