package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"protokolku_backend/internals/constants"
	activityModel "protokolku_backend/internals/features/activity/model"
	userModel "protokolku_backend/internals/features/users/user/model"
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
	if err := db.AutoMigrate(&userModel.UserModel{}, &activityModel.ActivityLogModel{}); err != nil {
		t.Fatalf("migrasi: %v", err)
	}

	app := fiber.New()
	ctrl := NewAuthController(db)
	app.Post("/login", ctrl.Login)
	app.Get("/logout", ctrl.Logout)

	// endpoint terlindungi untuk menguji alur token end-to-end
	app.Get("/dashboard", authMiddleware.RequireAuth(db), func(c *fiber.Ctx) error {
		id := authMiddleware.MustIdentity(c)
		return c.JSON(fiber.Map{"username": id.Username, "role": id.Role})
	})
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, username, password, role string) userModel.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		t.Fatal(err)
	}
	u := userModel.UserModel{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		FullName:     "User " + username,
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatal(err)
	}
	return u
}

func doLogin(t *testing.T, app *fiber.App, username, password string) *http.Response {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func loginData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return body.Data
}

func TestLoginStoredUser(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db, "operator1", "rahasia123", constants.RoleOperator)

	resp := doLogin(t, app, "operator1", "rahasia123")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, mau 200", resp.StatusCode)
	}
	data := loginData(t, resp)
	if data["redirect"] != "/dashboard" {
		t.Errorf("redirect = %v, mau /dashboard", data["redirect"])
	}
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("token kosong")
	}

	// bearer token bisa dipakai client API/scanner
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	protected, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if protected.StatusCode != fiber.StatusOK {
		t.Fatalf("akses terlindungi = %d, mau 200", protected.StatusCode)
	}

	// last_login terisi + audit login tercatat
	var u userModel.UserModel
	db.Where("username = ?", "operator1").First(&u)
	if u.LastLogin == nil {
		t.Error("last_login tidak terisi")
	}
	var audits int64
	db.Model(&activityModel.ActivityLogModel{}).
		Where("action = ?", activityModel.ActionLogin).Count(&audits)
	if audits != 1 {
		t.Errorf("audit login = %d, mau 1", audits)
	}
}

func TestLoginDistribusiRedirectsToScanner(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db, "kurir1", "rahasia123", constants.RoleDistribusi)

	resp := doLogin(t, app, "kurir1", "rahasia123")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, mau 200", resp.StatusCode)
	}
	if data := loginData(t, resp); data["redirect"] != "/scanner" {
		t.Errorf("redirect = %v, mau /scanner", data["redirect"])
	}
}

func TestLoginRejections(t *testing.T) {
	app, db := newTestApp(t)
	user := seedUser(t, db, "operator1", "rahasia123", constants.RoleOperator)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"password salah", "operator1", "salah"},
		{"user tidak ada", "hantu", "rahasia123"},
		{"field kosong", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doLogin(t, app, tc.username, tc.password)
			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Fatalf("status = %d, mau 401", resp.StatusCode)
			}
		})
	}

	// user nonaktif ditolak meski password benar
	db.Model(&user).Update("is_active", false)
	resp := doLogin(t, app, "operator1", "rahasia123")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("user nonaktif: %d, mau 401", resp.StatusCode)
	}
}

func TestDeactivationRevokesSession(t *testing.T) {
	app, db := newTestApp(t)
	user := seedUser(t, db, "operator1", "rahasia123", constants.RoleOperator)

	resp := doLogin(t, app, "operator1", "rahasia123")
	token, _ := loginData(t, resp)["token"].(string)
	if token == "" {
		t.Fatal("token kosong")
	}

	// sesi lama langsung mati begitu user dinonaktifkan
	db.Model(&user).Update("is_active", false)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	protected, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if protected.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, mau 401", protected.StatusCode)
	}

	raw, _ := io.ReadAll(protected.Body)
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["redirect"] != "/login" {
		t.Errorf("redirect = %v, mau /login", body["redirect"])
	}
}

func TestUnauthenticatedJSON(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, mau 401", resp.StatusCode)
	}

	// browser biasa (tanpa Accept json) di-redirect ke /login
	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status browser = %d, mau 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("Location = %s", loc)
	}
}
