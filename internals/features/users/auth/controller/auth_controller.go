package controller

import (
	"errors"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"protokolku_backend/internals/configs"
	"protokolku_backend/internals/constants"
	activityModel "protokolku_backend/internals/features/activity/model"
	activityService "protokolku_backend/internals/features/activity/service"
	userModel "protokolku_backend/internals/features/users/user/model"
	helper "protokolku_backend/internals/helpers"
	authMiddleware "protokolku_backend/internals/middlewares/auth"
	"protokolku_backend/internals/observability"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Login: POST /login. Dua jalur identitas: superuser legacy (tidak
// menyentuh tabel users) dan user tabel (bcrypt + is_active).
// Redirect by role: distribusi → /scanner, selainnya → /dashboard.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return ctrl.loginFailed(c, "Username dan password harus diisi")
	}
	if body.Username == "" || body.Password == "" {
		return ctrl.loginFailed(c, "Username dan password harus diisi")
	}

	// 1) Jalur superuser legacy
	if body.Username == configs.SuperUser && body.Password == configs.SuperPass {
		log.Println("[INFO] Legacy admin login berhasil")
		id := authMiddleware.SuperuserIdentity(body.Username)
		return ctrl.establishSession(c, id, "/dashboard")
	}

	// 2) Jalur user tabel
	var user userModel.UserModel
	err := ctrl.DB.Where("username = ? AND is_active = ?", body.Username, true).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[ERROR] DB error saat login: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Database error")
		}
		return ctrl.loginFailed(c, "Invalid username or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		return ctrl.loginFailed(c, "Invalid username or password")
	}

	now := helper.NowWIB()
	if err := ctrl.DB.Model(&user).Update("last_login", now).Error; err != nil {
		log.Printf("[WARN] Gagal update last_login: %v", err)
	}

	ip, ua := activityService.RequestMeta(c)
	if err := activityService.Record(ctrl.DB, activityService.Entry{
		UserID:    user.ID,
		Action:    activityModel.ActionLogin,
		IPAddress: ip,
		UserAgent: ua,
	}); err != nil {
		log.Printf("[ERROR] Activity log error: %v", err)
	}

	id := authMiddleware.Identity{
		Kind:     authMiddleware.KindStoredUser,
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	}
	target := "/dashboard"
	if user.Role == constants.RoleDistribusi {
		target = "/scanner"
	}
	return ctrl.establishSession(c, id, target)
}

// Logout: GET /logout — hancurkan sesi lalu kembali ke /login.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	authMiddleware.ClearSessionCookie(c)
	if helper.WantsJSON(c) {
		return helper.Success(c, "Logout berhasil", nil)
	}
	return c.Redirect("/login")
}

func (ctrl *AuthController) establishSession(c *fiber.Ctx, id authMiddleware.Identity, target string) error {
	token, err := authMiddleware.MintSessionToken(id)
	if err != nil {
		log.Printf("[ERROR] Gagal membuat token sesi: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Session error")
	}
	authMiddleware.SetSessionCookie(c, token)
	observability.LoginAttempts.WithLabelValues("success").Inc()

	if helper.WantsJSON(c) {
		return helper.Success(c, "Login berhasil", fiber.Map{
			"token":    token,
			"redirect": target,
			"user": fiber.Map{
				"username":  id.Username,
				"full_name": id.FullName,
				"role":      id.Role,
			},
		})
	}
	return c.Redirect(target)
}

func (ctrl *AuthController) loginFailed(c *fiber.Ctx, message string) error {
	observability.LoginAttempts.WithLabelValues("failed").Inc()
	if helper.WantsJSON(c) {
		return helper.Error(c, fiber.StatusUnauthorized, message)
	}
	return c.Redirect("/login?error=" + url.QueryEscape(message))
}
