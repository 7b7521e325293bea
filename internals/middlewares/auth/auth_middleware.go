package auth

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userModel "protokolku_backend/internals/features/users/user/model"
	helper "protokolku_backend/internals/helpers"
)

// RequireAuth meresolusi identitas sekali per request:
// superuser legacy dari klaim token, atau user tabel yang di-fetch ulang
// agar is_active=0 langsung mencabut akses. Sesi basi dihancurkan
// sebelum merespon.
func RequireAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := tokenFromRequest(c)
		if raw == "" {
			return unauthenticated(c, "Authentication required")
		}

		claims, err := ParseSessionToken(raw)
		if err != nil {
			ClearSessionCookie(c)
			return unauthenticated(c, "Session expired")
		}

		// 1) Jalur superuser legacy: tidak menyentuh tabel users
		if claims.Kind == string(KindSuperuser) && claims.UserID == 0 {
			StoreIdentity(c, SuperuserIdentity(claims.Username))
			return c.Next()
		}

		// 2) Jalur user tabel: fetch ulang tiap request
		var user userModel.UserModel
		err = db.Where("id = ? AND is_active = ?", claims.UserID, true).First(&user).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[ERROR] Lookup user sesi gagal: %v", err)
			}
			ClearSessionCookie(c)
			return unauthenticated(c, "Session expired")
		}

		StoreIdentity(c, Identity{
			Kind:     KindStoredUser,
			UserID:   user.ID,
			Username: user.Username,
			FullName: user.FullName,
			Role:     user.Role,
		})
		return c.Next()
	}
}

// unauthenticated: 401 JSON untuk XHR/API, redirect /login untuk browser.
func unauthenticated(c *fiber.Ctx, message string) error {
	if helper.WantsJSON(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":    message,
			"redirect": "/login",
		})
	}
	return c.Redirect("/login")
}
