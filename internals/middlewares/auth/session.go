package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"protokolku_backend/internals/configs"
)

// SessionCookieName adalah nama cookie sesi browser.
const SessionCookieName = "protokolku_session"

const sessionTTL = 24 * time.Hour

// SessionClaims adalah isi token sesi (cookie atau bearer).
type SessionClaims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	Kind     string `json:"kind"`
	jwt.RegisteredClaims
}

// MintSessionToken menandatangani token sesi untuk identitas yang sudah
// terverifikasi saat login.
func MintSessionToken(id Identity) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:   id.UserID,
		Username: id.Username,
		Kind:     string(id.Kind),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.SessionSecret))
}

// ParseSessionToken memverifikasi tanda tangan + expiry token sesi.
func ParseSessionToken(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(configs.SessionSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// SetSessionCookie memasang cookie sesi (HttpOnly, SameSite Lax).
func SetSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   int(sessionTTL.Seconds()),
	})
}

// ClearSessionCookie menghancurkan sesi (dipakai logout & sesi basi).
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   -1,
	})
}

// tokenFromRequest mengambil token sesi dari cookie, atau dari
// Authorization: Bearer untuk client API/scanner.
func tokenFromRequest(c *fiber.Ctx) string {
	if v := c.Cookies(SessionCookieName); v != "" {
		return v
	}
	authz := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return ""
}
