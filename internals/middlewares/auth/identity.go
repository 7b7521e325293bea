package auth

import (
	"github.com/gofiber/fiber/v2"

	"protokolku_backend/internals/constants"
)

// Kind membedakan dua jalur identitas yang ada di sistem.
type Kind string

const (
	// KindSuperuser: kredensial legacy hardcoded, tidak pernah menyentuh tabel users.
	KindSuperuser Kind = "superuser"
	// KindStoredUser: user tabel users, di-fetch ulang tiap request.
	KindStoredUser Kind = "stored_user"
)

// Identity adalah hasil resolusi auth, disimpan sekali di c.Locals dan
// tidak diubah lagi sepanjang pipeline request.
type Identity struct {
	Kind     Kind   `json:"kind"`
	UserID   uint   `json:"user_id"` // 0 untuk superuser
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

const identityLocal = "identity"

// SuperuserIdentity membangun identitas untuk jalur legacy admin.
func SuperuserIdentity(username string) Identity {
	return Identity{
		Kind:     KindSuperuser,
		UserID:   0,
		Username: username,
		FullName: "Legacy Admin",
		Role:     constants.RoleAdmin,
	}
}

// StoreIdentity menyimpan identitas ke context request (sekali populate).
func StoreIdentity(c *fiber.Ctx, id Identity) {
	c.Locals(identityLocal, id)
}

// GetIdentity membaca identitas dari context request.
func GetIdentity(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(identityLocal).(Identity)
	return id, ok
}

// MustIdentity dipakai handler di belakang RequireAuth.
func MustIdentity(c *fiber.Ctx) Identity {
	id, _ := GetIdentity(c)
	return id
}
