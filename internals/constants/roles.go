package constants

import "fmt"

// Role names (kolom users.role)
const (
	RoleAdmin      = "admin"
	RoleOperator   = "operator"
	RoleDistribusi = "distribusi"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess    = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyOperatorsCanAccess = "❌ Hanya admin atau operator yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOperator(feature string) string {
	return fmt.Sprintf(ErrOnlyOperatorsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleOperator,
		RoleDistribusi,
	}

	OperatorAndAbove = []string{
		RoleAdmin,
		RoleOperator,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// ValidRole memeriksa apakah role dikenal sistem.
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
