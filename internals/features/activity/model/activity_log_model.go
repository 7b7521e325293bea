package model

import (
	"time"

	"gorm.io/datatypes"
)

// Konstanta action untuk audit trail
const (
	ActionLogin             = "login"
	ActionViewDashboard     = "view_dashboard"
	ActionViewCreateForm    = "view_create_protocol"
	ActionViewScanner       = "view_scanner"
	ActionCreateProtocol    = "create_protocol"
	ActionUpdateStatus      = "update_status"
	ActionScanDelivered     = "scan_delivered"
	ActionScanTerpakai      = "scan_terpakai"
	ActionCreatePartner     = "create_partner"
	ActionCreateUser        = "create_user"
	ActionActivateUser      = "activate_user"
	ActionDeactivateUser    = "deactivate_user"
	ActionResetPassword     = "reset_password"
	ActionUpdatePatientData = "update_patient_data"
)

// ActivityLogModel: audit trail append-only, tidak pernah diubah/dihapus.
// user_id = 0 berarti superuser legacy.
type ActivityLogModel struct {
	ID         uint           `json:"id" gorm:"column:id;primaryKey"`
	UserID     uint           `json:"user_id" gorm:"column:user_id;not null"`
	Action     string         `json:"action" gorm:"column:action;not null"`
	TargetType string         `json:"target_type" gorm:"column:target_type;default:system"`
	TargetID   string         `json:"target_id" gorm:"column:target_id"`
	Details    datatypes.JSON `json:"details,omitempty" gorm:"column:details"`
	IPAddress  string         `json:"ip_address" gorm:"column:ip_address"`
	UserAgent  string         `json:"user_agent" gorm:"column:user_agent"`
	CreatedAt  time.Time      `json:"created_at" gorm:"column:created_at"`
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}
