package model

import "time"

// Status protokol: created → delivered → terpakai (terminal).
const (
	StatusCreated   = "created"
	StatusDelivered = "delivered"
	StatusTerpakai  = "terpakai"
)

var Statuses = []string{StatusCreated, StatusDelivered, StatusTerpakai}

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// ProtocolModel: satu unit terserialisasi ber-kode QR. Baris tidak pernah
// dihapus; hanya status dan data pasien yang berubah.
type ProtocolModel struct {
	ID           uint      `json:"id" gorm:"column:id;primaryKey"`
	Code         string    `json:"code" gorm:"column:code;uniqueIndex;not null"`
	ProvinceCode string    `json:"province_code" gorm:"column:province_code"`
	PartnerID    *uint     `json:"partner_id,omitempty" gorm:"column:partner_id"`
	Status       string    `json:"status" gorm:"column:status;not null;default:created"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
	CreatedBy    uint      `json:"created_by" gorm:"column:created_by"`
	UpdatedBy    *uint     `json:"updated_by,omitempty" gorm:"column:updated_by"`

	// Data pasien, diisi belakangan lewat scanner (free text)
	PatientName        *string    `json:"patient_name,omitempty" gorm:"column:patient_name"`
	HealthcareFacility *string    `json:"healthcare_facility,omitempty" gorm:"column:healthcare_facility"`
	Occupation         *string    `json:"occupation,omitempty" gorm:"column:occupation"`
	MaritalStatus      *string    `json:"marital_status,omitempty" gorm:"column:marital_status"`
	GPA                *string    `json:"gpa,omitempty" gorm:"column:gpa"`
	Address            *string    `json:"address,omitempty" gorm:"column:address"`
	Phone              *string    `json:"phone,omitempty" gorm:"column:phone"`
	Age                *string    `json:"age,omitempty" gorm:"column:age"`
	Notes              *string    `json:"notes,omitempty" gorm:"column:notes"`
	UsedDate           *time.Time `json:"used_date,omitempty" gorm:"column:used_date"`
}

func (ProtocolModel) TableName() string {
	return "protocols"
}

// ProtocolWithPartner dipakai query list/scan yang join ke tabel partner.
type ProtocolWithPartner struct {
	ProtocolModel
	PartnerName *string `json:"partner_name,omitempty" gorm:"column:partner_name"`
	PartnerType *string `json:"partner_type,omitempty" gorm:"column:partner_type"`
	PartnerCode *string `json:"partner_code,omitempty" gorm:"column:partner_code"`
}
