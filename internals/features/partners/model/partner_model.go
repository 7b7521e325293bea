package model

import "time"

// Jenis mitra penerima distribusi
const (
	PartnerTypeKlinik     = "klinik"
	PartnerTypePuskesmas  = "puskesmas"
	PartnerTypeRumahSakit = "rumah_sakit"
)

var PartnerTypes = []string{PartnerTypeKlinik, PartnerTypePuskesmas, PartnerTypeRumahSakit}

func ValidPartnerType(t string) bool {
	for _, v := range PartnerTypes {
		if v == t {
			return true
		}
	}
	return false
}

// PartnerModel: organisasi penerima protokol. Tidak pernah dihapus,
// hanya dinonaktifkan (is_active = false).
type PartnerModel struct {
	ID           uint      `json:"id" gorm:"column:id;primaryKey"`
	Name         string    `json:"name" gorm:"column:name;not null"`
	Type         string    `json:"type" gorm:"column:type;not null"`
	Code         string    `json:"code" gorm:"column:code;uniqueIndex;not null"`
	ProvinceCode string    `json:"province_code" gorm:"column:province_code;not null"`
	Address      string    `json:"address" gorm:"column:address"`
	Phone        string    `json:"phone" gorm:"column:phone"`
	Email        string    `json:"email" gorm:"column:email"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
	CreatedBy    *uint     `json:"created_by,omitempty" gorm:"column:created_by"`
}

func (PartnerModel) TableName() string {
	return "partner"
}
