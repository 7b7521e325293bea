package dto

// CreatePartnerRequest: payload form /partner dan JSON /api/partner.
type CreatePartnerRequest struct {
	Name         string `json:"name" form:"name" validate:"required"`
	Type         string `json:"type" form:"type" validate:"required"`
	Code         string `json:"code" form:"code" validate:"required"`
	ProvinceCode string `json:"province_code" form:"province_code" validate:"required"`
	Address      string `json:"address" form:"address"`
	Phone        string `json:"phone" form:"phone"`
	Email        string `json:"email" form:"email" validate:"omitempty,email"`
}

// PartnerListItem: baris list mitra + atribusi & jumlah protokolnya.
type PartnerListItem struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	Code              string  `json:"code"`
	ProvinceCode      string  `json:"province_code"`
	Address           string  `json:"address"`
	Phone             string  `json:"phone"`
	Email             string  `json:"email"`
	IsActive          bool    `json:"is_active"`
	CreatedAt         string  `json:"created_at"`
	CreatedByUsername *string `json:"created_by_username,omitempty"`
	ProtocolCount     int     `json:"protocol_count"`
}

// PartnerOption: entri dropdown mitra aktif per provinsi.
type PartnerOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Code string `json:"code"`
}

// StockSnapshot: satu baris respon GET /api/stock.
type StockSnapshot struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Code           string  `json:"code"`
	ProvinceCode   string  `json:"province_code"`
	TotalAllocated int     `json:"total_allocated"`
	TotalUsed      int     `json:"total_used"`
	TotalAvailable int     `json:"total_available"`
	LastUpdated    *string `json:"last_updated,omitempty"`
}
