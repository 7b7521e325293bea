package dto

// ProvinceCount: satu entri top-provinsi.
type ProvinceCount struct {
	ProvinceCode string `json:"province_code"`
	Name         string `json:"name"`
	Count        int    `json:"count"`
}

// DashboardStats: hitungan status pada window aktif.
type DashboardStats struct {
	Total        int             `json:"total"`
	Created      int             `json:"created"`
	Delivered    int             `json:"delivered"`
	Terpakai     int             `json:"terpakai"`
	TopProvinces []ProvinceCount `json:"topProvinces"`
}

// StockSummary: agregat ledger seluruh mitra aktif.
type StockSummary struct {
	TotalAllocated int `json:"total_allocated"`
	TotalUsed      int `json:"total_used"`
	TotalAvailable int `json:"total_available"`
	ActivePartner  int `json:"active_partner"`
}

// DailyTrend: satu bucket harian (lookback 30 hari).
type DailyTrend struct {
	Date          string `json:"date"`
	Total         int    `json:"total"`
	Created       int    `json:"created"`
	Delivered     int    `json:"delivered"`
	Terpakai      int    `json:"terpakai"`
	UniquePartner int    `json:"unique_partner"`
}

// HourlyBucket: distribusi per jam (lookback 7 hari).
type HourlyBucket struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// PartnerPerformance: ranking usage-rate mitra (top 10).
type PartnerPerformance struct {
	PartnerName    string   `json:"partner_name"`
	PartnerType    string   `json:"partner_type"`
	PartnerCode    string   `json:"partner_code"`
	ProvinceCode   string   `json:"province_code"`
	TotalProtocols int      `json:"total_protocols"`
	UsedProtocols  int      `json:"used_protocols"`
	UsageRate      *float64 `json:"usage_rate"`
	LastActivity   *string  `json:"last_activity"`
}

// ProvincePerformance: volume + usage-rate per provinsi (top 10).
type ProvincePerformance struct {
	ProvinceCode  string   `json:"province_code"`
	Count         int      `json:"count"`
	Created       int      `json:"created"`
	Delivered     int      `json:"delivered"`
	Terpakai      int      `json:"terpakai"`
	UsageRate     *float64 `json:"usage_rate"`
	ActivePartner int      `json:"active_partner"`
}

// StatusTrend: bucket harian per status (lookback 14 hari).
type StatusTrend struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// GlobalMetrics: metrik agregat seluruh data.
type GlobalMetrics struct {
	TotalProtocols  int      `json:"total_protocols"`
	UniqueProvinces int      `json:"unique_provinces"`
	ActivePartner   int      `json:"active_partner"`
	AvgPerDay       *float64 `json:"avg_per_day"`
	CompletionRate  *float64 `json:"completion_rate"`
	FirstProtocol   *string  `json:"first_protocol"`
	LatestProtocol  *string  `json:"latest_protocol"`
}

// Analytics menggabungkan seluruh rollup read-side. Setiap bagian
// independen: query yang gagal diganti default nol, bukan menggagalkan
// seluruh dashboard.
type Analytics struct {
	DailyTrends         []DailyTrend          `json:"dailyTrends"`
	HourlyDistribution  []HourlyBucket        `json:"hourlyDistribution"`
	PartnerPerformance  []PartnerPerformance  `json:"partnerPerformance"`
	ProvincePerformance []ProvincePerformance `json:"provincePerformance"`
	StatusTrends        []StatusTrend         `json:"statusTrends"`
	Metrics             GlobalMetrics         `json:"metrics"`
}
