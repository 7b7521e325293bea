package constants

// Province adalah entri daftar provinsi statis untuk validasi kode protokol.
type Province struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Provinces berisi 37 kode provinsi yang dikenal sistem.
var Provinces = []Province{
	{Code: "ACE", Name: "Aceh"},
	{Code: "SUT", Name: "Sumatera Utara"},
	{Code: "SUB", Name: "Sumatera Barat"},
	{Code: "RIA", Name: "Riau"},
	{Code: "KEP", Name: "Kepulauan Riau"},
	{Code: "JAM", Name: "Jambi"},
	{Code: "SUS", Name: "Sumatera Selatan"},
	{Code: "BBL", Name: "Bangka Belitung"},
	{Code: "BEN", Name: "Bengkulu"},
	{Code: "LAM", Name: "Lampung"},
	{Code: "DKI", Name: "DKI Jakarta"},
	{Code: "JAB", Name: "Jawa Barat"},
	{Code: "JAT", Name: "Jawa Tengah"},
	{Code: "JAI", Name: "Jawa Timur"},
	{Code: "YOG", Name: "DI Yogyakarta"},
	{Code: "BAN", Name: "Banten"},
	{Code: "BAL", Name: "Bali"},
	{Code: "NTB", Name: "Nusa Tenggara Barat"},
	{Code: "NTT", Name: "Nusa Tenggara Timur"},
	{Code: "KAB", Name: "Kalimantan Barat"},
	{Code: "KAT", Name: "Kalimantan Tengah"},
	{Code: "KAI", Name: "Kalimantan Timur"},
	{Code: "KAS", Name: "Kalimantan Selatan"},
	{Code: "KAU", Name: "Kalimantan Utara"},
	{Code: "SLS", Name: "Sulawesi Selatan"},
	{Code: "SLT", Name: "Sulawesi Tengah"},
	{Code: "SLG", Name: "Sulawesi Tenggara"},
	{Code: "SLB", Name: "Sulawesi Barat"},
	{Code: "SLU", Name: "Sulawesi Utara"},
	{Code: "GOR", Name: "Gorontalo"},
	{Code: "MAL", Name: "Maluku"},
	{Code: "MAU", Name: "Maluku Utara"},
	{Code: "PAP", Name: "Papua"},
	{Code: "PAB", Name: "Papua Barat"},
	{Code: "PPS", Name: "Papua Selatan"},
	{Code: "PPT", Name: "Papua Tengah"},
	{Code: "PPG", Name: "Papua Pegunungan"},
}

// FindProvince mengembalikan entri provinsi untuk kode tertentu.
func FindProvince(code string) (Province, bool) {
	for _, p := range Provinces {
		if p.Code == code {
			return p, true
		}
	}
	return Province{}, false
}

// ProvinceName mengembalikan nama provinsi, fallback ke kodenya sendiri.
func ProvinceName(code string) string {
	if p, ok := FindProvince(code); ok {
		return p.Name
	}
	return code
}
