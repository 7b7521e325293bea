package service

import (
	"fmt"
	"time"

	helper "protokolku_backend/internals/helpers"
)

// GenerateCodes membentuk kode batch:
// {YYYYMMDD WIB}{kodeProvinsi}{kodeMitra}{6 digit akhir epoch-millis},
// ditambah suffix _NNN (3 digit) per item bila qty > 1.
// Keunikan global dijaga unique constraint kolom code, bukan di sini:
// tabrakan (mitra+provinsi+millisecond yang sama) harus gagal sebagai
// Conflict, tidak pernah menimpa diam-diam.
func GenerateCodes(now time.Time, province, partnerCode string, qty int) []string {
	dateStr := now.In(helper.WIB).Format("20060102")

	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}

	base := dateStr + province + partnerCode + millis
	if qty == 1 {
		return []string{base}
	}

	codes := make([]string, 0, qty)
	for i := 1; i <= qty; i++ {
		codes = append(codes, fmt.Sprintf("%s_%03d", base, i))
	}
	return codes
}
