package helper

import (
	"fmt"
	"time"
)

// Seluruh timestamp yang disimpan/ditampilkan memakai WIB (UTC+7).
var WIB = time.FixedZone("WIB", 7*60*60)

const (
	wibTimestampLayout = "2006-01-02 15:04:05"
	wibDateLayout      = "2006-01-02"
)

// NowWIB mengembalikan waktu sekarang dalam zona WIB.
func NowWIB() time.Time {
	return time.Now().In(WIB)
}

// FormatWIBTimestamp memformat waktu sebagai "YYYY-MM-DD HH:MM:SS" WIB.
func FormatWIBTimestamp(t time.Time) string {
	return t.In(WIB).Format(wibTimestampLayout)
}

// FormatWIBDate memformat waktu sebagai "YYYY-MM-DD" WIB.
func FormatWIBDate(t time.Time) string {
	return t.In(WIB).Format(wibDateLayout)
}

// StartOfDayWIB memotong waktu ke pukul 00:00:00 WIB.
func StartOfDayWIB(t time.Time) time.Time {
	w := t.In(WIB)
	return time.Date(w.Year(), w.Month(), w.Day(), 0, 0, 0, 0, WIB)
}

// ParseWIBDate membaca tanggal "YYYY-MM-DD" sebagai awal hari WIB.
func ParseWIBDate(s string) (time.Time, error) {
	return time.ParseInLocation(wibDateLayout, s, WIB)
}

var hariIndonesia = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

var bulanIndonesia = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatTanggalIndonesia memformat waktu gaya lokal id-ID,
// mis. "Senin, 14 Juli 2025 09.30" (dipakai respon scan).
func FormatTanggalIndonesia(t time.Time) string {
	w := t.In(WIB)
	return fmt.Sprintf("%s, %d %s %d %02d.%02d",
		hariIndonesia[int(w.Weekday())], w.Day(), bulanIndonesia[int(w.Month())-1], w.Year(),
		w.Hour(), w.Minute())
}
