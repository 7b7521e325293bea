package service

import (
	"strings"
	"testing"
	"time"

	helper "protokolku_backend/internals/helpers"
)

func TestGenerateCodesSingle(t *testing.T) {
	now := time.Date(2025, 7, 14, 9, 30, 0, 0, helper.WIB)
	codes := GenerateCodes(now, "ACE", "KLN001", 1)
	if len(codes) != 1 {
		t.Fatalf("jumlah kode = %d, mau 1", len(codes))
	}
	if !strings.HasPrefix(codes[0], "20250714ACEKLN001") {
		t.Fatalf("prefix salah: %s", codes[0])
	}
	if strings.Contains(codes[0], "_") {
		t.Fatalf("qty 1 tidak boleh pakai suffix: %s", codes[0])
	}

	suffix := strings.TrimPrefix(codes[0], "20250714ACEKLN001")
	if len(suffix) != 6 {
		t.Fatalf("suffix millis = %q, mau 6 digit", suffix)
	}
}

func TestGenerateCodesBatchSuffix(t *testing.T) {
	now := time.Date(2025, 7, 14, 9, 30, 0, 0, helper.WIB)
	codes := GenerateCodes(now, "JKT", "RS0001", 12)
	if len(codes) != 12 {
		t.Fatalf("jumlah kode = %d, mau 12", len(codes))
	}
	if !strings.HasSuffix(codes[0], "_001") {
		t.Errorf("kode pertama = %s, mau suffix _001", codes[0])
	}
	if !strings.HasSuffix(codes[11], "_012") {
		t.Errorf("kode terakhir = %s, mau suffix _012", codes[11])
	}

	base := strings.TrimSuffix(codes[0], "_001")
	for i, c := range codes {
		if !strings.HasPrefix(c, base) {
			t.Errorf("kode #%d base berbeda: %s", i, c)
		}
	}
}

func TestGenerateCodesDateUsesWIB(t *testing.T) {
	// 23:30 UTC = 06:30 WIB hari berikutnya
	now := time.Date(2025, 7, 14, 23, 30, 0, 0, time.UTC)
	codes := GenerateCodes(now, "ACE", "KLN001", 1)
	if !strings.HasPrefix(codes[0], "20250715") {
		t.Fatalf("tanggal harus WIB: %s", codes[0])
	}
}
