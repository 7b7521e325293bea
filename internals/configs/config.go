package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	SessionSecret string
	SuperUser     string
	SuperPass     string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	SessionSecret = GetEnv("SESSION_SECRET", "replace-with-secure-secret-in-production")
	SuperUser = GetEnv("SUPERADMIN_USER", "admin")
	SuperPass = GetEnv("SUPERADMIN_PASS", "admin")

	if SessionSecret == "replace-with-secure-secret-in-production" {
		log.Println("⚠️ SESSION_SECRET masih default, ganti di production!")
	} else {
		log.Println("✅ SESSION_SECRET berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
