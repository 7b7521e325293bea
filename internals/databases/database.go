package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB membuka koneksi sesuai DB_DRIVER:
//   - "sqlite" (default): file data.db di DATA_DIR, embedded — selaras deployment single-node
//   - "postgres": DSN dari env, PreferSimpleProtocol agar aman di belakang PgBouncer
func ConnectDB() {
	driver := getenv("DB_DRIVER", "sqlite")

	var (
		db  *gorm.DB
		err error
	)

	switch driver {
	case "postgres":
		log.Println("🔌 Koneksi ke PostgreSQL...")
		sslmode := getenv("DB_SSLMODE", "require")
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=protokolku&options=-c statement_timeout=3000",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
			sslmode,
		)
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
		}), &gorm.Config{})

	default:
		dataDir := getenv("DATA_DIR", getenv("DATA_PATH", "."))
		if mkErr := os.MkdirAll(dataDir, 0o755); mkErr != nil {
			log.Printf("⚠️ Gagal membuat DATA_DIR %s: %v", dataDir, mkErr)
		}
		dbPath := filepath.Join(dataDir, "data.db")
		log.Println("🔌 Koneksi ke SQLite:", dbPath)
		db, err = gorm.Open(sqlite.Open(dbPath+"?_busy_timeout=5000"), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool "keisi" & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
