package config

import (
	"fmt"

	"presensi-magang-backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "5432"),
		GetEnv("DB_USER", "postgres"),
		GetEnv("DB_PASSWORD", ""),
		GetEnv("DB_NAME", "presensi_magang"),
		GetEnv("DB_SSLMODE", "disable"),
		GetEnv("APP_TIMEZONE", "Asia/Makassar"),
	)

	// TranslateError agar pelanggaran unique index bisa dicek
	// lewat errors.Is(err, gorm.ErrDuplicatedKey) di handler.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("Gagal koneksi ke database!")
	}

	fmt.Println("Koneksi Database Berhasil!")

	// Auto Migration: Membuat tabel otomatis berdasarkan struct di folder model
	if err := db.AutoMigrate(
		&model.User{},
		&model.Attendance{},
		&model.AttendanceArchive{},
		&model.Leave{},
		&model.Settings{},
	); err != nil {
		panic("Gagal migrasi database: " + err.Error())
	}

	DB = db
}
