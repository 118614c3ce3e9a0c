package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	// Zona waktu ikut tertanam di binary supaya APP_TIMEZONE tetap dikenal
	// di image minimal tanpa tzdata sistem.
	_ "time/tzdata"
)

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Helper function to get environment variable as boolean with fallback
func GetEnvAsBool(key string, fallback bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

// JWTSecret mengambil kunci penandatanganan token dari environment.
// Fallback hanya untuk development lokal.
func JWTSecret() []byte {
	return []byte(GetEnv("JWT_SECRET", "rahasia_magang"))
}

var (
	tzOnce sync.Once
	tzLoc  *time.Location
)

// Timezone mengembalikan zona waktu kantor (APP_TIMEZONE).
// Semua pemetaan timestamp ke tanggal kalender (cek terlambat, rekap,
// dashboard "hari ini") memakai satu zona ini agar konsisten.
func Timezone() *time.Location {
	tzOnce.Do(func() {
		name := GetEnv("APP_TIMEZONE", "Asia/Makassar")
		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Printf("[CONFIG] Zona waktu %q tidak dikenal, memakai waktu lokal server: %v", name, err)
			loc = time.Local
		}
		tzLoc = loc
	})
	return tzLoc
}
