package main

import (
	"fmt"

	"presensi-magang-backend/config"
	"presensi-magang-backend/internal/mailer"
	"presensi-magang-backend/internal/repository"
	"presensi-magang-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("1. Memulai aplikasi... Mencoba load .env...")
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}

	fmt.Println("2. Mencoba koneksi ke Database...")
	config.ConnectDB()
	fmt.Println("3. Database berhasil terhubung! Menyiapkan routes...")

	// Body limit dilonggarkan di atas batas unggahan 5 MB; ukuran file
	// sendiri tetap divalidasi di handler upload.
	app := fiber.New(fiber.Config{BodyLimit: 8 * 1024 * 1024})

	// Middleware Global
	app.Use(cors.New())   // Agar API bisa diakses dari aplikasi mobile/web
	app.Use(logger.New()) // Log request di terminal

	// Serve file unggahan (foto absen, lampiran izin)
	app.Static("/uploads", config.GetEnv("UPLOADS_DIR", "./uploads"))

	// Dibuat sekali di sini supaya cache fallback pengaturan dipakai bersama
	settings := repository.NewTwoTierSettings(repository.NewSettingsRepository(config.DB))
	mail := mailer.NewFromEnv()

	routes.SetupAuthRoutes(app, config.DB)
	routes.SetupAbsensiRoutes(app, config.DB, settings)
	routes.SetupPerizinanRoutes(app, config.DB, mail)
	routes.SetupUserRoutes(app, config.DB)
	routes.SetupSettingsRoutes(app, config.DB, settings)
	routes.SetupDashboardRoutes(app, config.DB)
	routes.SetupReportRoutes(app, config.DB)
	routes.SetupExportRoutes(app, config.DB)
	routes.SetupUploadRoutes(app, config.DB)

	port := config.GetEnv("PORT", "3000")
	fmt.Println("4. Server siap! Menunggu request di port :" + port)
	app.Listen(":" + port)
}
