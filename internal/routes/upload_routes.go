package routes

import (
	"presensi-magang-backend/internal/handler"
	"presensi-magang-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUploadRoutes(app *fiber.App, db *gorm.DB) {
	hdl := handler.NewUploadHandler()

	api := app.Group("/api/upload", middleware.Auth(db))
	api.Post("/foto-absensi", hdl.UploadFotoAbsensi)
	api.Post("/lampiran-izin", hdl.UploadLampiranIzin)
}
