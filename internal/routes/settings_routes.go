package routes

import (
	"presensi-magang-backend/internal/handler"
	"presensi-magang-backend/internal/middleware"
	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSettingsRoutes(app *fiber.App, db *gorm.DB, settings *repository.TwoTierSettings) {
	hdl := handler.NewSettingsHandler(settings)

	// Semua user login boleh baca, hanya admin yang boleh ubah
	api := app.Group("/api/settings", middleware.Auth(db))
	api.Get("/", hdl.Get)

	admin := app.Group("/api/admin/settings", middleware.Auth(db), middleware.Role(model.RoleAdmin, model.RoleSuperAdmin))
	admin.Put("/", hdl.Update)
}
