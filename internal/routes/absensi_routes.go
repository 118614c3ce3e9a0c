package routes

import (
	"presensi-magang-backend/internal/handler"
	"presensi-magang-backend/internal/middleware"
	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupAbsensiRoutes menerima TwoTierSettings dari main supaya cache
// pengaturan dipakai bersama endpoint settings.
func SetupAbsensiRoutes(app *fiber.App, db *gorm.DB, settings *repository.TwoTierSettings) {
	repo := repository.NewAttendanceRepository(db)
	userRepo := repository.NewUserRepository(db)
	hdl := handler.NewAbsensiHandler(repo, userRepo, settings)

	api := app.Group("/api/absensi", middleware.Auth(db))
	api.Post("/", hdl.Submit)
	api.Get("/riwayat", hdl.GetRiwayat)
	api.Get("/hari-ini", hdl.GetTodayStatus)

	admin := app.Group("/api/admin/absensi", middleware.Auth(db), middleware.Role(model.RoleAdmin, model.RoleSuperAdmin))
	admin.Get("/", hdl.GetByDate)
	admin.Get("/user/:userId", hdl.GetByUser)
}
