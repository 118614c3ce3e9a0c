package routes

import (
	"presensi-magang-backend/internal/handler"
	"presensi-magang-backend/internal/middleware"
	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB) {
	attendanceRepo := repository.NewAttendanceRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	userRepo := repository.NewUserRepository(db)

	hdl := handler.NewReportHandler(attendanceRepo, leaveRepo, userRepo)

	// Rekap milik sendiri
	api := app.Group("/api/rekap", middleware.Auth(db))
	api.Get("/", hdl.GetRekapSaya)

	// Rekap user mana pun untuk admin
	admin := app.Group("/api/admin/rekap", middleware.Auth(db), middleware.Role(model.RoleAdmin, model.RoleSuperAdmin))
	admin.Get("/:userId", hdl.GetRekapUser)
}
