package routes

import (
	"presensi-magang-backend/internal/handler"
	"presensi-magang-backend/internal/middleware"
	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupExportRoutes(app *fiber.App, db *gorm.DB) {
	attendanceRepo := repository.NewAttendanceRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	userRepo := repository.NewUserRepository(db)

	hdl := handler.NewExportHandler(attendanceRepo, leaveRepo, userRepo)

	admin := app.Group("/api/admin/export", middleware.Auth(db), middleware.Role(model.RoleAdmin, model.RoleSuperAdmin))
	admin.Get("/absensi/csv", hdl.ExportAbsensiCSV)
	admin.Get("/rekap/csv", hdl.ExportRekapCSV)
	admin.Get("/rekap/pdf", hdl.ExportRekapPDF)
}
