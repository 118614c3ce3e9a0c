package routes

import (
	"presensi-magang-backend/internal/handler"
	"presensi-magang-backend/internal/middleware"
	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB) {
	attendanceRepo := repository.NewAttendanceRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	userRepo := repository.NewUserRepository(db)
	hdl := handler.NewDashboardHandler(attendanceRepo, leaveRepo, userRepo)

	admin := app.Group("/api/admin/dashboard", middleware.Auth(db), middleware.Role(model.RoleAdmin, model.RoleSuperAdmin))
	admin.Get("/stats", hdl.GetStats)
	admin.Get("/mingguan", hdl.GetWeekly)
}
