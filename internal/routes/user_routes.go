package routes

import (
	"presensi-magang-backend/internal/handler"
	"presensi-magang-backend/internal/middleware"
	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewUserRepository(db)
	hdl := handler.NewUserHandler(repo)

	// Kelola akun peserta magang; batasan super-admin dicek di handler
	admin := app.Group("/api/admin/users", middleware.Auth(db), middleware.Role(model.RoleAdmin, model.RoleSuperAdmin))
	admin.Post("/", hdl.Create)
	admin.Get("/", hdl.GetAll)
	admin.Get("/:id", hdl.GetByID)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
}
