package routes

import (
	"presensi-magang-backend/internal/handler"
	"presensi-magang-backend/internal/mailer"
	"presensi-magang-backend/internal/middleware"
	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPerizinanRoutes(app *fiber.App, db *gorm.DB, mail *mailer.Mailer) {
	repo := repository.NewLeaveRepository(db)
	userRepo := repository.NewUserRepository(db)
	hdl := handler.NewPerizinanHandler(repo, userRepo, mail)

	// Endpoint untuk peserta magang
	api := app.Group("/api/perizinan", middleware.Auth(db))
	api.Post("/", hdl.AjukanIzin)
	api.Get("/riwayat", hdl.GetRiwayat)
	api.Put("/:id", hdl.EditIzin)
	api.Delete("/:id", hdl.DeleteIzin)

	// Endpoint persetujuan untuk admin
	admin := app.Group("/api/admin/perizinan", middleware.Auth(db), middleware.Role(model.RoleAdmin, model.RoleSuperAdmin))
	admin.Get("/", hdl.GetAll)
	admin.Put("/:id/approve", hdl.Approve)
	admin.Put("/:id/reject", hdl.Reject)
}
