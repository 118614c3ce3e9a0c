package routes

import (
	"presensi-magang-backend/internal/handler"
	"presensi-magang-backend/internal/middleware"
	"presensi-magang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewUserRepository(db)
	hdl := handler.NewAuthHandler(repo)

	// Login terbuka, sisanya butuh token hidup
	app.Post("/api/login", hdl.Login)

	api := app.Group("/api/auth", middleware.Auth(db))
	api.Post("/refresh-token", hdl.RefreshToken)
	api.Get("/profile", hdl.GetProfile)
	api.Put("/profile", hdl.UpdateProfile)
	api.Put("/password", hdl.ChangePassword)
}
