package middleware

import (
	"strings"

	"presensi-magang-backend/config"
	"presensi-magang-backend/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Auth memvalidasi Bearer token lalu menyimpan claims ke context.
// Token milik akun yang sudah dihapus ikut ditolak supaya tidak ada sisa sesi
// setelah akunnya dicabut.
func Auth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Ambil token dari Header Authorization
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak ditemukan"})
		}

		// Format header: "Bearer <token>"
		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)

		// 2. Parse dan Validasi Token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return config.JWTSecret(), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak valid atau kadaluwarsa"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak valid atau kadaluwarsa"})
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak valid atau kadaluwarsa"})
		}

		// 3. Pastikan akunnya masih ada (token akun terhapus = sesi hangus)
		var count int64
		if err := db.Model(&model.User{}).Where("id = ?", uint(userID)).Count(&count).Error; err == nil && count == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Sesi tidak berlaku lagi, silakan login ulang"})
		}

		// 4. Simpan data user (Claims) ke Context agar bisa dipakai di Handler
		c.Locals("user_id", userID)
		c.Locals("username", claims["username"])
		c.Locals("role", claims["role"])

		return c.Next()
	}
}
