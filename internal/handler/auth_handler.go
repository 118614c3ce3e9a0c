package handler

import (
	"errors"
	"strings"
	"time"

	"presensi-magang-backend/config"
	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	userRepo repository.UserRepository
}

func NewAuthHandler(userRepo repository.UserRepository) *AuthHandler {
	return &AuthHandler{userRepo: userRepo}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login memverifikasi username dan password lalu menerbitkan token JWT.
// Tiap penyebab gagal punya pesan sendiri supaya client bisa menampilkan
// arahan yang tepat (username salah vs password salah vs profil belum siap).
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": pesanValidasi(err)})
	}

	// 1. Cari user berdasarkan username
	user, err := h.userRepo.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Username tidak terdaftar"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memproses login"})
	}

	// 2. Profil harus utuh sebelum sesi dibuat. Akun tanpa nama/role tidak
	// diberi token sama sekali, bukan token dengan akses setengah jadi.
	if user.Name == "" || user.Role == "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Profil akun belum lengkap, hubungi admin"})
	}

	// 3. Cocokkan password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Password salah"})
	}

	// 4. Terbitkan token
	token, err := generateToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat token"})
	}

	return c.JSON(fiber.Map{
		"message": "Login berhasil",
		"token":   token,
		"data":    user,
	})
}

// RefreshToken menerbitkan token baru untuk sesi yang masih hidup. User yang
// sudah dihapus tertolak di middleware sebelum sampai ke sini.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Sesi tidak berlaku lagi, silakan login ulang"})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat token"})
	}

	return c.JSON(fiber.Map{"message": "Token diperbarui", "token": token})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	return c.JSON(fiber.Map{"message": "Berhasil mengambil profil", "data": user})
}

type UpdateProfileRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Foto  string `json:"photo"`
}

// UpdateProfile hanya membuka field yang memang milik user sendiri.
// Nama, username, role, dan divisi diurus admin lewat manajemen user.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": pesanValidasi(err)})
	}

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Foto != "" {
		user.Foto = req.Foto
	}

	if err := h.userRepo.Update(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memperbarui profil"})
	}

	return c.JSON(fiber.Map{"message": "Profil berhasil diperbarui", "data": user})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": pesanValidasi(err)})
	}

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password lama salah"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengamankan password"})
	}
	user.Password = string(hash)

	if err := h.userRepo.Update(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memperbarui password"})
	}

	return c.JSON(fiber.Map{"message": "Password berhasil diganti"})
}

// generateToken membuat JWT HS256 berumur 24 jam berisi identitas dasar user.
func generateToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret())
}
