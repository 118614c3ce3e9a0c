package handler

import (
	"errors"
	"strconv"

	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserHandler struct {
	repo repository.UserRepository
}

func NewUserHandler(repo repository.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=intern admin super-admin"`
	Division string `json:"division"`
	Foto     string `json:"photo"`
}

// Create membuat akun baru. Akun admin/super-admin hanya boleh dibuat oleh
// super-admin; admin biasa cukup mengelola akun intern.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": pesanValidasi(err)})
	}

	if req.Role != model.RoleIntern && c.Locals("role") != model.RoleSuperAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Hanya super-admin yang boleh membuat akun admin"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengamankan password"})
	}

	user := model.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     req.Role,
		Division: req.Division,
		Foto:     req.Foto,
	}

	if err := h.repo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Username sudah dipakai"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User berhasil dibuat", "data": user})
}

// GetAll mengembalikan daftar user, bisa difilter ?search= (nama/username)
// dan ?role=.
func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	search := c.Query("search")
	role := c.Query("role")

	list, err := h.repo.GetAll(search, role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data user"})
	}

	return c.JSON(fiber.Map{"message": "Berhasil mengambil data user", "data": list})
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
	}

	user, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	return c.JSON(fiber.Map{"message": "Berhasil mengambil data user", "data": user})
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=intern admin super-admin"`
	Division string `json:"division"`
	Foto     string `json:"photo"`
}

// Update mengubah profil user. Field kosong dibiarkan apa adanya. Mengubah
// akun admin atau menaikkan role butuh super-admin.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": pesanValidasi(err)})
	}

	user, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	callerRole := c.Locals("role")
	if user.IsPrivileged() && callerRole != model.RoleSuperAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Hanya super-admin yang boleh mengubah akun admin"})
	}
	if req.Role != "" && req.Role != user.Role && callerRole != model.RoleSuperAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Hanya super-admin yang boleh mengubah role"})
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Division != "" {
		user.Division = req.Division
	}
	if req.Foto != "" {
		user.Foto = req.Foto
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengamankan password"})
		}
		user.Password = string(hash)
	}

	if err := h.repo.Update(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memperbarui user"})
	}

	return c.JSON(fiber.Map{"message": "User berhasil diperbarui", "data": user})
}

// Delete menghapus user beserta seluruh absensi dan perizinannya. Token lama
// milik user terhapus otomatis tertolak di middleware.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
	}

	callerID := uint(c.Locals("user_id").(float64))
	if uint(id) == callerID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Tidak bisa menghapus akun sendiri"})
	}

	user, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}
	if user.IsPrivileged() && c.Locals("role") != model.RoleSuperAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Hanya super-admin yang boleh menghapus akun admin"})
	}

	if err := h.repo.DeleteCascade(user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghapus user"})
	}

	return c.JSON(fiber.Map{"message": "User beserta seluruh datanya dihapus"})
}
