package handler

import (
	"log"

	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"
	"presensi-magang-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	repo *repository.TwoTierSettings
}

func NewSettingsHandler(repo *repository.TwoTierSettings) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

// Get terbuka untuk semua user login; client butuh koordinat kantor dan jam
// kerja untuk layar absen. Saat database bermasalah, salinan terakhir
// disajikan dengan penanda degraded.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	pengaturan, degraded, err := h.repo.Get()
	if err != nil {
		log.Printf("[SETTINGS] Gagal memuat pengaturan: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memuat pengaturan"})
	}

	return c.JSON(fiber.Map{
		"message":  "Pengaturan kantor",
		"degraded": degraded,
		"data":     pengaturan,
	})
}

type UpdateSettingsRequest struct {
	OfficeLatitude   float64 `json:"officeLatitude" validate:"min=-90,max=90"`
	OfficeLongitude  float64 `json:"officeLongitude" validate:"min=-180,max=180"`
	MaxDistanceMeter float64 `json:"maxDistanceMeters" validate:"required,gt=0"`
	LateThreshold    string  `json:"lateThreshold" validate:"required,datetime=15:04"`
	ClockOutRegular  string  `json:"clockOutRegular" validate:"required,datetime=15:04"`
	ClockOutFriday   string  `json:"clockOutFriday" validate:"required,datetime=15:04"`
}

// Update menimpa seluruh pengaturan sekaligus, tidak ada update parsial.
// Penulisan tidak pernah memakai jalur fallback.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": pesanValidasi(err)})
	}
	if err := usecase.ValidateCoordinate(req.OfficeLatitude, req.OfficeLongitude); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Koordinat kantor tidak valid"})
	}

	pengaturan := model.Settings{
		OfficeLatitude:   req.OfficeLatitude,
		OfficeLongitude:  req.OfficeLongitude,
		MaxDistanceMeter: req.MaxDistanceMeter,
		LateThreshold:    req.LateThreshold,
		ClockOutRegular:  req.ClockOutRegular,
		ClockOutFriday:   req.ClockOutFriday,
	}

	if err := h.repo.Save(&pengaturan); err != nil {
		log.Printf("[SETTINGS] Gagal menyimpan pengaturan: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan pengaturan"})
	}

	return c.JSON(fiber.Map{"message": "Pengaturan disimpan", "data": pengaturan})
}
