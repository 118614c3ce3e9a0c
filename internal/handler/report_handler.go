package handler

import (
	"fmt"
	"strconv"
	"time"

	"presensi-magang-backend/config"
	"presensi-magang-backend/internal/repository"
	"presensi-magang-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	attendanceRepo repository.AttendanceRepository
	leaveRepo      repository.LeaveRepository
	userRepo       repository.UserRepository
}

func NewReportHandler(attendanceRepo repository.AttendanceRepository, leaveRepo repository.LeaveRepository, userRepo repository.UserRepository) *ReportHandler {
	return &ReportHandler{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		userRepo:       userRepo,
	}
}

// GetRekapSaya mengembalikan rekap bulanan milik user login.
func (h *ReportHandler) GetRekapSaya(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))
	return h.buatRekap(c, userID)
}

// GetRekapUser (admin) mengembalikan rekap bulanan user mana pun.
func (h *ReportHandler) GetRekapUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
	}
	return h.buatRekap(c, uint(id))
}

func (h *ReportHandler) buatRekap(c *fiber.Ctx, userID uint) error {
	bulan, tahun, err := parseBulanTahun(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	bulanInt, _ := strconv.Atoi(bulan)
	tahunInt, _ := strconv.Atoi(tahun)

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	loc := config.Timezone()

	records, err := h.attendanceRepo.GetByUserAndMonth(userID, bulan, tahun)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data absensi"})
	}

	awal := fmt.Sprintf("%s-%s-01", tahun, bulan)
	akhir := time.Date(tahunInt, time.Month(bulanInt)+1, 0, 0, 0, 0, 0, loc).Format("2006-01-02")
	leaves, err := h.leaveRepo.GetApprovedByUserOverlappingRange(userID, awal, akhir)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data perizinan"})
	}

	rekap := usecase.BuildMonthlyRecap(user, tahunInt, bulanInt, time.Now(), loc, records, leaves)

	return c.JSON(fiber.Map{
		"message": "Rekap " + bulanIndonesia(bulanInt) + " " + tahun,
		"data":    rekap,
	})
}

func bulanIndonesia(m int) string {
	nama := [...]string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	}
	if m < 1 || m > 12 {
		return ""
	}
	return nama[m-1]
}
