package handler

import (
	"log"
	"sync"
	"time"

	"presensi-magang-backend/config"
	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"
	"presensi-magang-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	attendanceRepo repository.AttendanceRepository
	leaveRepo      repository.LeaveRepository
	userRepo       repository.UserRepository

	mu        sync.RWMutex
	lastStats *usecase.DashboardStats
}

func NewDashboardHandler(attendanceRepo repository.AttendanceRepository, leaveRepo repository.LeaveRepository, userRepo repository.UserRepository) *DashboardHandler {
	return &DashboardHandler{attendanceRepo: attendanceRepo, leaveRepo: leaveRepo, userRepo: userRepo}
}

// GetStats merangkai statistik hari ini. Kalau database sedang bermasalah,
// snapshot sukses terakhir disajikan dengan penanda degraded; jalur tulis
// tidak pernah ikut fallback ini.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	now := time.Now().In(config.Timezone())
	tanggal := now.Format("2006-01-02")

	stats, err := h.hitungStats(tanggal)
	if err != nil {
		h.mu.RLock()
		cached := h.lastStats
		h.mu.RUnlock()
		if cached == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memuat statistik"})
		}
		log.Printf("[FALLBACK] Statistik dashboard dari database gagal, memakai snapshot terakhir: %v", err)
		return c.JSON(fiber.Map{"message": "Statistik hari ini", "degraded": true, "data": cached})
	}

	h.mu.Lock()
	h.lastStats = stats
	h.mu.Unlock()

	return c.JSON(fiber.Map{"message": "Statistik hari ini", "degraded": false, "data": stats})
}

func (h *DashboardHandler) hitungStats(tanggal string) (*usecase.DashboardStats, error) {
	presentIDs, err := h.attendanceRepo.DistinctUserIDsOnDate(tanggal)
	if err != nil {
		return nil, err
	}
	leaveIDs, err := h.leaveRepo.DistinctUserIDsApprovedOn(tanggal)
	if err != nil {
		return nil, err
	}
	internIDs, err := h.userRepo.GetInternIDs()
	if err != nil {
		return nil, err
	}
	lateCount, err := h.attendanceRepo.CountLateOnDate(tanggal)
	if err != nil {
		return nil, err
	}
	inCount, err := h.attendanceRepo.CountOnDate(tanggal, model.AttendanceTypeIn)
	if err != nil {
		return nil, err
	}
	outCount, err := h.attendanceRepo.CountOnDate(tanggal, model.AttendanceTypeOut)
	if err != nil {
		return nil, err
	}

	stats := usecase.BuildDashboardStats(tanggal, internIDs, presentIDs, leaveIDs, lateCount, inCount, outCount)
	return &stats, nil
}

// GetWeekly mengembalikan ringkasan Senin-Jumat pekan berjalan untuk grafik
// dashboard. Hari yang belum lewat tidak ikut.
func (h *DashboardHandler) GetWeekly(c *fiber.Ctx) error {
	loc := config.Timezone()
	now := time.Now().In(loc)

	offset := (int(now.Weekday()) + 6) % 7
	senin := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -offset)
	jumat := senin.AddDate(0, 0, 4)

	records, err := h.attendanceRepo.GetBetweenDates(senin.Format("2006-01-02"), jumat.Format("2006-01-02"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memuat statistik mingguan"})
	}
	leaves, err := h.leaveRepo.GetApprovedOverlappingRange(senin.Format("2006-01-02"), jumat.Format("2006-01-02"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memuat statistik mingguan"})
	}

	days := usecase.BuildWeeklyStats(now, loc, records, leaves)

	return c.JSON(fiber.Map{"message": "Statistik pekan ini", "data": days})
}
