package handler

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"presensi-magang-backend/config"
	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"
	"presensi-magang-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AbsensiHandler struct {
	repo         repository.AttendanceRepository
	userRepo     repository.UserRepository
	settingsRepo *repository.TwoTierSettings
}

func NewAbsensiHandler(repo repository.AttendanceRepository, userRepo repository.UserRepository, settingsRepo *repository.TwoTierSettings) *AbsensiHandler {
	return &AbsensiHandler{repo: repo, userRepo: userRepo, settingsRepo: settingsRepo}
}

type LocationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

type SubmitAbsensiRequest struct {
	UserID    uint             `json:"userId"`
	UserName  string           `json:"userName"`
	Division  string           `json:"division"`
	Timestamp string           `json:"timestamp" validate:"required"`
	Tipe      string           `json:"type" validate:"required,oneof=in out"`
	Foto      string           `json:"photo"`
	Location  *LocationPayload `json:"location"`
}

// Submit mencatat absen masuk atau pulang. isLate dan status lokasi selalu
// dihitung server saat insert dan tidak pernah dihitung ulang setelahnya;
// client hanya mengirim fakta (waktu, koordinat, foto).
func (h *AbsensiHandler) Submit(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	var req SubmitAbsensiRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": pesanValidasi(err)})
	}

	waktu, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format timestamp harus ISO-8601"})
	}
	loc := config.Timezone()
	waktu = waktu.In(loc)

	// userId di payload tidak dipercaya, absen selalu atas nama pemilik token.
	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	// Nama dan divisi disimpan sebagai snapshot saat absen.
	userName := req.UserName
	if userName == "" {
		userName = user.Name
	}
	division := req.Division
	if division == "" {
		division = user.Division
	}

	tanggal := waktu.Format("2006-01-02")

	// Satu absen per user per tanggal per tipe.
	if exists, err := h.repo.ExistsOnDate(userID, tanggal, req.Tipe); err == nil && exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Anda sudah absen " + labelTipe(req.Tipe) + " hari ini"})
	}

	pengaturan, _, err := h.settingsRepo.Get()
	if err != nil {
		log.Printf("[ABSENSI] Gagal memuat pengaturan kantor: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memproses absensi, coba lagi"})
	}

	absensi := model.Attendance{
		UserID:    userID,
		UserName:  userName,
		Division:  division,
		Timestamp: waktu,
		Tipe:      req.Tipe,
		Foto:      req.Foto,
		Tanggal:   tanggal,
		Bulan:     waktu.Format("01"),
		Tahun:     waktu.Format("2006"),
	}

	if req.Location != nil {
		hasil, err := usecase.CheckGeofence(req.Location.Latitude, req.Location.Longitude,
			pengaturan.OfficeLatitude, pengaturan.OfficeLongitude, pengaturan.MaxDistanceMeter)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Koordinat tidak valid"})
		}
		lat, lon, acc := req.Location.Latitude, req.Location.Longitude, req.Location.Accuracy
		absensi.Latitude, absensi.Longitude, absensi.Accuracy = &lat, &lon, &acc
		if hasil.Valid {
			absensi.Status = model.AttendanceStatusValid
		} else {
			absensi.Status = model.AttendanceStatusInvalid
		}
	} else {
		// Tanpa GPS absen tetap diterima, ditandai pending untuk ditinjau admin.
		absensi.Status = model.AttendanceStatusPending
	}

	// Keterlambatan hanya dinilai untuk absen masuk.
	if req.Tipe == model.AttendanceTypeIn {
		telat, err := usecase.IsLate(waktu, pengaturan.LateThreshold)
		if err != nil {
			log.Printf("[ABSENSI] Ambang terlambat di pengaturan rusak: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memproses absensi, coba lagi"})
		}
		absensi.IsLate = telat
	}

	if err := h.repo.Create(&absensi); err != nil {
		// Dua request bersamaan bisa lolos cek di atas, unique index yang
		// jadi penentu akhir.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Anda sudah absen " + labelTipe(req.Tipe) + " hari ini"})
		}
		log.Printf("[ABSENSI] Gagal menyimpan absensi user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan absensi"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Absen " + labelTipe(req.Tipe) + " berhasil",
		"data":    absensiResponse(&absensi),
	})
}

// GetRiwayat mengembalikan absensi milik user login untuk satu bulan.
func (h *AbsensiHandler) GetRiwayat(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	bulan, tahun, err := parseBulanTahun(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	list, err := h.repo.GetByUserAndMonth(userID, bulan, tahun)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil riwayat absensi"})
	}

	return c.JSON(fiber.Map{"message": "Berhasil mengambil riwayat absensi", "data": daftarAbsensiResponse(list)})
}

// GetTodayStatus merangkum absen hari ini: catatan masuk dan pulang paling
// awal plus jam pulang yang berlaku (Jumat punya jadwal sendiri).
func (h *AbsensiHandler) GetTodayStatus(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))
	now := time.Now().In(config.Timezone())
	tanggal := now.Format("2006-01-02")

	var masuk, pulang fiber.Map
	if rec, err := h.repo.GetEarliestOnDate(userID, tanggal, model.AttendanceTypeIn); err == nil {
		masuk = absensiResponse(rec)
	}
	if rec, err := h.repo.GetEarliestOnDate(userID, tanggal, model.AttendanceTypeOut); err == nil {
		pulang = absensiResponse(rec)
	}

	jamPulang := ""
	pengaturan, degraded, err := h.settingsRepo.Get()
	if err == nil {
		jamPulang = pengaturan.ClockOutFor(now.Weekday())
	} else {
		log.Printf("[ABSENSI] Gagal memuat pengaturan untuk status harian: %v", err)
		degraded = true
	}

	return c.JSON(fiber.Map{
		"message":  "Status absensi hari ini",
		"degraded": degraded,
		"data": fiber.Map{
			"tanggal":   tanggal,
			"masuk":     masuk,
			"pulang":    pulang,
			"jamPulang": jamPulang,
		},
	})
}

// GetByDate (admin) mengembalikan seluruh absensi pada satu tanggal.
func (h *AbsensiHandler) GetByDate(c *fiber.Ctx) error {
	now := time.Now().In(config.Timezone())
	tanggal := c.Query("tanggal", now.Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", tanggal); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format tanggal harus YYYY-MM-DD"})
	}

	list, err := h.repo.GetByDate(tanggal)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data absensi"})
	}

	return c.JSON(fiber.Map{"message": "Absensi tanggal " + tanggal, "data": daftarAbsensiResponse(list)})
}

// GetByUser (admin) mengembalikan absensi user tertentu untuk satu bulan.
func (h *AbsensiHandler) GetByUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
	}

	bulan, tahun, err := parseBulanTahun(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	list, err := h.repo.GetByUserAndMonth(uint(id), bulan, tahun)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data absensi"})
	}

	return c.JSON(fiber.Map{"message": "Berhasil mengambil data absensi", "data": daftarAbsensiResponse(list)})
}

func labelTipe(tipe string) string {
	if tipe == model.AttendanceTypeOut {
		return "pulang"
	}
	return "masuk"
}

// absensiResponse menyusun payload absensi apa adanya plus field hitungan
// server (id, isLate, status).
func absensiResponse(a *model.Attendance) fiber.Map {
	return fiber.Map{
		"id":        a.ID,
		"userId":    a.UserID,
		"userName":  a.UserName,
		"division":  a.Division,
		"timestamp": a.Timestamp.Format(time.RFC3339),
		"type":      a.Tipe,
		"photo":     a.Foto,
		"location":  a.LocationRef(),
		"isLate":    a.IsLate,
		"status":    a.Status,
	}
}

func daftarAbsensiResponse(list []model.Attendance) []fiber.Map {
	out := make([]fiber.Map, 0, len(list))
	for i := range list {
		out = append(out, absensiResponse(&list[i]))
	}
	return out
}

// parseBulanTahun membaca query bulan/tahun (default bulan berjalan) dan
// menormalkannya jadi "01".."12" dan empat digit tahun.
func parseBulanTahun(c *fiber.Ctx) (string, string, error) {
	now := time.Now().In(config.Timezone())

	bulanInt, err := strconv.Atoi(c.Query("bulan", now.Format("01")))
	if err != nil || bulanInt < 1 || bulanInt > 12 {
		return "", "", errors.New("Parameter bulan tidak valid")
	}
	tahunInt, err := strconv.Atoi(c.Query("tahun", now.Format("2006")))
	if err != nil || tahunInt < 2000 || tahunInt > 2100 {
		return "", "", errors.New("Parameter tahun tidak valid")
	}

	return fmt.Sprintf("%02d", bulanInt), fmt.Sprintf("%04d", tahunInt), nil
}
