package handler

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"presensi-magang-backend/config"
	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"
	"presensi-magang-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
)

type ExportHandler struct {
	attendanceRepo repository.AttendanceRepository
	leaveRepo      repository.LeaveRepository
	userRepo       repository.UserRepository
}

func NewExportHandler(attendanceRepo repository.AttendanceRepository, leaveRepo repository.LeaveRepository, userRepo repository.UserRepository) *ExportHandler {
	return &ExportHandler{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		userRepo:       userRepo,
	}
}

// Kontrak CSV ke client: dipisah koma, field teks selalu dibungkus kutip
// ganda, angka polos. encoding/csv tidak bisa memaksa kutip sehingga baris
// dirakit manual lewat csvText.
func csvText(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func csvRow(b *strings.Builder, fields ...string) {
	b.WriteString(strings.Join(fields, ","))
	b.WriteString("\r\n")
}

// ExportAbsensiCSV (admin) mengunduh seluruh absensi satu bulan.
func (h *ExportHandler) ExportAbsensiCSV(c *fiber.Ctx) error {
	bulan, tahun, err := parseBulanTahun(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	records, err := h.attendanceRepo.GetByMonth(bulan, tahun)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data absensi"})
	}

	loc := config.Timezone()

	var b strings.Builder
	csvRow(&b,
		csvText("Tanggal"), csvText("Nama"), csvText("Divisi"), csvText("Tipe"),
		csvText("Waktu"), csvText("Status Lokasi"), csvText("Terlambat"),
		csvText("Latitude"), csvText("Longitude"), csvText("Akurasi"), csvText("Foto"),
	)

	for i := range records {
		rec := &records[i]

		lat, lon, acc := "", "", ""
		if rec.Latitude != nil {
			lat = strconv.FormatFloat(*rec.Latitude, 'f', -1, 64)
		}
		if rec.Longitude != nil {
			lon = strconv.FormatFloat(*rec.Longitude, 'f', -1, 64)
		}
		if rec.Accuracy != nil {
			acc = strconv.FormatFloat(*rec.Accuracy, 'f', -1, 64)
		}

		telat := "Tidak"
		if rec.IsLate {
			telat = "Ya"
		}

		csvRow(&b,
			csvText(rec.Tanggal),
			csvText(rec.UserName),
			csvText(rec.Division),
			csvText(rec.Tipe),
			csvText(rec.Timestamp.In(loc).Format("15:04:05")),
			csvText(rec.Status),
			csvText(telat),
			lat, lon, acc,
			csvText(rec.Foto),
		)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="absensi-%s-%s.csv"`, tahun, bulan))
	return c.SendString(b.String())
}

// ExportRekapCSV (admin) mengunduh rekap bulanan seluruh intern, satu baris
// per orang.
func (h *ExportHandler) ExportRekapCSV(c *fiber.Ctx) error {
	bulan, tahun, err := parseBulanTahun(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rekaps, err := h.kumpulkanRekap(bulan, tahun)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyusun rekap"})
	}

	var b strings.Builder
	csvRow(&b,
		csvText("Nama"), csvText("Divisi"), csvText("Hari Kerja"), csvText("Hadir"),
		csvText("Terlambat"), csvText("Cuti/Izin"), csvText("Alpha"), csvText("Persentase Kehadiran"),
	)

	for _, r := range rekaps {
		csvRow(&b,
			csvText(r.UserName),
			csvText(r.Division),
			strconv.Itoa(r.TotalWorkDays),
			strconv.Itoa(r.TotalPresent),
			strconv.Itoa(r.TotalLate),
			strconv.Itoa(r.TotalOnLeave),
			strconv.Itoa(r.TotalAlpha),
			strconv.Itoa(r.AttendancePercentage),
		)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="rekap-%s-%s.csv"`, tahun, bulan))
	return c.SendString(b.String())
}

// ExportRekapPDF (admin) membuat PDF rekap bulanan seluruh intern.
func (h *ExportHandler) ExportRekapPDF(c *fiber.Ctx) error {
	bulan, tahun, err := parseBulanTahun(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	bulanInt, _ := strconv.Atoi(bulan)

	rekaps, err := h.kumpulkanRekap(bulan, tahun)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyusun rekap"})
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Rekap Kehadiran Peserta Magang %s %s", bulanIndonesia(bulanInt), tahun), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	headers := []string{"No.", "Nama", "Divisi", "Hari Kerja", "Hadir", "Terlambat", "Cuti/Izin", "Alpha", "Persentase"}
	colWidths := []float64{12, 65, 45, 25, 20, 25, 25, 20, 28}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	for i, judul := range headers {
		pdf.CellFormat(colWidths[i], 8, judul, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for i, r := range rekaps {
		cells := []string{
			strconv.Itoa(i + 1),
			r.UserName,
			r.Division,
			strconv.Itoa(r.TotalWorkDays),
			strconv.Itoa(r.TotalPresent),
			strconv.Itoa(r.TotalLate),
			strconv.Itoa(r.TotalOnLeave),
			strconv.Itoa(r.TotalAlpha),
			fmt.Sprintf("%d%%", r.AttendancePercentage),
		}
		for j, cell := range cells {
			align := "C"
			if j == 1 || j == 2 {
				align = "L"
			}
			pdf.CellFormat(colWidths[j], 8, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat PDF"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="rekap-%s-%s.pdf"`, tahun, bulan))
	return c.Send(buf.Bytes())
}

// kumpulkanRekap membangun rekap bulanan untuk setiap intern. Jumlah peserta
// per angkatan kecil, query per orang tidak jadi masalah.
func (h *ExportHandler) kumpulkanRekap(bulan, tahun string) ([]usecase.MonthlyRecap, error) {
	interns, err := h.userRepo.GetAll("", model.RoleIntern)
	if err != nil {
		return nil, err
	}

	bulanInt, _ := strconv.Atoi(bulan)
	tahunInt, _ := strconv.Atoi(tahun)
	loc := config.Timezone()

	awal := fmt.Sprintf("%s-%s-01", tahun, bulan)
	akhir := time.Date(tahunInt, time.Month(bulanInt)+1, 0, 0, 0, 0, 0, loc).Format("2006-01-02")

	rekaps := make([]usecase.MonthlyRecap, 0, len(interns))
	for i := range interns {
		user := &interns[i]

		records, err := h.attendanceRepo.GetByUserAndMonth(user.ID, bulan, tahun)
		if err != nil {
			return nil, err
		}
		leaves, err := h.leaveRepo.GetApprovedByUserOverlappingRange(user.ID, awal, akhir)
		if err != nil {
			return nil, err
		}

		rekaps = append(rekaps, usecase.BuildMonthlyRecap(user, tahunInt, bulanInt, time.Now(), loc, records, leaves))
	}

	return rekaps, nil
}
