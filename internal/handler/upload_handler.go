package handler

import (
	"os"
	"path/filepath"
	"strings"

	"presensi-magang-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Client mengunggah foto/lampiran dulu lewat endpoint ini, lalu mengirim path
// hasilnya sebagai referensi di payload absen atau pengajuan izin.
type UploadHandler struct {
	// Akar folder penyimpanan (UPLOADS_DIR), sama dengan yang dibaca reaper.
	baseDir string
}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{baseDir: config.GetEnv("UPLOADS_DIR", "./uploads")}
}

const maxUploadSize = 5 * 1024 * 1024

var fotoExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

var lampiranExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".pdf": true}

// UploadFotoAbsensi menerima multipart field "foto" untuk bukti kehadiran.
func (h *UploadHandler) UploadFotoAbsensi(c *fiber.Ctx) error {
	return h.simpan(c, "foto", "absensi", fotoExt)
}

// UploadLampiranIzin menerima multipart field "lampiran" untuk bukti
// pengajuan izin/sakit (surat dokter dsb).
func (h *UploadHandler) UploadLampiranIzin(c *fiber.Ctx) error {
	return h.simpan(c, "lampiran", "perizinan", lampiranExt)
}

func (h *UploadHandler) simpan(c *fiber.Ctx, field, dir string, allowed map[string]bool) error {
	file, err := c.FormFile(field)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File " + field + " wajib diunggah"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Tipe file tidak diizinkan"})
	}
	if file.Size > maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Ukuran file maksimal 5 MB"})
	}

	uploadDir := filepath.Join(h.baseDir, dir)
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		os.MkdirAll(uploadDir, 0755)
	}

	// Nama file acak supaya tidak saling timpa dan tidak bocor nama asli.
	nama := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(uploadDir, nama)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan file"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "File berhasil diunggah",
		"data":    fiber.Map{"path": "/uploads/" + dir + "/" + nama},
	})
}
