package handler

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"presensi-magang-backend/config"
	"presensi-magang-backend/internal/mailer"
	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type PerizinanHandler struct {
	repo     repository.LeaveRepository
	userRepo repository.UserRepository
	mail     *mailer.Mailer
}

func NewPerizinanHandler(repo repository.LeaveRepository, userRepo repository.UserRepository, mail *mailer.Mailer) *PerizinanHandler {
	return &PerizinanHandler{repo: repo, userRepo: userRepo, mail: mail}
}

type PengajuanIzinRequest struct {
	Tipe       string `json:"type" validate:"required,oneof=sakit izin"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Reason     string `json:"reason" validate:"required"`
	Attachment string `json:"attachment"`
}

// AjukanIzin membuat pengajuan baru. Status selalu berawal pending dan
// requestDate diisi server. Rentang tanggal inklusif di kedua ujung.
func (h *PerizinanHandler) AjukanIzin(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	var req PengajuanIzinRequest
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

	cuti := model.Leave{
		UserID:      userID,
		UserName:    user.Name,
		Division:    user.Division,
		Tipe:        req.Tipe,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Reason:      req.Reason,
		Attachment:  req.Attachment,
		Status:      model.LeaveStatusPending,
		RequestDate: time.Now().In(config.Timezone()).Format("2006-01-02"),
	}

	if err := h.repo.Create(&cuti); err != nil {
		log.Printf("[PERIZINAN] Gagal menyimpan pengajuan user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan pengajuan"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Pengajuan berhasil dikirim", "data": cuti})
}

// GetRiwayat mengembalikan seluruh pengajuan milik user login.
func (h *PerizinanHandler) GetRiwayat(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	list, err := h.repo.GetByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil riwayat perizinan"})
	}

	return c.JSON(fiber.Map{"message": "Berhasil mengambil riwayat perizinan", "data": list})
}

// EditIzin hanya boleh selama status masih pending. Pengajuan yang sudah
// diputus bersifat final bagi pemiliknya.
func (h *PerizinanHandler) EditIzin(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID pengajuan tidak valid"})
	}

	cuti, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pengajuan tidak ditemukan"})
	}
	if cuti.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Pengajuan ini bukan milik Anda"})
	}
	if !cuti.Editable() {
		return c.Status(fiber.StatusPreconditionFailed).JSON(fiber.Map{"error": "Pengajuan sudah diproses dan tidak dapat diubah"})
	}

	var req PengajuanIzinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": pesanValidasi(err)})
	}

	cuti.Tipe = req.Tipe
	cuti.StartDate = req.StartDate
	cuti.EndDate = req.EndDate
	cuti.Reason = req.Reason
	cuti.Attachment = req.Attachment

	if err := h.repo.Update(cuti); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memperbarui pengajuan"})
	}

	return c.JSON(fiber.Map{"message": "Pengajuan berhasil diperbarui", "data": cuti})
}

// DeleteIzin menarik pengajuan yang masih pending.
func (h *PerizinanHandler) DeleteIzin(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID pengajuan tidak valid"})
	}

	cuti, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pengajuan tidak ditemukan"})
	}
	if cuti.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Pengajuan ini bukan milik Anda"})
	}
	if !cuti.Editable() {
		return c.Status(fiber.StatusPreconditionFailed).JSON(fiber.Map{"error": "Pengajuan sudah diproses dan tidak dapat dibatalkan"})
	}

	if err := h.repo.Delete(cuti.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membatalkan pengajuan"})
	}

	return c.JSON(fiber.Map{"message": "Pengajuan berhasil dibatalkan"})
}

// GetAll (admin) mengembalikan seluruh pengajuan, bisa difilter ?status=pending.
func (h *PerizinanHandler) GetAll(c *fiber.Ctx) error {
	status := c.Query("status")
	switch status {
	case "", model.LeaveStatusPending, model.LeaveStatusApproved, model.LeaveStatusRejected:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status filter tidak dikenal"})
	}

	list, err := h.repo.GetAll(status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data perizinan"})
	}

	return c.JSON(fiber.Map{"message": "Berhasil mengambil data perizinan", "data": list})
}

// Approve (admin) memutus pengajuan pending menjadi approved. Keputusan
// bersifat final, pengajuan yang sudah diputus tidak bisa diputus ulang.
func (h *PerizinanHandler) Approve(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID pengajuan tidak valid"})
	}

	cuti, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pengajuan tidak ditemukan"})
	}
	if cuti.Status != model.LeaveStatusPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Pengajuan sudah diproses"})
	}

	cuti.Status = model.LeaveStatusApproved

	if err := h.repo.Update(cuti); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memproses persetujuan"})
	}

	// Kirim email di background agar respon tetap cepat.
	go h.kirimNotifikasi(cuti)

	return c.JSON(fiber.Map{"message": "Pengajuan disetujui", "data": cuti})
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

// Reject (admin) menolak pengajuan pending. Alasan wajib ada sebelum status
// berubah; tanpa alasan tidak ada perubahan apa pun yang tersimpan.
func (h *PerizinanHandler) Reject(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID pengajuan tidak valid"})
	}

	var req RejectRequest
	_ = c.BodyParser(&req) // body kosong dianggap tanpa alasan
	alasan := strings.TrimSpace(req.Reason)
	if alasan == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Alasan penolakan wajib diisi"})
	}

	cuti, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pengajuan tidak ditemukan"})
	}
	if cuti.Status != model.LeaveStatusPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Pengajuan sudah diproses"})
	}

	cuti.Status = model.LeaveStatusRejected
	cuti.RejectionReason = alasan

	if err := h.repo.Update(cuti); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memproses penolakan"})
	}

	go h.kirimNotifikasi(cuti)

	return c.JSON(fiber.Map{"message": "Pengajuan ditolak", "data": cuti})
}

// kirimNotifikasi mengabari pemohon lewat email soal keputusan pengajuannya.
// Best effort, kegagalan hanya dicatat di log.
func (h *PerizinanHandler) kirimNotifikasi(cuti *model.Leave) {
	if !h.mail.Enabled() {
		return
	}

	user, err := h.userRepo.GetByID(cuti.UserID)
	if err != nil || user.Email == "" {
		log.Printf("[MAILER] Lewati notifikasi pengajuan #%d: email pemohon tidak tersedia", cuti.ID)
		return
	}

	keputusan := "disetujui"
	if cuti.Status == model.LeaveStatusRejected {
		keputusan = "ditolak"
	}

	subjek := fmt.Sprintf("Pengajuan %s Anda %s", cuti.Tipe, keputusan)
	isi := fmt.Sprintf(
		"<p>Halo %s,</p><p>Pengajuan %s Anda untuk %s s.d. %s telah <b>%s</b>.</p>",
		user.Name, cuti.Tipe, cuti.StartDate, cuti.EndDate, keputusan,
	)
	if cuti.RejectionReason != "" {
		isi += fmt.Sprintf("<p>Alasan: %s</p>", cuti.RejectionReason)
	}

	if err := h.mail.Send(user.Email, subjek, isi); err != nil {
		log.Printf("[MAILER] Gagal mengirim notifikasi pengajuan #%d: %v", cuti.ID, err)
	}
}
