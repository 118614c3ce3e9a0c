package handler

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"presensi-magang-backend/internal/mailer"
	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPerizinan(t *testing.T) (*fiber.App, *gorm.DB, *model.User) {
	t.Helper()

	app, db := setupTest(t)

	// SMTP tidak dikonfigurasi di test, mailer berjalan nonaktif.
	h := NewPerizinanHandler(repository.NewLeaveRepository(db), repository.NewUserRepository(db), mailer.NewFromEnv())

	user := buatUser(t, db, "Budi Santoso", "budi", model.RoleIntern)
	app.Post("/perizinan", asUser(user, h.AjukanIzin))
	app.Get("/perizinan/riwayat", asUser(user, h.GetRiwayat))
	app.Put("/perizinan/:id", asUser(user, h.EditIzin))
	app.Delete("/perizinan/:id", asUser(user, h.DeleteIzin))

	admin := buatUser(t, db, "Pembimbing Magang", "pembimbing", model.RoleAdmin)
	app.Get("/admin/perizinan", asUser(admin, h.GetAll))
	app.Put("/admin/perizinan/:id/approve", asUser(admin, h.Approve))
	app.Put("/admin/perizinan/:id/reject", asUser(admin, h.Reject))

	return app, db, user
}

// buatIzin menanam satu pengajuan langsung lewat gorm dengan status tertentu.
func buatIzin(t *testing.T, db *gorm.DB, user *model.User, status string) *model.Leave {
	t.Helper()

	cuti := &model.Leave{
		UserID:      user.ID,
		UserName:    user.Name,
		Division:    user.Division,
		Tipe:        model.LeaveTypeIzin,
		StartDate:   "2026-03-05",
		EndDate:     "2026-03-06",
		Reason:      "Urusan keluarga",
		Status:      status,
		RequestDate: "2026-03-01",
	}
	require.NoError(t, db.Create(cuti).Error)
	return cuti
}

func TestAjukanIzin(t *testing.T) {
	app, db, user := setupPerizinan(t)

	t.Run("status awal selalu pending", func(t *testing.T) {
		resp, err := app.Test(jsonReq("POST", "/perizinan", PengajuanIzinRequest{
			Tipe:      model.LeaveTypeSakit,
			StartDate: "2026-03-09",
			EndDate:   "2026-03-10",
			Reason:    "Demam tinggi",
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var tersimpan model.Leave
		require.NoError(t, db.Where("user_id = ? AND start_date = ?", user.ID, "2026-03-09").First(&tersimpan).Error)
		assert.Equal(t, model.LeaveStatusPending, tersimpan.Status)
		assert.NotEmpty(t, tersimpan.RequestDate) // diisi server, bukan client
		assert.Equal(t, "Budi Santoso", tersimpan.UserName)
		assert.Equal(t, "Pengolahan Data", tersimpan.Division)
	})

	t.Run("alasan wajib diisi", func(t *testing.T) {
		resp, err := app.Test(jsonReq("POST", "/perizinan", PengajuanIzinRequest{
			Tipe:      model.LeaveTypeIzin,
			StartDate: "2026-03-11",
			EndDate:   "2026-03-11",
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Field Reason wajib diisi", decodeBody(t, resp)["error"])
	})

	t.Run("format tanggal salah", func(t *testing.T) {
		resp, err := app.Test(jsonReq("POST", "/perizinan", PengajuanIzinRequest{
			Tipe:      model.LeaveTypeIzin,
			StartDate: "11-03-2026",
			EndDate:   "2026-03-11",
			Reason:    "Urusan keluarga",
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("tipe di luar sakit dan izin", func(t *testing.T) {
		resp, err := app.Test(jsonReq("POST", "/perizinan", PengajuanIzinRequest{
			Tipe:      "cuti-besar",
			StartDate: "2026-03-11",
			EndDate:   "2026-03-11",
			Reason:    "Urusan keluarga",
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Field Tipe harus salah satu dari: sakit izin", decodeBody(t, resp)["error"])
	})
}

func TestEditIzin(t *testing.T) {
	app, db, user := setupPerizinan(t)

	t.Run("pending masih bisa diubah", func(t *testing.T) {
		cuti := buatIzin(t, db, user, model.LeaveStatusPending)

		resp, err := app.Test(jsonReq("PUT", fmt.Sprintf("/perizinan/%d", cuti.ID), PengajuanIzinRequest{
			Tipe:      model.LeaveTypeSakit,
			StartDate: "2026-03-05",
			EndDate:   "2026-03-07",
			Reason:    "Demam, lampiran menyusul",
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var tersimpan model.Leave
		require.NoError(t, db.First(&tersimpan, cuti.ID).Error)
		assert.Equal(t, model.LeaveTypeSakit, tersimpan.Tipe)
		assert.Equal(t, "2026-03-07", tersimpan.EndDate)
		assert.Equal(t, model.LeaveStatusPending, tersimpan.Status)
	})

	t.Run("sudah diputus tidak bisa diubah", func(t *testing.T) {
		cuti := buatIzin(t, db, user, model.LeaveStatusApproved)

		resp, err := app.Test(jsonReq("PUT", fmt.Sprintf("/perizinan/%d", cuti.ID), PengajuanIzinRequest{
			Tipe:      model.LeaveTypeIzin,
			StartDate: "2026-03-05",
			EndDate:   "2026-03-20",
			Reason:    "Coba perpanjang diam-diam",
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusPreconditionFailed, resp.StatusCode)

		// tidak ada satu field pun yang berubah
		var tersimpan model.Leave
		require.NoError(t, db.First(&tersimpan, cuti.ID).Error)
		assert.Equal(t, "2026-03-06", tersimpan.EndDate)
		assert.Equal(t, "Urusan keluarga", tersimpan.Reason)
		assert.Equal(t, model.LeaveStatusApproved, tersimpan.Status)
	})

	t.Run("milik orang lain ditolak", func(t *testing.T) {
		lain := buatUser(t, db, "Sari Dewi", "sari", model.RoleIntern)
		cuti := buatIzin(t, db, lain, model.LeaveStatusPending)

		resp, err := app.Test(jsonReq("PUT", fmt.Sprintf("/perizinan/%d", cuti.ID), PengajuanIzinRequest{
			Tipe:      model.LeaveTypeIzin,
			StartDate: "2026-03-05",
			EndDate:   "2026-03-06",
			Reason:    "Bukan punya saya",
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("pengajuan tidak ditemukan", func(t *testing.T) {
		resp, err := app.Test(jsonReq("PUT", "/perizinan/99999", PengajuanIzinRequest{
			Tipe:      model.LeaveTypeIzin,
			StartDate: "2026-03-05",
			EndDate:   "2026-03-06",
			Reason:    "Tidak ada",
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteIzin(t *testing.T) {
	app, db, user := setupPerizinan(t)

	t.Run("pending bisa dibatalkan", func(t *testing.T) {
		cuti := buatIzin(t, db, user, model.LeaveStatusPending)

		resp, err := app.Test(httptest.NewRequest("DELETE", fmt.Sprintf("/perizinan/%d", cuti.ID), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&model.Leave{}).Where("id = ?", cuti.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("sudah diputus tidak bisa dibatalkan", func(t *testing.T) {
		cuti := buatIzin(t, db, user, model.LeaveStatusRejected)

		resp, err := app.Test(httptest.NewRequest("DELETE", fmt.Sprintf("/perizinan/%d", cuti.ID), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusPreconditionFailed, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&model.Leave{}).Where("id = ?", cuti.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestApprovePengajuan(t *testing.T) {
	app, db, user := setupPerizinan(t)

	t.Run("pending menjadi approved", func(t *testing.T) {
		cuti := buatIzin(t, db, user, model.LeaveStatusPending)

		resp, err := app.Test(httptest.NewRequest("PUT", fmt.Sprintf("/admin/perizinan/%d/approve", cuti.ID), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var tersimpan model.Leave
		require.NoError(t, db.First(&tersimpan, cuti.ID).Error)
		assert.Equal(t, model.LeaveStatusApproved, tersimpan.Status)
	})

	t.Run("keputusan final tidak bisa diulang", func(t *testing.T) {
		cuti := buatIzin(t, db, user, model.LeaveStatusApproved)

		resp, err := app.Test(httptest.NewRequest("PUT", fmt.Sprintf("/admin/perizinan/%d/approve", cuti.ID), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Pengajuan sudah diproses", decodeBody(t, resp)["error"])
	})

	t.Run("yang sudah ditolak tidak bisa disetujui", func(t *testing.T) {
		cuti := buatIzin(t, db, user, model.LeaveStatusRejected)

		resp, err := app.Test(httptest.NewRequest("PUT", fmt.Sprintf("/admin/perizinan/%d/approve", cuti.ID), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

		var tersimpan model.Leave
		require.NoError(t, db.First(&tersimpan, cuti.ID).Error)
		assert.Equal(t, model.LeaveStatusRejected, tersimpan.Status)
	})

	t.Run("id bukan angka", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("PUT", "/admin/perizinan/abc/approve", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestRejectPengajuan(t *testing.T) {
	app, db, user := setupPerizinan(t)

	t.Run("tanpa alasan tidak ada perubahan", func(t *testing.T) {
		cuti := buatIzin(t, db, user, model.LeaveStatusPending)

		resp, err := app.Test(jsonReq("PUT", fmt.Sprintf("/admin/perizinan/%d/reject", cuti.ID), RejectRequest{}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Alasan penolakan wajib diisi", decodeBody(t, resp)["error"])

		var tersimpan model.Leave
		require.NoError(t, db.First(&tersimpan, cuti.ID).Error)
		assert.Equal(t, model.LeaveStatusPending, tersimpan.Status)
	})

	t.Run("alasan hanya spasi juga ditolak", func(t *testing.T) {
		cuti := buatIzin(t, db, user, model.LeaveStatusPending)

		resp, err := app.Test(jsonReq("PUT", fmt.Sprintf("/admin/perizinan/%d/reject", cuti.ID), RejectRequest{Reason: "   "}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("dengan alasan menjadi rejected", func(t *testing.T) {
		cuti := buatIzin(t, db, user, model.LeaveStatusPending)

		resp, err := app.Test(jsonReq("PUT", fmt.Sprintf("/admin/perizinan/%d/reject", cuti.ID),
			RejectRequest{Reason: "Tanggal bentrok dengan jadwal presentasi"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var tersimpan model.Leave
		require.NoError(t, db.First(&tersimpan, cuti.ID).Error)
		assert.Equal(t, model.LeaveStatusRejected, tersimpan.Status)
		assert.Equal(t, "Tanggal bentrok dengan jadwal presentasi", tersimpan.RejectionReason)
	})

	t.Run("yang sudah diputus tidak bisa ditolak lagi", func(t *testing.T) {
		cuti := buatIzin(t, db, user, model.LeaveStatusApproved)

		resp, err := app.Test(jsonReq("PUT", fmt.Sprintf("/admin/perizinan/%d/reject", cuti.ID),
			RejectRequest{Reason: "Terlanjur"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})
}

func TestGetAllPerizinan(t *testing.T) {
	app, db, user := setupPerizinan(t)

	buatIzin(t, db, user, model.LeaveStatusPending)
	buatIzin(t, db, user, model.LeaveStatusApproved)
	buatIzin(t, db, user, model.LeaveStatusRejected)

	t.Run("tanpa filter semua ikut", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/admin/perizinan", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, decodeBody(t, resp)["data"].([]any), 3)
	})

	t.Run("filter pending", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/admin/perizinan?status=pending", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		data := decodeBody(t, resp)["data"].([]any)
		require.Len(t, data, 1)
		assert.Equal(t, model.LeaveStatusPending, data[0].(map[string]any)["status"])
	})

	t.Run("filter tidak dikenal", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/admin/perizinan?status=diproses", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestRiwayatPerizinanMilikSendiri(t *testing.T) {
	app, db, user := setupPerizinan(t)

	lain := buatUser(t, db, "Sari Dewi", "sari", model.RoleIntern)
	buatIzin(t, db, user, model.LeaveStatusPending)
	buatIzin(t, db, lain, model.LeaveStatusPending)

	resp, err := app.Test(httptest.NewRequest("GET", "/perizinan/riwayat", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, float64(user.ID), data[0].(map[string]any)["userId"])
}
