package handler

import (
	"net/http/httptest"
	"testing"

	"presensi-magang-backend/internal/model"
	"presensi-magang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSettings(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	app, db := setupTest(t)
	h := NewSettingsHandler(repository.NewTwoTierSettings(repository.NewSettingsRepository(db)))

	intern := buatUser(t, db, "Budi Santoso", "budi", model.RoleIntern)
	app.Get("/settings", asUser(intern, h.Get))

	admin := buatUser(t, db, "Pembimbing Magang", "pembimbing", model.RoleAdmin)
	app.Put("/admin/settings", asUser(admin, h.Update))

	return app, db
}

func payloadSettings() UpdateSettingsRequest {
	return UpdateSettingsRequest{
		OfficeLatitude:   -5.1477,
		OfficeLongitude:  119.4327,
		MaxDistanceMeter: 300,
		LateThreshold:    "08:00",
		ClockOutRegular:  "16:30",
		ClockOutFriday:   "17:00",
	}
}

func TestGetSettings(t *testing.T) {
	app, db := setupSettings(t)

	t.Run("baris dibuat otomatis dengan default", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/settings", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, false, body["degraded"])

		data := body["data"].(map[string]any)
		assert.Equal(t, -5.1597, data["officeLatitude"])
		assert.Equal(t, float64(500), data["maxDistanceMeters"])
		assert.Equal(t, "07:40", data["lateThreshold"])
		assert.Equal(t, "16:00", data["clockOutRegular"])
		assert.Equal(t, "16:30", data["clockOutFriday"])

		var count int64
		require.NoError(t, db.Model(&model.Settings{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("baca berulang tidak menambah baris", func(t *testing.T) {
		_, err := app.Test(httptest.NewRequest("GET", "/settings", nil))
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&model.Settings{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestUpdateSettings(t *testing.T) {
	app, db := setupSettings(t)

	t.Run("pengaturan ditimpa utuh", func(t *testing.T) {
		resp, err := app.Test(jsonReq("PUT", "/admin/settings", payloadSettings()))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var tersimpan model.Settings
		require.NoError(t, db.First(&tersimpan, model.SettingsID).Error)
		assert.Equal(t, -5.1477, tersimpan.OfficeLatitude)
		assert.Equal(t, float64(300), tersimpan.MaxDistanceMeter)
		assert.Equal(t, "08:00", tersimpan.LateThreshold)
		assert.Equal(t, "17:00", tersimpan.ClockOutFriday)
	})

	t.Run("hasil simpan terbaca kembali", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/settings", nil))
		require.NoError(t, err)

		data := decodeBody(t, resp)["data"].(map[string]any)
		assert.Equal(t, "08:00", data["lateThreshold"])
	})

	t.Run("radius nol ditolak", func(t *testing.T) {
		payload := payloadSettings()
		payload.MaxDistanceMeter = 0

		resp, err := app.Test(jsonReq("PUT", "/admin/settings", payload))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("latitude di luar rentang", func(t *testing.T) {
		payload := payloadSettings()
		payload.OfficeLatitude = 95

		resp, err := app.Test(jsonReq("PUT", "/admin/settings", payload))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Field OfficeLatitude di luar rentang yang diizinkan", decodeBody(t, resp)["error"])
	})

	t.Run("jam bukan format HH:mm", func(t *testing.T) {
		payload := payloadSettings()
		payload.LateThreshold = "7 pagi"

		resp, err := app.Test(jsonReq("PUT", "/admin/settings", payload))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

// Database mati setelah pembacaan sukses: baca tersaji dari salinan dengan
// penanda degraded, tulis tetap gagal apa adanya.
func TestSettingsFallback(t *testing.T) {
	app, db := setupSettings(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/settings", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, false, decodeBody(t, resp)["degraded"])

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp, err = app.Test(httptest.NewRequest("GET", "/settings", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["degraded"])
	assert.Equal(t, "07:40", body["data"].(map[string]any)["lateThreshold"])

	resp, err = app.Test(jsonReq("PUT", "/admin/settings", payloadSettings()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
