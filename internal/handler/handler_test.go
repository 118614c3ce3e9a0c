package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"presensi-magang-backend/config"
	"presensi-magang-backend/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTest menyiapkan app fiber dan database sqlite in-memory yang terisolasi
// per test. TranslateError disamakan dengan koneksi produksi supaya pelanggaran
// unique index tetap terbaca sebagai gorm.ErrDuplicatedKey.
func setupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Attendance{},
		&model.AttendanceArchive{},
		&model.Leave{},
		&model.Settings{},
	))

	return fiber.New(), db
}

// asUser meniru middleware.Auth: claims user disuntik ke locals sebelum
// handler dipanggil.
func asUser(user *model.User, h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", float64(user.ID))
		c.Locals("username", user.Username)
		c.Locals("role", user.Role)
		return h(c)
	}
}

func buatUser(t *testing.T, db *gorm.DB, name, username, role string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Name:     name,
		Username: username,
		Password: string(hash),
		Role:     role,
		Division: "Pengolahan Data",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedAbsensi menanam satu baris absensi langsung lewat gorm, jam dalam zona
// waktu kantor.
func seedAbsensi(t *testing.T, db *gorm.DB, userID uint, tanggal, tipe, jam string, telat bool) {
	t.Helper()

	waktu, err := time.ParseInLocation("2006-01-02 15:04", tanggal+" "+jam, config.Timezone())
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Attendance{
		UserID:    userID,
		Tipe:      tipe,
		Timestamp: waktu,
		IsLate:    telat,
		Status:    model.AttendanceStatusValid,
		Tanggal:   tanggal,
		Bulan:     waktu.Format("01"),
		Tahun:     waktu.Format("2006"),
	}).Error)
}

func jsonReq(method, target string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
