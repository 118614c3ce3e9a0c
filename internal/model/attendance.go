package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	AttendanceTypeIn  = "in"
	AttendanceTypeOut = "out"
)

const (
	AttendanceStatusValid   = "valid"
	AttendanceStatusInvalid = "invalid"
	AttendanceStatusPending = "pending"
)

// Location adalah titik GPS yang dikirim client saat absen.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// Attendance adalah satu event absen masuk (in) atau pulang (out).
//
// UserName dan Division adalah snapshot saat absen, bukan join ke tabel users;
// kalau profil berubah belakangan, catatan lama tetap memakai nama lama.
// IsLate dan Status dihitung sekali saat submit dan tidak pernah dihitung
// ulang walaupun pengaturan kantor berubah.
type Attendance struct {
	gorm.Model
	UserID    uint      `json:"userId" gorm:"index;uniqueIndex:uniq_absensi_harian"`
	UserName  string    `json:"userName"`
	Division  string    `json:"division"`
	Timestamp time.Time `json:"timestamp"`
	Tipe      string    `json:"type" gorm:"column:tipe;uniqueIndex:uniq_absensi_harian"`
	Foto      string    `json:"photo" gorm:"column:foto"`

	// Koordinat nullable satu paket: terisi semua, atau kosong semua
	// (GPS tidak tersedia -> Status = pending).
	Latitude  *float64 `json:"-"`
	Longitude *float64 `json:"-"`
	Accuracy  *float64 `json:"-"`

	IsLate bool   `json:"isLate"`
	Status string `json:"status"`

	// Kolom turunan untuk query kalender, semuanya dalam zona waktu kantor.
	Tanggal string `json:"tanggal" gorm:"index;uniqueIndex:uniq_absensi_harian"` // YYYY-MM-DD
	Bulan   string `json:"bulan"`                                                // MM
	Tahun   string `json:"tahun"`                                                // YYYY
}

// LocationRef mengembalikan koordinat sebagai payload, nil jika absen tanpa GPS.
func (a *Attendance) LocationRef() *Location {
	if a.Latitude == nil || a.Longitude == nil {
		return nil
	}
	loc := Location{Latitude: *a.Latitude, Longitude: *a.Longitude}
	if a.Accuracy != nil {
		loc.Accuracy = *a.Accuracy
	}
	return &loc
}

// AttendanceArchive adalah salinan baris absensi lama yang dipindahkan oleh
// cmd/reaper. ID asli dipertahankan. Tabel ini tidak pernah dibaca API.
type AttendanceArchive struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId"`
	UserName   string    `json:"userName"`
	Division   string    `json:"division"`
	Timestamp  time.Time `json:"timestamp"`
	Tipe       string    `json:"type" gorm:"column:tipe"`
	Foto       string    `json:"photo" gorm:"column:foto"`
	Latitude   *float64  `json:"-"`
	Longitude  *float64  `json:"-"`
	Accuracy   *float64  `json:"-"`
	IsLate     bool      `json:"isLate"`
	Status     string    `json:"status"`
	Tanggal    string    `json:"tanggal" gorm:"index"`
	Bulan      string    `json:"bulan"`
	Tahun      string    `json:"tahun"`
	CreatedAt  time.Time `json:"createdAt"`
	ArchivedAt time.Time `json:"archivedAt"`
}

// ToArchive menyalin baris absensi ke bentuk arsip dengan ID asli.
func (a *Attendance) ToArchive(at time.Time) AttendanceArchive {
	return AttendanceArchive{
		ID:         a.ID,
		UserID:     a.UserID,
		UserName:   a.UserName,
		Division:   a.Division,
		Timestamp:  a.Timestamp,
		Tipe:       a.Tipe,
		Foto:       a.Foto,
		Latitude:   a.Latitude,
		Longitude:  a.Longitude,
		Accuracy:   a.Accuracy,
		IsLate:     a.IsLate,
		Status:     a.Status,
		Tanggal:    a.Tanggal,
		Bulan:      a.Bulan,
		Tahun:      a.Tahun,
		CreatedAt:  a.CreatedAt,
		ArchivedAt: at,
	}
}
