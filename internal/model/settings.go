package model

import "time"

// SettingsID adalah primary key tetap: tabel settings selalu satu baris.
const SettingsID = 1

// Settings adalah konfigurasi kantor (singleton).
// Baris dibuat otomatis dengan nilai default saat pertama kali dibaca dan
// ditimpa utuh saat admin menyimpan. Tidak ada riwayat versi.
type Settings struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	OfficeLatitude   float64   `json:"officeLatitude"`
	OfficeLongitude  float64   `json:"officeLongitude"`
	MaxDistanceMeter float64   `json:"maxDistanceMeters" gorm:"column:max_distance_meter"`
	LateThreshold    string    `json:"lateThreshold"`   // HH:mm
	ClockOutRegular  string    `json:"clockOutRegular"` // Senin-Kamis, HH:mm
	ClockOutFriday   string    `json:"clockOutFriday"`  // Jumat, HH:mm
	UpdatedAt        time.Time `json:"updatedAt"`
}

// DefaultSettings dipakai saat baris settings belum ada.
func DefaultSettings() Settings {
	return Settings{
		ID:               SettingsID,
		OfficeLatitude:   -5.1597,
		OfficeLongitude:  119.4098,
		MaxDistanceMeter: 500,
		LateThreshold:    "07:40",
		ClockOutRegular:  "16:00",
		ClockOutFriday:   "16:30",
	}
}

// ClockOutFor mengembalikan jam pulang yang berlaku untuk hari tertentu
// (Jumat memakai jadwal sendiri, hari lain memakai jadwal reguler).
func (s *Settings) ClockOutFor(day time.Weekday) string {
	if day == time.Friday {
		return s.ClockOutFriday
	}
	return s.ClockOutRegular
}
