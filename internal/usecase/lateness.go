package usecase

import (
	"fmt"
	"time"
)

// ParseClock membaca string jam format 24 jam "HH:mm".
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("format jam %q bukan HH:mm", s)
	}
	return t.Hour(), t.Minute(), nil
}

// IsLate menentukan keterlambatan absen masuk terhadap ambang "HH:mm":
// terlambat jika jam > ambang, atau jam sama dan menit > ambang.
// Tepat di waktu ambang TIDAK terlambat. Hanya dipakai untuk absen masuk;
// absen pulang tidak pernah terlambat. Timestamp harus sudah berada di zona
// waktu kantor.
func IsLate(t time.Time, threshold string) (bool, error) {
	th, tm, err := ParseClock(threshold)
	if err != nil {
		return false, err
	}
	return t.Hour() > th || (t.Hour() == th && t.Minute() > tm), nil
}
