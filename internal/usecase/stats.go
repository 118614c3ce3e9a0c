package usecase

import (
	"time"

	"presensi-magang-backend/internal/model"
)

// DashboardStats adalah ringkasan kehadiran hari ini untuk dashboard admin.
type DashboardStats struct {
	Date         string `json:"date"`
	PresentToday int    `json:"presentToday"`
	LateToday    int    `json:"lateToday"`
	OnLeaveToday int    `json:"onLeaveToday"`
	AlpaToday    int    `json:"alpaToday"`
	// ActiveNow = absen masuk dikurangi absen pulang hari ini. Proxy kasar:
	// bisa negatif kalau ada data ganda dan dilaporkan apa adanya.
	ActiveNow int `json:"activeNow"`
}

// BuildDashboardStats merangkai statistik hari ini.
// presentIDs = user unik (role apa pun) yang punya record absensi hari ini;
// leaveIDs = user unik dengan cuti approved yang mencakup hari ini;
// internIDs = seluruh user role intern. AlpaToday menghitung intern yang
// tidak hadir dan tidak sedang cuti.
func BuildDashboardStats(date string, internIDs, presentIDs, leaveIDs []uint, lateCount, inCount, outCount int64) DashboardStats {
	present := make(map[uint]bool, len(presentIDs))
	for _, id := range presentIDs {
		present[id] = true
	}
	onLeave := make(map[uint]bool, len(leaveIDs))
	for _, id := range leaveIDs {
		onLeave[id] = true
	}

	alpa := 0
	for _, id := range internIDs {
		if !present[id] && !onLeave[id] {
			alpa++
		}
	}

	return DashboardStats{
		Date:         date,
		PresentToday: len(presentIDs),
		LateToday:    int(lateCount),
		OnLeaveToday: len(leaveIDs),
		AlpaToday:    alpa,
		ActiveNow:    int(inCount - outCount),
	}
}

// WeeklyDay adalah agregat satu hari kerja untuk grafik mingguan.
type WeeklyDay struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Present int    `json:"present"` // user unik absen masuk tepat waktu
	Late    int    `json:"late"`    // user unik absen masuk terlambat
	OnLeave int    `json:"onLeave"` // user unik cuti approved
}

// BuildWeeklyStats menyusun agregat Senin sampai Jumat pekan berjalan dan
// berhenti di hari ini; hari pekan yang belum lewat tidak dimunculkan.
// records diharapkan berisi absensi dalam rentang pekan tersebut.
func BuildWeeklyStats(today time.Time, loc *time.Location, records []model.Attendance, leaves []model.Leave) []WeeklyDay {
	now := today.In(loc)
	offset := (int(now.Weekday()) + 6) % 7 // mundur ke Senin pekan ini
	senin := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -offset)

	days := []WeeklyDay{}
	for i := 0; i < 5; i++ {
		date := senin.AddDate(0, 0, i)
		if date.After(now) {
			break
		}
		dateStr := date.Format("2006-01-02")

		tepat := map[uint]bool{}
		telat := map[uint]bool{}
		for j := range records {
			rec := &records[j]
			if rec.Tanggal != dateStr || rec.Tipe != model.AttendanceTypeIn {
				continue
			}
			if rec.IsLate {
				telat[rec.UserID] = true
			} else {
				tepat[rec.UserID] = true
			}
		}

		cuti := map[uint]bool{}
		for j := range leaves {
			lv := &leaves[j]
			if lv.Status == model.LeaveStatusApproved && lv.CoversDate(dateStr) {
				cuti[lv.UserID] = true
			}
		}

		days = append(days, WeeklyDay{
			Date:    dateStr,
			Weekday: hariIndonesia(date.Weekday()),
			Present: len(tepat),
			Late:    len(telat),
			OnLeave: len(cuti),
		})
	}
	return days
}

func hariIndonesia(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "Senin"
	case time.Tuesday:
		return "Selasa"
	case time.Wednesday:
		return "Rabu"
	case time.Thursday:
		return "Kamis"
	case time.Friday:
		return "Jumat"
	case time.Saturday:
		return "Sabtu"
	default:
		return "Minggu"
	}
}
