package usecase

import (
	"math"
	"sort"
	"time"

	"presensi-magang-backend/internal/model"
)

// Label status harian pada rekap bulanan.
const (
	RecapPresent = "present"
	RecapLate    = "late"
	RecapLeave   = "leave"
	RecapAlpha   = "alpha"
	RecapWeekend = "weekend"
)

// RecapDay adalah satu baris hari pada rekap bulanan.
type RecapDay struct {
	Date        string `json:"date"`   // YYYY-MM-DD
	Status      string `json:"status"` // present|late|leave|alpha|weekend
	LeaveType   string `json:"leaveType,omitempty"`
	LeaveReason string `json:"leaveReason,omitempty"`
	CheckIn     string `json:"checkIn,omitempty"`  // HH:mm:ss
	CheckOut    string `json:"checkOut,omitempty"` // HH:mm:ss
}

type MonthlyRecap struct {
	UserID               uint       `json:"userId"`
	UserName             string     `json:"userName"`
	Division             string     `json:"division"`
	Year                 int        `json:"year"`
	Month                int        `json:"month"`
	Days                 []RecapDay `json:"days"`
	TotalWorkDays        int        `json:"totalWorkDays"`
	TotalPresent         int        `json:"totalPresent"`
	TotalLate            int        `json:"totalLate"`
	TotalOnLeave         int        `json:"totalOnLeave"`
	TotalAlpha           int        `json:"totalAlpha"`
	AttendancePercentage int        `json:"attendancePercentage"`
}

// BuildMonthlyRecap menyusun rekap harian satu user untuk satu bulan.
//
// Hari diiterasi dari tanggal 1 sampai min(hari ini, akhir bulan); hari di
// masa depan tidak dimunculkan sama sekali. Sabtu/Minggu dilabeli weekend dan
// tidak masuk hitungan hari kerja. Hari kerja diperiksa berurutan: cuti
// approved yang mencakup tanggal -> leave; absen masuk paling awal hari itu ->
// late/present sesuai IsLate yang tersimpan; tanpa keduanya -> alpha. Jam
// absen pulang paling awal dilampirkan sebagai checkout terlepas dari label
// harinya. Selalu berlaku:
// TotalPresent + TotalLate + TotalOnLeave + TotalAlpha = TotalWorkDays.
func BuildMonthlyRecap(user *model.User, year, month int, today time.Time, loc *time.Location, records []model.Attendance, leaves []model.Leave) MonthlyRecap {
	rekap := MonthlyRecap{
		UserID:   user.ID,
		UserName: user.Name,
		Division: user.Division,
		Year:     year,
		Month:    month,
		Days:     []RecapDay{},
	}

	// Record ganda per hari/tipe ditoleransi: ambil timestamp paling awal
	// supaya hasil rekap deterministik.
	earliestIn := map[string]*model.Attendance{}
	earliestOut := map[string]*model.Attendance{}
	for i := range records {
		rec := &records[i]
		var bucket map[string]*model.Attendance
		switch rec.Tipe {
		case model.AttendanceTypeIn:
			bucket = earliestIn
		case model.AttendanceTypeOut:
			bucket = earliestOut
		default:
			continue
		}
		if cur, ok := bucket[rec.Tanggal]; !ok || rec.Timestamp.Before(cur.Timestamp) {
			bucket[rec.Tanggal] = rec
		}
	}

	// Cuti yang tumpang tindih dipilih secara deterministik juga.
	sortedLeaves := make([]model.Leave, len(leaves))
	copy(sortedLeaves, leaves)
	sort.Slice(sortedLeaves, func(i, j int) bool {
		if sortedLeaves[i].StartDate != sortedLeaves[j].StartDate {
			return sortedLeaves[i].StartDate < sortedLeaves[j].StartDate
		}
		return sortedLeaves[i].ID < sortedLeaves[j].ID
	})

	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, loc).Day()
	todayStr := today.In(loc).Format("2006-01-02")

	for day := 1; day <= lastDay; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
		dateStr := date.Format("2006-01-02")
		if dateStr > todayStr {
			break
		}

		entry := RecapDay{Date: dateStr}

		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			entry.Status = RecapWeekend
		} else {
			rekap.TotalWorkDays++
			if cuti := findApprovedLeave(sortedLeaves, dateStr); cuti != nil {
				entry.Status = RecapLeave
				entry.LeaveType = cuti.Tipe
				entry.LeaveReason = cuti.Reason
				rekap.TotalOnLeave++
			} else if masuk := earliestIn[dateStr]; masuk != nil {
				if masuk.IsLate {
					entry.Status = RecapLate
					rekap.TotalLate++
				} else {
					entry.Status = RecapPresent
					rekap.TotalPresent++
				}
				entry.CheckIn = masuk.Timestamp.In(loc).Format("15:04:05")
			} else {
				entry.Status = RecapAlpha
				rekap.TotalAlpha++
			}
		}

		if pulang := earliestOut[dateStr]; pulang != nil {
			entry.CheckOut = pulang.Timestamp.In(loc).Format("15:04:05")
		}

		rekap.Days = append(rekap.Days, entry)
	}

	if rekap.TotalWorkDays > 0 {
		hadir := rekap.TotalPresent + rekap.TotalLate + rekap.TotalOnLeave
		rekap.AttendancePercentage = int(math.Round(float64(hadir) * 100 / float64(rekap.TotalWorkDays)))
	}

	return rekap
}

func findApprovedLeave(leaves []model.Leave, tanggal string) *model.Leave {
	for i := range leaves {
		if leaves[i].Status == model.LeaveStatusApproved && leaves[i].CoversDate(tanggal) {
			return &leaves[i]
		}
	}
	return nil
}
