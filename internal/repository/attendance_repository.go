package repository

import (
	"presensi-magang-backend/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(absensi *model.Attendance) error
	ExistsOnDate(userID uint, tanggal, tipe string) (bool, error)
	GetEarliestOnDate(userID uint, tanggal, tipe string) (*model.Attendance, error)
	GetByUserAndMonth(userID uint, bulan, tahun string) ([]model.Attendance, error)
	GetByMonth(bulan, tahun string) ([]model.Attendance, error)
	GetByDate(tanggal string) ([]model.Attendance, error)
	GetBetweenDates(start, end string) ([]model.Attendance, error)
	DistinctUserIDsOnDate(tanggal string) ([]uint, error)
	CountOnDate(tanggal, tipe string) (int64, error)
	CountLateOnDate(tanggal string) (int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) Create(absensi *model.Attendance) error {
	return r.db.Create(absensi).Error
}

func (r *attendanceRepository) ExistsOnDate(userID uint, tanggal, tipe string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Attendance{}).
		Where("user_id = ? AND tanggal = ? AND tipe = ?", userID, tanggal, tipe).
		Count(&count).Error
	return count > 0, err
}

func (r *attendanceRepository) GetEarliestOnDate(userID uint, tanggal, tipe string) (*model.Attendance, error) {
	var absensi model.Attendance
	err := r.db.Where("user_id = ? AND tanggal = ? AND tipe = ?", userID, tanggal, tipe).
		Order("timestamp asc").
		First(&absensi).Error
	if err != nil {
		return nil, err
	}
	return &absensi, nil
}

func (r *attendanceRepository) GetByUserAndMonth(userID uint, bulan, tahun string) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.Where("user_id = ? AND bulan = ? AND tahun = ?", userID, bulan, tahun).
		Order("timestamp asc").
		Find(&list).Error
	return list, err
}

func (r *attendanceRepository) GetByMonth(bulan, tahun string) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.Where("bulan = ? AND tahun = ?", bulan, tahun).
		Order("timestamp asc").
		Find(&list).Error
	return list, err
}

func (r *attendanceRepository) GetByDate(tanggal string) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.Where("tanggal = ?", tanggal).
		Order("timestamp asc").
		Find(&list).Error
	return list, err
}

func (r *attendanceRepository) GetBetweenDates(start, end string) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.Where("tanggal >= ? AND tanggal <= ?", start, end).
		Order("timestamp asc").
		Find(&list).Error
	return list, err
}

func (r *attendanceRepository) DistinctUserIDsOnDate(tanggal string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Attendance{}).
		Where("tanggal = ?", tanggal).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *attendanceRepository) CountOnDate(tanggal, tipe string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attendance{}).
		Where("tanggal = ? AND tipe = ?", tanggal, tipe).
		Count(&count).Error
	return count, err
}

func (r *attendanceRepository) CountLateOnDate(tanggal string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attendance{}).
		Where("tanggal = ? AND tipe = ? AND is_late = ?", tanggal, model.AttendanceTypeIn, true).
		Count(&count).Error
	return count, err
}
