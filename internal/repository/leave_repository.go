package repository

import (
	"presensi-magang-backend/internal/model"

	"gorm.io/gorm"
)

type LeaveRepository interface {
	Create(cuti *model.Leave) error
	GetByID(id uint) (*model.Leave, error)
	GetByUser(userID uint) ([]model.Leave, error)
	GetAll(status string) ([]model.Leave, error)
	Update(cuti *model.Leave) error
	Delete(id uint) error
	GetApprovedOverlappingRange(start, end string) ([]model.Leave, error)
	GetApprovedByUserOverlappingRange(userID uint, start, end string) ([]model.Leave, error)
	DistinctUserIDsApprovedOn(tanggal string) ([]uint, error)
}

type leaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db}
}

func (r *leaveRepository) Create(cuti *model.Leave) error {
	return r.db.Create(cuti).Error
}

func (r *leaveRepository) GetByID(id uint) (*model.Leave, error) {
	var cuti model.Leave
	err := r.db.First(&cuti, id).Error
	if err != nil {
		return nil, err
	}
	return &cuti, nil
}

func (r *leaveRepository) GetByUser(userID uint) ([]model.Leave, error) {
	var list []model.Leave
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *leaveRepository) GetAll(status string) ([]model.Leave, error) {
	var list []model.Leave
	query := r.db.Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&list).Error
	return list, err
}

func (r *leaveRepository) Update(cuti *model.Leave) error {
	return r.db.Save(cuti).Error
}

func (r *leaveRepository) Delete(id uint) error {
	return r.db.Delete(&model.Leave{}, id).Error
}

// Rentang [start, end] inklusif; dua rentang tumpang tindih jika
// start_date <= end DAN end_date >= start (perbandingan string YYYY-MM-DD).
func (r *leaveRepository) GetApprovedOverlappingRange(start, end string) ([]model.Leave, error) {
	var list []model.Leave
	err := r.db.Where("status = ? AND start_date <= ? AND end_date >= ?", model.LeaveStatusApproved, end, start).
		Find(&list).Error
	return list, err
}

func (r *leaveRepository) GetApprovedByUserOverlappingRange(userID uint, start, end string) ([]model.Leave, error) {
	var list []model.Leave
	err := r.db.Where("user_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
		userID, model.LeaveStatusApproved, end, start).
		Find(&list).Error
	return list, err
}

func (r *leaveRepository) DistinctUserIDsApprovedOn(tanggal string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Leave{}).
		Where("status = ? AND start_date <= ? AND end_date >= ?", model.LeaveStatusApproved, tanggal, tanggal).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}
