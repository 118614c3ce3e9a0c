package repository

import (
	"presensi-magang-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	GetAll(search, role string) ([]model.User, error)
	Update(user *model.User) error
	DeleteCascade(id uint) error
	GetInternIDs() ([]uint, error)
	Exists(id uint) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAll(search, role string) ([]model.User, error) {
	var users []model.User
	query := r.db.Order("name asc")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR username LIKE ?", pattern, pattern)
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}

	err := query.Find(&users).Error
	return users, err
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// DeleteCascade menghapus permanen user beserta seluruh absensi dan pengajuan
// izinnya dalam satu transaksi.
func (r *userRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&model.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&model.Leave{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.User{}, id).Error
	})
}

func (r *userRepository) GetInternIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.User{}).
		Where("role = ?", model.RoleIntern).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *userRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
