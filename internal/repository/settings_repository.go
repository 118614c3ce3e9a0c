package repository

import (
	"presensi-magang-backend/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get() (*model.Settings, error)
	Save(pengaturan *model.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db}
}

// Get membaca baris settings tunggal; saat belum ada, baris dibuat dengan
// nilai default (create-on-first-read).
func (r *settingsRepository) Get() (*model.Settings, error) {
	pengaturan := model.DefaultSettings()
	err := r.db.Where("id = ?", model.SettingsID).FirstOrCreate(&pengaturan).Error
	if err != nil {
		return nil, err
	}
	return &pengaturan, nil
}

// Save menimpa utuh baris settings tunggal.
func (r *settingsRepository) Save(pengaturan *model.Settings) error {
	pengaturan.ID = model.SettingsID
	return r.db.Save(pengaturan).Error
}
