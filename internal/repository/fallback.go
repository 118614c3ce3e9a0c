package repository

import (
	"log"
	"sync"

	"presensi-magang-backend/internal/model"
)

// TwoTierSettings membungkus SettingsRepository dengan salinan terakhir yang
// berhasil dibaca. Jika pembacaan primary gagal, salinan cache disajikan dan
// ditandai degraded secara eksplisit, tidak pernah menyaru sebagai pembacaan
// sehat. Hanya jalur baca yang punya fallback; penulisan yang gagal selalu
// dilaporkan ke pemanggil.
type TwoTierSettings struct {
	primary SettingsRepository
	mu      sync.RWMutex
	last    *model.Settings
}

func NewTwoTierSettings(primary SettingsRepository) *TwoTierSettings {
	return &TwoTierSettings{primary: primary}
}

// Get mengembalikan settings plus penanda degraded: false berarti hasil segar
// dari primary, true berarti disajikan dari cache karena primary gagal.
// Error hanya keluar kalau primary gagal dan cache masih kosong.
func (t *TwoTierSettings) Get() (*model.Settings, bool, error) {
	pengaturan, err := t.primary.Get()
	if err == nil {
		salinan := *pengaturan
		t.mu.Lock()
		t.last = &salinan
		t.mu.Unlock()
		return pengaturan, false, nil
	}

	t.mu.RLock()
	cached := t.last
	t.mu.RUnlock()
	if cached == nil {
		return nil, false, err
	}

	log.Printf("[FALLBACK] Baca settings dari database gagal, memakai salinan terakhir: %v", err)
	salinan := *cached
	return &salinan, true, nil
}

// Save meneruskan ke primary; cache hanya diperbarui bila penulisan sukses.
func (t *TwoTierSettings) Save(pengaturan *model.Settings) error {
	if err := t.primary.Save(pengaturan); err != nil {
		return err
	}
	salinan := *pengaturan
	t.mu.Lock()
	t.last = &salinan
	t.mu.Unlock()
	return nil
}
