package archiver

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"presensi-magang-backend/internal/model"

	"gorm.io/gorm"
)

// Config mengatur perilaku pengarsipan dan pembersihan.
type Config struct {
	// Absensi lebih tua dari sekian bulan dipindah ke tabel arsip.
	RetentionMonths int
	// Jumlah baris per gelombang supaya tabel tidak terkunci lama.
	BatchSize int
	// DryRun menjalankan semua langkah baca/hitung tanpa mengubah apa pun.
	DryRun bool
	// Akar folder unggahan untuk pembersihan foto.
	UploadsDir string
}

type Archiver struct {
	db  *gorm.DB
	cfg Config
	loc *time.Location
}

func New(db *gorm.DB, cfg Config, loc *time.Location) *Archiver {
	if cfg.RetentionMonths <= 0 {
		cfg.RetentionMonths = 6
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.UploadsDir == "" {
		cfg.UploadsDir = "./uploads"
	}
	return &Archiver{db: db, cfg: cfg, loc: loc}
}

// Run memindah absensi lama ke tabel arsip per gelombang lalu membersihkan
// foto absen yang tidak lagi dirujuk baris mana pun.
func (a *Archiver) Run(ctx context.Context, now time.Time) error {
	batas := now.In(a.loc).AddDate(0, -a.cfg.RetentionMonths, 0).Format("2006-01-02")
	log.Printf("[REAPER] Mulai pengarsipan absensi sebelum %s (dryRun=%v)", batas, a.cfg.DryRun)

	totalArsip := 0
	var cursor uint

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var batch []model.Attendance
		err := a.db.WithContext(ctx).
			Where("tanggal < ? AND id > ?", batas, cursor).
			Order("id asc").
			Limit(a.cfg.BatchSize).
			Find(&batch).Error
		if err != nil {
			return fmt.Errorf("ambil gelombang arsip: %w", err)
		}
		if len(batch) == 0 {
			break
		}
		cursor = batch[len(batch)-1].ID

		if a.cfg.DryRun {
			totalArsip += len(batch)
			log.Printf("[REAPER] (dry-run) %d absensi akan diarsipkan, sampai id %d", len(batch), cursor)
			continue
		}

		waktuArsip := time.Now()
		arsip := make([]model.AttendanceArchive, 0, len(batch))
		ids := make([]uint, 0, len(batch))
		for i := range batch {
			arsip = append(arsip, batch[i].ToArchive(waktuArsip))
			ids = append(ids, batch[i].ID)
		}

		err = a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&arsip).Error; err != nil {
				return err
			}
			// Unscoped: baris arsip menggantikan soft delete
			return tx.Unscoped().Where("id IN ?", ids).Delete(&model.Attendance{}).Error
		})
		if err != nil {
			return fmt.Errorf("arsipkan gelombang: %w", err)
		}

		totalArsip += len(batch)
		log.Printf("[REAPER] %d absensi diarsipkan, sampai id %d", len(batch), cursor)
	}

	log.Printf("[REAPER] Pengarsipan selesai, total %d baris", totalArsip)

	return a.purgeFoto(ctx, now)
}

// purgeFoto menghapus file foto absen lama yang tidak dirujuk tabel absensi
// maupun arsipnya. Foto milik baris arsip tetap disimpan.
func (a *Archiver) purgeFoto(ctx context.Context, now time.Time) error {
	dir := filepath.Join(a.cfg.UploadsDir, "absensi")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[REAPER] Folder %s belum ada, pembersihan foto dilewati", dir)
			return nil
		}
		return fmt.Errorf("baca folder foto: %w", err)
	}

	batasUsia := now.AddDate(0, -a.cfg.RetentionMonths, 0)
	dihapus := 0

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(batasUsia) {
			continue
		}

		// Path yang tersimpan di kolom foto selalu relatif "/uploads/..."
		dbPath := "/uploads/absensi/" + entry.Name()

		var refs int64
		if err := a.db.WithContext(ctx).Model(&model.Attendance{}).Where("foto = ?", dbPath).Count(&refs).Error; err != nil {
			return fmt.Errorf("cek rujukan foto: %w", err)
		}
		if refs == 0 {
			var arsipRefs int64
			if err := a.db.WithContext(ctx).Model(&model.AttendanceArchive{}).Where("foto = ?", dbPath).Count(&arsipRefs).Error; err != nil {
				return fmt.Errorf("cek rujukan arsip foto: %w", err)
			}
			refs = arsipRefs
		}
		if refs > 0 {
			continue
		}

		if a.cfg.DryRun {
			dihapus++
			log.Printf("[REAPER] (dry-run) foto %s akan dihapus", entry.Name())
			continue
		}

		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			log.Printf("[REAPER] Gagal menghapus foto %s: %v", entry.Name(), err)
			continue
		}
		dihapus++
	}

	log.Printf("[REAPER] Pembersihan foto selesai, %d file", dihapus)
	return nil
}
