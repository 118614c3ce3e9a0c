package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"presensi-magang-backend/config"
	"presensi-magang-backend/internal/archiver"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	fmt.Println("🧹 Reaper absensi dimulai...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}

	retention := flag.Int("retention", config.GetEnvAsInt("REAPER_RETENTION_MONTHS", 6), "usia absensi (bulan) sebelum diarsipkan")
	batchSize := flag.Int("batch", config.GetEnvAsInt("REAPER_BATCH_SIZE", 500), "jumlah baris per gelombang")
	dryRun := flag.Bool("dry-run", config.GetEnvAsBool("REAPER_DRY_RUN", false), "hitung semua langkah tanpa mengubah data")
	uploadsDir := flag.String("uploads", config.GetEnv("UPLOADS_DIR", "./uploads"), "akar folder unggahan")
	jadwal := flag.String("cron", config.GetEnv("REAPER_CRON", ""), "jadwal cron, kosong berarti sekali jalan")
	flag.Parse()

	config.ConnectDB()

	arc := archiver.New(config.DB, archiver.Config{
		RetentionMonths: *retention,
		BatchSize:       *batchSize,
		DryRun:          *dryRun,
		UploadsDir:      *uploadsDir,
	}, config.Timezone())

	jalankan := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		if err := arc.Run(ctx, time.Now()); err != nil {
			log.Printf("[REAPER] Berhenti dengan error: %v", err)
		}
	}

	// Mode sekali jalan (default), cocok dipanggil dari cron sistem
	if *jadwal == "" {
		jalankan()
		return
	}

	// Mode terjadwal dengan cron internal; run yang masih berjalan tidak
	// boleh ditumpuk run berikutnya.
	c := cron.New(cron.WithLocation(config.Timezone()), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(*jadwal, jalankan); err != nil {
		log.Fatalf("[REAPER] Jadwal cron tidak valid: %v", err)
	}
	c.Start()
	log.Printf("[REAPER] Berjalan terjadwal: %s", *jadwal)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	<-c.Stop().Done()
	log.Println("[REAPER] Selesai.")
}
